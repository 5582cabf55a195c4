package basehdl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"runtime/debug"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/service"
	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
	"github.com/mrmkp27/retail-sales-dashboard/internal/global"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

// requestTimeout là thời gian tối đa cho một thao tác CRUD đơn lẻ.
const requestTimeout = 10 * time.Second

// ===========================================
// BASE HANDLER
// ===========================================

// BaseHandler cung cấp các handler CRUD tổng quát trên một BaseServiceMongo.
// T là model của collection, C là DTO tạo mới, U là DTO cập nhật.
// Handler của từng domain embed BaseHandler và gắn hai hàm Transform.
type BaseHandler[T any, C any, U any] struct {
	Service basesvc.BaseServiceMongo[T]

	// TransformCreate chuyển DTO tạo mới (đã validate) thành model để ghi.
	TransformCreate func(input *C) (T, error)
	// TransformUpdate chuyển DTO cập nhật (đã validate) thành UpdateData.
	TransformUpdate func(input *U) (basesvc.UpdateData, error)
}

// NewBaseHandler tạo mới BaseHandler với service được cung cấp.
func NewBaseHandler[T any, C any, U any](service basesvc.BaseServiceMongo[T]) BaseHandler[T, C, U] {
	return BaseHandler[T, C, U]{Service: service}
}

// ===========================================
// CÁC HÀM HỖ TRỢ XỬ LÝ REQUEST
// ===========================================

// SafeHandler bọc handler với recover để một panic không làm chết process.
func (h *BaseHandler[T, C, U]) SafeHandler(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).
				WithField("stack", string(debug.Stack())).
				Error("Panic trong handler")
			_ = RespondError(c, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, nil))
		}
	}()
	return fn()
}

// ParseRequestBody giải mã body JSON vào input.
// Dùng UseNumber để không mất độ chính xác của các giá trị số lớn.
func (h *BaseHandler[T, C, U]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	return nil
}

// ValidateInput kiểm tra input theo các validate tag trên struct.
// Lỗi trả về kèm danh sách field vi phạm và rule tương ứng.
func (h *BaseHandler[T, C, U]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}

	err := global.Validate.Struct(input)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		details := map[string]string{}
		for _, fieldErr := range vErrs {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, details)
	}

	return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
}

// GetIDFromContext lấy và kiểm tra ObjectID từ path param "id".
func (h *BaseHandler[T, C, U]) GetIDFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, "id không phải ObjectID hợp lệ")
	}
	return id, nil
}

// ===========================================
// CÁC HANDLER CRUD TỔNG QUÁT
// ===========================================

// Create xử lý request tạo mới một document.
func (h *BaseHandler[T, C, U]) Create(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input C
		if err := h.ParseRequestBody(c, &input); err != nil {
			return RespondError(c, err)
		}
		if err := h.ValidateInput(&input); err != nil {
			return RespondError(c, err)
		}

		model, err := h.TransformCreate(&input)
		if err != nil {
			return RespondError(c, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		created, err := h.Service.InsertOne(ctx, model)
		if err != nil {
			return RespondError(c, err)
		}
		return RespondSuccess(c, common.StatusCreated, common.MsgCreated, created)
	})
}

// FindOneById xử lý request lấy một document theo _id.
func (h *BaseHandler[T, C, U]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.GetIDFromContext(c)
		if err != nil {
			return RespondError(c, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := h.Service.FindOneById(ctx, id)
		return HandleResponse(c, result, err)
	})
}

// UpdateById xử lý request cập nhật một document theo _id.
func (h *BaseHandler[T, C, U]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.GetIDFromContext(c)
		if err != nil {
			return RespondError(c, err)
		}

		var input U
		if err := h.ParseRequestBody(c, &input); err != nil {
			return RespondError(c, err)
		}
		if err := h.ValidateInput(&input); err != nil {
			return RespondError(c, err)
		}

		updateData, err := h.TransformUpdate(&input)
		if err != nil {
			return RespondError(c, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := h.Service.UpdateById(ctx, id, updateData)
		return HandleResponse(c, updated, err)
	})
}

// DeleteById xử lý request xóa một document theo _id.
func (h *BaseHandler[T, C, U]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.GetIDFromContext(c)
		if err != nil {
			return RespondError(c, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := h.Service.DeleteById(ctx, id); err != nil {
			return RespondError(c, err)
		}
		return RespondSuccess(c, common.StatusOK, common.MsgDeleted, nil)
	})
}
