// Package basehdl cung cấp handler CRUD tổng quát và các hàm dựng response chuẩn.
package basehdl

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	basemodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/models"
	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

// ===========================================
// CẤU TRÚC RESPONSE CHUẨN
// ===========================================

// APIResponse là cấu trúc response chuẩn cho toàn bộ API.
type APIResponse struct {
	Success    bool                       `json:"success"`              // Trạng thái xử lý request
	Message    string                     `json:"message"`              // Thông báo cho client
	Data       interface{}                `json:"data,omitempty"`       // Dữ liệu trả về
	Pagination *basemodels.PaginationMeta `json:"pagination,omitempty"` // Thông tin phân trang (chỉ có ở API danh sách)
	Code       string                     `json:"code,omitempty"`       // Mã lỗi (chỉ có khi thất bại)
	Details    interface{}                `json:"details,omitempty"`    // Chi tiết lỗi (chỉ có khi thất bại)
}

// JSONResponse ghi response JSON với status code được chỉ định.
func JSONResponse(c fiber.Ctx, statusCode int, resp APIResponse) error {
	return c.Status(statusCode).JSON(resp)
}

// RespondSuccess trả về response thành công với dữ liệu.
func RespondSuccess(c fiber.Ctx, statusCode int, message string, data interface{}) error {
	return JSONResponse(c, statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithPagination trả về response thành công kèm thông tin phân trang.
func RespondWithPagination(c fiber.Ctx, message string, data interface{}, meta basemodels.PaginationMeta) error {
	return JSONResponse(c, common.StatusOK, APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &meta,
	})
}

// RespondError trả về response lỗi. Lỗi *common.Error được giữ nguyên
// status code và mã lỗi; các lỗi khác trả về 500 với mã lỗi hệ thống.
func RespondError(c fiber.Ctx, err error) error {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return JSONResponse(c, appErr.StatusCode, APIResponse{
			Success: false,
			Message: appErr.Message,
			Code:    appErr.Code.Code,
			Details: appErr.Details,
		})
	}

	// Lỗi không xác định: log lại, không lộ chi tiết ra ngoài
	logger.WithRequest(c).WithError(err).Error("Unhandled error")

	return JSONResponse(c, common.StatusInternalServerError, APIResponse{
		Success: false,
		Message: common.MsgInternalError,
		Code:    common.ErrCodeInternalServer.Code,
	})
}

// HandleResponse trả về response chuẩn từ kết quả của tầng service.
// Nếu err khác nil thì trả lỗi, ngược lại trả 200 kèm dữ liệu.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return RespondError(c, err)
	}
	return RespondSuccess(c, common.StatusOK, common.MsgSuccess, data)
}
