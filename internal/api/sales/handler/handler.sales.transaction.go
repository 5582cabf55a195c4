// Package saleshdl chứa handler HTTP cho API giao dịch bán hàng.
package saleshdl

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/handler"
	basesvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/service"
	salesdto "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/dto"
	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
	salessvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/service"
	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
)

// queryTimeout là thời gian tối đa cho truy vấn danh sách / tổng hợp.
const queryTimeout = 30 * time.Second

// Giới hạn phân trang.
const (
	defaultLimit = 10
	maxLimit     = 100
)

// SaleTransactionHandler xử lý các request HTTP trên giao dịch bán hàng.
// CRUD theo id kế thừa từ BaseHandler; danh sách và tổng hợp hiện thực riêng.
type SaleTransactionHandler struct {
	basehdl.BaseHandler[salesmodels.SaleTransaction, salesdto.SaleTransactionCreateInput, salesdto.SaleTransactionUpdateInput]
	SaleService *salessvc.SaleTransactionService
}

// NewSaleTransactionHandler tạo mới handler giao dịch bán hàng.
func NewSaleTransactionHandler() (*SaleTransactionHandler, error) {
	service, err := salessvc.NewSaleTransactionService()
	if err != nil {
		return nil, err
	}

	h := &SaleTransactionHandler{
		BaseHandler: basehdl.NewBaseHandler[salesmodels.SaleTransaction, salesdto.SaleTransactionCreateInput, salesdto.SaleTransactionUpdateInput](service),
		SaleService: service,
	}

	h.TransformCreate = func(input *salesdto.SaleTransactionCreateInput) (salesmodels.SaleTransaction, error) {
		return input.ToModel()
	}
	h.TransformUpdate = func(input *salesdto.SaleTransactionUpdateInput) (basesvc.UpdateData, error) {
		return input.ToUpdateData()
	}

	return h, nil
}

// parseQuerySpec đọc các query param của truy vấn danh sách.
// page / limit không hợp lệ rơi về mặc định; limit bị chặn trên ở maxLimit.
func (h *SaleTransactionHandler) parseQuerySpec(c fiber.Ctx) (salessvc.QuerySpec, error) {
	spec := salessvc.QuerySpec{
		Search: c.Query("search"),
		Page:   1,
		Limit:  defaultLimit,
	}

	if page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64); err == nil && page > 0 {
		spec.Page = page
	}
	if limit, err := strconv.ParseInt(c.Query("limit", strconv.Itoa(defaultLimit)), 10, 64); err == nil && limit > 0 {
		if limit > maxLimit {
			limit = maxLimit
		}
		spec.Limit = limit
	}

	spec.SortField = c.Query("sortBy")
	switch c.Query("sortOrder", "desc") {
	case "asc", "1":
		spec.SortOrder = 1
	default:
		spec.SortOrder = -1
	}

	filters, err := salessvc.ParseFilterParam(c.Query("filter"))
	if err != nil {
		return spec, err
	}
	spec.Filters = filters

	return spec, nil
}

// List xử lý GET /sales: danh sách giao dịch có tìm kiếm, lọc, sắp xếp và phân trang.
func (h *SaleTransactionHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		spec, err := h.parseQuerySpec(c)
		if err != nil {
			return basehdl.RespondError(c, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		result, err := h.SaleService.List(ctx, spec)
		if err != nil {
			return basehdl.RespondError(c, err)
		}
		return basehdl.RespondWithPagination(c, common.MsgSuccess, result.Items, result.Meta)
	})
}

// Summary xử lý GET /sales/summary: tổng hợp doanh số trên tập giao dịch
// khớp cùng điều kiện tìm kiếm / lọc với API danh sách.
func (h *SaleTransactionHandler) Summary(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filters, err := salessvc.ParseFilterParam(c.Query("filter"))
		if err != nil {
			return basehdl.RespondError(c, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		totals, err := h.SaleService.Summarize(ctx, c.Query("search"), filters)
		return basehdl.HandleResponse(c, totals, err)
	})
}
