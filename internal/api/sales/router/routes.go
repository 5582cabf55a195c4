// Package salesrouter đăng ký route cho API giao dịch bán hàng.
package salesrouter

import (
	"github.com/gofiber/fiber/v3"

	saleshdl "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/handler"
	"github.com/mrmkp27/retail-sales-dashboard/internal/api/router"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

// Register đăng ký các route /sales vào group /api/v1.
func Register(v1 fiber.Router) {
	handler, err := saleshdl.NewSaleTransactionHandler()
	if err != nil {
		logger.GetAppLogger().WithError(err).Fatal("Không khởi tạo được handler giao dịch bán hàng")
		return
	}

	group := v1.Group("/sales")

	// Route tĩnh phải đăng ký trước route /:id
	group.Get("/summary", handler.Summary)

	router.RegisterCRUDRoutes(v1, "/sales", router.CRUDConfig{
		List:       handler.List,
		Create:     handler.Create,
		GetById:    handler.FindOneById,
		UpdateById: handler.UpdateById,
		DeleteById: handler.DeleteById,
	})
}
