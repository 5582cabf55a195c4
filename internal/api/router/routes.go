// Package router đăng ký route cho toàn bộ API.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/handler"
)

// RegisterFunc là hàm đăng ký route của một domain vào group /api/v1.
type RegisterFunc func(router fiber.Router)

// CRUDConfig mô tả các handler cho route CRUD chuẩn của một tài nguyên.
// Handler nào nil thì route tương ứng không được đăng ký.
type CRUDConfig struct {
	List       fiber.Handler // GET    /
	Create     fiber.Handler // POST   /
	GetById    fiber.Handler // GET    /:id
	UpdateById fiber.Handler // PUT    /:id
	DeleteById fiber.Handler // DELETE /:id
}

// RegisterCRUDRoutes đăng ký các route CRUD chuẩn cho một tài nguyên dưới prefix.
func RegisterCRUDRoutes(router fiber.Router, prefix string, cfg CRUDConfig) fiber.Router {
	group := router.Group(prefix)

	if cfg.List != nil {
		group.Get("/", cfg.List)
	}
	if cfg.Create != nil {
		group.Post("/", cfg.Create)
	}
	if cfg.GetById != nil {
		group.Get("/:id", cfg.GetById)
	}
	if cfg.UpdateById != nil {
		group.Put("/:id", cfg.UpdateById)
	}
	if cfg.DeleteById != nil {
		group.Delete("/:id", cfg.DeleteById)
	}

	return group
}

// RegisterRouteWithMiddleware đăng ký một nhóm route với middleware riêng.
// Fiber v3 yêu cầu tạo group trước rồi mới Use middleware.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, middlewares []fiber.Handler, register func(r fiber.Router)) {
	group := router.Group(prefix)
	for _, m := range middlewares {
		group.Use(m)
	}
	register(group)
}

// SetupRoutes đăng ký route hệ thống và các route domain vào app.
// Route domain được đăng ký dưới group /api/v1.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) {
	systemHandler := basehdl.NewSystemHandler()

	// Health check ở root cho load balancer
	app.Get("/health", systemHandler.HealthCheck)

	v1 := app.Group("/api/v1")
	v1.Get("/system/health", systemHandler.HealthCheck)

	for _, reg := range regs {
		reg(v1)
	}
}
