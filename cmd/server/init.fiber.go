package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	basehdl "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/handler"
	"github.com/mrmkp27/retail-sales-dashboard/internal/api/router"
	salesrouter "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/router"
	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
	"github.com/mrmkp27/retail-sales-dashboard/internal/global"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết.
func InitFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "Retail Sales API",
		ServerHeader:  "Retail Sales API",
		StrictRouting: false, // /sales và /sales/ là một
		CaseSensitive: true,
		UnescapePath:  true,

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       10 * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 4. XỬ LÝ LỖI TẬP TRUNG
		// =========================================
		ErrorHandler: func(c fiber.Ctx, err error) error {
			// Lỗi routing của Fiber (404, 405, ...) chuyển về envelope chuẩn
			if e, ok := err.(*fiber.Error); ok {
				errorCode := common.ErrCodeInternalServer
				switch e.Code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput
				case fiber.StatusNotFound:
					errorCode = common.ErrCodeDatabaseQuery
				case fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery
				}

				logger.WithRequest(c).WithFields(map[string]interface{}{
					"code":    e.Code,
					"message": e.Message,
				}).Warn("Request error")

				return basehdl.JSONResponse(c, e.Code, basehdl.APIResponse{
					Success: false,
					Message: e.Message,
					Code:    errorCode.Code,
				})
			}

			return basehdl.RespondError(c, err)
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID - tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS - đặt trước các middleware khác để xử lý preflight
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.MongoDB_ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limiting - giới hạn số request theo IP
	if global.MongoDB_ServerConfig.RateLimit_Enabled && global.MongoDB_ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.MongoDB_ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.MongoDB_ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return basehdl.JSONResponse(c, common.StatusTooManyRequests, basehdl.APIResponse{
					Success: false,
					Message: common.MsgTooManyRequest,
					Code:    common.ErrCodeBusinessOperation.Code,
				})
			},
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua health check và preflight
				return c.Path() == "/health" ||
					c.Path() == "/api/v1/system/health" ||
					c.Method() == "OPTIONS"
			},
		}))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", rateLimitMax, global.MongoDB_ServerConfig.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	// 5. Recover - một panic không làm chết process
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": e,
			}).Error("Panic recovered")
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/api/v1/system/health"
		},
	}))

	// Đăng ký routes
	router.SetupRoutes(app, salesrouter.Register)

	return app
}
