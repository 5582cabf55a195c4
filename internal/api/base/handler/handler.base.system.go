package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
	"github.com/mrmkp27/retail-sales-dashboard/internal/global"
)

// SystemHandler xử lý các endpoint hệ thống (health check).
type SystemHandler struct{}

// NewSystemHandler tạo mới SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthCheck kiểm tra tình trạng service và kết nối MongoDB.
// Trả về 503 nếu không ping được database.
func (h *SystemHandler) HealthCheck(c fiber.Ctx) error {
	status := fiber.Map{
		"service":  "ok",
		"database": "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
	}

	if global.MongoDB_Session != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := global.MongoDB_Session.Ping(ctx, nil); err != nil {
			status["database"] = "down"
			return JSONResponse(c, common.StatusServiceUnavailable, APIResponse{
				Success: false,
				Message: common.MsgMongoConnection,
				Code:    common.ErrCodeDatabaseConnection.Code,
				Data:    status,
			})
		}
	}

	return RespondSuccess(c, common.StatusOK, common.MsgSuccess, status)
}
