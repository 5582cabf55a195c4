package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrmkp27/retail-sales-dashboard/config"
	"github.com/mrmkp27/retail-sales-dashboard/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	SaleTransactions string // Tên collection cho giao dịch bán hàng
}

// Các biến toàn cục
var Validate *validator.Validate                                                // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                               // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                                  // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)      // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
