package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mrmkp27/retail-sales-dashboard/config"
	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
	"github.com/mrmkp27/retail-sales-dashboard/internal/database"
	"github.com/mrmkp27/retail-sales-dashboard/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục của ứng dụng.
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// initColNames khởi tạo tên các collection trong database.
func initColNames() {
	global.MongoDB_ColNames.SaleTransactions = "sale_transactions"
	logrus.Info("Initialized collection names")
}

// initValidator khởi tạo validator và các custom validator (no_xss, ...).
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig khởi tạo cấu hình server từ file env và biến môi trường.
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB kết nối MongoDB, đảm bảo collection tồn tại và tạo index.
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Tạo index cho các collection theo tag trên model
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	if err := database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.SaleTransactions), salesmodels.SaleTransaction{}); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}
	logrus.Info("Created collection indexes")
}
