package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrmkp27/retail-sales-dashboard/config"
	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
	"github.com/mrmkp27/retail-sales-dashboard/internal/database"
	"github.com/mrmkp27/retail-sales-dashboard/internal/global"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Nạp dữ liệu giao dịch bán hàng vào MongoDB",
	Long: `Seeder nạp dữ liệu giao dịch bán hàng từ file CSV vào MongoDB theo lô,
hoặc xóa toàn bộ dữ liệu đã nạp. Cấu hình kết nối đọc từ file env
giống như server.`,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(destroyCmd)
}

// setup khởi tạo logger, config, kết nối MongoDB và đăng ký collection.
func setup(cmd *cobra.Command, args []string) error {
	if err := logger.Init(nil); err != nil {
		return fmt.Errorf("khởi tạo logger thất bại: %w", err)
	}

	global.InitValidator()
	global.MongoDB_ColNames.SaleTransactions = "sale_transactions"

	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		return fmt.Errorf("khởi tạo config thất bại")
	}

	session, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		return fmt.Errorf("kết nối MongoDB thất bại: %w", err)
	}
	global.MongoDB_Session = session

	if err := database.EnsureDatabaseAndCollections(session); err != nil {
		return fmt.Errorf("khởi tạo collection thất bại: %w", err)
	}

	db := session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	collection := db.Collection(global.MongoDB_ColNames.SaleTransactions)

	// Index unique trên transactionId phải có trước khi nạp để chặn trùng lặp
	if err := database.CreateIndexes(context.TODO(), collection, salesmodels.SaleTransaction{}); err != nil {
		return fmt.Errorf("tạo index thất bại: %w", err)
	}

	if _, err := global.RegistryCollections.Register(global.MongoDB_ColNames.SaleTransactions, collection); err != nil {
		return fmt.Errorf("đăng ký collection thất bại: %w", err)
	}

	return nil
}

// teardown đóng kết nối MongoDB.
func teardown(cmd *cobra.Command, args []string) error {
	if global.MongoDB_Session != nil {
		return database.CloseInstance(global.MongoDB_Session)
	}
	return nil
}
