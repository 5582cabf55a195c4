package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	salessvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/service"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Xóa toàn bộ dữ liệu giao dịch đã nạp",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := salessvc.NewSaleTransactionService()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		deleted, err := service.DeleteMany(ctx, nil)
		if err != nil {
			return err
		}

		logger.GetSeederLogger().WithFields(map[string]interface{}{
			"deleted": deleted,
		}).Info("Đã xóa toàn bộ dữ liệu giao dịch")
		return nil
	},
}
