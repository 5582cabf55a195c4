package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	basesvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/service"
	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
	salessvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/service"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

// batchSize là số document ghi trong một lần InsertMany.
const batchSize = 5000

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Nạp dữ liệu giao dịch từ file CSV",
	Long: `Đọc file CSV theo dòng và ghi vào MongoDB theo lô. Lô ghi thất bại
(ví dụ do trùng transactionId) được ghi log và bỏ qua, quá trình nạp
vẫn tiếp tục. Lỗi đọc file làm dừng toàn bộ quá trình.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(importFile)
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "data/sales_data.csv", "đường dẫn file CSV")
}

// runImport đọc file CSV theo stream và ghi theo lô vào MongoDB.
func runImport(path string) error {
	log := logger.GetSeederLogger()

	service, err := salessvc.NewSaleTransactionService()
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("không mở được file CSV %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("không đọc được header CSV: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"file":      path,
		"batchSize": batchSize,
		"columns":   len(header),
	}).Info("Bắt đầu nạp dữ liệu")

	var (
		batch    = make([]salesmodels.SaleTransaction, 0, batchSize)
		rows     int64
		inserted int64
		failed   int64
	)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		count, err := insertBatch(service, batch)
		inserted += count
		if err != nil {
			failed += int64(len(batch)) - count
			log.WithError(err).WithFields(map[string]interface{}{
				"batchRows": len(batch),
				"atRow":     rows,
			}).Error("Ghi lô thất bại, bỏ qua lô này")
		}
		batch = batch[:0]
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Lỗi đọc stream là lỗi nghiêm trọng, dừng toàn bộ quá trình nạp
			return fmt.Errorf("lỗi đọc file CSV tại dòng %d: %w", rows+1, err)
		}

		row := csvRow{}
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}

		batch = append(batch, mapRecord(row))
		rows++

		if len(batch) >= batchSize {
			flush()
			log.Infof("Đã xử lý %d dòng...", rows)
		}
	}

	flush()

	log.WithFields(map[string]interface{}{
		"rows":     rows,
		"inserted": inserted,
		"failed":   failed,
	}).Info("Nạp dữ liệu hoàn tất")

	return nil
}

// insertBatch ghi một lô giao dịch, trả về số document đã ghi được.
func insertBatch(service basesvc.BaseServiceMongo[salesmodels.SaleTransaction], batch []salesmodels.SaleTransaction) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return service.InsertMany(ctx, batch)
}
