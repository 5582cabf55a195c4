// Seeder là công cụ dòng lệnh nạp dữ liệu giao dịch bán hàng từ file CSV
// vào MongoDB, hoặc xóa toàn bộ dữ liệu đã nạp.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
