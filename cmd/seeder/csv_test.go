// Test ánh xạ dòng CSV sang model giao dịch và làm sạch giá trị số.
package main

import (
	"testing"
	"time"
)

func TestCleanNumber(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"123", 123},
		{"1,234.56", 1234.56},
		{"$99.90", 99.90},
		{"-5", -5},
		{"abc", 0},
		{"12abc34", 1234}, // chỉ giữ lại ký tự số
	}

	for _, c := range cases {
		if got := cleanNumber(c.input); got != c.want {
			t.Errorf("cleanNumber(%q) = %v, muốn %v", c.input, got, c.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	tags := parseTags("organic, bestseller , ,new")
	if len(tags) != 3 {
		t.Fatalf("có %d tag, muốn 3 (bỏ phần tử rỗng): %v", len(tags), tags)
	}
	if tags[1] != "bestseller" {
		t.Errorf("tag[1] = %q, muốn bestseller (đã trim khoảng trắng)", tags[1])
	}

	if parseTags("") != nil {
		t.Error("chuỗi tag rỗng phải cho nil")
	}
}

func TestParseDate(t *testing.T) {
	d := parseDate("2024-06-01")
	if d.Year() != 2024 || d.Month() != time.June {
		t.Errorf("parseDate(2024-06-01) = %v", d)
	}

	// Giá trị không đọc được rơi về thời điểm hiện tại
	fallback := parseDate("not-a-date")
	if time.Since(fallback) > time.Minute {
		t.Errorf("ngày sai định dạng phải nhận thời điểm hiện tại, có %v", fallback)
	}
}

func TestMapRecord_DayDuDuLieu(t *testing.T) {
	row := csvRow{
		colTransactionID:   "TX-100",
		colCustomerName:    "Lê Văn C",
		colCustomerRegion:  "South",
		colQuantity:        "3",
		colPricePerUnit:    "$10.50",
		colTotalAmount:     "31.50",
		colFinalAmount:     "28.35",
		colDate:            "2024-06-01",
		colTags:            "organic,new",
		colPaymentMethod:   "UPI",
		colOrderStatus:     "Shipped",
	}

	tx := mapRecord(row)

	if tx.TransactionID != "TX-100" {
		t.Errorf("TransactionID = %s, muốn TX-100", tx.TransactionID)
	}
	if tx.Sales.Quantity != 3 {
		t.Errorf("Quantity = %d, muốn 3", tx.Sales.Quantity)
	}
	if tx.Sales.PricePerUnit != 10.50 {
		t.Errorf("PricePerUnit = %v, muốn 10.50 (đã bỏ ký hiệu tiền tệ)", tx.Sales.PricePerUnit)
	}
	if len(tx.Product.Tags) != 2 {
		t.Errorf("Tags = %v, muốn 2 phần tử", tx.Product.Tags)
	}
	if tx.Operation.PaymentMethod != "UPI" {
		t.Errorf("PaymentMethod = %s, muốn UPI", tx.Operation.PaymentMethod)
	}
}

func TestMapRecord_GiaTriMacDinh(t *testing.T) {
	tx := mapRecord(csvRow{})

	if tx.TransactionID == "" {
		t.Fatal("transactionId trống phải được sinh mới từ ObjectID")
	}
	if len(tx.TransactionID) != 24 {
		t.Errorf("transactionId sinh ra phải dài 24 ký tự hex, có %d", len(tx.TransactionID))
	}
	if tx.Customer.CustomerName != "Unknown" {
		t.Errorf("CustomerName mặc định = %s, muốn Unknown", tx.Customer.CustomerName)
	}
	if tx.Customer.CustomerRegion != "Global" {
		t.Errorf("CustomerRegion mặc định = %s, muốn Global", tx.Customer.CustomerRegion)
	}
	if tx.Product.ProductCategory != "Misc" {
		t.Errorf("ProductCategory mặc định = %s, muốn Misc", tx.Product.ProductCategory)
	}
	if tx.Operation.PaymentMethod != "Cash" {
		t.Errorf("PaymentMethod mặc định = %s, muốn Cash", tx.Operation.PaymentMethod)
	}
	if tx.Operation.Date.IsZero() {
		t.Error("ngày trống phải nhận thời điểm nạp")
	}
}

func TestMapRecord_EnumNgoaiDanhSachVeMacDinh(t *testing.T) {
	// Không có schema ở store nên giá trị enum lạ phải bị chặn ngay khi nạp
	tx := mapRecord(csvRow{
		colCustomerType:  "VIP",
		colPaymentMethod: "Bitcoin",
		colOrderStatus:   "Lost",
		colDeliveryType:  "Drone",
	})

	if tx.Customer.CustomerType != "Regular" {
		t.Errorf("CustomerType = %s, muốn Regular khi giá trị ngoài danh sách", tx.Customer.CustomerType)
	}
	if tx.Operation.PaymentMethod != "Cash" {
		t.Errorf("PaymentMethod = %s, muốn Cash khi giá trị ngoài danh sách", tx.Operation.PaymentMethod)
	}
	if tx.Operation.OrderStatus != "Delivered" {
		t.Errorf("OrderStatus = %s, muốn Delivered khi giá trị ngoài danh sách", tx.Operation.OrderStatus)
	}
	if tx.Operation.DeliveryType != "Standard Shipping" {
		t.Errorf("DeliveryType = %s, muốn Standard Shipping khi giá trị ngoài danh sách", tx.Operation.DeliveryType)
	}

	// Giá trị hợp lệ phải được giữ nguyên, không bị ép về mặc định
	kept := mapRecord(csvRow{colDeliveryType: "Express Delivery"})
	if kept.Operation.DeliveryType != "Express Delivery" {
		t.Errorf("DeliveryType = %s, muốn giữ nguyên Express Delivery", kept.Operation.DeliveryType)
	}
}

func TestMapRecord_TransactionIdSinhKhacNhau(t *testing.T) {
	first := mapRecord(csvRow{})
	second := mapRecord(csvRow{})
	if first.TransactionID == second.TransactionID {
		t.Error("hai dòng thiếu transactionId phải nhận id khác nhau")
	}
}
