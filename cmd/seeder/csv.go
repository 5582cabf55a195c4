package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
)

// Tên cột CSV của bộ dữ liệu bán hàng. Cột thiếu trong file sẽ nhận giá trị mặc định.
const (
	colTransactionID      = "Transaction ID"
	colCustomerID         = "Customer ID"
	colCustomerName       = "Customer Name"
	colPhoneNumber        = "Phone Number"
	colGender             = "Gender"
	colAge                = "Age"
	colCustomerRegion     = "Customer Region"
	colCustomerType       = "Customer Type"
	colProductID          = "Product ID"
	colProductName        = "Product Name"
	colBrand              = "Brand"
	colProductCategory    = "Product Category"
	colTags               = "Tags"
	colQuantity           = "Quantity"
	colPricePerUnit       = "Price per Unit"
	colDiscountPercentage = "Discount Percentage"
	colTotalAmount        = "Total Amount"
	colFinalAmount        = "Final Amount"
	colDate               = "Date"
	colPaymentMethod      = "Payment Method"
	colOrderStatus        = "Order Status"
	colDeliveryType       = "Delivery Type"
	colStoreID            = "Store ID"
	colStoreLocation      = "Store Location"
	colSalespersonID      = "Salesperson ID"
	colEmployeeName       = "Employee Name"
)

// nonNumericPattern khớp mọi ký tự không thuộc về một số thập phân.
var nonNumericPattern = regexp.MustCompile(`[^0-9.\-]+`)

// cleanNumber đọc giá trị số từ CSV, bỏ qua các ký tự định dạng (tiền tệ,
// dấu phân cách hàng nghìn). Giá trị không đọc được trả về 0.
func cleanNumber(value string) float64 {
	if value == "" {
		return 0
	}
	cleaned := nonNumericPattern.ReplaceAllString(value, "")
	number, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return number
}

// Các layout ngày tháng chấp nhận trong cột Date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// parseDate đọc ngày từ CSV; giá trị không đọc được nhận thời điểm hiện tại.
func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}

// parseTags tách danh sách tag ngăn cách bởi dấu phẩy, bỏ khoảng trắng thừa.
func parseTags(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// pickEnum trả về value nếu nằm trong danh sách cho phép, ngược lại trả về
// fallback. Không có tầng schema ở store nên phải giữ vocabulary tại đây.
func pickEnum(value string, allowed []string, fallback string) string {
	for _, v := range allowed {
		if value == v {
			return value
		}
	}
	return fallback
}

// csvRow là một dòng CSV đã ghép với header.
type csvRow map[string]string

// get trả về giá trị của cột, hoặc fallback nếu cột trống / không tồn tại.
func (r csvRow) get(col string, fallback string) string {
	if v := strings.TrimSpace(r[col]); v != "" {
		return v
	}
	return fallback
}

// mapRecord chuyển một dòng CSV thành model giao dịch.
// transactionId trống được sinh mới từ ObjectID để không vi phạm index unique.
func mapRecord(row csvRow) salesmodels.SaleTransaction {
	transactionID := row.get(colTransactionID, "")
	if transactionID == "" {
		transactionID = primitive.NewObjectID().Hex()
	}

	return salesmodels.SaleTransaction{
		TransactionID: transactionID,
		Customer: salesmodels.CustomerInfo{
			CustomerID:     row.get(colCustomerID, "N/A"),
			CustomerName:   row.get(colCustomerName, "Unknown"),
			PhoneNumber:    row.get(colPhoneNumber, ""),
			Gender:         row.get(colGender, "Other"),
			Age:            int(cleanNumber(row[colAge])),
			CustomerRegion: row.get(colCustomerRegion, "Global"),
			CustomerType:   pickEnum(row.get(colCustomerType, ""), salesmodels.CustomerTypes, salesmodels.DefaultCustomerType),
		},
		Product: salesmodels.ProductInfo{
			ProductID:       row.get(colProductID, "N/A"),
			ProductName:     row.get(colProductName, "Unknown Product"),
			Brand:           row.get(colBrand, "No Brand"),
			ProductCategory: row.get(colProductCategory, "Misc"),
			Tags:            parseTags(row[colTags]),
		},
		Sales: salesmodels.SalesInfo{
			Quantity:           int64(cleanNumber(row[colQuantity])),
			PricePerUnit:       cleanNumber(row[colPricePerUnit]),
			DiscountPercentage: cleanNumber(row[colDiscountPercentage]),
			TotalAmount:        cleanNumber(row[colTotalAmount]),
			FinalAmount:        cleanNumber(row[colFinalAmount]),
		},
		Operation: salesmodels.OperationInfo{
			Date:          parseDate(row.get(colDate, "")),
			PaymentMethod: pickEnum(row.get(colPaymentMethod, ""), salesmodels.PaymentMethods, "Cash"),
			OrderStatus:   pickEnum(row.get(colOrderStatus, ""), salesmodels.OrderStatuses, "Delivered"),
			DeliveryType:  pickEnum(row.get(colDeliveryType, ""), salesmodels.DeliveryTypes, salesmodels.DefaultDeliveryType),
			StoreID:       row.get(colStoreID, "000"),
			StoreLocation: row.get(colStoreLocation, "Central"),
			SalespersonID: row.get(colSalespersonID, "EMP000"),
			EmployeeName:  row.get(colEmployeeName, "Staff"),
		},
	}
}
