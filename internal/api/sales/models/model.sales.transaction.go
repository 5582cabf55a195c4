// Package salesmodels chứa model MongoDB cho domain bán hàng.
package salesmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ===========================================
// CÁC GIÁ TRỊ ENUM
// ===========================================

// Các loại khách hàng hợp lệ.
var CustomerTypes = []string{"Regular", "New", "Wholesale", "Online", "Loyal", "Returning"}

// Các phương thức thanh toán hợp lệ.
var PaymentMethods = []string{"Credit Card", "Cash", "UPI", "Net Banking", "Wallet", "Debit Card"}

// Các trạng thái đơn hàng hợp lệ.
var OrderStatuses = []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled", "Returned", "Completed"}

// Các hình thức giao hàng hợp lệ.
var DeliveryTypes = []string{"Standard Shipping", "Express Delivery", "In-Store Pickup", "Standard", "Express", "Store Pickup"}

// Giá trị mặc định khi dữ liệu đầu vào không chỉ định.
const (
	DefaultCustomerType  = "Regular"
	DefaultPaymentMethod = "Credit Card"
	DefaultOrderStatus   = "Pending"
	DefaultDeliveryType  = "Standard Shipping"
)

// ===========================================
// MODEL GIAO DỊCH BÁN HÀNG
// ===========================================

// CustomerInfo là thông tin khách hàng gắn với một giao dịch.
type CustomerInfo struct {
	CustomerID     string `json:"customerId" bson:"customerId"`
	CustomerName   string `json:"customerName" bson:"customerName" index:"single"`
	PhoneNumber    string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty" index:"single"`
	Gender         string `json:"gender,omitempty" bson:"gender,omitempty" index:"single"`
	Age            int    `json:"age,omitempty" bson:"age,omitempty"`
	CustomerRegion string `json:"customerRegion" bson:"customerRegion" index:"single"`
	CustomerType   string `json:"customerType,omitempty" bson:"customerType,omitempty"`
}

// ProductInfo là thông tin sản phẩm của giao dịch.
type ProductInfo struct {
	ProductID       string   `json:"productId" bson:"productId"`
	ProductName     string   `json:"productName" bson:"productName" index:"single"`
	Brand           string   `json:"brand,omitempty" bson:"brand,omitempty" index:"single"`
	ProductCategory string   `json:"productCategory" bson:"productCategory" index:"single"`
	Tags            []string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// SalesInfo là thông tin giá trị của giao dịch.
// finalAmount là số tiền thực thu sau giảm giá.
type SalesInfo struct {
	Quantity           int64   `json:"quantity" bson:"quantity"`
	PricePerUnit       float64 `json:"pricePerUnit" bson:"pricePerUnit"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty" bson:"discountPercentage,omitempty"`
	TotalAmount        float64 `json:"totalAmount" bson:"totalAmount"`
	FinalAmount        float64 `json:"finalAmount" bson:"finalAmount" index:"single"`
}

// OperationInfo là thông tin vận hành của giao dịch (thời gian, thanh toán, cửa hàng).
type OperationInfo struct {
	Date          time.Time `json:"date" bson:"date" index:"single,order:-1"`
	PaymentMethod string    `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	OrderStatus   string    `json:"orderStatus,omitempty" bson:"orderStatus,omitempty"`
	DeliveryType  string    `json:"deliveryType,omitempty" bson:"deliveryType,omitempty"`
	StoreID       string    `json:"storeId,omitempty" bson:"storeId,omitempty"`
	StoreLocation string    `json:"storeLocation,omitempty" bson:"storeLocation,omitempty" index:"single"`
	SalespersonID string    `json:"salespersonId,omitempty" bson:"salespersonId,omitempty"`
	EmployeeName  string    `json:"employeeName,omitempty" bson:"employeeName,omitempty"`
}

// SaleTransaction là một giao dịch bán hàng trong collection sale_transactions.
type SaleTransaction struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TransactionID string             `json:"transactionId" bson:"transactionId" index:"unique"`
	Customer      CustomerInfo       `json:"customer" bson:"customer"`
	Product       ProductInfo        `json:"product" bson:"product"`
	Sales         SalesInfo          `json:"sales" bson:"sales"`
	Operation     OperationInfo      `json:"operation" bson:"operation"`
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Unix millisecond
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Unix millisecond
}

// SummaryTotals là kết quả tổng hợp trên tập giao dịch khớp điều kiện lọc.
type SummaryTotals struct {
	TotalUnits    int64   `json:"totalUnits" bson:"totalUnits"`       // Tổng số lượng sản phẩm bán ra
	TotalAmount   float64 `json:"totalAmount" bson:"totalAmount"`     // Tổng tiền thực thu
	TotalDiscount float64 `json:"totalDiscount" bson:"totalDiscount"` // Tổng tiền giảm giá
	TotalRecords  int64   `json:"totalRecords" bson:"totalRecords"`   // Tổng số giao dịch
}
