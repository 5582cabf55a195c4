// Package salesdto chứa các DTO vào/ra cho API giao dịch bán hàng.
package salesdto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/service"
	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
)

// ===========================================
// DTO TẠO MỚI
// ===========================================

// CustomerInput là thông tin khách hàng từ request.
type CustomerInput struct {
	CustomerID     string `json:"customerId" validate:"required,max=64"`
	CustomerName   string `json:"customerName" validate:"required,max=200,no_xss"`
	PhoneNumber    string `json:"phoneNumber" validate:"omitempty,max=32"`
	Gender         string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Age            int    `json:"age" validate:"omitempty,gte=18,lte=120"`
	CustomerRegion string `json:"customerRegion" validate:"required,max=100,no_xss"`
	CustomerType   string `json:"customerType" validate:"omitempty,oneof=Regular New Wholesale Online Loyal Returning"`
}

// ProductInput là thông tin sản phẩm từ request.
type ProductInput struct {
	ProductID       string   `json:"productId" validate:"required,max=64"`
	ProductName     string   `json:"productName" validate:"required,max=200,no_xss"`
	Brand           string   `json:"brand" validate:"omitempty,max=200,no_xss"`
	ProductCategory string   `json:"productCategory" validate:"required,max=200,no_xss"`
	Tags            []string `json:"tags" validate:"omitempty,dive,max=100"`
}

// SalesInput là thông tin giá trị giao dịch từ request.
type SalesInput struct {
	Quantity           int64   `json:"quantity" validate:"required,gte=1"`
	PricePerUnit       float64 `json:"pricePerUnit" validate:"gte=0"`
	DiscountPercentage float64 `json:"discountPercentage" validate:"gte=0,lte=100"`
	TotalAmount        float64 `json:"totalAmount" validate:"gte=0"`
	FinalAmount        float64 `json:"finalAmount" validate:"gte=0"`
}

// OperationInput là thông tin vận hành giao dịch từ request.
type OperationInput struct {
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod" validate:"omitempty,oneof='Credit Card' Cash UPI 'Net Banking' Wallet 'Debit Card'"`
	OrderStatus   string    `json:"orderStatus" validate:"omitempty,oneof=Pending Processing Shipped Delivered Cancelled Returned Completed"`
	DeliveryType  string    `json:"deliveryType" validate:"omitempty,oneof='Standard Shipping' 'Express Delivery' 'In-Store Pickup' Standard Express 'Store Pickup'"`
	StoreID       string    `json:"storeId" validate:"omitempty,max=64"`
	StoreLocation string    `json:"storeLocation" validate:"omitempty,max=200,no_xss"`
	SalespersonID string    `json:"salespersonId" validate:"omitempty,max=64"`
	EmployeeName  string    `json:"employeeName" validate:"omitempty,max=200,no_xss"`
}

// SaleTransactionCreateInput là dữ liệu tạo mới một giao dịch bán hàng.
type SaleTransactionCreateInput struct {
	TransactionID string         `json:"transactionId" validate:"omitempty,max=64"`
	Customer      CustomerInput  `json:"customer" validate:"required"`
	Product       ProductInput   `json:"product" validate:"required"`
	Sales         SalesInput     `json:"sales" validate:"required"`
	Operation     OperationInput `json:"operation" validate:"required"`
}

// toCustomerInfo chuyển thông tin khách hàng sang model, áp dụng giá trị mặc định.
func (input *CustomerInput) toCustomerInfo() salesmodels.CustomerInfo {
	customerType := input.CustomerType
	if customerType == "" {
		customerType = salesmodels.DefaultCustomerType
	}
	return salesmodels.CustomerInfo{
		CustomerID:     input.CustomerID,
		CustomerName:   input.CustomerName,
		PhoneNumber:    input.PhoneNumber,
		Gender:         input.Gender,
		Age:            input.Age,
		CustomerRegion: input.CustomerRegion,
		CustomerType:   customerType,
	}
}

// toProductInfo chuyển thông tin sản phẩm sang model.
func (input *ProductInput) toProductInfo() salesmodels.ProductInfo {
	return salesmodels.ProductInfo{
		ProductID:       input.ProductID,
		ProductName:     input.ProductName,
		Brand:           input.Brand,
		ProductCategory: input.ProductCategory,
		Tags:            input.Tags,
	}
}

// toSalesInfo chuyển thông tin giá trị sang model.
func (input *SalesInput) toSalesInfo() salesmodels.SalesInfo {
	return salesmodels.SalesInfo{
		Quantity:           input.Quantity,
		PricePerUnit:       input.PricePerUnit,
		DiscountPercentage: input.DiscountPercentage,
		TotalAmount:        input.TotalAmount,
		FinalAmount:        input.FinalAmount,
	}
}

// toOperationInfo chuyển thông tin vận hành sang model, áp dụng giá trị mặc định.
// Ngày trống nhận thời điểm hiện tại.
func (input *OperationInput) toOperationInfo() salesmodels.OperationInfo {
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = salesmodels.DefaultPaymentMethod
	}
	orderStatus := input.OrderStatus
	if orderStatus == "" {
		orderStatus = salesmodels.DefaultOrderStatus
	}
	deliveryType := input.DeliveryType
	if deliveryType == "" {
		deliveryType = salesmodels.DefaultDeliveryType
	}
	return salesmodels.OperationInfo{
		Date:          date,
		PaymentMethod: paymentMethod,
		OrderStatus:   orderStatus,
		DeliveryType:  deliveryType,
		StoreID:       input.StoreID,
		StoreLocation: input.StoreLocation,
		SalespersonID: input.SalespersonID,
		EmployeeName:  input.EmployeeName,
	}
}

// ToModel chuyển DTO tạo mới thành model để ghi vào MongoDB.
// transactionId trống được sinh mới từ ObjectID để đảm bảo tính duy nhất.
func (input *SaleTransactionCreateInput) ToModel() (salesmodels.SaleTransaction, error) {
	transactionID := input.TransactionID
	if transactionID == "" {
		transactionID = primitive.NewObjectID().Hex()
	}

	return salesmodels.SaleTransaction{
		TransactionID: transactionID,
		Customer:      input.Customer.toCustomerInfo(),
		Product:       input.Product.toProductInfo(),
		Sales:         input.Sales.toSalesInfo(),
		Operation:     input.Operation.toOperationInfo(),
	}, nil
}

// ===========================================
// DTO CẬP NHẬT
// ===========================================

// SaleTransactionUpdateInput là dữ liệu cập nhật một giao dịch.
// Chỉ các phần được gửi lên mới bị ghi đè; sub-document gửi lên thay thế
// toàn bộ sub-document cũ.
type SaleTransactionUpdateInput struct {
	TransactionID *string         `json:"transactionId" validate:"omitempty,max=64"`
	Customer      *CustomerInput  `json:"customer"`
	Product       *ProductInput   `json:"product"`
	Sales         *SalesInput     `json:"sales"`
	Operation     *OperationInput `json:"operation"`
}

// ToUpdateData chuyển DTO cập nhật thành UpdateData, chỉ gồm các phần có mặt.
func (input *SaleTransactionUpdateInput) ToUpdateData() (basesvc.UpdateData, error) {
	set := map[string]interface{}{}

	if input.TransactionID != nil {
		set["transactionId"] = *input.TransactionID
	}
	if input.Customer != nil {
		set["customer"] = input.Customer.toCustomerInfo()
	}
	if input.Product != nil {
		set["product"] = input.Product.toProductInfo()
	}
	if input.Sales != nil {
		set["sales"] = input.Sales.toSalesInfo()
	}
	if input.Operation != nil {
		set["operation"] = input.Operation.toOperationInfo()
	}

	set["updatedAt"] = time.Now().UnixMilli()

	return basesvc.UpdateData{Set: set}, nil
}
