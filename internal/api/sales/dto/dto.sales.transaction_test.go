// Package salesdto - Test chuyển đổi DTO và các ràng buộc validate.
package salesdto

import (
	"testing"
	"time"

	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
	"github.com/mrmkp27/retail-sales-dashboard/internal/global"
)

// validCreateInput trả về một DTO tạo mới hợp lệ để các test biến đổi từng trường.
func validCreateInput() SaleTransactionCreateInput {
	return SaleTransactionCreateInput{
		TransactionID: "TX-0001",
		Customer: CustomerInput{
			CustomerID:     "C001",
			CustomerName:   "Trần Thị B",
			PhoneNumber:    "0912345678",
			Gender:         "Female",
			Age:            30,
			CustomerRegion: "North",
			CustomerType:   "Loyal",
		},
		Product: ProductInput{
			ProductID:       "P001",
			ProductName:     "Áo thun",
			Brand:           "NoName",
			ProductCategory: "Apparel",
			Tags:            []string{"organic", "bestseller"},
		},
		Sales: SalesInput{
			Quantity:           2,
			PricePerUnit:       150000,
			DiscountPercentage: 10,
			TotalAmount:        300000,
			FinalAmount:        270000,
		},
		Operation: OperationInput{
			Date:          time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			PaymentMethod: "Credit Card",
			OrderStatus:   "Delivered",
			DeliveryType:  "Standard Shipping",
			StoreID:       "S01",
			StoreLocation: "Hà Nội",
			SalespersonID: "EMP001",
			EmployeeName:  "Nguyễn Văn A",
		},
	}
}

func mustValidate(t *testing.T, input *SaleTransactionCreateInput) error {
	t.Helper()
	if global.Validate == nil {
		global.InitValidator()
	}
	return global.Validate.Struct(input)
}

// ===========================================
// TO MODEL
// ===========================================

func TestToModel_GiuNguyenDuLieu(t *testing.T) {
	input := validCreateInput()
	model, err := input.ToModel()
	if err != nil {
		t.Fatalf("ToModel thất bại: %v", err)
	}

	if model.TransactionID != "TX-0001" {
		t.Errorf("TransactionID = %s, muốn TX-0001", model.TransactionID)
	}
	if model.Customer.CustomerName != "Trần Thị B" {
		t.Errorf("CustomerName = %s", model.Customer.CustomerName)
	}
	if model.Sales.FinalAmount != 270000 {
		t.Errorf("FinalAmount = %v, muốn 270000", model.Sales.FinalAmount)
	}
	if !model.Operation.Date.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", model.Operation.Date)
	}
}

func TestToModel_SinhTransactionIdKhiTrong(t *testing.T) {
	input := validCreateInput()
	input.TransactionID = ""

	first, _ := input.ToModel()
	second, _ := input.ToModel()

	if first.TransactionID == "" {
		t.Fatal("transactionId trống phải được sinh mới")
	}
	if len(first.TransactionID) != 24 {
		t.Errorf("transactionId sinh từ ObjectID phải dài 24 ký tự hex, có %d", len(first.TransactionID))
	}
	if first.TransactionID == second.TransactionID {
		t.Error("mỗi lần sinh phải cho transactionId khác nhau")
	}
}

func TestToModel_ApDungGiaTriMacDinh(t *testing.T) {
	input := validCreateInput()
	input.Customer.CustomerType = ""
	input.Operation.PaymentMethod = ""
	input.Operation.OrderStatus = ""
	input.Operation.DeliveryType = ""
	input.Operation.Date = time.Time{}

	model, err := input.ToModel()
	if err != nil {
		t.Fatalf("ToModel thất bại: %v", err)
	}

	if model.Customer.CustomerType != salesmodels.DefaultCustomerType {
		t.Errorf("CustomerType = %s, muốn %s", model.Customer.CustomerType, salesmodels.DefaultCustomerType)
	}
	if model.Operation.PaymentMethod != salesmodels.DefaultPaymentMethod {
		t.Errorf("PaymentMethod = %s, muốn %s", model.Operation.PaymentMethod, salesmodels.DefaultPaymentMethod)
	}
	if model.Operation.OrderStatus != salesmodels.DefaultOrderStatus {
		t.Errorf("OrderStatus = %s, muốn %s", model.Operation.OrderStatus, salesmodels.DefaultOrderStatus)
	}
	if model.Operation.DeliveryType != salesmodels.DefaultDeliveryType {
		t.Errorf("DeliveryType = %s, muốn %s", model.Operation.DeliveryType, salesmodels.DefaultDeliveryType)
	}
	if model.Operation.Date.IsZero() {
		t.Error("ngày trống phải nhận thời điểm nạp")
	}
}

// ===========================================
// VALIDATE
// ===========================================

func TestValidate_InputHopLe(t *testing.T) {
	input := validCreateInput()
	if err := mustValidate(t, &input); err != nil {
		t.Errorf("input hợp lệ không được lỗi validate: %v", err)
	}
}

func TestValidate_TuoiDuoiNguong(t *testing.T) {
	input := validCreateInput()
	input.Customer.Age = 17
	if err := mustValidate(t, &input); err == nil {
		t.Error("tuổi 17 phải bị từ chối (ngưỡng dưới là 18)")
	}

	input.Customer.Age = 18
	if err := mustValidate(t, &input); err != nil {
		t.Errorf("tuổi 18 phải hợp lệ: %v", err)
	}

	input.Customer.Age = 121
	if err := mustValidate(t, &input); err == nil {
		t.Error("tuổi 121 phải bị từ chối (ngưỡng trên là 120)")
	}
}

func TestValidate_SoLuongBangKhong(t *testing.T) {
	input := validCreateInput()
	input.Sales.Quantity = 0
	if err := mustValidate(t, &input); err == nil {
		t.Error("số lượng 0 phải bị từ chối")
	}
}

func TestValidate_PhuongThucThanhToanNgoaiDanhSach(t *testing.T) {
	input := validCreateInput()
	input.Operation.PaymentMethod = "Bitcoin"
	if err := mustValidate(t, &input); err == nil {
		t.Error("phương thức thanh toán ngoài danh sách phải bị từ chối")
	}

	// Giá trị nhiều từ trong danh sách phải hợp lệ
	input.Operation.PaymentMethod = "Net Banking"
	if err := mustValidate(t, &input); err != nil {
		t.Errorf("'Net Banking' phải hợp lệ: %v", err)
	}
}

func TestValidate_ThieuTenKhachHang(t *testing.T) {
	input := validCreateInput()
	input.Customer.CustomerName = ""
	if err := mustValidate(t, &input); err == nil {
		t.Error("thiếu tên khách hàng phải bị từ chối")
	}
}

func TestValidate_ChanXSS(t *testing.T) {
	input := validCreateInput()
	input.Customer.CustomerName = "<script>alert(1)</script>"
	if err := mustValidate(t, &input); err == nil {
		t.Error("tên chứa mã script phải bị từ chối bởi no_xss")
	}
}

// ===========================================
// TO UPDATE DATA
// ===========================================

func TestToUpdateData_ChiGomPhanCoMat(t *testing.T) {
	newStatus := "Cancelled"
	input := SaleTransactionUpdateInput{
		Operation: &OperationInput{
			Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			OrderStatus: newStatus,
		},
	}

	data, err := input.ToUpdateData()
	if err != nil {
		t.Fatalf("ToUpdateData thất bại: %v", err)
	}

	if _, ok := data.Set["customer"]; ok {
		t.Error("customer không được gửi lên thì không được ghi đè")
	}
	if _, ok := data.Set["operation"]; !ok {
		t.Fatal("operation được gửi lên phải có trong $set")
	}
	if _, ok := data.Set["updatedAt"]; !ok {
		t.Error("mọi cập nhật phải gắn updatedAt")
	}

	op, ok := data.Set["operation"].(salesmodels.OperationInfo)
	if !ok {
		t.Fatalf("operation trong $set phải là model, có %T", data.Set["operation"])
	}
	if op.OrderStatus != newStatus {
		t.Errorf("OrderStatus = %s, muốn %s", op.OrderStatus, newStatus)
	}
}

func TestToUpdateData_SubDocumentNhanMacDinh(t *testing.T) {
	// Sub-document gửi lên thay thế toàn bộ, các enum trống nhận mặc định
	input := SaleTransactionUpdateInput{
		Operation: &OperationInput{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	data, err := input.ToUpdateData()
	if err != nil {
		t.Fatalf("ToUpdateData thất bại: %v", err)
	}

	op := data.Set["operation"].(salesmodels.OperationInfo)
	if op.PaymentMethod != salesmodels.DefaultPaymentMethod {
		t.Errorf("PaymentMethod = %s, muốn mặc định %s", op.PaymentMethod, salesmodels.DefaultPaymentMethod)
	}
}
