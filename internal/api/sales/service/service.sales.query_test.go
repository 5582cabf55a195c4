// Package salessvc - Test parse filter và dựng điều kiện truy vấn MongoDB.
package salessvc

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
)

// errorCodeOf trích mã lỗi từ error của hệ thống.
func errorCodeOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi không phải *common.Error: %v", err)
	}
	return appErr.Code.Code
}

// ===========================================
// PARSE FILTER
// ===========================================

func TestParseFilterParam_ChuoiRong(t *testing.T) {
	filters, err := ParseFilterParam("")
	if err != nil {
		t.Fatalf("chuỗi rỗng không được lỗi: %v", err)
	}
	if len(filters) != 0 {
		t.Errorf("chuỗi rỗng phải cho map rỗng, có %d phần tử", len(filters))
	}
}

func TestParseFilterParam_JSONSaiCuPhap(t *testing.T) {
	_, err := ParseFilterParam(`{"customer.gender": "Male`)
	if err == nil {
		t.Fatal("JSON sai cú pháp phải trả lỗi")
	}
	if code := errorCodeOf(t, err); code != common.ErrCodeFilterSyntax.Code {
		t.Errorf("mã lỗi = %s, muốn %s", code, common.ErrCodeFilterSyntax.Code)
	}
}

func TestParseFilterParam_TruongKhongChoPhep(t *testing.T) {
	_, err := ParseFilterParam(`{"secret.field": "x"}`)
	if err == nil {
		t.Fatal("trường ngoài danh sách cho phép phải bị từ chối")
	}
	if code := errorCodeOf(t, err); code != common.ErrCodeFilterField.Code {
		t.Errorf("mã lỗi = %s, muốn %s", code, common.ErrCodeFilterField.Code)
	}
}

func TestParseFilterParam_MangThanhDiscreteSet(t *testing.T) {
	filters, err := ParseFilterParam(`{"product.tags": ["organic", "bestseller"]}`)
	if err != nil {
		t.Fatalf("parse thất bại: %v", err)
	}

	fv, ok := filters["product.tags"]
	if !ok {
		t.Fatal("thiếu điều kiện lọc product.tags")
	}
	if fv.Kind != FilterDiscreteSet {
		t.Errorf("Kind = %v, muốn FilterDiscreteSet", fv.Kind)
	}
	if len(fv.Set) != 2 {
		t.Errorf("Set có %d phần tử, muốn 2", len(fv.Set))
	}
}

func TestParseFilterParam_MangRongBoQua(t *testing.T) {
	filters, err := ParseFilterParam(`{"product.tags": [], "customer.gender": "Male"}`)
	if err != nil {
		t.Fatalf("parse thất bại: %v", err)
	}
	if _, ok := filters["product.tags"]; ok {
		t.Error("mảng rỗng phải bị bỏ qua")
	}
	if _, ok := filters["customer.gender"]; !ok {
		t.Error("điều kiện hợp lệ trong cùng filter phải được giữ lại")
	}
}

func TestParseFilterParam_ObjectThanhRange(t *testing.T) {
	filters, err := ParseFilterParam(`{"customer.age": {"gte": 25, "lte": 40}}`)
	if err != nil {
		t.Fatalf("parse thất bại: %v", err)
	}

	fv := filters["customer.age"]
	if fv.Kind != FilterRange {
		t.Fatalf("Kind = %v, muốn FilterRange", fv.Kind)
	}
	if fv.Min == nil || fv.Max == nil {
		t.Errorf("range phải có đủ hai cận: min=%v max=%v", fv.Min, fv.Max)
	}
}

func TestParseFilterParam_RangeMotCan(t *testing.T) {
	filters, err := ParseFilterParam(`{"sales.finalAmount": {"$gte": 100}}`)
	if err != nil {
		t.Fatalf("parse thất bại: %v", err)
	}

	fv := filters["sales.finalAmount"]
	if fv.Kind != FilterRange {
		t.Fatalf("Kind = %v, muốn FilterRange", fv.Kind)
	}
	if fv.Min == nil {
		t.Error("thiếu cận dưới khi client gửi $gte")
	}
	if fv.Max != nil {
		t.Errorf("cận trên phải nil, có %v", fv.Max)
	}
}

func TestParseFilterParam_ObjectRongBoQua(t *testing.T) {
	filters, err := ParseFilterParam(`{"customer.age": {}}`)
	if err != nil {
		t.Fatalf("parse thất bại: %v", err)
	}
	if len(filters) != 0 {
		t.Error("object không có cận nào phải bị bỏ qua")
	}
}

func TestParseFilterParam_GiaTriDon(t *testing.T) {
	filters, err := ParseFilterParam(`{"operation.orderStatus": "Delivered"}`)
	if err != nil {
		t.Fatalf("parse thất bại: %v", err)
	}

	fv := filters["operation.orderStatus"]
	if fv.Kind != FilterScalar {
		t.Fatalf("Kind = %v, muốn FilterScalar", fv.Kind)
	}
	if fv.Value != "Delivered" {
		t.Errorf("Value = %v, muốn Delivered", fv.Value)
	}
}

func TestParseFilterParam_NgayThanhTime(t *testing.T) {
	filters, err := ParseFilterParam(`{"operation.date": {"gte": "2024-01-01", "lte": "2024-12-31T23:59:59Z"}}`)
	if err != nil {
		t.Fatalf("parse thất bại: %v", err)
	}

	fv := filters["operation.date"]
	minTime, ok := fv.Min.(time.Time)
	if !ok {
		t.Fatalf("cận dưới của operation.date phải là time.Time, có %T", fv.Min)
	}
	if minTime.Year() != 2024 || minTime.Month() != time.January {
		t.Errorf("cận dưới = %v, muốn 2024-01-01", minTime)
	}
	if _, ok := fv.Max.(time.Time); !ok {
		t.Fatalf("cận trên của operation.date phải là time.Time, có %T", fv.Max)
	}
}

func TestParseFilterParam_NgaySaiDinhDang(t *testing.T) {
	_, err := ParseFilterParam(`{"operation.date": "không phải ngày"}`)
	if err == nil {
		t.Fatal("giá trị ngày sai định dạng phải trả lỗi")
	}
	if code := errorCodeOf(t, err); code != common.ErrCodeFilterSyntax.Code {
		t.Errorf("mã lỗi = %s, muốn %s", code, common.ErrCodeFilterSyntax.Code)
	}
}

// ===========================================
// DỰNG PREDICATE
// ===========================================

func TestBuildPredicate_KhongDieuKien(t *testing.T) {
	predicate := BuildPredicate("", nil)
	if len(predicate) != 0 {
		t.Errorf("không có điều kiện phải cho predicate match-all, có %v", predicate)
	}
}

func TestBuildPredicate_TimKiem(t *testing.T) {
	predicate := BuildPredicate("Nguyễn", nil)

	or, ok := predicate["$or"].(bson.A)
	if !ok {
		t.Fatalf("thiếu $or trong predicate: %v", predicate)
	}
	if len(or) != 2 {
		t.Fatalf("$or phải có 2 nhánh (tên và số điện thoại), có %d", len(or))
	}

	first, ok := or[0].(bson.M)
	if !ok {
		t.Fatalf("nhánh $or không phải bson.M: %T", or[0])
	}
	pattern, ok := first["customer.customerName"].(primitive.Regex)
	if !ok {
		t.Fatalf("điều kiện tìm kiếm phải là regex, có %T", first["customer.customerName"])
	}
	if pattern.Options != "i" {
		t.Errorf("regex phải không phân biệt hoa thường, options = %q", pattern.Options)
	}
}

func TestBuildPredicate_TimKiemEscapeRegex(t *testing.T) {
	predicate := BuildPredicate("0912(34)", nil)

	or := predicate["$or"].(bson.A)
	pattern := or[0].(bson.M)["customer.customerName"].(primitive.Regex)
	if pattern.Pattern == "0912(34)" {
		t.Error("ký tự đặc biệt của regex trong chuỗi tìm kiếm phải được escape")
	}
}

func TestBuildPredicate_DiscreteSetThanhIn(t *testing.T) {
	filters := map[string]FilterValue{
		"product.tags": {Kind: FilterDiscreteSet, Set: []interface{}{"organic", "bestseller"}},
	}
	predicate := BuildPredicate("", filters)

	cond, ok := predicate["product.tags"].(bson.M)
	if !ok {
		t.Fatalf("điều kiện tags không phải bson.M: %v", predicate["product.tags"])
	}
	in, ok := cond["$in"].([]interface{})
	if !ok {
		t.Fatalf("điều kiện tags phải dùng $in: %v", cond)
	}
	if len(in) != 2 {
		t.Errorf("$in có %d phần tử, muốn 2", len(in))
	}
}

func TestBuildPredicate_RangeThanhGteLte(t *testing.T) {
	filters := map[string]FilterValue{
		"customer.age": {Kind: FilterRange, Min: float64(25), Max: float64(40)},
	}
	predicate := BuildPredicate("", filters)

	cond := predicate["customer.age"].(bson.M)
	if cond["$gte"] != float64(25) {
		t.Errorf("$gte = %v, muốn 25", cond["$gte"])
	}
	if cond["$lte"] != float64(40) {
		t.Errorf("$lte = %v, muốn 40", cond["$lte"])
	}
}

func TestBuildPredicate_RangeThieuMotCan(t *testing.T) {
	filters := map[string]FilterValue{
		"sales.finalAmount": {Kind: FilterRange, Min: float64(100)},
	}
	predicate := BuildPredicate("", filters)

	cond := predicate["sales.finalAmount"].(bson.M)
	if _, ok := cond["$lte"]; ok {
		t.Error("không được thêm $lte khi client không gửi cận trên")
	}
	if cond["$gte"] != float64(100) {
		t.Errorf("$gte = %v, muốn 100", cond["$gte"])
	}
}

func TestBuildPredicate_ScalarThanhBang(t *testing.T) {
	filters := map[string]FilterValue{
		"customer.gender": {Kind: FilterScalar, Value: "Female"},
	}
	predicate := BuildPredicate("", filters)

	if predicate["customer.gender"] != "Female" {
		t.Errorf("điều kiện scalar phải so khớp bằng: %v", predicate["customer.gender"])
	}
}

func TestBuildPredicate_KhongDoiInput(t *testing.T) {
	filters := map[string]FilterValue{
		"customer.gender": {Kind: FilterScalar, Value: "Male"},
	}
	_ = BuildPredicate("abc", filters)
	_ = BuildPredicate("abc", filters)

	if len(filters) != 1 {
		t.Error("BuildPredicate không được thay đổi map filter đầu vào")
	}
	if filters["customer.gender"].Value != "Male" {
		t.Error("BuildPredicate không được thay đổi giá trị filter đầu vào")
	}
}

// ===========================================
// SORT VÀ PIPELINE TỔNG HỢP
// ===========================================

func TestBuildSort_MacDinh(t *testing.T) {
	sort := BuildSort("", 0)

	if len(sort) != 1 {
		t.Fatalf("sort phải có đúng 1 trường, có %d", len(sort))
	}
	if sort[0].Key != "operation.date" {
		t.Errorf("trường sort mặc định = %s, muốn operation.date", sort[0].Key)
	}
	if sort[0].Value != -1 {
		t.Errorf("thứ tự sort mặc định = %v, muốn -1 (mới nhất trước)", sort[0].Value)
	}
}

func TestBuildSort_TruongKhongChoPhepRoiVeMacDinh(t *testing.T) {
	sort := BuildSort("secret.field", 1)
	if sort[0].Key != "operation.date" || sort[0].Value != -1 {
		t.Errorf("trường không cho phép phải rơi về mặc định, có %v", sort)
	}
}

func TestBuildSort_TuyChinh(t *testing.T) {
	sort := BuildSort("sales.finalAmount", 1)
	if sort[0].Key != "sales.finalAmount" || sort[0].Value != 1 {
		t.Errorf("sort = %v, muốn sales.finalAmount tăng dần", sort)
	}
}

func TestBuildSummaryPipeline_CauTruc(t *testing.T) {
	predicate := BuildPredicate("abc", nil)
	pipeline := buildSummaryPipeline(predicate)

	if len(pipeline) != 2 {
		t.Fatalf("pipeline phải có 2 stage ($match, $group), có %d", len(pipeline))
	}
	if pipeline[0][0].Key != "$match" {
		t.Errorf("stage đầu = %s, muốn $match", pipeline[0][0].Key)
	}
	if pipeline[1][0].Key != "$group" {
		t.Errorf("stage hai = %s, muốn $group", pipeline[1][0].Key)
	}

	group, ok := pipeline[1][0].Value.(bson.M)
	if !ok {
		t.Fatalf("$group không phải bson.M: %T", pipeline[1][0].Value)
	}
	for _, field := range []string{"totalUnits", "totalAmount", "totalDiscount", "totalRecords"} {
		if _, ok := group[field]; !ok {
			t.Errorf("$group thiếu trường %s", field)
		}
	}
	if group["_id"] != nil {
		t.Errorf("_id của $group phải là nil (gom về một nhóm duy nhất), có %v", group["_id"])
	}
}
