// Package salessvc chứa tầng service cho domain bán hàng.
package salessvc

import (
	"encoding/json"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
)

// ===========================================
// KIỂU DỮ LIỆU TRUY VẤN
// ===========================================

// FilterKind phân loại giá trị lọc theo hình dạng JSON mà client gửi lên.
type FilterKind int

const (
	FilterScalar      FilterKind = iota // Giá trị đơn => so khớp bằng
	FilterDiscreteSet                   // Mảng giá trị => $in
	FilterRange                         // Object {min, max} => $gte / $lte
)

// FilterValue là một điều kiện lọc trên một trường.
type FilterValue struct {
	Kind  FilterKind
	Value interface{}   // Dùng cho FilterScalar
	Set   []interface{} // Dùng cho FilterDiscreteSet
	Min   interface{}   // Cận dưới của FilterRange, nil nếu không có
	Max   interface{}   // Cận trên của FilterRange, nil nếu không có
}

// QuerySpec mô tả đầy đủ một truy vấn danh sách giao dịch.
type QuerySpec struct {
	Search    string                 // Chuỗi tìm kiếm theo tên / số điện thoại khách hàng
	Filters   map[string]FilterValue // Điều kiện lọc theo trường
	Page      int64                  // Trang hiện tại, bắt đầu từ 1
	Limit     int64                  // Số document mỗi trang
	SortField string                 // Trường sắp xếp, trống => mặc định operation.date
	SortOrder int                    // 1 tăng dần, -1 giảm dần
}

// allowedFilterFields là danh sách các đường dẫn trường được phép lọc và sắp xếp.
// Filter chứa trường ngoài danh sách này bị từ chối với mã VAL_004.
var allowedFilterFields = map[string]bool{
	"transactionId":           true,
	"customer.customerId":     true,
	"customer.customerName":   true,
	"customer.phoneNumber":    true,
	"customer.gender":         true,
	"customer.age":            true,
	"customer.customerRegion": true,
	"customer.customerType":   true,
	"product.productName":     true,
	"product.productCategory": true,
	"product.brand":           true,
	"product.tags":            true,
	"sales.quantity":          true,
	"sales.finalAmount":       true,
	"operation.date":          true,
	"operation.paymentMethod": true,
	"operation.orderStatus":   true,
	"operation.deliveryType":  true,
	"operation.storeLocation": true,
	"operation.salespersonId": true,
}

// dateFields là các trường có giá trị ngày tháng, cần parse chuỗi thành time.Time
// trước khi đưa vào truy vấn.
var dateFields = map[string]bool{
	"operation.date": true,
}

// ===========================================
// PARSE FILTER TỪ QUERY PARAM
// ===========================================

// ParseFilterParam phân tích tham số filter (chuỗi JSON) thành map điều kiện lọc.
// Quy tắc nhận dạng theo hình dạng giá trị:
//   - mảng            => FilterDiscreteSet
//   - object {gte,lte} => FilterRange (cận trên / cận dưới đều bao gồm)
//   - giá trị đơn      => FilterScalar
//
// Giá trị rỗng (mảng rỗng, object rỗng, null, chuỗi rỗng) bị bỏ qua.
// JSON sai cú pháp trả về VAL_003, trường ngoài danh sách cho phép trả về VAL_004.
func ParseFilterParam(raw string) (map[string]FilterValue, error) {
	filters := map[string]FilterValue{}
	if raw == "" {
		return filters, nil
	}

	var rawFilters map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &rawFilters); err != nil {
		return nil, common.NewError(common.ErrCodeFilterSyntax, common.MsgFilterSyntax, common.StatusBadRequest, err.Error())
	}

	for field, rawValue := range rawFilters {
		if !allowedFilterFields[field] {
			return nil, common.NewError(common.ErrCodeFilterField, common.MsgFilterField, common.StatusBadRequest, field)
		}

		fv, ok, err := parseFilterValue(field, rawValue)
		if err != nil {
			return nil, err
		}
		if ok {
			filters[field] = fv
		}
	}

	return filters, nil
}

// parseFilterValue nhận dạng một giá trị lọc theo hình dạng JSON.
// Trả về ok=false nếu giá trị rỗng và cần bỏ qua.
func parseFilterValue(field string, raw json.RawMessage) (FilterValue, bool, error) {
	// Thử mảng trước
	var arr []interface{}
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) == 0 {
			return FilterValue{}, false, nil
		}
		set := make([]interface{}, 0, len(arr))
		for _, v := range arr {
			converted, err := convertFilterScalar(field, v)
			if err != nil {
				return FilterValue{}, false, err
			}
			set = append(set, converted)
		}
		return FilterValue{Kind: FilterDiscreteSet, Set: set}, true, nil
	}

	// Thử object {gte, lte}
	var rangeObj map[string]interface{}
	if err := json.Unmarshal(raw, &rangeObj); err == nil {
		minVal, hasMin := rangeLookup(rangeObj, "gte")
		maxVal, hasMax := rangeLookup(rangeObj, "lte")
		if !hasMin && !hasMax {
			return FilterValue{}, false, nil
		}

		fv := FilterValue{Kind: FilterRange}
		if hasMin && minVal != nil {
			converted, err := convertFilterScalar(field, minVal)
			if err != nil {
				return FilterValue{}, false, err
			}
			fv.Min = converted
		}
		if hasMax && maxVal != nil {
			converted, err := convertFilterScalar(field, maxVal)
			if err != nil {
				return FilterValue{}, false, err
			}
			fv.Max = converted
		}
		if fv.Min == nil && fv.Max == nil {
			return FilterValue{}, false, nil
		}
		return fv, true, nil
	}

	// Còn lại là giá trị đơn
	var scalar interface{}
	if err := json.Unmarshal(raw, &scalar); err != nil {
		return FilterValue{}, false, common.NewError(common.ErrCodeFilterSyntax, common.MsgFilterSyntax, common.StatusBadRequest, field)
	}
	if scalar == nil {
		return FilterValue{}, false, nil
	}
	if s, isStr := scalar.(string); isStr && s == "" {
		return FilterValue{}, false, nil
	}

	converted, err := convertFilterScalar(field, scalar)
	if err != nil {
		return FilterValue{}, false, err
	}
	return FilterValue{Kind: FilterScalar, Value: converted}, true, nil
}

// rangeLookup tìm cận của range theo key, chấp nhận cả dạng có tiền tố "$"
// ("gte" và "$gte" tương đương).
func rangeLookup(obj map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := obj[key]; ok {
		return v, true
	}
	if v, ok := obj["$"+key]; ok {
		return v, true
	}
	return nil, false
}

// convertFilterScalar chuyển giá trị lọc sang kiểu phù hợp với trường.
// Trường ngày tháng nhận chuỗi RFC3339 hoặc YYYY-MM-DD.
func convertFilterScalar(field string, value interface{}) (interface{}, error) {
	if !dateFields[field] {
		return value, nil
	}

	s, ok := value.(string)
	if !ok {
		return nil, common.NewError(common.ErrCodeFilterSyntax, common.MsgFilterSyntax, common.StatusBadRequest, field)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return nil, common.NewError(common.ErrCodeFilterSyntax, common.MsgFilterSyntax, common.StatusBadRequest, field)
}

// ===========================================
// DỰNG ĐIỀU KIỆN TRUY VẤN MONGODB
// ===========================================

// BuildPredicate dựng bộ lọc MongoDB từ chuỗi tìm kiếm và các điều kiện lọc.
// Hàm thuần túy, không thay đổi tham số đầu vào.
func BuildPredicate(search string, filters map[string]FilterValue) bson.M {
	predicate := bson.M{}

	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		predicate["$or"] = bson.A{
			bson.M{"customer.customerName": pattern},
			bson.M{"customer.phoneNumber": pattern},
		}
	}

	for field, fv := range filters {
		switch fv.Kind {
		case FilterDiscreteSet:
			predicate[field] = bson.M{"$in": fv.Set}
		case FilterRange:
			rangeCond := bson.M{}
			if fv.Min != nil {
				rangeCond["$gte"] = fv.Min
			}
			if fv.Max != nil {
				rangeCond["$lte"] = fv.Max
			}
			if len(rangeCond) > 0 {
				predicate[field] = rangeCond
			}
		case FilterScalar:
			predicate[field] = fv.Value
		}
	}

	return predicate
}

// BuildSort dựng điều kiện sắp xếp. Trường trống hoặc không được phép
// sắp xếp sẽ dùng mặc định: operation.date giảm dần (giao dịch mới nhất trước).
func BuildSort(field string, order int) bson.D {
	if field == "" || !allowedFilterFields[field] {
		field = "operation.date"
		order = -1
	}
	if order != 1 && order != -1 {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// buildSummaryPipeline dựng pipeline tổng hợp doanh số trên tập document khớp predicate.
func buildSummaryPipeline(predicate bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: predicate}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"totalUnits":  bson.M{"$sum": "$sales.quantity"},
			"totalAmount": bson.M{"$sum": "$sales.finalAmount"},
			"totalDiscount": bson.M{"$sum": bson.M{
				"$subtract": bson.A{"$sales.totalAmount", "$sales.finalAmount"},
			}},
			"totalRecords": bson.M{"$sum": 1},
		}}},
	}
}
