// Package salessvc - Test đọc kết quả pipeline tổng hợp và tính nhất quán
// giữa truy vấn danh sách và truy vấn tổng hợp.
package salessvc

import (
	"context"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
)

func TestDecodeSummaryTotals_KhongCoGiaoDichKhop(t *testing.T) {
	// $group trên tập rỗng không trả dòng nào; kết quả phải là struct toàn 0
	cursor, err := mongo.NewCursorFromDocuments([]interface{}{}, nil, nil)
	if err != nil {
		t.Fatalf("tạo cursor rỗng thất bại: %v", err)
	}

	totals, err := decodeSummaryTotals(context.Background(), cursor)
	if err != nil {
		t.Fatalf("decodeSummaryTotals thất bại: %v", err)
	}
	if totals != (salesmodels.SummaryTotals{}) {
		t.Errorf("không có giao dịch khớp phải cho các tổng bằng 0, có %+v", totals)
	}
}

func TestDecodeSummaryTotals_CoKetQua(t *testing.T) {
	doc := bson.D{
		{Key: "totalUnits", Value: int64(7)},
		{Key: "totalAmount", Value: 945000.5},
		{Key: "totalDiscount", Value: 105000.25},
		{Key: "totalRecords", Value: int64(3)},
	}
	cursor, err := mongo.NewCursorFromDocuments([]interface{}{doc}, nil, nil)
	if err != nil {
		t.Fatalf("tạo cursor thất bại: %v", err)
	}

	totals, err := decodeSummaryTotals(context.Background(), cursor)
	if err != nil {
		t.Fatalf("decodeSummaryTotals thất bại: %v", err)
	}
	if totals.TotalUnits != 7 {
		t.Errorf("TotalUnits = %d, muốn 7", totals.TotalUnits)
	}
	if totals.TotalAmount != 945000.5 {
		t.Errorf("TotalAmount = %v, muốn 945000.5", totals.TotalAmount)
	}
	if totals.TotalDiscount != 105000.25 {
		t.Errorf("TotalDiscount = %v, muốn 105000.25", totals.TotalDiscount)
	}
	if totals.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, muốn 3", totals.TotalRecords)
	}
}

func TestSummaryPipeline_CungDieuKienVoiDanhSach(t *testing.T) {
	// List và Summarize cùng dựng điều kiện qua BuildPredicate; $match của
	// pipeline phải trùng predicate để totalRecords khớp với totalDocs
	filters := map[string]FilterValue{
		"operation.orderStatus": {Kind: FilterDiscreteSet, Set: []interface{}{"Delivered", "Shipped"}},
	}

	predicate := BuildPredicate("an", filters)
	pipeline := buildSummaryPipeline(predicate)

	match, ok := pipeline[0][0].Value.(bson.M)
	if pipeline[0][0].Key != "$match" || !ok {
		t.Fatalf("stage đầu phải là $match với bson.M, có %v", pipeline[0])
	}
	if !reflect.DeepEqual(match, predicate) {
		t.Errorf("$match = %v, phải trùng predicate của danh sách %v", match, predicate)
	}

	group := pipeline[1][0].Value.(bson.M)
	records, ok := group["totalRecords"].(bson.M)
	if !ok || !reflect.DeepEqual(records, bson.M{"$sum": 1}) {
		t.Errorf("totalRecords phải đếm mỗi document khớp một lần, có %v", group["totalRecords"])
	}
}
