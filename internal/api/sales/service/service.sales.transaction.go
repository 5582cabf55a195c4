package salessvc

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/models"
	basesvc "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/service"
	salesmodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/sales/models"
	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
	"github.com/mrmkp27/retail-sales-dashboard/internal/global"
	"github.com/mrmkp27/retail-sales-dashboard/internal/logger"
)

// SaleTransactionService xử lý nghiệp vụ trên collection giao dịch bán hàng.
// CRUD cơ bản kế thừa từ BaseServiceMongoImpl; truy vấn danh sách và tổng hợp
// được hiện thực riêng.
type SaleTransactionService struct {
	*basesvc.BaseServiceMongoImpl[salesmodels.SaleTransaction]
}

// NewSaleTransactionService tạo mới service giao dịch bán hàng.
// Collection được lấy từ registry toàn cục, đã khởi tạo lúc server start.
func NewSaleTransactionService() (*SaleTransactionService, error) {
	collection, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.SaleTransactions)
	if !ok {
		return nil, common.NewError(common.ErrCodeDatabaseConnection, common.MsgMongoConnection, common.StatusInternalServerError,
			"collection "+global.MongoDB_ColNames.SaleTransactions+" chưa được đăng ký")
	}

	return &SaleTransactionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[salesmodels.SaleTransaction](collection),
	}, nil
}

// List trả về một trang giao dịch khớp điều kiện tìm kiếm / lọc của spec,
// kèm thông tin phân trang. Truy vấn danh sách và đếm tổng chạy song song.
func (s *SaleTransactionService) List(ctx context.Context, spec QuerySpec) (*basemodels.PaginateResult[salesmodels.SaleTransaction], error) {
	predicate := BuildPredicate(spec.Search, spec.Filters)
	sort := BuildSort(spec.SortField, spec.SortOrder)

	opts := options.Find().SetSort(sort)
	return s.FindWithPagination(ctx, predicate, spec.Page, spec.Limit, opts)
}

// Summarize tính tổng doanh số trên tập giao dịch khớp điều kiện tìm kiếm / lọc.
// Không có giao dịch nào khớp thì trả về các tổng bằng 0.
func (s *SaleTransactionService) Summarize(ctx context.Context, search string, filters map[string]FilterValue) (salesmodels.SummaryTotals, error) {
	predicate := BuildPredicate(search, filters)
	pipeline := buildSummaryPipeline(predicate)

	cursor, err := s.Aggregate(ctx, pipeline)
	if err != nil {
		return salesmodels.SummaryTotals{}, err
	}
	defer cursor.Close(ctx)

	totals, err := decodeSummaryTotals(ctx, cursor)
	if err != nil {
		return salesmodels.SummaryTotals{}, err
	}

	logger.WithCollection(global.MongoDB_ColNames.SaleTransactions).
		WithFields(map[string]interface{}{"totalRecords": totals.TotalRecords}).
		Debug("Tổng hợp doanh số hoàn tất")

	return totals, nil
}

// decodeSummaryTotals đọc kết quả của pipeline tổng hợp. Pipeline $group không
// trả dòng nào (không giao dịch khớp) thì mọi tổng bằng 0.
func decodeSummaryTotals(ctx context.Context, cursor *mongo.Cursor) (salesmodels.SummaryTotals, error) {
	var totals salesmodels.SummaryTotals

	if cursor.Next(ctx) {
		if err := cursor.Decode(&totals); err != nil {
			return salesmodels.SummaryTotals{}, common.ConvertMongoError(err)
		}
	}
	if err := cursor.Err(); err != nil {
		return salesmodels.SummaryTotals{}, common.ConvertMongoError(err)
	}
	return totals, nil
}
