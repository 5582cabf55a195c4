// Package basesvc cung cấp service CRUD tổng quát cho các collection MongoDB.
package basesvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/mrmkp27/retail-sales-dashboard/internal/api/base/models"
	"github.com/mrmkp27/retail-sales-dashboard/internal/common"
	"github.com/mrmkp27/retail-sales-dashboard/internal/utility"
)

// ===========================================
// INTERFACE VÀ KIỂU DỮ LIỆU
// ===========================================

// BaseServiceMongo định nghĩa các thao tác CRUD cơ bản trên một collection MongoDB.
// T là kiểu model của collection.
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	InsertMany(ctx context.Context, data []T) (int64, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data UpdateData) (T, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) (*mongo.Cursor, error)
	Collection() *mongo.Collection
}

// UpdateData mô tả một thao tác cập nhật document.
type UpdateData struct {
	Set   map[string]interface{} // Các field cần ghi đè ($set)
	Unset map[string]interface{} // Các field cần xóa ($unset)
}

// ToUpdateData chuyển struct thành UpdateData, tự gắn updatedAt.
func ToUpdateData(data interface{}) (UpdateData, error) {
	m, err := utility.ToMap(data)
	if err != nil {
		return UpdateData{}, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	delete(m, "_id") // không cho phép ghi đè _id
	m["updatedAt"] = time.Now().UnixMilli()

	return UpdateData{Set: m}, nil
}

// BaseServiceMongoImpl là hiện thực mặc định của BaseServiceMongo trên một *mongo.Collection.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo mới service CRUD cho collection được cung cấp.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection gốc, dùng cho các truy vấn đặc thù của domain.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// ===========================================
// CÁC THAO TÁC GHI
// ===========================================

// InsertOne thêm một document, tự gắn createdAt và updatedAt (Unix millisecond).
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	now := time.Now().UnixMilli()
	doc["createdAt"] = now
	doc["updatedAt"] = now
	delete(doc, "_id") // để MongoDB tự sinh ObjectID

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// InsertMany thêm nhiều document trong một lần ghi không theo thứ tự
// (document lỗi không chặn phần còn lại của lô), trả về số document đã thêm.
// Toàn bộ lô dùng chung một timestamp.
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) (int64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	now := time.Now().UnixMilli()
	docs := make([]interface{}, 0, len(data))
	for _, item := range data {
		doc, err := utility.ToMap(item)
		if err != nil {
			return 0, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
		}
		doc["createdAt"] = now
		doc["updatedAt"] = now
		delete(doc, "_id")
		docs = append(docs, doc)
	}

	result, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		// Một phần lô có thể đã được ghi trước khi lỗi xảy ra
		if result != nil {
			return int64(len(result.InsertedIDs)), common.ConvertMongoError(err)
		}
		return 0, common.ConvertMongoError(err)
	}
	return int64(len(result.InsertedIDs)), nil
}

// UpdateById cập nhật document theo _id. Trả về ErrNotFound nếu document không tồn tại.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data UpdateData) (T, error) {
	var zero T

	filter := bson.M{"_id": id}

	// Kiểm tra tồn tại trước để phân biệt "không tìm thấy" với "không có gì thay đổi"
	if err := s.collection.FindOne(ctx, filter).Err(); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	update := bson.M{}
	if len(data.Set) > 0 {
		update["$set"] = data.Set
	}
	if len(data.Unset) > 0 {
		update["$unset"] = data.Unset
	}
	if len(update) == 0 {
		return s.FindOneById(ctx, id)
	}

	if _, err := s.collection.UpdateOne(ctx, filter, update); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return s.FindOneById(ctx, id)
}

// DeleteById xóa document theo _id. Trả về ErrNotFound nếu document không tồn tại.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteMany xóa tất cả document khớp filter, trả về số document đã xóa.
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// ===========================================
// CÁC THAO TÁC ĐỌC
// ===========================================

// FindOne tìm một document khớp filter.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	if filter == nil {
		filter = bson.D{}
	}
	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm document theo _id.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find trả về tất cả document khớp filter.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination trả về một trang kết quả kèm thông tin phân trang.
// Truy vấn danh sách và đếm tổng được chạy song song.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if filter == nil {
		filter = bson.D{}
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)

	var (
		items    []T
		total    int64
		findErr  error
		countErr error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		total, countErr = s.collection.CountDocuments(ctx, filter)
	}()

	items, findErr = s.Find(ctx, filter, opts)
	<-done

	if findErr != nil {
		return nil, findErr
	}
	if countErr != nil {
		return nil, common.ConvertMongoError(countErr)
	}

	return &basemodels.PaginateResult[T]{
		Items: items,
		Meta:  basemodels.NewPaginationMeta(total, page, limit),
	}, nil
}

// CountDocuments đếm số document khớp filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Aggregate chạy một pipeline tổng hợp trên collection.
func (s *BaseServiceMongoImpl[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return cursor, nil
}
