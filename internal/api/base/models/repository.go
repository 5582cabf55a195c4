// Package basemodels chứa các kiểu dữ liệu chung cho tầng repository.
package basemodels

// PaginationMeta mô tả thông tin phân trang trả về kèm danh sách kết quả.
type PaginationMeta struct {
	TotalDocs   int64 `json:"totalDocs" bson:"totalDocs"`     // Tổng số document khớp điều kiện lọc
	TotalPages  int64 `json:"totalPages" bson:"totalPages"`   // Tổng số trang
	CurrentPage int64 `json:"currentPage" bson:"currentPage"` // Trang hiện tại (bắt đầu từ 1)
	Limit       int64 `json:"limit" bson:"limit"`             // Số document tối đa mỗi trang
	HasNextPage bool  `json:"hasNextPage" bson:"hasNextPage"` // Còn trang sau hay không
	HasPrevPage bool  `json:"hasPrevPage" bson:"hasPrevPage"` // Còn trang trước hay không
}

// PaginateResult chứa kết quả phân trang của một truy vấn danh sách.
type PaginateResult[T any] struct {
	Items []T            `json:"items" bson:"items"` // Danh sách document của trang hiện tại
	Meta  PaginationMeta `json:"meta" bson:"meta"`   // Thông tin phân trang
}

// NewPaginationMeta tính toán thông tin phân trang từ tổng số document khớp.
// totalPages được làm tròn lên; totalDocs = 0 thì totalPages = 0.
func NewPaginationMeta(totalDocs int64, page int64, limit int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	totalPages := (totalDocs + limit - 1) / limit

	return PaginationMeta{
		TotalDocs:   totalDocs,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
