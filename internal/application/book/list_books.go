package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书查询用例
// 设计说明:
// 1. Execute支持分页、关键词、类型、出版社过滤与排序(JSON API)
// 2. Search/ByType/ByPublisher返回全部结果(页面展示,数据量小)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 分页查询请求DTO
type ListBooksRequest struct {
	Page      int
	PageSize  int
	Keyword   string
	Type      string // textbook / reference,为空不过滤
	Publisher string
	SortBy    string // price_asc, price_desc, name_asc, created_at_desc
}

// ListBooksResponse 分页查询响应DTO
type ListBooksResponse struct {
	List       []*BookDTO `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// Execute 执行分页查询
// page默认1,pageSize默认20,最大100
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	// 2. 类型过滤
	var t book.Type
	if req.Type != "" {
		parsed, err := book.ValidateType(req.Type)
		if err != nil {
			return nil, err
		}
		t = parsed
	}

	// 3. 查询
	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:      req.Page,
		PageSize:  req.PageSize,
		Keyword:   req.Keyword,
		Type:      t,
		Publisher: req.Publisher,
		SortBy:    req.SortBy,
	})
	if err != nil {
		return nil, err
	}

	// 4. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       ToDTOs(books),
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Search 按书名搜索,关键词为空返回全部
func (uc *ListBooksUseCase) Search(ctx context.Context, query string) ([]*BookDTO, error) {
	books, err := uc.bookService.SearchBooks(ctx, query)
	if err != nil {
		return nil, err
	}
	return ToDTOs(books), nil
}

// ByType 按类型查询
func (uc *ListBooksUseCase) ByType(ctx context.Context, rawType string) ([]*BookDTO, error) {
	t, err := book.ValidateType(rawType)
	if err != nil {
		return nil, err
	}
	books, err := uc.bookService.BooksByType(ctx, t)
	if err != nil {
		return nil, err
	}
	return ToDTOs(books), nil
}

// ByPublisher 按出版社查询,rawType为空表示不限类型
func (uc *ListBooksUseCase) ByPublisher(ctx context.Context, publisher, rawType string) ([]*BookDTO, error) {
	var (
		books []*book.Book
		err   error
	)
	if rawType == "" {
		books, err = uc.bookService.BooksByPublisher(ctx, publisher, "")
	} else {
		t, perr := book.ValidateType(rawType)
		if perr != nil {
			return nil, perr
		}
		if t == book.TypeTextbook {
			books, err = uc.bookService.TextbooksByPublisher(ctx, publisher)
		} else {
			books, err = uc.bookService.BooksByPublisher(ctx, publisher, t)
		}
	}
	if err != nil {
		return nil, err
	}
	return ToDTOs(books), nil
}

// GetBookUseCase 图书详情用例(cache-aside)
type GetBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service, cache Cache) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, cache: cache}
}

// Execute 查询图书详情
// 先查缓存,未命中查库并回填
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDTO, error) {
	if b, ok := uc.cache.GetBook(ctx, id); ok {
		return ToDTO(b), nil
	}

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.SetBook(ctx, b)
	return ToDTO(b), nil
}
