package book

import (
	"context"
	"errors"
	"math"
	"strings"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务负责校验编排、编码查重以及统计计算
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 新增图书
	// 流程: 校验类型 → 按类型校验字段 → 编码查重 → 构建实体 → 持久化
	CreateBook(ctx context.Context, rawType string, in Input) (*Book, error)

	// UpdateBook 更新图书
	// 使用已有图书的类型规则校验,编码和类型不可修改
	UpdateBook(ctx context.Context, id uint, in Input) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListAllBooks 全部图书
	ListAllBooks(ctx context.Context) ([]*Book, error)

	// SearchBooks 按书名搜索,关键词为空时返回全部
	SearchBooks(ctx context.Context, query string) ([]*Book, error)

	// ListBooks 分页查询
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// BooksByType 按类型查询
	BooksByType(ctx context.Context, t Type) ([]*Book, error)

	// BooksByPublisher 按出版社查询,t为空表示不限类型
	BooksByPublisher(ctx context.Context, publisher string, t Type) ([]*Book, error)

	// TextbooksByPublisher 某出版社的教科书
	TextbooksByPublisher(ctx context.Context, publisher string) ([]*Book, error)

	// TotalAmountByType 某类型图书的金额合计
	TotalAmountByType(ctx context.Context, t Type) (int64, error)

	// AveragePriceReference 参考书平均单价,没有参考书时为0
	AveragePriceReference(ctx context.Context) (int64, error)

	// Statistics 汇总统计
	Statistics(ctx context.Context) (*Statistics, error)

	// ValidateBookData 按类型校验输入(不落库)
	ValidateBookData(rawType string, in Input) error
}

// Statistics 图书统计结果
type Statistics struct {
	TotalBooks            int   `json:"total_books"`
	TotalTextbooks        int   `json:"total_textbooks"`
	TotalReferenceBooks   int   `json:"total_reference_books"`
	TotalAmountTextbooks  int64 `json:"total_amount_textbooks"`
	TotalAmountReference  int64 `json:"total_amount_reference_books"`
	AveragePriceReference int64 `json:"average_price_reference_books"`
	TotalAmountAll        int64 `json:"total_amount_all"`
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, rawType string, in Input) (*Book, error) {
	// 1. 校验类型
	t, err := ValidateType(rawType)
	if err != nil {
		return nil, err
	}

	// 2. 按类型校验字段
	if err := Validate(t, in); err != nil {
		return nil, err
	}

	// 3. 编码查重(数据库唯一索引兜底)
	existing, err := s.repo.FindByCode(ctx, strings.TrimSpace(in.Code))
	if err == nil && existing != nil {
		return nil, ErrCodeDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}

	// 4. 创建实体并持久化
	b := NewBook(t, in)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, in Input) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 用已有类型的规则校验,编码沿用原值
	in.Code = b.Code
	if err := Validate(b.Type, in); err != nil {
		return nil, err
	}

	// 3. 更新并持久化
	b.UpdateFrom(in)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListAllBooks 全部图书
func (s *service) ListAllBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// SearchBooks 按书名搜索
func (s *service) SearchBooks(ctx context.Context, query string) ([]*Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.SearchByName(ctx, query)
}

// ListBooks 分页查询
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if params.Type != "" && !params.Type.Valid() {
		return nil, 0, ErrInvalidType
	}
	return s.repo.List(ctx, params)
}

// BooksByType 按类型查询
func (s *service) BooksByType(ctx context.Context, t Type) ([]*Book, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	return s.repo.FindByType(ctx, t)
}

// BooksByPublisher 按出版社查询
func (s *service) BooksByPublisher(ctx context.Context, publisher string, t Type) ([]*Book, error) {
	if t != "" && !t.Valid() {
		return nil, ErrInvalidType
	}
	return s.repo.FindByPublisher(ctx, strings.TrimSpace(publisher), t)
}

// TextbooksByPublisher 某出版社的教科书
func (s *service) TextbooksByPublisher(ctx context.Context, publisher string) ([]*Book, error) {
	return s.BooksByPublisher(ctx, publisher, TypeTextbook)
}

// TotalAmountByType 某类型图书的金额合计
func (s *service) TotalAmountByType(ctx context.Context, t Type) (int64, error) {
	books, err := s.BooksByType(ctx, t)
	if err != nil {
		return 0, err
	}
	return sumAmount(books), nil
}

// AveragePriceReference 参考书平均单价(四舍五入到最小货币单位)
func (s *service) AveragePriceReference(ctx context.Context) (int64, error) {
	books, err := s.repo.FindByType(ctx, TypeReference)
	if err != nil {
		return 0, err
	}
	return averagePrice(books), nil
}

// Statistics 汇总统计
// 一次查询全部图书,在内存中分组计算
func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var textbooks, references []*Book
	for _, b := range all {
		switch b.Type {
		case TypeTextbook:
			textbooks = append(textbooks, b)
		case TypeReference:
			references = append(references, b)
		}
	}

	return &Statistics{
		TotalBooks:            len(all),
		TotalTextbooks:        len(textbooks),
		TotalReferenceBooks:   len(references),
		TotalAmountTextbooks:  sumAmount(textbooks),
		TotalAmountReference:  sumAmount(references),
		AveragePriceReference: averagePrice(references),
		TotalAmountAll:        sumAmount(all),
	}, nil
}

// ValidateBookData 按类型校验输入
func (s *service) ValidateBookData(rawType string, in Input) error {
	t, err := ValidateType(rawType)
	if err != nil {
		return err
	}
	return Validate(t, in)
}

// =========================================
// 辅助函数
// =========================================

// sumAmount 金额合计,超过int64上限时封顶为math.MaxInt64
func sumAmount(books []*Book) int64 {
	var total int64
	for _, b := range books {
		total = addCapped(total, b.TotalAmount())
	}
	return total
}

// addCapped 非负金额相加,溢出时返回math.MaxInt64
func addCapped(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

func averagePrice(books []*Book) int64 {
	if len(books) == 0 {
		return 0
	}
	// 单价不超过MaxPrice,累加不会溢出
	var sum int64
	for _, b := range books {
		sum += b.Price
	}
	n := int64(len(books))
	return (sum + n/2) / n
}
