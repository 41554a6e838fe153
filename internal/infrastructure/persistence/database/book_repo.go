package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如编码重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)

	// 2. 插入数据库
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrCodeDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByCode 根据编码查找图书
func (r *bookRepository) FindByCode(ctx context.Context, code string) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindAll 查询全部图书
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	return r.find(conn(ctx, r.db).Order("id DESC"))
}

// SearchByName 按书名模糊搜索(不区分大小写)
func (r *bookRepository) SearchByName(ctx context.Context, query string) ([]*book.Book, error) {
	return r.find(conn(ctx, r.db).
		Where("LOWER(name) LIKE ?", likePattern(query)).
		Order("name ASC"))
}

// FindByType 按类型查询
func (r *bookRepository) FindByType(ctx context.Context, t book.Type) ([]*book.Book, error) {
	return r.find(conn(ctx, r.db).
		Where("book_type = ?", string(t)).
		Order("name ASC"))
}

// FindByPublisher 按出版社精确匹配
func (r *bookRepository) FindByPublisher(ctx context.Context, publisher string, t book.Type) ([]*book.Book, error) {
	query := conn(ctx, r.db).Where("publisher = ?", publisher)
	if t != "" {
		query = query.Where("book_type = ?", string(t))
	}
	return r.find(query.Order("name ASC"))
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 构建查询
	query := conn(ctx, r.db).Model(&BookModel{})

	// 关键词搜索(搜索书名、编码、出版社)
	if params.Keyword != "" {
		keyword := likePattern(params.Keyword)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(publisher) LIKE ?", keyword, keyword, keyword)
	}
	if params.Type != "" {
		query = query.Where("book_type = ?", string(params.Type))
	}
	if params.Publisher != "" {
		query = query.Where("publisher = ?", params.Publisher)
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 排序
	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "name_asc":
		query = query.Order("name ASC")
	case "created_at_desc":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("id DESC")
	}

	// 分页
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize > 0 {
		query = query.Limit(params.PageSize).Offset((params.Page - 1) * params.PageSize)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), total, nil
}

// Update 更新图书信息
// Select("*")保证零值字段(如数量0、税额0)也被写入,编码和类型不参与更新
// 存在性由调用方先行查询保证:MySQL在值未变化时RowsAffected为0,不能据此判断记录不存在
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := conn(ctx, r.db).Model(&BookModel{ID: b.ID}).
		Select("*").
		Omit("id", "code", "book_type", "created_at").
		Updates(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) find(query *gorm.DB) ([]*book.Book, error) {
	var models []BookModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
// 另一类型的专属字段写NULL
func toBookModel(b *book.Book) *BookModel {
	model := &BookModel{
		ID:          b.ID,
		Code:        b.Code,
		Name:        b.Name,
		BookType:    string(b.Type),
		Price:       b.Price,
		Quantity:    b.Quantity,
		Publisher:   b.Publisher,
		Image:       b.Image,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if !b.ImportDate.IsZero() {
		d := b.ImportDate
		model.ImportDate = &d
	}
	switch b.Type {
	case book.TypeTextbook:
		c := string(b.Condition)
		model.ConditionStatus = &c
	case book.TypeReference:
		tax := b.Tax
		model.Tax = &tax
	}
	return model
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:          model.ID,
		Code:        model.Code,
		Name:        model.Name,
		Type:        book.Type(model.BookType),
		Price:       model.Price,
		Quantity:    model.Quantity,
		Publisher:   model.Publisher,
		Image:       model.Image,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.ImportDate != nil {
		b.ImportDate = *model.ImportDate
	}
	if model.ConditionStatus != nil {
		b.Condition = book.Condition(*model.ConditionStatus)
	}
	if model.Tax != nil {
		b.Tax = *model.Tax
	}
	return b
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
