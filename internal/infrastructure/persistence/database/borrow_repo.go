package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/borrow"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// borrowRepository 借阅记录仓储实现
type borrowRepository struct {
	db *gorm.DB
}

// NewBorrowRepository 创建借阅记录仓储
func NewBorrowRepository(db *gorm.DB) borrow.Repository {
	return &borrowRepository{db: db}
}

// Create 登记借阅
func (r *borrowRepository) Create(ctx context.Context, rec *borrow.Record) error {
	model := &BorrowModel{
		UserID:     rec.UserID,
		BookID:     rec.BookID,
		Quantity:   rec.Quantity,
		BorrowDate: rec.BorrowDate,
		ReturnDate: rec.ReturnDate,
		Fee:        rec.Fee,
		CreatedAt:  rec.CreatedAt,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "登记借阅失败")
	}
	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找借阅记录
func (r *borrowRepository) FindByID(ctx context.Context, id uint) (*borrow.Record, error) {
	var model BorrowModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, borrow.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}
	return toBorrowEntity(&model), nil
}

// List 全部借阅记录
func (r *borrowRepository) List(ctx context.Context) ([]*borrow.Record, error) {
	return r.find(conn(ctx, r.db))
}

// ListByUserID 某读者的借阅记录
func (r *borrowRepository) ListByUserID(ctx context.Context, userID uint) ([]*borrow.Record, error) {
	return r.find(conn(ctx, r.db).Where("user_id = ?", userID))
}

func (r *borrowRepository) find(query *gorm.DB) ([]*borrow.Record, error) {
	var models []BorrowModel
	if err := query.Order("borrow_date DESC, id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}
	records := make([]*borrow.Record, len(models))
	for i := range models {
		records[i] = toBorrowEntity(&models[i])
	}
	return records, nil
}

func toBorrowEntity(model *BorrowModel) *borrow.Record {
	return &borrow.Record{
		ID:         model.ID,
		UserID:     model.UserID,
		BookID:     model.BookID,
		Quantity:   model.Quantity,
		BorrowDate: model.BorrowDate,
		ReturnDate: model.ReturnDate,
		Fee:        model.Fee,
		CreatedAt:  model.CreatedAt,
	}
}
