package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/invoice"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// invoiceRepository 发票仓储实现
// 设计说明:
// 1. 表头与明细通过GORM关联一次写入
// 2. 必须通过conn(ctx)获取DB,才能参与TxManager开启的事务
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票仓储
func NewInvoiceRepository(db *gorm.DB) invoice.Repository {
	return &invoiceRepository{db: db}
}

// Create 创建发票(含明细)
func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	model := &InvoiceModel{
		UserID:      inv.UserID,
		InvoiceCode: inv.InvoiceCode,
		TotalAmount: inv.TotalAmount,
		CreatedAt:   inv.CreatedAt,
		Details:     make([]InvoiceDetailModel, len(inv.Details)),
	}
	for i, d := range inv.Details {
		model.Details[i] = InvoiceDetailModel{
			BookID:    d.BookID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		}
	}

	// Create会同时插入关联的Details
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return invoice.ErrCodeDuplicate
		}
		return apperrors.Wrap(err, "创建发票失败")
	}

	// 回填ID
	inv.ID = model.ID
	inv.CreatedAt = model.CreatedAt
	for i := range inv.Details {
		inv.Details[i].ID = model.Details[i].ID
		inv.Details[i].InvoiceID = model.ID
	}
	return nil
}

// FindByID 根据ID查找发票(含明细)
func (r *invoiceRepository) FindByID(ctx context.Context, id uint) (*invoice.Invoice, error) {
	var model InvoiceModel
	err := conn(ctx, r.db).Preload("Details", orderByID).First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, invoice.ErrInvoiceNotFound
		}
		return nil, apperrors.Wrap(err, "查询发票失败")
	}
	return toInvoiceEntity(&model), nil
}

// List 全部发票
func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	return r.find(conn(ctx, r.db))
}

// ListByUserID 某读者的发票
func (r *invoiceRepository) ListByUserID(ctx context.Context, userID uint) ([]*invoice.Invoice, error) {
	return r.find(conn(ctx, r.db).Where("user_id = ?", userID))
}

func (r *invoiceRepository) find(query *gorm.DB) ([]*invoice.Invoice, error) {
	var models []InvoiceModel
	if err := query.Preload("Details", orderByID).Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询发票列表失败")
	}
	invoices := make([]*invoice.Invoice, len(models))
	for i := range models {
		invoices[i] = toInvoiceEntity(&models[i])
	}
	return invoices, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// toInvoiceEntity GORM模型 → 领域实体
func toInvoiceEntity(model *InvoiceModel) *invoice.Invoice {
	details := make([]invoice.Detail, len(model.Details))
	for i, d := range model.Details {
		details[i] = invoice.Detail{
			ID:        d.ID,
			InvoiceID: d.InvoiceID,
			BookID:    d.BookID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		}
	}
	return &invoice.Invoice{
		ID:          model.ID,
		UserID:      model.UserID,
		InvoiceCode: model.InvoiceCode,
		TotalAmount: model.TotalAmount,
		Details:     details,
		CreatedAt:   model.CreatedAt,
	}
}
