package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"gorm.io/gorm"
)

// CreditNoteRepository 贷项单仓库
type CreditNoteRepository struct {
	db *gorm.DB
}

func NewCreditNoteRepository(db *gorm.DB) *CreditNoteRepository {
	return &CreditNoteRepository{db: db}
}

// FindAll 查询贷项单列表
func (r *CreditNoteRepository) FindAll(ctx context.Context, page, pageSize int) ([]entity.CreditNote, int64, error) {
	var notes []entity.CreditNote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CreditNote{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&notes).Error
	return notes, total, err
}

// FindByID 根据ID查找贷项单（含原发票与行项）
func (r *CreditNoteRepository) FindByID(ctx context.Context, id uint) (*entity.CreditNote, error) {
	var cn entity.CreditNote
	err := r.db.WithContext(ctx).
		Preload("Invoice").
		Preload("Invoice.Customer").
		Preload("Items").
		Where("id = ?", id).First(&cn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cn, nil
}
