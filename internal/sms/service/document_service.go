package service

import (
	"context"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
)

// DocumentService 单据查询服务（只读），供展示层和PDF渲染取完整单据
type DocumentService struct {
	grnRepo        *repository.GRNRepository
	salesRepo      *repository.SalesRepository
	creditNoteRepo *repository.CreditNoteRepository
	issueOrderRepo *repository.IssueOrderRepository
}

func NewDocumentService(grnRepo *repository.GRNRepository, salesRepo *repository.SalesRepository, creditNoteRepo *repository.CreditNoteRepository, issueOrderRepo *repository.IssueOrderRepository) *DocumentService {
	return &DocumentService{
		grnRepo:        grnRepo,
		salesRepo:      salesRepo,
		creditNoteRepo: creditNoteRepo,
		issueOrderRepo: issueOrderRepo,
	}
}

// ListGRNs 入库单列表
func (s *DocumentService) ListGRNs(ctx context.Context, page, pageSize int) ([]entity.GRN, int64, error) {
	return s.grnRepo.FindAll(ctx, page, pageSize)
}

// GetGRN 入库单详情
func (s *DocumentService) GetGRN(ctx context.Context, id uint) (*entity.GRN, error) {
	return s.grnRepo.FindByID(ctx, id)
}

// ListInvoices 发票列表
func (s *DocumentService) ListInvoices(ctx context.Context, page, pageSize int) ([]entity.SalesInvoice, int64, error) {
	return s.salesRepo.FindAll(ctx, page, pageSize)
}

// GetInvoice 发票详情（含客户快照与行项产品信息）
func (s *DocumentService) GetInvoice(ctx context.Context, id uint) (*entity.SalesInvoice, error) {
	return s.salesRepo.FindByID(ctx, id)
}

// GetInvoiceByNumber 按发票号查询发票
func (s *DocumentService) GetInvoiceByNumber(ctx context.Context, number string) (*entity.SalesInvoice, error) {
	return s.salesRepo.FindByNumber(ctx, number)
}

// ListCreditNotes 贷项单列表
func (s *DocumentService) ListCreditNotes(ctx context.Context, page, pageSize int) ([]entity.CreditNote, int64, error) {
	return s.creditNoteRepo.FindAll(ctx, page, pageSize)
}

// GetCreditNote 贷项单详情（含原发票）
func (s *DocumentService) GetCreditNote(ctx context.Context, id uint) (*entity.CreditNote, error) {
	return s.creditNoteRepo.FindByID(ctx, id)
}

// ListIssueOrders 领用单列表
func (s *DocumentService) ListIssueOrders(ctx context.Context, page, pageSize int) ([]entity.IssueOrder, int64, error) {
	return s.issueOrderRepo.FindAll(ctx, page, pageSize)
}

// GetIssueOrder 领用单详情
func (s *DocumentService) GetIssueOrder(ctx context.Context, id uint) (*entity.IssueOrder, error) {
	return s.issueOrderRepo.FindByID(ctx, id)
}
