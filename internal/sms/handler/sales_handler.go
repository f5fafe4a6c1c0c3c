package handler

import (
	"fmt"
	"net/http"

	"github.com/bitfantasy/nimo-sms/internal/sms/pdf"
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// SalesHandler 销售发票处理器
type SalesHandler struct {
	ledger   *service.LedgerService
	docs     *service.DocumentService
	renderer *pdf.Renderer
}

func NewSalesHandler(ledger *service.LedgerService, docs *service.DocumentService, renderer *pdf.Renderer) *SalesHandler {
	return &SalesHandler{ledger: ledger, docs: docs, renderer: renderer}
}

// Create 提交销售发票并扣减库存
func (h *SalesHandler) Create(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.ledger.CreateSale(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, invoice)
}

// List 获取发票列表
func (h *SalesHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	invoices, total, err := h.docs.ListInvoices(c.Request.Context(), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items: invoices,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages(total, pageSize),
		},
	})
}

// Get 获取发票详情
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	invoice, err := h.docs.GetInvoice(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, invoice)
}

// GetByNumber 按发票号获取发票，退货开单时使用
func (h *SalesHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		BadRequest(c, "Invoice number is required")
		return
	}

	invoice, err := h.docs.GetInvoiceByNumber(c.Request.Context(), number)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, invoice)
}

// DownloadPDF 下载发票PDF
func (h *SalesHandler) DownloadPDF(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	invoice, err := h.docs.GetInvoice(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	data, err := h.renderer.RenderInvoice(invoice)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	filename := fmt.Sprintf("Invoice_%s.pdf", invoice.InvoiceNumber)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
