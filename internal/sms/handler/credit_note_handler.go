package handler

import (
	"fmt"
	"net/http"

	"github.com/bitfantasy/nimo-sms/internal/sms/pdf"
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// CreditNoteHandler 退货贷项单处理器
type CreditNoteHandler struct {
	ledger   *service.LedgerService
	docs     *service.DocumentService
	renderer *pdf.Renderer
}

func NewCreditNoteHandler(ledger *service.LedgerService, docs *service.DocumentService, renderer *pdf.Renderer) *CreditNoteHandler {
	return &CreditNoteHandler{ledger: ledger, docs: docs, renderer: renderer}
}

// Create 提交退货贷项单并回补库存
func (h *CreditNoteHandler) Create(c *gin.Context) {
	var req service.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cn, err := h.ledger.CreateReturn(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, cn)
}

// List 获取退货单列表
func (h *CreditNoteHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	notes, total, err := h.docs.ListCreditNotes(c.Request.Context(), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items: notes,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages(total, pageSize),
		},
	})
}

// Get 获取退货单详情
func (h *CreditNoteHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	cn, err := h.docs.GetCreditNote(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, cn)
}

// DownloadPDF 下载退货单PDF
func (h *CreditNoteHandler) DownloadPDF(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	cn, err := h.docs.GetCreditNote(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	data, err := h.renderer.RenderCreditNote(cn)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	filename := fmt.Sprintf("CreditNote_%s.pdf", cn.CreditNoteNumber)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
