package handler

import (
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// GRNHandler 入库单处理器
type GRNHandler struct {
	ledger *service.LedgerService
	docs   *service.DocumentService
}

func NewGRNHandler(ledger *service.LedgerService, docs *service.DocumentService) *GRNHandler {
	return &GRNHandler{ledger: ledger, docs: docs}
}

// Create 提交入库单，新产品自动建档，已有产品累加库存
func (h *GRNHandler) Create(c *gin.Context) {
	var req service.ReceiveGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	grn, err := h.ledger.ReceiveGoods(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, grn)
}

// List 获取入库单列表
func (h *GRNHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	grns, total, err := h.docs.ListGRNs(c.Request.Context(), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items: grns,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages(total, pageSize),
		},
	})
}

// Get 获取入库单详情
func (h *GRNHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	grn, err := h.docs.GetGRN(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, grn)
}
