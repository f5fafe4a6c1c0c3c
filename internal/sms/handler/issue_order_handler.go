package handler

import (
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// IssueOrderHandler 内部领用单处理器
type IssueOrderHandler struct {
	ledger *service.LedgerService
	docs   *service.DocumentService
}

func NewIssueOrderHandler(ledger *service.LedgerService, docs *service.DocumentService) *IssueOrderHandler {
	return &IssueOrderHandler{ledger: ledger, docs: docs}
}

// Create 提交领用单并扣减库存
func (h *IssueOrderHandler) Create(c *gin.Context) {
	var req service.IssueStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.ledger.IssueStock(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, order)
}

// List 获取领用单列表
func (h *IssueOrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	orders, total, err := h.docs.ListIssueOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items: orders,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages(total, pageSize),
		},
	})
}

// Get 获取领用单详情
func (h *IssueOrderHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	order, err := h.docs.GetIssueOrder(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, order)
}
