package handler

import (
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// CustomerHandler 客户处理器
type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List 获取客户列表
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, customers)
}

// Create 创建客户
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Created(c, customer)
}

// Update 更新客户
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, customer)
}

// Delete 删除客户
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, nil)
}
