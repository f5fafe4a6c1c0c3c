package handler

import (
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// ProductHandler 产品处理器
type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List 获取产品列表，支持 keyword 模糊查询
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, products)
}

// Get 获取产品详情
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	product, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, product)
}

// Create 创建产品
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, product)
}
