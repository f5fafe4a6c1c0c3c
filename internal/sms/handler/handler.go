package handler

import (
	"errors"
	"strconv"

	"github.com/bitfantasy/nimo-sms/internal/sms/pdf"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// Handlers SMS HTTP处理器集合
type Handlers struct {
	Auth       *AuthHandler
	Product    *ProductHandler
	Customer   *CustomerHandler
	GRN        *GRNHandler
	Sales      *SalesHandler
	CreditNote *CreditNoteHandler
	IssueOrder *IssueOrderHandler
	Alert      *AlertHandler
	Dashboard  *DashboardHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	renderer := pdf.NewRenderer()
	return &Handlers{
		Auth:       NewAuthHandler(svc.Auth),
		Product:    NewProductHandler(svc.Product),
		Customer:   NewCustomerHandler(svc.Customer),
		GRN:        NewGRNHandler(svc.Ledger, svc.Document),
		Sales:      NewSalesHandler(svc.Ledger, svc.Document, renderer),
		CreditNote: NewCreditNoteHandler(svc.Ledger, svc.Document, renderer),
		IssueOrder: NewIssueOrderHandler(svc.Ledger, svc.Document),
		Alert:      NewAlertHandler(svc.Alert),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse 列表响应结构
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict 单据号冲突响应
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// Unprocessable 业务规则校验失败响应
func Unprocessable(c *gin.Context, message string) {
	Error(c, 42200, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// ServiceError 将服务层错误映射为HTTP响应
func ServiceError(c *gin.Context, err error) {
	var (
		dup       *service.DuplicateDocumentNumberError
		stock     *service.InsufficientStockError
		exceeds   *service.ReturnExceedsOriginalError
		noInvoice *service.InvoiceNotFoundError
		noProduct *service.ProductNotFoundError
	)
	switch {
	case errors.As(err, &dup):
		Conflict(c, err.Error())
	case errors.As(err, &stock):
		Unprocessable(c, err.Error())
	case errors.As(err, &exceeds):
		Unprocessable(c, err.Error())
	case errors.As(err, &noInvoice):
		NotFound(c, err.Error())
	case errors.As(err, &noProduct):
		NotFound(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// ParseID 解析路径中的数字ID
func ParseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// GetPagination 从请求获取分页参数
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
