package handler

import (
	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// AlertHandler 库存预警处理器
type AlertHandler struct {
	svc *service.AlertService
}

func NewAlertHandler(svc *service.AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// List 获取预警列表，可按 status 过滤
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, alerts)
}

// Resolve 将预警标记为已处理
func (h *AlertHandler) Resolve(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.Resolve(c.Request.Context(), id); err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, nil)
}
