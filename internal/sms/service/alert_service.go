package service

import (
	"context"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
)

// AlertService 库存预警服务
type AlertService struct {
	alertRepo *repository.AlertRepository
}

func NewAlertService(alertRepo *repository.AlertRepository) *AlertService {
	return &AlertService{alertRepo: alertRepo}
}

// List 按状态查询预警列表，status 为空时返回全部
func (s *AlertService) List(ctx context.Context, status string) ([]entity.Alert, error) {
	return s.alertRepo.FindAll(ctx, status)
}

// Resolve 将预警标记为已处理
func (s *AlertService) Resolve(ctx context.Context, id uint) error {
	return s.alertRepo.UpdateStatus(ctx, id, entity.AlertStatusResolved)
}
