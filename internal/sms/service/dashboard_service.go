package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	dashboardStatsKey = "sms:dashboard:stats"
	dashboardStatsTTL = 30 * time.Second
	recentAlertLimit  = 5
)

// DashboardStats 看板统计
type DashboardStats struct {
	TotalProducts int64           `json:"total_products"`
	LowStockCount int64           `json:"low_stock_count"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	ActiveAlerts  []entity.Alert  `json:"active_alerts"`
}

// DashboardService 看板服务，统计结果做短TTL缓存，台账提交时失效
type DashboardService struct {
	productRepo *repository.ProductRepository
	salesRepo   *repository.SalesRepository
	alertRepo   *repository.AlertRepository
	rdb         *redis.Client
}

// NewDashboardService 创建看板服务，rdb 可为 nil（不缓存）
func NewDashboardService(productRepo *repository.ProductRepository, salesRepo *repository.SalesRepository, alertRepo *repository.AlertRepository, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		salesRepo:   salesRepo,
		alertRepo:   alertRepo,
		rdb:         rdb,
	}
}

// GetStats 获取看板统计
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardStatsKey).Bytes(); err == nil {
			var stats DashboardStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	totalProducts, err := s.productRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	totalSales, err := s.salesRepo.SumTotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alertRepo.FindRecentActive(ctx, recentAlertLimit)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts: totalProducts,
		LowStockCount: lowStock,
		TotalSales:    totalSales,
		ActiveAlerts:  alerts,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, dashboardStatsKey, data, dashboardStatsTTL)
		}
	}
	return stats, nil
}
