package service

import (
	"github.com/bitfantasy/nimo-sms/internal/config"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services SMS服务集合
type Services struct {
	Auth      *AuthService
	Product   *ProductService
	Customer  *CustomerService
	Ledger    *LedgerService
	Document  *DocumentService
	Dashboard *DashboardService
	Alert     *AlertService
}

// NewServices 创建SMS服务集合，rdb 可为 nil
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, cfg.JWT),
		Product:   NewProductService(repos.Product),
		Customer:  NewCustomerService(repos.Customer),
		Ledger:    NewLedgerService(db, rdb),
		Document:  NewDocumentService(repos.GRN, repos.Sales, repos.CreditNote, repos.IssueOrder),
		Dashboard: NewDashboardService(repos.Product, repos.Sales, repos.Alert, rdb),
		Alert:     NewAlertService(repos.Alert),
	}
}
