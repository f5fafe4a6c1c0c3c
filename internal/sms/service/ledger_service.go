package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultMinStockThreshold = 10

// LedgerService 库存台账引擎，四类单据（入库/销售/退货/领用）各自作为
// 一个原子事务提交：校验、写单据头与行项、增减库存、写预警，要么全部
// 生效要么全部回滚。所有受影响的产品行先按主键升序 FOR UPDATE 锁定，
// 数量校验在同一事务内按产品累计进行。
type LedgerService struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewLedgerService 创建台账引擎，rdb 可为 nil（不做看板缓存失效）
func NewLedgerService(db *gorm.DB, rdb *redis.Client) *LedgerService {
	return &LedgerService{db: db, rdb: rdb}
}

// === 入库(GRN) ===

type ReceiveGoodsRequest struct {
	GRNNumber    string           `json:"grn_number" binding:"required"`
	SupplierName string           `json:"supplier_name" binding:"required"`
	DateReceived time.Time        `json:"date_received" binding:"required"`
	Items        []GRNItemRequest `json:"items" binding:"required,min=1,dive"`
}

type GRNItemRequest struct {
	ProductCode  string          `json:"product_code" binding:"required"`
	Description  string          `json:"description"`
	Model        string          `json:"model"`
	Brand        string          `json:"brand"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// ReceiveGoods 提交入库单：写单据头与行项，按行项增加库存；产品不存在时
// 以行项信息创建，存在时刷新描述/型号/品牌快照。入库不做数量校验。
func (s *LedgerService) ReceiveGoods(ctx context.Context, req *ReceiveGoodsRequest) (*entity.GRN, error) {
	grn := &entity.GRN{
		GRNNumber:    req.GRNNumber,
		SupplierName: req.SupplierName,
		DateReceived: req.DateReceived,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		lineTotal := item.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		grn.Items = append(grn.Items, entity.GRNItem{
			ProductCode:        item.ProductCode,
			ProductDescription: item.Description,
			Model:              item.Model,
			Brand:              item.Brand,
			QuantityReceived:   item.Quantity,
			PricePerUnit:       item.PricePerUnit,
			Total:              lineTotal,
		})
	}
	grn.TotalAmount = total

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(grn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateDocumentNumberError{DocType: "GRN", Number: req.GRNNumber}
			}
			return fmt.Errorf("create grn: %w", err)
		}

		for _, item := range req.Items {
			var product entity.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_code = ?", item.ProductCode).
				First(&product).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				product = entity.Product{
					ProductCode:       item.ProductCode,
					Description:       item.Description,
					Model:             item.Model,
					Brand:             item.Brand,
					UnitPrice:         item.PricePerUnit,
					CurrentStock:      item.Quantity,
					MinStockThreshold: defaultMinStockThreshold,
				}
				if err := tx.Create(&product).Error; err != nil {
					return fmt.Errorf("create product %s: %w", item.ProductCode, err)
				}
			case err != nil:
				return fmt.Errorf("lock product %s: %w", item.ProductCode, err)
			default:
				updates := map[string]interface{}{
					"current_stock": gorm.Expr("current_stock + ?", item.Quantity),
					"description":   item.Description,
					"model":         item.Model,
					"brand":         item.Brand,
				}
				if err := tx.Model(&entity.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
					return fmt.Errorf("update stock for %s: %w", item.ProductCode, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return grn, nil
}

// === 销售发票 ===

type CreateSaleRequest struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required"`
	CustomerID    *uint             `json:"customer_id"`
	CustomerName  string            `json:"customer_name" binding:"required"`
	DateOfSale    time.Time         `json:"date_of_sale" binding:"required"`
	Discount      decimal.Decimal   `json:"discount"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

type SaleItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSale 提交销售发票：锁定并校验库存（按产品累计），写发票头与行项，
// 扣减库存；扣减后低于阈值的产品各写入一条低库存预警。
// 任一行校验失败则整单拒绝，不产生部分效果。
func (s *LedgerService) CreateSale(ctx context.Context, req *CreateSaleRequest) (*entity.SalesInvoice, error) {
	var invoice *entity.SalesInvoice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		required, ids := quantityByProduct(req.Items, func(it SaleItemRequest) (uint, int) {
			return it.ProductID, it.Quantity
		})

		products, err := lockProducts(tx, ids)
		if err != nil {
			return err
		}

		for _, id := range ids {
			p, ok := products[id]
			if !ok {
				return &ProductNotFoundError{ProductID: id}
			}
			if required[id] > p.CurrentStock {
				return &InsufficientStockError{
					ProductCode: p.ProductCode,
					Available:   p.CurrentStock,
					Requested:   required[id],
				}
			}
		}

		subtotal := decimal.Zero
		inv := &entity.SalesInvoice{
			InvoiceNumber: req.InvoiceNumber,
			CustomerID:    req.CustomerID,
			CustomerName:  req.CustomerName,
			DateOfSale:    req.DateOfSale,
			Discount:      req.Discount,
		}
		for _, item := range req.Items {
			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			inv.Items = append(inv.Items, entity.SalesInvoiceItem{
				ProductID:    item.ProductID,
				QuantitySold: item.Quantity,
				UnitPrice:    item.UnitPrice,
				Total:        lineTotal,
			})
		}
		inv.TotalAmount = subtotal.Sub(req.Discount)

		if err := tx.Create(inv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateDocumentNumberError{DocType: "invoice", Number: req.InvoiceNumber}
			}
			return fmt.Errorf("create invoice: %w", err)
		}

		if err := applyStockDelta(tx, ids, required, -1); err != nil {
			return err
		}

		// 低库存预警：按产品只写一条，基于累计扣减后的库存判断
		for _, id := range ids {
			p := products[id]
			newStock := p.CurrentStock - required[id]
			if newStock < p.MinStockThreshold {
				alert := entity.Alert{
					ProductID: id,
					Message:   fmt.Sprintf("Low stock alert for %s: %d remaining.", p.Description, newStock),
					Status:    entity.AlertStatusActive,
				}
				if err := tx.Create(&alert).Error; err != nil {
					return fmt.Errorf("create alert for %s: %w", p.ProductCode, err)
				}
			}
		}

		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return invoice, nil
}

// === 退货贷项单 ===

type CreateReturnRequest struct {
	CreditNoteNumber string              `json:"credit_note_number" binding:"required"`
	InvoiceID        uint                `json:"invoice_id" binding:"required"`
	CustomerID       uint                `json:"customer_id" binding:"required"`
	DateOfReturn     time.Time           `json:"date_of_return" binding:"required"`
	Remarks          string              `json:"remarks"`
	DiscountPercent  decimal.Decimal     `json:"discount_percent"`
	Items            []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

type ReturnItemRequest struct {
	ProductID             uint            `json:"product_id" binding:"required"`
	PartNumber            string          `json:"part_number"`
	Description           string          `json:"description"`
	Brand                 string          `json:"brand"`
	Model                 string          `json:"model"`
	AdditionalDescription string          `json:"additional_description"`
	Quantity              int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
}

// CreateReturn 提交退货贷项单：每个产品的退货数量不得超过原发票售出数量
// 减去该发票历史贷项单已退数量，校验通过后写单据并把库存加回。
func (s *LedgerService) CreateReturn(ctx context.Context, req *CreateReturnRequest) (*entity.CreditNote, error) {
	var note *entity.CreditNote

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invItems []entity.SalesInvoiceItem
		if err := tx.Where("invoice_id = ?", req.InvoiceID).Find(&invItems).Error; err != nil {
			return fmt.Errorf("load invoice items: %w", err)
		}
		if len(invItems) == 0 {
			return &InvoiceNotFoundError{InvoiceID: req.InvoiceID}
		}

		sold := make(map[uint]int, len(invItems))
		for _, it := range invItems {
			sold[it.ProductID] += it.QuantitySold
		}

		returned, err := sumReturnedByInvoice(tx, req.InvoiceID)
		if err != nil {
			return err
		}

		requested, ids := quantityByProduct(req.Items, func(it ReturnItemRequest) (uint, int) {
			return it.ProductID, it.Quantity
		})

		products, err := lockProducts(tx, ids)
		if err != nil {
			return err
		}

		for _, id := range ids {
			p, ok := products[id]
			if !ok {
				return &ProductNotFoundError{ProductID: id}
			}
			returnable := sold[id] - returned[id]
			if requested[id] > returnable {
				if returnable < 0 {
					returnable = 0
				}
				return &ReturnExceedsOriginalError{
					ProductCode: p.ProductCode,
					Returnable:  returnable,
					Requested:   requested[id],
				}
			}
		}

		totalBill := decimal.Zero
		cn := &entity.CreditNote{
			CreditNoteNumber: req.CreditNoteNumber,
			InvoiceID:        req.InvoiceID,
			CustomerID:       req.CustomerID,
			DateOfReturn:     req.DateOfReturn,
			Remarks:          req.Remarks,
			DiscountPercent:  req.DiscountPercent,
		}
		for _, item := range req.Items {
			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totalBill = totalBill.Add(lineTotal)
			cn.Items = append(cn.Items, entity.CreditNoteItem{
				ProductID:             item.ProductID,
				PartNumber:            item.PartNumber,
				Description:           item.Description,
				Brand:                 item.Brand,
				Model:                 item.Model,
				AdditionalDescription: item.AdditionalDescription,
				Quantity:              item.Quantity,
				UnitPrice:             item.UnitPrice,
				TotalValue:            lineTotal,
			})
		}
		cn.TotalBillValue = totalBill
		cn.DiscountAmount = totalBill.Mul(req.DiscountPercent).Div(decimal.NewFromInt(100)).Round(2)
		cn.GrandTotal = totalBill.Sub(cn.DiscountAmount)

		if err := tx.Create(cn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateDocumentNumberError{DocType: "credit note", Number: req.CreditNoteNumber}
			}
			return fmt.Errorf("create credit note: %w", err)
		}

		if err := applyStockDelta(tx, ids, requested, +1); err != nil {
			return err
		}

		note = cn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return note, nil
}

// === 领用单 ===

type IssueStockRequest struct {
	IssueOrderNumber string             `json:"issue_order_number" binding:"required"`
	RepID            uint               `json:"rep_id" binding:"required"`
	DateOfOrder      time.Time          `json:"date_of_order" binding:"required"`
	Items            []IssueItemRequest `json:"items" binding:"required,min=1,dive"`
}

type IssueItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// IssueStock 提交领用单：与销售相同的库存充足性校验，但只扣减库存，
// 不产生计价记录也不写低库存预警。
func (s *LedgerService) IssueStock(ctx context.Context, req *IssueStockRequest) (*entity.IssueOrder, error) {
	var order *entity.IssueOrder

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		required, ids := quantityByProduct(req.Items, func(it IssueItemRequest) (uint, int) {
			return it.ProductID, it.Quantity
		})

		products, err := lockProducts(tx, ids)
		if err != nil {
			return err
		}

		for _, id := range ids {
			p, ok := products[id]
			if !ok {
				return &ProductNotFoundError{ProductID: id}
			}
			if required[id] > p.CurrentStock {
				return &InsufficientStockError{
					ProductCode: p.ProductCode,
					Available:   p.CurrentStock,
					Requested:   required[id],
				}
			}
		}

		o := &entity.IssueOrder{
			IssueOrderNumber: req.IssueOrderNumber,
			RepID:            req.RepID,
			DateOfOrder:      req.DateOfOrder,
		}
		for _, item := range req.Items {
			o.Items = append(o.Items, entity.IssueOrderItem{
				ProductID:      item.ProductID,
				QuantityIssued: item.Quantity,
			})
		}

		if err := tx.Create(o).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateDocumentNumberError{DocType: "issue order", Number: req.IssueOrderNumber}
			}
			return fmt.Errorf("create issue order: %w", err)
		}

		if err := applyStockDelta(tx, ids, required, -1); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return order, nil
}

// === 内部辅助 ===

// quantityByProduct 按产品累计行项数量，返回升序的产品ID（固定锁顺序）
func quantityByProduct[T any](items []T, keyFn func(T) (uint, int)) (map[uint]int, []uint) {
	quantities := make(map[uint]int, len(items))
	var ids []uint
	for _, item := range items {
		id, qty := keyFn(item)
		if _, seen := quantities[id]; !seen {
			ids = append(ids, id)
		}
		quantities[id] += qty
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return quantities, ids
}

// lockProducts 按主键升序 FOR UPDATE 锁定产品行
func lockProducts(tx *gorm.DB, ids []uint) (map[uint]entity.Product, error) {
	var products []entity.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	byID := make(map[uint]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// applyStockDelta 对每个产品应用 sign*quantity 的库存增量
func applyStockDelta(tx *gorm.DB, ids []uint, quantities map[uint]int, sign int) error {
	for _, id := range ids {
		err := tx.Model(&entity.Product{}).Where("id = ?", id).
			UpdateColumn("current_stock", gorm.Expr("current_stock + ?", sign*quantities[id])).Error
		if err != nil {
			return fmt.Errorf("update stock for product %d: %w", id, err)
		}
	}
	return nil
}

// sumReturnedByInvoice 该发票下各产品在历史贷项单中已退数量合计
func sumReturnedByInvoice(tx *gorm.DB, invoiceID uint) (map[uint]int, error) {
	type row struct {
		ProductID uint
		Total     int
	}
	var rows []row
	err := tx.Raw(`
		SELECT i.product_id, COALESCE(SUM(i.quantity), 0) AS total
		FROM sms_credit_note_items i
		JOIN sms_credit_notes cn ON cn.id = i.credit_note_id
		WHERE cn.invoice_id = ?
		GROUP BY i.product_id
	`, invoiceID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sum returned quantities: %w", err)
	}
	returned := make(map[uint]int, len(rows))
	for _, r := range rows {
		returned[r.ProductID] = r.Total
	}
	return returned, nil
}

func (s *LedgerService) invalidateStats(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, dashboardStatsKey)
}
