package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有SMS表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 基础数据
		&User{},
		&Product{},
		&Customer{},

		// 入库
		&GRN{},
		&GRNItem{},

		// 销售
		&SalesInvoice{},
		&SalesInvoiceItem{},

		// 退货
		&CreditNote{},
		&CreditNoteItem{},

		// 领用
		&IssueOrder{},
		&IssueOrderItem{},

		// 预警
		&Alert{},
	)
}
