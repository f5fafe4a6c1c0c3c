package pdf

import (
	"bytes"
	"fmt"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// 单据抬头信息
const (
	letterheadTitle   = "SMS Pro"
	letterheadCompany = "NovaLink Innovations"
	letterheadAddress = "123 Business Street, Tech City"
	letterheadContact = "Contact: +94 11 2233445"
)

// Renderer 单据PDF渲染器
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderInvoice 渲染销售发票PDF，发票需预加载客户和明细
func (r *Renderer) RenderInvoice(inv *entity.SalesInvoice) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	r.letterhead(doc, "INVOICE", inv.InvoiceNumber, inv.DateOfSale.Format("2006-01-02"))

	// 客户信息
	doc.SetY(52)
	doc.SetTextColor(161, 161, 170)
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(0, 5, "CLIENT DETAILS", "", 1, "L", false, 0, "")
	doc.SetTextColor(24, 24, 27)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, inv.CustomerName, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	if inv.Customer != nil {
		doc.CellFormat(0, 5, inv.Customer.CompanyName, "", 1, "L", false, 0, "")
		doc.CellFormat(0, 5, inv.Customer.Address, "", 1, "L", false, 0, "")
		doc.CellFormat(0, 5, inv.Customer.ContactNumber, "", 1, "L", false, 0, "")
	}

	// 明细表
	doc.SetY(90)
	widths := []float64{10, 25, 28, 25, 52, 15, 20, 20}
	headers := []string{"No", "Brand", "Part No", "Model", "Description", "QTY", "Unit Price", "Total Value"}
	r.tableHeader(doc, widths, headers)

	totalQty := 0
	subtotal := decimal.Zero
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(24, 24, 27)
	for i, item := range inv.Items {
		brand, code, model := "-", "", "-"
		description := ""
		if item.Product != nil {
			if item.Product.Brand != "" {
				brand = item.Product.Brand
			}
			code = item.Product.ProductCode
			if item.Product.Model != "" {
				model = item.Product.Model
			}
			description = item.Product.Description
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			brand,
			code,
			model,
			description,
			fmt.Sprintf("%d", item.QuantitySold),
			item.UnitPrice.StringFixed(2),
			item.Total.StringFixed(2),
		}
		aligns := []string{"L", "L", "L", "L", "L", "C", "R", "R"}
		for j, cell := range cells {
			doc.CellFormat(widths[j], 7, cell, "B", 0, aligns[j], false, 0, "")
		}
		doc.Ln(-1)
		totalQty += item.QuantitySold
		subtotal = subtotal.Add(item.Total)
	}

	// 合计
	doc.Ln(6)
	y := doc.GetY()
	doc.SetFont("Helvetica", "", 9)
	doc.Text(10, y+5, "Total Quantity:")
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(40, y+5, fmt.Sprintf("%d", totalQty))

	discountPercent := decimal.Zero
	if !subtotal.IsZero() {
		discountPercent = inv.Discount.Mul(decimal.NewFromInt(100)).Div(subtotal).Round(0)
	}
	r.totalsRow(doc, "Total", "Rs. "+subtotal.StringFixed(2), false)
	r.totalsRow(doc, fmt.Sprintf("Discount (%s%%)", discountPercent.String()), "Rs. "+inv.Discount.StringFixed(2), false)
	r.totalsRow(doc, "Grand Total", "Rs. "+inv.TotalAmount.StringFixed(2), true)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCreditNote 渲染退货贷项单PDF，需预加载原发票及其客户
func (r *Renderer) RenderCreditNote(cn *entity.CreditNote) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	r.letterhead(doc, "CREDIT NOTE", cn.CreditNoteNumber, cn.DateOfReturn.Format("2006-01-02"))

	// 客户信息与原发票号
	doc.SetY(52)
	doc.SetTextColor(161, 161, 170)
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(0, 5, "CLIENT DETAILS", "", 1, "L", false, 0, "")
	doc.SetTextColor(24, 24, 27)
	if cn.Invoice != nil {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(0, 6, cn.Invoice.CustomerName, "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		if cn.Invoice.Customer != nil {
			doc.CellFormat(0, 5, cn.Invoice.Customer.CompanyName, "", 1, "L", false, 0, "")
			doc.CellFormat(0, 5, cn.Invoice.Customer.Address, "", 1, "L", false, 0, "")
			doc.CellFormat(0, 5, cn.Invoice.Customer.ContactNumber, "", 1, "L", false, 0, "")
		}
		doc.CellFormat(0, 5, "Against Invoice: "+cn.Invoice.InvoiceNumber, "", 1, "L", false, 0, "")
	}

	// 明细表
	doc.SetY(92)
	widths := []float64{10, 28, 50, 22, 22, 15, 24, 24}
	headers := []string{"No", "Part No", "Description", "Brand", "Model", "QTY", "Unit Price", "Total Value"}
	r.tableHeader(doc, widths, headers)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(24, 24, 27)
	for i, item := range cn.Items {
		description := item.Description
		if item.AdditionalDescription != "" {
			description += " (" + item.AdditionalDescription + ")"
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			item.PartNumber,
			description,
			item.Brand,
			item.Model,
			fmt.Sprintf("%d", item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.TotalValue.StringFixed(2),
		}
		aligns := []string{"L", "L", "L", "L", "L", "C", "R", "R"}
		for j, cell := range cells {
			doc.CellFormat(widths[j], 7, cell, "B", 0, aligns[j], false, 0, "")
		}
		doc.Ln(-1)
	}

	// 合计
	doc.Ln(6)
	r.totalsRow(doc, "Total Bill Value", "Rs. "+cn.TotalBillValue.StringFixed(2), false)
	r.totalsRow(doc, fmt.Sprintf("Discount (%s%%)", cn.DiscountPercent.String()), "Rs. "+cn.DiscountAmount.StringFixed(2), false)
	r.totalsRow(doc, "Grand Total", "Rs. "+cn.GrandTotal.StringFixed(2), true)

	if cn.Remarks != "" {
		doc.Ln(10)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(113, 113, 122)
		doc.MultiCell(0, 5, "Remarks: "+cn.Remarks, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render credit note pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) letterhead(doc *fpdf.Fpdf, title, number, date string) {
	// 左侧徽标占位块
	doc.SetFillColor(24, 24, 27)
	doc.Rect(10, 12, 16, 16, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(15, 23, "S")

	doc.SetTextColor(24, 24, 27)
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(30, 18, letterheadTitle)
	doc.SetFont("Helvetica", "", 9)
	doc.Text(30, 24, letterheadCompany)
	doc.Text(30, 29, letterheadAddress)
	doc.Text(30, 34, letterheadContact)

	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(120, 13)
	doc.CellFormat(80, 8, title, "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.SetX(120)
	doc.CellFormat(80, 5, "No: "+number, "", 1, "R", false, 0, "")
	doc.SetX(120)
	doc.CellFormat(80, 5, "Date: "+date, "", 1, "R", false, 0, "")
}

func (r *Renderer) tableHeader(doc *fpdf.Fpdf, widths []float64, headers []string) {
	doc.SetFillColor(244, 244, 245)
	doc.SetTextColor(113, 113, 122)
	doc.SetFont("Helvetica", "B", 8)
	for i, h := range headers {
		align := "L"
		if i >= len(headers)-3 {
			align = "R"
		}
		doc.CellFormat(widths[i], 8, h, "", 0, align, true, 0, "")
	}
	doc.Ln(-1)
}

func (r *Renderer) totalsRow(doc *fpdf.Fpdf, label, value string, bold bool) {
	if bold {
		doc.SetFont("Helvetica", "B", 11)
	} else {
		doc.SetFont("Helvetica", "", 9)
	}
	doc.SetTextColor(24, 24, 27)
	doc.SetX(120)
	doc.CellFormat(45, 6, label, "", 0, "R", false, 0, "")
	doc.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
}
