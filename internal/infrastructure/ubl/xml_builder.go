// Package ubl genera una representación XML simple de la factura, inspirada
// en UBL, para importación en sistemas contables. No firma el documento.
package ubl

import (
	"fmt"

	"github.com/beevik/etree"

	appbilling "github.com/dmorales/facturas-api/internal/application/billing"
	"github.com/dmorales/facturas-api/internal/domain/entity"
)

var _ appbilling.InvoiceXMLBuilder = (*XMLBuilderService)(nil)

// XMLBuilderService implementa billing.InvoiceXMLBuilder con etree.
type XMLBuilderService struct{}

// NewXMLBuilderService construye el servicio.
func NewXMLBuilderService() *XMLBuilderService { return &XMLBuilderService{} }

// BuildInvoiceXML serializa la factura con sus líneas.
func (s *XMLBuilderService) BuildInvoiceXML(invoice *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateElement("ID").SetText(invoice.ID)
	root.CreateElement("IssueDate").SetText(invoice.Date.Format("2006-01-02"))
	root.CreateElement("IssueTime").SetText(invoice.Date.Format("15:04:05"))
	root.CreateElement("Status").SetText(invoice.Status)

	seller := root.CreateElement("SellerParty")
	seller.CreateElement("ID").SetText(invoice.SalespersonID)
	seller.CreateElement("Email").SetText(invoice.SalespersonEmail)

	customer := root.CreateElement("CustomerParty")
	customer.CreateElement("ID").SetText(invoice.ClientID)
	customer.CreateElement("Name").SetText(invoice.ClientName)
	customer.CreateElement("Identification").SetText(invoice.ClientIdentification)

	lines := root.CreateElement("InvoiceLines")
	for _, item := range items {
		l := lines.CreateElement("InvoiceLine")
		l.CreateAttr("number", fmt.Sprintf("%d", item.LineNumber))
		l.CreateElement("ProductID").SetText(item.ProductID)
		l.CreateElement("Description").SetText(item.Name)
		l.CreateElement("PriceAmount").SetText(item.Price.StringFixed(2))
		l.CreateElement("InvoicedQuantity").SetText(fmt.Sprintf("%d", item.Quantity))
		l.CreateElement("LineExtensionAmount").SetText(item.Subtotal.StringFixed(2))
	}

	totals := root.CreateElement("MonetaryTotal")
	totals.CreateElement("LineExtensionAmount").SetText(invoice.SubTotal.StringFixed(2))
	totals.CreateElement("TaxAmount").SetText(invoice.Taxes.StringFixed(2))
	totals.CreateElement("PayableAmount").SetText(invoice.Total.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar factura: %w", err)
	}
	return out, nil
}
