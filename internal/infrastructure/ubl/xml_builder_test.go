package ubl_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales/facturas-api/internal/domain/entity"
	"github.com/dmorales/facturas-api/internal/infrastructure/ubl"
)

func facturaDemo() (*entity.Invoice, []*entity.InvoiceItem) {
	inv := &entity.Invoice{
		ID:                   "inv-001",
		ClientID:             "cli-001",
		ClientName:           "Comercial Andina SAS",
		ClientIdentification: "900123456-7",
		Date:                 time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		SalespersonID:        "usr-001",
		SalespersonEmail:     "vendedor@facturas.test",
		SubTotal:             decimal.NewFromInt(250_000),
		Taxes:                decimal.NewFromInt(47_500),
		Total:                decimal.NewFromInt(297_500),
		Status:               entity.InvoiceStatusIssued,
	}
	items := []*entity.InvoiceItem{
		{ID: "it-1", InvoiceID: inv.ID, LineNumber: 1, ProductID: "prod-a", Name: "Teclado", Price: decimal.NewFromInt(100_000), Quantity: 2, Subtotal: decimal.NewFromInt(200_000)},
		{ID: "it-2", InvoiceID: inv.ID, LineNumber: 2, ProductID: "prod-b", Name: "Mouse", Price: decimal.NewFromInt(50_000), Quantity: 1, Subtotal: decimal.NewFromInt(50_000)},
	}
	return inv, items
}

func TestBuildInvoiceXML_EstructuraYTotales(t *testing.T) {
	inv, items := facturaDemo()
	out, err := ubl.NewXMLBuilderService().BuildInvoiceXML(inv, items)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("Invoice")
	require.NotNil(t, root)
	assert.Equal(t, "inv-001", root.SelectElement("ID").Text())
	assert.Equal(t, "2025-03-01", root.SelectElement("IssueDate").Text())
	assert.Equal(t, "Comercial Andina SAS", root.SelectElement("CustomerParty").SelectElement("Name").Text())

	totals := root.SelectElement("MonetaryTotal")
	require.NotNil(t, totals)
	assert.Equal(t, "250000.00", totals.SelectElement("LineExtensionAmount").Text())
	assert.Equal(t, "47500.00", totals.SelectElement("TaxAmount").Text())
	assert.Equal(t, "297500.00", totals.SelectElement("PayableAmount").Text())
}

// El atributo number de cada línea sale del número de línea persistido, no de
// la posición del slice: una lectura desordenada no puede renumerar las líneas.
func TestBuildInvoiceXML_NumeraLineasPorLineNumber(t *testing.T) {
	inv, items := facturaDemo()
	// Simular un store que devolvió las líneas en otro orden físico
	items[0], items[1] = items[1], items[0]

	out, err := ubl.NewXMLBuilderService().BuildInvoiceXML(inv, items)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	lines := doc.SelectElement("Invoice").SelectElement("InvoiceLines").SelectElements("InvoiceLine")
	require.Len(t, lines, 2)
	assert.Equal(t, "2", lines[0].SelectAttrValue("number", ""))
	assert.Equal(t, "prod-b", lines[0].SelectElement("ProductID").Text())
	assert.Equal(t, "1", lines[1].SelectAttrValue("number", ""))
	assert.Equal(t, "prod-a", lines[1].SelectElement("ProductID").Text())
}
