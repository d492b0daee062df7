package billing

import "github.com/shopspring/decimal"

// TaxRate tarifa de IVA fija aplicada al subtotal (19%).
var TaxRate = decimal.NewFromFloat(0.19)

// Totals totales derivados de las líneas del carrito.
type Totals struct {
	SubTotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}

// CalculateTotals recalcula los totales desde cero a partir de las líneas.
// Es una función pura: mismo conjunto de líneas, mismos totales, sin
// acumuladores ocultos.
//
//	SubTotal = Σ item.Subtotal
//	Taxes    = SubTotal × TaxRate
//	Total    = SubTotal + Taxes
func CalculateTotals(items []CartItem) Totals {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.Subtotal)
	}
	taxes := subTotal.Mul(TaxRate)
	return Totals{
		SubTotal: subTotal,
		Taxes:    taxes,
		Total:    subTotal.Add(taxes),
	}
}
