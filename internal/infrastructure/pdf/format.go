package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer con separador de miles; los montos se muestran como $1,234,567.89.
var printer = message.NewPrinter(language.English)

// formatMoney formatea un monto con símbolo, miles y dos decimales.
func formatMoney(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("$%.2f", f)
}
