// internal/models/common.go
package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals go over the wire as JSON numbers (19.99), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// MoneyScale is the number of fractional digits stored for prices and totals.
const MoneyScale = 2

// MaxMoney is the largest amount a decimal(10,2) column holds.
var MaxMoney = decimal.New(9999999999, -MoneyScale)

// RoundMoney rounds d half away from zero to MoneyScale digits.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}
