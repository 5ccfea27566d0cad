package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// USDPerRUB is the fixed display rate. No exchange-rate feed is consulted.
var USDPerRUB = decimal.RequireFromString("0.0124")

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func RUB(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: currency.RUB}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// ToUSD converts a ruble amount with the fixed rate, without rounding.
func (m Money) ToUSD() Money {
	return Money{Amount: m.Amount.Mul(USDPerRUB), Currency: currency.USD}
}
