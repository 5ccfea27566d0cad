package i18n

import (
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	ruPrinter = message.NewPrinter(language.Russian)
	enPrinter = message.NewPrinter(language.English)
)

// FormatPrice renders a reference (ruble) price for locale:
// ru "1 000 ₽" with CLDR grouping, en "$12" converted at domain.USDPerRUB.
// Both are rounded to whole units, half away from zero.
func FormatPrice(price domain.Money, locale domain.Locale) string {
	if locale == domain.LocaleEn {
		usd := price
		if usd.Currency != currency.USD {
			usd = price.ToUSD()
		}
		return "$" + formatWhole(enPrinter, usd.Amount)
	}

	return formatWhole(ruPrinter, price.Amount) + " ₽"
}

// FormatAmount is FormatPrice for a bare reference amount.
func FormatAmount(amount decimal.Decimal, locale domain.Locale) string {
	return FormatPrice(domain.RUB(amount), locale)
}

func formatWhole(p *message.Printer, amount decimal.Decimal) string {
	return p.Sprintf("%v", number.Decimal(amount.Round(0).IntPart()))
}
