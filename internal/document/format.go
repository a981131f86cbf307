package document

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// The single locale/currency in use: Turkish formatting, lira amounts.
var printer = message.NewPrinter(language.Turkish)

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// FormatCurrency renders an amount with the lira sign, Turkish digit
// grouping and exactly two decimals: ₺1.234,56.
func FormatCurrency(amount float64) string {
	return "₺" + printer.Sprintf("%.2f", amount)
}

// FormatPercent renders a tax rate the way it appears on the offer:
// %20, %8,5.
func FormatPercent(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	return "%" + replaceDecimalComma(s)
}

// FormatQuantity trims insignificant zeros: 2, 1,5.
func FormatQuantity(q float64) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	return replaceDecimalComma(s)
}

// FormatDate renders a long-form Turkish date: 02 Ocak 2025.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), turkishMonths[t.Month()-1], t.Year())
}

func replaceDecimalComma(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '.' {
			out[i] = ','
		}
	}
	return string(out)
}
