// Package common содержит вспомогательные функции форматирования и общие
// ошибки, которые используются во всём проекте.
package common

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces: сколько знаков после запятой показывать у кредитов.
const MoneyPlaces = 2

// FormatMoney форматирует сумму с разделителями тысяч, без хвостовых нулей.
// Суммы точнее MoneyPlaces (дробные выплаты) выводятся как есть, без
// округления.
//
// Параметры:
//   - d: сумма в кредитах
//
// Возвращает строку вида "1 234.5".
//
// Пример:
//
//	FormatMoney(2350)    → "2 350"
//	FormatMoney(1234.5)  → "1 234.5"
//	FormatMoney(-0.125)  → "-0.125"
func FormatMoney(d decimal.Decimal) string {
	if r := d.Round(MoneyPlaces); r.Equal(d) {
		d = r
	}
	s := d.String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var sb strings.Builder
	sb.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	if hasFrac {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

// FormatCredits добавляет к сумме слово credit/credits.
//
//	FormatCredits(1) → "1 credit"
//	FormatCredits(5) → "5 credits"
func FormatCredits(d decimal.Decimal) string {
	word := "credits"
	if d.Abs().Equal(decimal.NewFromInt(1)) {
		word = "credit"
	}
	return FormatMoney(d) + " " + word
}

// FormatSigned ставит "+" перед неотрицательной суммой.
func FormatSigned(d decimal.Decimal) string {
	if d.Sign() >= 0 {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}

// FormatPercent переводит долю (0.246) в проценты ("24.60%").
func FormatPercent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatDateTime форматирует t как "02.01.2006 15:04" в часовом поясе loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006 15:04")
}
