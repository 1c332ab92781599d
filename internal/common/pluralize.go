// Package common: pluralize.go выбирает форму единственного или
// множественного числа для счётчиков в ответах бота.
package common

import "fmt"

// Pluralize возвращает singular при n == ±1, иначе plural.
//
//	Pluralize(1, "line", "lines") → "line"
//	Pluralize(3, "line", "lines") → "lines"
func Pluralize(n int64, singular, plural string) string {
	if n == 1 || n == -1 {
		return singular
	}
	return plural
}

// FormatCount форматирует "n слово" с разделителями тысяч.
//
//	FormatCount(10000, "spin", "spins") → "10 000 spins"
func FormatCount(n int64, singular, plural string) string {
	return fmt.Sprintf("%s %s", FormatNumber(n), Pluralize(n, singular, plural))
}

// FormatNumber разбивает целое число пробелами по тысячам.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s %03d", FormatNumber(n/1000), n%1000)
}
