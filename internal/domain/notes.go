package domain

import (
	"strings"
	"unicode"
)

// SanitizeText обрезает пробелы и удаляет управляющие символы, кроме перевода строки и табуляции
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}
