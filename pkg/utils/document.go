package utils

import "strings"

// OnlyDigits strips every non-digit rune from s
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF checks length and both check digits of a CPF.
// Formatting characters are ignored.
func IsValidCPF(raw string) bool {
	cpf := OnlyDigits(raw)
	if len(cpf) != 11 || allSameDigit(cpf) {
		return false
	}
	d := digits(cpf)
	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

// IsValidCNPJ checks length and both check digits of a CNPJ.
func IsValidCNPJ(raw string) bool {
	cnpj := OnlyDigits(raw)
	if len(cnpj) != 14 || allSameDigit(cnpj) {
		return false
	}
	d := digits(cnpj)
	first := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	second := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return weightedDigit(d[:12], first) == d[12] && weightedDigit(d[:13], second) == d[13]
}

func checkDigit(d []int, startWeight int) int {
	weights := make([]int, len(d))
	for i := range d {
		weights[i] = startWeight - i
	}
	return weightedDigit(d, weights)
}

func weightedDigit(d, weights []int) int {
	sum := 0
	for i := range d {
		sum += d[i] * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func digits(s string) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = int(s[i] - '0')
	}
	return out
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
