package utils

import (
	"lendboard/internal/domain/entity"
)

// BatchStrings разбивает срез строк на батчи не больше batchSize элементов.
func BatchStrings(items []string, batchSize int) [][]string {
	if batchSize <= 0 {
		batchSize = len(items)
	}
	if len(items) == 0 {
		return [][]string{}
	}

	var batches [][]string
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}

// SafeDerefFloat64 безопасно разыменовывает указатель и получает float64 через геттер.
// Для nil возвращает 0.
func SafeDerefFloat64[T any](v *T, getter func(T) float64) float64 {
	if v == nil {
		return 0.0
	}
	return getter(*v)
}

// TokenSymbols возвращает символы токенов в исходном порядке.
func TokenSymbols(tokens []entity.TokenInfo) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Symbol)
	}
	return out
}
