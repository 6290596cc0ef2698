package service

import "lendboard/internal/pkg/utils"

// UnknownTransactionType is the label of any code missing from transactionTypeLabels.
const UnknownTransactionType = "Unknown"

// Transaction type codes are Cairo short strings, keyed here by their decimal form.
var transactionTypeLabels = map[string]string{
	"19216509646883156":        "DEPOSIT",    // 'DEPOSIT'
	"412198569506257514217804": "WITHDRAWAL", // 'WITHDRAWAL'
}

// TransactionTypeLabel maps a raw transaction type felt (decimal or hex) to its label.
func TransactionTypeLabel(code string) string {
	key, err := utils.FeltToDecimal(code)
	if err != nil {
		return UnknownTransactionType
	}
	if label, ok := transactionTypeLabels[key]; ok {
		return label
	}
	return UnknownTransactionType
}
