package starknet

import (
	"fmt"

	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Entry points of the lending protocol contract.
const (
	EntryPointUserDeposits       = "get_user_deposits"
	EntryPointTransactionHistory = "get_transaction_history"
	EntryPointBorrowedTokens     = "get_borrowed_tokens"
)

const (
	depositFelts     = 3 // token, amount.low, amount.high
	transactionFelts = 6 // transaction_type, token, amount.low, amount.high, timestamp, tx_hash
)

var selectorMask = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 250), uint256.NewInt(1))

// Selector returns starknet_keccak(name): Keccak-256 truncated to its low 250 bits, as a minimal hex felt.
func Selector(name string) string {
	v := new(uint256.Int).SetBytes(crypto.Keccak256([]byte(name)))
	return v.And(v, selectorMask).Hex()
}

// feltHex converts a raw identifier to the minimal hex form accepted by JSON-RPC nodes.
func feltHex(raw string) (string, error) {
	v, err := utils.ParseFelt(raw)
	if err != nil {
		return "", err
	}
	return v.Hex(), nil
}

func calldata(raw ...string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		h, err := feltHex(r)
		if err != nil {
			return nil, fmt.Errorf("calldata: %w", err)
		}
		out = append(out, h)
	}
	return out, nil
}

// arrayBody reads the length prefix of a serialized Array<T> and returns the element felts.
func arrayBody(felts []string, width int) (int, []string, error) {
	if len(felts) == 0 {
		return 0, nil, fmt.Errorf("empty result, expected array length prefix")
	}
	n, err := utils.ParseFelt(felts[0])
	if err != nil {
		return 0, nil, fmt.Errorf("array length: %w", err)
	}
	body := felts[1:]
	if len(body)%width != 0 || !n.IsUint64() || n.Uint64() != uint64(len(body)/width) {
		return 0, nil, fmt.Errorf("array length %s does not match %d result felts of width %d", n.Dec(), len(body), width)
	}
	return int(n.Uint64()), body, nil
}

// DecodeDeposits decodes Array<Deposit>.
func DecodeDeposits(felts []string) ([]entity.RawDepositRow, error) {
	n, body, err := arrayBody(felts, depositFelts)
	if err != nil {
		return nil, fmt.Errorf("decode deposits: %w", err)
	}
	rows := make([]entity.RawDepositRow, 0, n)
	for i := 0; i < n; i++ {
		f := body[i*depositFelts : (i+1)*depositFelts]
		amount, err := utils.U256FromFelts(f[1], f[2])
		if err != nil {
			return nil, fmt.Errorf("decode deposits: row %d: %w", i, err)
		}
		rows = append(rows, entity.RawDepositRow{Token: f[0], Amount: amount})
	}
	return rows, nil
}

// DecodeTransactions decodes Array<Transaction>.
func DecodeTransactions(felts []string) ([]entity.RawTransactionRow, error) {
	n, body, err := arrayBody(felts, transactionFelts)
	if err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	rows := make([]entity.RawTransactionRow, 0, n)
	for i := 0; i < n; i++ {
		f := body[i*transactionFelts : (i+1)*transactionFelts]
		txType, err := utils.FeltToDecimal(f[0])
		if err != nil {
			return nil, fmt.Errorf("decode transactions: row %d type: %w", i, err)
		}
		amount, err := utils.U256FromFelts(f[2], f[3])
		if err != nil {
			return nil, fmt.Errorf("decode transactions: row %d: %w", i, err)
		}
		ts, err := utils.ParseFelt(f[4])
		if err != nil {
			return nil, fmt.Errorf("decode transactions: row %d timestamp: %w", i, err)
		}
		if !ts.IsUint64() {
			return nil, fmt.Errorf("decode transactions: row %d timestamp overflows u64", i)
		}
		rows = append(rows, entity.RawTransactionRow{
			TransactionType: txType,
			Token:           f[1],
			Amount:          amount,
			Timestamp:       ts.Uint64(),
			TxHash:          f[5],
		})
	}
	return rows, nil
}

// DecodeBorrowed keeps every felt after the length prefix as an opaque entry.
func DecodeBorrowed(felts []string) ([]entity.RawBorrowRow, error) {
	if len(felts) == 0 {
		return nil, fmt.Errorf("decode borrowed: empty result, expected array length prefix")
	}
	if _, err := utils.ParseFelt(felts[0]); err != nil {
		return nil, fmt.Errorf("decode borrowed: array length: %w", err)
	}
	rows := make([]entity.RawBorrowRow, 0, len(felts)-1)
	for _, f := range felts[1:] {
		rows = append(rows, entity.RawBorrowRow{Felt: f})
	}
	return rows, nil
}
