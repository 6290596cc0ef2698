package entity

import "math/big"

// RawRow is a row as returned by the on-chain data source, prior to enrichment.
// The set of implementations is closed: RawDepositRow and RawTransactionRow.
type RawRow interface {
	TokenID() string
	RawAmount() *big.Int
	rawRow()
}

// RawDepositRow is a single deposit of the connected wallet.
type RawDepositRow struct {
	Token  string   // felt as returned by the node (hex)
	Amount *big.Int // u256
}

// RawTransactionRow is a single entry of the wallet's transaction history.
type RawTransactionRow struct {
	Token           string
	Amount          *big.Int
	TransactionType string // felt, decimal string form
	Timestamp       uint64 // seconds
	TxHash          string // felt
}

// RawBorrowRow is an opaque borrowed-position entry. Its layout is not known yet,
// so it is kept as the felts the node returned.
type RawBorrowRow struct {
	Felt string
}

func (r RawDepositRow) TokenID() string     { return r.Token }
func (r RawDepositRow) RawAmount() *big.Int { return r.Amount }
func (RawDepositRow) rawRow()               {}

func (r RawTransactionRow) TokenID() string     { return r.Token }
func (r RawTransactionRow) RawAmount() *big.Int { return r.Amount }
func (RawTransactionRow) rawRow()               {}
