package port

import (
	"context"

	"lendboard/internal/domain/entity"
)

// OnChainDataSource reads the lending protocol's per-wallet views.
// Every method returns (nil, nil) without any I/O when wallet is empty.
type OnChainDataSource interface {
	GetUserDeposits(ctx context.Context, wallet string) ([]entity.RawDepositRow, error)
	GetTransactionHistory(ctx context.Context, wallet string, page, pageSize uint32) ([]entity.RawTransactionRow, error)
	GetBorrowedTokens(ctx context.Context, wallet string) ([]entity.RawBorrowRow, error)
}
