package service_test

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"lendboard/internal/app/port"
	"lendboard/internal/app/provider"
	"lendboard/internal/app/service"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/logger"
)

const (
	strkAddr = "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d"
	ethAddr  = "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"

	depositCode    = "19216509646883156"
	withdrawalCode = "412198569506257514217804"
)

// fakeSource is an in-memory OnChainDataSource. history is indexed by 1-based page.
type fakeSource struct {
	mu          sync.Mutex
	deposits    []entity.RawDepositRow
	history     map[uint32][]entity.RawTransactionRow
	borrowed    []entity.RawBorrowRow
	err         error
	historyReqs []uint32
}

func (f *fakeSource) GetUserDeposits(_ context.Context, wallet string) ([]entity.RawDepositRow, error) {
	if wallet == "" {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.deposits, nil
}

func (f *fakeSource) GetTransactionHistory(_ context.Context, wallet string, page, _ uint32) ([]entity.RawTransactionRow, error) {
	if wallet == "" {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyReqs = append(f.historyReqs, page)
	if f.err != nil {
		return nil, f.err
	}
	rows, ok := f.history[page]
	if !ok {
		return []entity.RawTransactionRow{}, nil
	}
	return rows, nil
}

func (f *fakeSource) GetBorrowedTokens(_ context.Context, wallet string) ([]entity.RawBorrowRow, error) {
	if wallet == "" {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.borrowed, nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// fakeOracle returns prices or err. When gate is set, FetchPrices blocks until it is closed.
type fakeOracle struct {
	prices entity.PriceTable
	err    error
	gate   chan struct{}
}

func (o *fakeOracle) FetchPrices(ctx context.Context) (entity.PriceTable, error) {
	if o.gate != nil {
		select {
		case <-o.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if o.err != nil {
		return nil, o.err
	}
	return o.prices, nil
}

func defaultPrices() entity.PriceTable {
	return entity.PriceTable{entity.SymbolETH: 3000, entity.SymbolSTRK: 0.5}
}

func newRegistry(t *testing.T) port.TokenRegistry {
	t.Helper()
	reg, err := service.NewTokenRegistry(provider.NewTokenProvider(nil, logger.Discard()), logger.Discard())
	if err != nil {
		t.Fatalf("NewTokenRegistry: %v", err)
	}
	return reg
}

func newResolver(t *testing.T) *service.RowResolver {
	t.Helper()
	return service.NewRowResolver(newRegistry(t), 18, "sepolia.voyager.online", logger.Discard())
}

func newDeps(t *testing.T, src port.OnChainDataSource, oracle port.PriceOracle) service.SessionDeps {
	t.Helper()
	return service.SessionDeps{
		Source:   src,
		Prices:   service.NewPriceService(oracle, "fake", logger.Discard()),
		Resolver: newResolver(t),
		Pager:    service.NewPaginator(5, 5),
		Options:  service.SessionOptions{HistoryPageSize: 5, HistoryMaxPages: 1},
		Logger:   logger.Discard(),
	}
}

// wei returns n * 10^18.
func wei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func transactions(n int) []entity.RawTransactionRow {
	rows := make([]entity.RawTransactionRow, n)
	for i := range rows {
		rows[i] = entity.RawTransactionRow{
			Token:           ethAddr,
			Amount:          wei(int64(i + 1)),
			TransactionType: depositCode,
			Timestamp:       1700000000,
			TxHash:          "0xabc",
		}
	}
	return rows
}
