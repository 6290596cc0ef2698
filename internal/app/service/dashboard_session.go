package service

import (
	"context"
	"sync"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const defaultFetchTimeout = 30 * time.Second

type source int

const (
	srcDeposits source = iota
	srcTransactions
	srcBorrowed
	srcPrices
	sourceCount
)

var sourceNames = [sourceCount]string{"deposits", "transactions", "borrowed", "prices"}

func (s source) String() string { return sourceNames[s] }

var (
	assetsColumns       = []string{"Token", "Quantity", "Value ($)"}
	transactionsColumns = []string{"Transaction Type", "Token", "Quantity", "Amount", "Timestamp", "Hash"}
	positionColumns     = []string{"Asset", "Expected Repayment Time", "Interest Rate", "Amount", ""}
)

// SessionOptions tunes the on-chain reads of a session.
type SessionOptions struct {
	HistoryPageSize uint32
	HistoryMaxPages int
	FetchTimeout    time.Duration
}

// SessionDeps are the collaborators shared by every session.
type SessionDeps struct {
	Source   port.OnChainDataSource
	Prices   *PriceService
	Resolver *RowResolver
	Pager    Paginator
	Options  SessionOptions
	Logger   port.Logger
}

// dashboardSessionImpl implements port.DashboardSession.
// Fetch results replace whole FetchStatus values; Render works on a copied snapshot.
type dashboardSessionImpl struct {
	id     string
	wallet string
	deps   SessionDeps

	mu           sync.RWMutex
	mounted      bool
	tab          entity.Tab
	currentPage  int
	deposits     entity.FetchStatus[[]entity.RawDepositRow]
	transactions entity.FetchStatus[[]entity.RawTransactionRow]
	borrowed     entity.FetchStatus[[]entity.RawBorrowRow]
	prices       entity.FetchStatus[entity.PriceTable]
	generations  [sourceCount]uint64
	inflight     int
	idle         chan struct{}
}

type sessionSnapshot struct {
	tab          entity.Tab
	page         int
	deposits     entity.FetchStatus[[]entity.RawDepositRow]
	transactions entity.FetchStatus[[]entity.RawTransactionRow]
	borrowed     entity.FetchStatus[[]entity.RawBorrowRow]
	prices       entity.FetchStatus[entity.PriceTable]
}

// NewDashboardSession creates an unmounted session for wallet. An empty wallet means no wallet is connected.
func NewDashboardSession(id, wallet string, deps SessionDeps) port.DashboardSession {
	if deps.Options.HistoryPageSize == 0 {
		deps.Options.HistoryPageSize = uint32(DefaultRowsPerPage)
	}
	if deps.Options.HistoryMaxPages <= 0 {
		deps.Options.HistoryMaxPages = 1
	}
	if deps.Options.FetchTimeout <= 0 {
		deps.Options.FetchTimeout = defaultFetchTimeout
	}
	idle := make(chan struct{})
	close(idle)
	return &dashboardSessionImpl{
		id:           id,
		wallet:       wallet,
		deps:         deps,
		tab:          entity.DefaultTab,
		currentPage:  1,
		deposits:     entity.Pending[[]entity.RawDepositRow](),
		transactions: entity.Pending[[]entity.RawTransactionRow](),
		borrowed:     entity.Pending[[]entity.RawBorrowRow](),
		prices:       entity.Pending[entity.PriceTable](),
		idle:         idle,
	}
}

func (s *dashboardSessionImpl) ID() string     { return s.id }
func (s *dashboardSessionImpl) Wallet() string { return s.wallet }

// Mount starts the three on-chain reads and the single price fetch. Later calls are no-ops.
func (s *dashboardSessionImpl) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.mu.Unlock()

	s.deps.Logger.Debug("Mounting dashboard session", "session", s.id, "wallet", s.wallet)
	s.startRound(ctx,
		s.depositsJob(false),
		s.transactionsJob(false),
		s.borrowedJob(false),
		s.pricesJob(),
	)
}

// Refetch re-reads the on-chain datasets in the background, keeping current values visible.
func (s *dashboardSessionImpl) Refetch(ctx context.Context) {
	s.startRound(ctx,
		s.depositsJob(true),
		s.transactionsJob(true),
		s.borrowedJob(true),
	)
}

// RetryPrices starts a fresh price fetch. The table stays empty of prices until it completes.
func (s *dashboardSessionImpl) RetryPrices(ctx context.Context) {
	s.startRound(ctx, s.pricesJob())
}

// Wait blocks until no fetch is in flight or ctx is done.
func (s *dashboardSessionImpl) Wait(ctx context.Context) error {
	s.mu.RLock()
	idle := s.idle
	s.mu.RUnlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SelectTab switches the dataset and always resets pagination to the first page.
func (s *dashboardSessionImpl) SelectTab(tab entity.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
	s.currentPage = 1
}

func (s *dashboardSessionImpl) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changePageLocked(s.currentPage + 1)
}

func (s *dashboardSessionImpl) PreviousPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changePageLocked(s.currentPage - 1)
}

// JumpToPage moves to page, ignoring targets outside [1, totalPages].
func (s *dashboardSessionImpl) JumpToPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changePageLocked(page)
}

func (s *dashboardSessionImpl) changePageLocked(target int) {
	if !s.deps.Pager.CanChangeTo(target, s.datasetLenLocked()) {
		return
	}
	s.currentPage = target
}

func (s *dashboardSessionImpl) datasetLenLocked() int {
	switch s.tab {
	case entity.TabAssets:
		return len(s.deposits.Value)
	case entity.TabTransactionHistory:
		return len(s.transactions.Value)
	default:
		return 0
	}
}

// Render derives the table for the current state.
func (s *dashboardSessionImpl) Render() entity.TableView {
	s.mu.RLock()
	snap := sessionSnapshot{
		tab:          s.tab,
		page:         s.currentPage,
		deposits:     s.deposits,
		transactions: s.transactions,
		borrowed:     s.borrowed,
		prices:       s.prices,
	}
	s.mu.RUnlock()
	return s.render(snap)
}

func (s *dashboardSessionImpl) render(v sessionSnapshot) entity.TableView {
	view := entity.TableView{
		Tab:     v.tab.String(),
		TabSlug: v.tab.Slug(),
		Wallet:  s.wallet,
		Rows:    []entity.ResolvedRow{},
		Sources: map[string]entity.SourceStatus{
			srcDeposits.String():     entity.SourceStatusOf(v.deposits, len(v.deposits.Value)),
			srcTransactions.String(): entity.SourceStatusOf(v.transactions, len(v.transactions.Value)),
			srcBorrowed.String():     entity.SourceStatusOf(v.borrowed, len(v.borrowed.Value)),
			srcPrices.String():       entity.SourceStatusOf(v.prices, len(v.prices.Value)),
		},
	}
	if v.prices.State == entity.FetchFailed {
		view.PriceError = entity.PriceFailureMarker
	}
	prices := PriceViewOf(v.prices)
	pager := s.deps.Pager

	switch v.tab {
	case entity.TabAssets:
		view.Columns = assetsColumns
		rows := v.deposits.Value
		switch {
		case v.deposits.Loading():
			view.State = entity.TableLoading
		case len(rows) == 0:
			view.State = entity.TableEmpty
			view.Message = entity.MsgNoData
		case v.deposits.Refetching || v.prices.Loading():
			view.State = entity.TableLoading
		default:
			page, _ := Paginate(pager, rows, v.page)
			view.Rows = s.deps.Resolver.ResolveDeposits(page, prices)
			view.State = entity.TableRows
		}
		if len(rows) > 0 {
			w := pager.Window(v.page, pager.TotalPages(len(rows)))
			view.Pagination = &w
		}

	case entity.TabTransactionHistory:
		view.Columns = transactionsColumns
		rows := v.transactions.Value
		switch {
		case v.transactions.Busy():
			view.State = entity.TableLoading
		case len(rows) == 0:
			view.State = entity.TableEmpty
			view.Message = entity.MsgNoTransactionHistory
		default:
			page, _ := Paginate(pager, rows, v.page)
			view.Rows = s.deps.Resolver.ResolveTransactions(page, prices)
			view.State = entity.TableRows
		}
		if len(rows) > 0 {
			w := pager.Window(v.page, pager.TotalPages(len(rows)))
			view.Pagination = &w
		}

	default:
		view.Columns = positionColumns
		view.State = entity.TablePlaceholder
		view.Message = entity.MsgPositionPlaceholder
	}
	return view
}

type fetchJob func(ctx context.Context)

func (s *dashboardSessionImpl) startRound(parent context.Context, jobs ...fetchJob) {
	s.mu.Lock()
	if s.inflight == 0 {
		s.idle = make(chan struct{})
	}
	s.inflight++
	s.mu.Unlock()

	// Fetches outlive the request that triggered them.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.deps.Options.FetchTimeout)
	go func() {
		defer s.endRound()
		defer cancel()
		var g errgroup.Group
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				job(ctx)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (s *dashboardSessionImpl) endRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		close(s.idle)
	}
}

// beginLocked bumps the generation of src so older in-flight results are dropped.
func (s *dashboardSessionImpl) beginLocked(src source) uint64 {
	s.generations[src]++
	return s.generations[src]
}

func (s *dashboardSessionImpl) currentLocked(src source, gen uint64) bool {
	return s.generations[src] == gen
}

func begin[T any](status entity.FetchStatus[T], refetch bool) entity.FetchStatus[T] {
	if refetch && status.State != entity.FetchPending {
		return status.WithRefetching()
	}
	return entity.Pending[T]()
}

func settle[T any](status entity.FetchStatus[T], v T, err error) entity.FetchStatus[T] {
	if err != nil {
		return status.Fail(err)
	}
	return entity.Ready(v, !isAbsent(v))
}

// isAbsent treats a nil slice or map as an absent source result.
func isAbsent[T any](v T) bool {
	switch x := any(v).(type) {
	case []entity.RawDepositRow:
		return x == nil
	case []entity.RawTransactionRow:
		return x == nil
	case []entity.RawBorrowRow:
		return x == nil
	case entity.PriceTable:
		return x == nil
	default:
		return false
	}
}

func (s *dashboardSessionImpl) record(src source, err error) {
	metrics.FetchResults.WithLabelValues(src.String(), metrics.Outcome(err)).Inc()
	if err != nil {
		s.deps.Logger.Error("On-chain fetch failed", "session", s.id, "source", src.String(), "wallet", s.wallet, "error", err)
		return
	}
	s.deps.Logger.Debug("On-chain fetch completed", "session", s.id, "source", src.String())
}

func (s *dashboardSessionImpl) depositsJob(refetch bool) fetchJob {
	s.mu.Lock()
	gen := s.beginLocked(srcDeposits)
	s.deposits = begin(s.deposits, refetch)
	s.mu.Unlock()

	return func(ctx context.Context) {
		rows, err := s.deps.Source.GetUserDeposits(ctx, s.wallet)
		s.record(srcDeposits, err)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.currentLocked(srcDeposits, gen) {
			s.deposits = settle(s.deposits, rows, err)
		}
	}
}

func (s *dashboardSessionImpl) transactionsJob(refetch bool) fetchJob {
	s.mu.Lock()
	gen := s.beginLocked(srcTransactions)
	s.transactions = begin(s.transactions, refetch)
	s.mu.Unlock()

	return func(ctx context.Context) {
		rows, err := s.loadHistory(ctx)
		s.record(srcTransactions, err)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.currentLocked(srcTransactions, gen) {
			s.transactions = settle(s.transactions, rows, err)
		}
	}
}

func (s *dashboardSessionImpl) borrowedJob(refetch bool) fetchJob {
	s.mu.Lock()
	gen := s.beginLocked(srcBorrowed)
	s.borrowed = begin(s.borrowed, refetch)
	s.mu.Unlock()

	return func(ctx context.Context) {
		rows, err := s.deps.Source.GetBorrowedTokens(ctx, s.wallet)
		s.record(srcBorrowed, err)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.currentLocked(srcBorrowed, gen) {
			s.borrowed = settle(s.borrowed, rows, err)
		}
	}
}

func (s *dashboardSessionImpl) pricesJob() fetchJob {
	s.mu.Lock()
	gen := s.beginLocked(srcPrices)
	s.prices = entity.Pending[entity.PriceTable]()
	s.mu.Unlock()

	return func(ctx context.Context) {
		status := s.deps.Prices.Fetch(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.currentLocked(srcPrices, gen) {
			s.prices = status
		}
	}
}

// loadHistory reads up to HistoryMaxPages source pages, stopping at the first short page.
func (s *dashboardSessionImpl) loadHistory(ctx context.Context) ([]entity.RawTransactionRow, error) {
	size := s.deps.Options.HistoryPageSize
	var all []entity.RawTransactionRow
	for page := 1; page <= s.deps.Options.HistoryMaxPages; page++ {
		rows, err := s.deps.Source.GetTransactionHistory(ctx, s.wallet, uint32(page), size)
		if err != nil {
			return nil, err
		}
		if rows == nil && page == 1 {
			return nil, nil
		}
		all = append(all, rows...)
		if len(rows) < int(size) {
			break
		}
	}
	if all == nil {
		all = []entity.RawTransactionRow{}
	}
	return all, nil
}
