package port

import (
	"context"

	"lendboard/internal/domain/entity"
)

// DashboardSession is the view state of one dashboard table.
type DashboardSession interface {
	ID() string
	Wallet() string
	Mount(ctx context.Context)
	Wait(ctx context.Context) error
	Refetch(ctx context.Context)
	RetryPrices(ctx context.Context)
	SelectTab(tab entity.Tab)
	NextPage()
	PreviousPage()
	JumpToPage(page int)
	Render() entity.TableView
}

// SessionStore keeps live dashboard sessions in memory.
type SessionStore interface {
	Put(s DashboardSession)
	Get(id string) (DashboardSession, error)
	Delete(id string)
	Count() int
}

// DashboardService opens and looks up dashboard sessions.
type DashboardService interface {
	OpenSession(ctx context.Context, wallet string) (DashboardSession, error)
	Session(id string) (DashboardSession, error)
	CloseSession(id string)
	Tokens() []entity.TokenInfo
}
