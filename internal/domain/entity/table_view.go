package entity

// TableState is what the renderer should draw for the current tab.
type TableState string

const (
	TableRows        TableState = "rows"
	TableLoading     TableState = "loading"
	TableEmpty       TableState = "empty"
	TablePlaceholder TableState = "placeholder"
)

const (
	MsgNoData               = "No data available"
	MsgNoTransactionHistory = "No transaction history available"
	MsgPositionPlaceholder  = "Position overview is not yet available"
)

// TableView is the render-ready state of the dashboard table.
type TableView struct {
	Tab        string        `json:"tab"`
	TabSlug    string        `json:"tabSlug"`
	Wallet     string        `json:"wallet,omitempty"`
	State      TableState    `json:"state"`
	Message    string        `json:"message,omitempty"`
	Columns    []string      `json:"columns"`
	Rows       []ResolvedRow `json:"rows"`
	Pagination *PageWindow   `json:"pagination,omitempty"`
	PriceError string        `json:"priceError,omitempty"`

	Sources map[string]SourceStatus `json:"sources"`
}

// SourceStatus reports the loading state of one asynchronous source.
type SourceStatus struct {
	State      string `json:"state"`
	Refetching bool   `json:"refetching"`
	Error      string `json:"error,omitempty"`
	Count      int    `json:"count"`
}

// SourceStatusOf summarizes a fetch status; count is the number of rows held.
func SourceStatusOf[T any](s FetchStatus[T], count int) SourceStatus {
	out := SourceStatus{State: s.State.String(), Refetching: s.Refetching, Count: count}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return out
}
