package entity

// FetchState is the lifecycle state of one asynchronous fetch.
type FetchState int

const (
	FetchPending FetchState = iota
	FetchReady
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchPending:
		return "pending"
	case FetchReady:
		return "ready"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchStatus is an immutable snapshot of one fetch. Updates replace the whole value.
// Value is meaningful when State is FetchReady, or while Refetching after a ready result.
type FetchStatus[T any] struct {
	State      FetchState
	Value      T
	Present    bool // false when the source returned an absent result
	Err        error
	Refetching bool
}

// Pending returns the initial status of a fetch.
func Pending[T any]() FetchStatus[T] {
	return FetchStatus[T]{State: FetchPending}
}

// Ready returns a completed status. present=false marks an absent result.
func Ready[T any](v T, present bool) FetchStatus[T] {
	return FetchStatus[T]{State: FetchReady, Value: v, Present: present}
}

// Failed returns a failed status.
func Failed[T any](err error) FetchStatus[T] {
	return FetchStatus[T]{State: FetchFailed, Err: err}
}

// Loading reports whether the fetch has not produced its first result yet.
func (s FetchStatus[T]) Loading() bool { return s.State == FetchPending }

// Busy reports an initial load or a background refetch.
func (s FetchStatus[T]) Busy() bool { return s.State == FetchPending || s.Refetching }

// WithRefetching marks an existing status as being refreshed in the background.
func (s FetchStatus[T]) WithRefetching() FetchStatus[T] {
	s.Refetching = true
	return s
}

// Fail moves the status to FetchFailed while keeping the last known value visible.
func (s FetchStatus[T]) Fail(err error) FetchStatus[T] {
	return FetchStatus[T]{State: FetchFailed, Value: s.Value, Present: s.Present, Err: err}
}
