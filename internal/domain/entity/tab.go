package entity

import (
	"fmt"
	"strings"
)

// Tab selects which dataset the dashboard table shows.
type Tab int

const (
	TabAssets Tab = iota
	TabPositionOverview
	TabTransactionHistory
)

// DefaultTab is the tab a new session starts on.
const DefaultTab = TabTransactionHistory

var tabNames = map[Tab]string{
	TabAssets:             "Assets",
	TabPositionOverview:   "Position Overview",
	TabTransactionHistory: "Transaction History",
}

var tabSlugs = map[Tab]string{
	TabAssets:             "assets",
	TabPositionOverview:   "position-overview",
	TabTransactionHistory: "transaction-history",
}

func (t Tab) String() string {
	if n, ok := tabNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

// Slug returns the URL-friendly tab identifier.
func (t Tab) Slug() string { return tabSlugs[t] }

// ParseTab accepts either a display name or a slug, case-insensitively.
func ParseTab(s string) (Tab, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for t, name := range tabNames {
		if needle == strings.ToLower(name) || needle == tabSlugs[t] {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q", s)
}
