package filter

import (
	"github.com/shopspring/decimal"

	"github.com/namebay/namebay/pkg/sdk/api"
)

// ActionType enumerates the store's mutations.
type ActionType int

const (
	ActionSetSearch ActionType = iota
	ActionToggleStatus
	ActionToggleType
	ActionSetLength
	ActionSetPriceRange
	ActionToggleCategory
	ActionSetSort
	ActionSetScrollTop
	ActionTogglePanel
	ActionSetWatchlist
	ActionClearFilters
)

// Action is one store mutation. Only the fields relevant to its Type are
// read; the rest stay zero. Inputs are pre-validated by the UI — an invalid
// enum member is a caller bug, not a runtime failure.
type Action struct {
	Type ActionType

	Search    string
	Status    api.StatusTag
	TypeTag   api.TypeTag
	Length    LengthRange
	Price     PriceRange
	Category  string
	Sort      api.SortKey
	ScrollTop int
	Panel     string
	Watchlist bool
}

// Reduce applies one action and returns the next state. Pure: the input
// state is never mutated.
func Reduce(s State, a Action) State {
	next := s.clone()

	switch a.Type {
	case ActionSetSearch:
		next.Search = a.Search

	case ActionToggleStatus:
		next.Status = toggleStatus(next.Status, a.Status)

	case ActionToggleType:
		next.Types = toggleType(next.Types, a.TypeTag)

	case ActionSetLength:
		next.Length = a.Length

	case ActionSetPriceRange:
		next.Price = a.Price

	case ActionToggleCategory:
		next.Categories = toggleString(next.Categories, a.Category)

	case ActionSetSort:
		next.Sort = a.Sort

	case ActionSetScrollTop:
		next.ScrollTop = a.ScrollTop

	case ActionTogglePanel:
		next.OpenPanels = toggleString(next.OpenPanels, a.Panel)

	case ActionSetWatchlist:
		next.Watchlist = a.Watchlist

	case ActionClearFilters:
		// Reset to the context default; ownership survives (it is not a
		// filter, it is who is looking).
		cleared := NewState(s.Context)
		cleared.IsOwner = s.IsOwner
		return cleared
	}

	return next
}

func toggleStatus(set []api.StatusTag, tag api.StatusTag) []api.StatusTag {
	for i, t := range set {
		if t == tag {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, tag)
}

func toggleType(set []api.TypeTag, tag api.TypeTag) []api.TypeTag {
	for i, t := range set {
		if t == tag {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, tag)
}

func toggleString(set []string, s string) []string {
	for i, t := range set {
		if t == s {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, s)
}

// Convenience constructors, so call sites read like the operations they are.

func SetSearch(q string) Action { return Action{Type: ActionSetSearch, Search: q} }

func ToggleStatus(t api.StatusTag) Action { return Action{Type: ActionToggleStatus, Status: t} }

func ToggleType(t api.TypeTag) Action { return Action{Type: ActionToggleType, TypeTag: t} }

func SetLength(min, max *int) Action {
	return Action{Type: ActionSetLength, Length: LengthRange{Min: min, Max: max}}
}

func SetPriceRange(min, max *decimal.Decimal) Action {
	return Action{Type: ActionSetPriceRange, Price: PriceRange{Min: min, Max: max}}
}

func ToggleCategory(c string) Action { return Action{Type: ActionToggleCategory, Category: c} }

func SetSort(k api.SortKey) Action { return Action{Type: ActionSetSort, Sort: k} }

func SetScrollTop(px int) Action { return Action{Type: ActionSetScrollTop, ScrollTop: px} }

func TogglePanel(name string) Action { return Action{Type: ActionTogglePanel, Panel: name} }

func SetWatchlist(on bool) Action { return Action{Type: ActionSetWatchlist, Watchlist: on} }

func ClearFilters() Action { return Action{Type: ActionClearFilters} }
