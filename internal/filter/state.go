package filter

import (
	"github.com/shopspring/decimal"

	"github.com/namebay/namebay/pkg/sdk/api"
)

// LengthRange bounds the name length (character count), inclusive.
// A nil bound means "don't filter". The store does not enforce Min <= Max;
// the filter panel validates before dispatching.
type LengthRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// PriceRange bounds the listing price in display ETH. Converted to wei only
// at query time.
type PriceRange struct {
	Min *decimal.Decimal `json:"min"`
	Max *decimal.Decimal `json:"max"`
}

// State holds one context's filter selections. It is plain serializable
// data: no I/O, mutated only through Reduce.
type State struct {
	Context Context `json:"context"`

	Search     string          `json:"search"`
	Status     []api.StatusTag `json:"status"`
	Types      []api.TypeTag   `json:"types"`
	Length     LengthRange     `json:"length"`
	Price      PriceRange      `json:"price"`
	Categories []string        `json:"categories"`
	Sort       api.SortKey     `json:"sort"`

	// UI state, persisted so re-entering a view restores position.
	ScrollTop  int      `json:"scroll_top"`
	OpenPanels []string `json:"open_panels"`

	// Portfolio ownership: owner-only filters (watchlist) are suppressed
	// from URL sync when the viewer is not the owner.
	IsOwner   bool `json:"is_owner,omitempty"`
	Watchlist bool `json:"watchlist,omitempty"`
}

// NewState returns the context-specific default state.
func NewState(c Context) State {
	return State{
		Context: c,
		Types:   append([]api.TypeTag(nil), AllTypes...),
	}
}

// SearchFilters reduces the state to the backend-facing filter tuple.
// clubOverride is the page-level category (category context), owner the
// profile address (portfolio context); both may be empty.
func (s State) SearchFilters(clubOverride, owner string) api.SearchFilters {
	f := api.SearchFilters{
		Search:       s.Search,
		Status:       append([]api.StatusTag(nil), s.Status...),
		Types:        append([]api.TypeTag(nil), s.Types...),
		MinLength:    s.Length.Min,
		MaxLength:    s.Length.Max,
		MinPriceETH:  s.Price.Min,
		MaxPriceETH:  s.Price.Max,
		Clubs:        append([]string(nil), s.Categories...),
		ClubOverride: clubOverride,
		Sort:         s.Sort,
		Owner:        owner,
	}
	return f
}

// HasRestrictiveFilters reports whether any filter narrows the result set
// beyond plain search. Used to gate exact-match synthesis.
func (s State) HasRestrictiveFilters() bool {
	if len(s.Status) > 0 || len(s.Categories) > 0 {
		return true
	}
	if s.Length.Min != nil || s.Length.Max != nil {
		return true
	}
	if s.Price.Min != nil || s.Price.Max != nil {
		return true
	}
	if len(s.Types) == 0 {
		// empty type selection emits the character-class exclusions
		return true
	}
	return false
}

// clone returns a deep copy; Reduce never mutates its input.
func (s State) clone() State {
	out := s
	out.Status = append([]api.StatusTag(nil), s.Status...)
	out.Types = append([]api.TypeTag(nil), s.Types...)
	out.Categories = append([]string(nil), s.Categories...)
	out.OpenPanels = append([]string(nil), s.OpenPanels...)
	if s.Length.Min != nil {
		v := *s.Length.Min
		out.Length.Min = &v
	}
	if s.Length.Max != nil {
		v := *s.Length.Max
		out.Length.Max = &v
	}
	if s.Price.Min != nil {
		v := *s.Price.Min
		out.Price.Min = &v
	}
	if s.Price.Max != nil {
		v := *s.Price.Max
		out.Price.Max = &v
	}
	return out
}
