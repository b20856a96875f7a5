package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// StatusTag is one of the status chips a user can toggle on.
type StatusTag string

const (
	StatusListed       StatusTag = "listed"
	StatusPremium      StatusTag = "premium"
	StatusAvailable    StatusTag = "available"
	StatusUnlisted     StatusTag = "unlisted"
	StatusExpiringSoon StatusTag = "expiring_soon"
	StatusGracePeriod  StatusTag = "grace_period"
	StatusHasLastSale  StatusTag = "has_last_sale"
)

// TypeTag describes a character-class of a name.
type TypeTag string

const (
	TypeLetters TypeTag = "letters"
	TypeNumbers TypeTag = "numbers"
	TypeEmojis  TypeTag = "emojis"
)

// SortKey encodes both field and direction. The wire value is the key with
// its _asc/_desc suffix; BuildSearchParams splits it into sortBy/sortOrder.
type SortKey string

const (
	SortAlphabetical     SortKey = "name_asc"
	SortAlphabeticalDesc SortKey = "name_desc"
	SortPriceLowToHigh   SortKey = "price_asc"
	SortPriceHighToLow   SortKey = "price_desc"
	SortHighestLastSale  SortKey = "last_sale_desc"
	SortExpirySoonest    SortKey = "expiry_asc"
	SortRecentlyListed   SortKey = "listed_desc"
)

// statusParams maps each status tag to its backend parameter and literal
// value. Tags expand to independent parameters, not a single enum.
var statusParams = map[StatusTag][2]string{
	StatusListed:       {"filters[showListings]", "true"},
	StatusPremium:      {"filters[isPremiumPeriod]", "true"},
	StatusAvailable:    {"filters[showAvailables]", "true"},
	StatusUnlisted:     {"filters[showUnlisted]", "true"},
	StatusExpiringSoon: {"filters[expiringWithinDays]", "60"},
	StatusGracePeriod:  {"filters[isGracePeriod]", "true"},
	StatusHasLastSale:  {"filters[hasSales]", "true"},
}

// SearchFilters is the backend-facing filter tuple. It mirrors the client's
// filter state but is already reduced to what the search endpoint understands.
type SearchFilters struct {
	Search string

	Status []StatusTag
	Types  []TypeTag

	MinLength *int
	MaxLength *int

	// Price bounds in display ETH; converted to integer wei on serialization.
	MinPriceETH *decimal.Decimal
	MaxPriceETH *decimal.Decimal

	Clubs []string
	// ClubOverride is a page-level category; when set it wins over Clubs.
	ClubOverride string

	Sort SortKey

	// Owner scopes the search to one address (portfolio views).
	Owner string
}

var weiPerEth = decimal.New(1, 18)

// EthToWei converts a display-ETH amount to an integer wei string.
func EthToWei(eth decimal.Decimal) string {
	return eth.Mul(weiPerEth).Round(0).String()
}

// NormalizeSearch strips a trailing .eth, lower-cases and trims the raw
// search text. The backend indexes labels, not full names.
func NormalizeSearch(q string) string {
	q = strings.TrimSpace(strings.ToLower(q))
	q = strings.TrimSuffix(q, ".eth")
	return strings.TrimSpace(q)
}

// HasExclusionFilters reports whether the filter tuple expresses the
// character-class exclusions (empty type selection). The exact-match
// synthesis in the fetch layer is disabled while these are active.
func (f SearchFilters) HasExclusionFilters() bool {
	return len(f.Types) == 0
}

func hasType(types []TypeTag, t TypeTag) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

// BuildSearchParams serializes the filter tuple for the search endpoint.
// It is a pure function: parameters whose semantic value is "don't filter"
// are omitted entirely, never sent as zero values.
func BuildSearchParams(f SearchFilters, page, limit int) url.Values {
	v := url.Values{}

	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}

	if q := NormalizeSearch(f.Search); q != "" {
		v.Set("q", q)
	}

	if f.Owner != "" {
		v.Set("filters[owner]", strings.ToLower(f.Owner))
	}

	for _, tag := range f.Status {
		if p, ok := statusParams[tag]; ok {
			v.Set(p[0], p[1])
		}
	}

	// Type tags carry inverted polarity: a selected tag adds nothing (names
	// with that characteristic are included by default), and clearing the
	// whole selection emits explicit exclusions. Search results silently
	// diverge from production if this polarity changes.
	if len(f.Types) == 0 {
		v.Set("filters[hasNumbers]", "false")
		v.Set("filters[hasEmojis]", "false")
	}

	if f.MinLength != nil {
		v.Set("filters[minLength]", strconv.Itoa(*f.MinLength))
	}
	if f.MaxLength != nil {
		v.Set("filters[maxLength]", strconv.Itoa(*f.MaxLength))
	}

	if f.MinPriceETH != nil {
		v.Set("filters[minPrice]", EthToWei(*f.MinPriceETH))
	}
	if f.MaxPriceETH != nil {
		v.Set("filters[maxPrice]", EthToWei(*f.MaxPriceETH))
	}

	// A page-level club override beats the multi-select list.
	if f.ClubOverride != "" {
		v.Set("filters[clubs][]", f.ClubOverride)
	} else if len(f.Clubs) > 0 {
		v.Set("filters[clubs][]", strings.Join(f.Clubs, ","))
	}

	if f.Sort != "" {
		v.Set("sortBy", sortField(f.Sort))
		v.Set("sortOrder", sortOrder(f.Sort))
	}

	return v
}

func sortField(k SortKey) string {
	s := string(k)
	s = strings.TrimSuffix(s, "_asc")
	s = strings.TrimSuffix(s, "_desc")
	return s
}

func sortOrder(k SortKey) string {
	if strings.Contains(string(k), "asc") {
		return "asc"
	}
	return "desc"
}
