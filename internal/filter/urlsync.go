package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/namebay/namebay/pkg/sdk/api"
)

// URL synchronization: a State maps to a shareable query string and back.
// Parsing is lenient — unrecognized keys and malformed values fall back to
// the default, never error. EncodeQuery(ParseQuery(v)) round-trips for every
// recognized field.

const (
	paramSearch    = "q"
	paramStatus    = "status"
	paramTypes     = "types"
	paramMinLength = "minLength"
	paramMaxLength = "maxLength"
	paramMinPrice  = "minPrice"
	paramMaxPrice  = "maxPrice"
	paramClubs     = "clubs"
	paramSort      = "sort"
	paramWatchlist = "watchlist"

	// typesNone marks an explicitly empty type selection; an omitted types
	// param means the default (all selected).
	typesNone = "none"
)

// EncodeQuery serializes the URL-visible part of the state. Fields at their
// default value are omitted so shared links stay short. ScrollTop and panel
// state never reach the URL.
func EncodeQuery(s State) url.Values {
	v := url.Values{}

	if s.Search != "" {
		v.Set(paramSearch, s.Search)
	}

	if len(s.Status) > 0 {
		parts := make([]string, 0, len(s.Status))
		for _, t := range s.Status {
			parts = append(parts, string(t))
		}
		v.Set(paramStatus, strings.Join(parts, ","))
	}

	if !typesAreDefault(s.Types) {
		if len(s.Types) == 0 {
			v.Set(paramTypes, typesNone)
		} else {
			parts := make([]string, 0, len(s.Types))
			for _, t := range s.Types {
				parts = append(parts, string(t))
			}
			v.Set(paramTypes, strings.Join(parts, ","))
		}
	}

	if s.Length.Min != nil {
		v.Set(paramMinLength, strconv.Itoa(*s.Length.Min))
	}
	if s.Length.Max != nil {
		v.Set(paramMaxLength, strconv.Itoa(*s.Length.Max))
	}

	if s.Price.Min != nil {
		v.Set(paramMinPrice, s.Price.Min.String())
	}
	if s.Price.Max != nil {
		v.Set(paramMaxPrice, s.Price.Max.String())
	}

	if len(s.Categories) > 0 {
		v.Set(paramClubs, strings.Join(s.Categories, ","))
	}

	if s.Sort != "" {
		v.Set(paramSort, string(s.Sort))
	}

	// Owner-only: the private watchlist toggle leaks nothing to visitors.
	if s.IsOwner && s.Watchlist {
		v.Set(paramWatchlist, "true")
	}

	return v
}

// ParseQuery hydrates a state from URL query values. isOwner gates the
// owner-only filters the same way EncodeQuery does.
func ParseQuery(c Context, v url.Values, isOwner bool) State {
	s := NewState(c)
	s.IsOwner = isOwner

	if q := v.Get(paramSearch); q != "" {
		s.Search = q
	}

	if raw := v.Get(paramStatus); raw != "" {
		var tags []api.StatusTag
		for _, part := range strings.Split(raw, ",") {
			tag := api.StatusTag(strings.TrimSpace(part))
			if StatusAllowed(c, tag) && !containsStatus(tags, tag) {
				tags = append(tags, tag)
			}
		}
		s.Status = tags
	}

	if raw := v.Get(paramTypes); raw != "" {
		if raw == typesNone {
			s.Types = nil
		} else {
			var tags []api.TypeTag
			for _, part := range strings.Split(raw, ",") {
				tag := api.TypeTag(strings.TrimSpace(part))
				if TypeAllowed(tag) && !containsType(tags, tag) {
					tags = append(tags, tag)
				}
			}
			if len(tags) > 0 {
				s.Types = tags
			}
		}
	}

	s.Length.Min = parseIntParam(v.Get(paramMinLength))
	s.Length.Max = parseIntParam(v.Get(paramMaxLength))
	s.Price.Min = parsePriceParam(v.Get(paramMinPrice))
	s.Price.Max = parsePriceParam(v.Get(paramMaxPrice))

	if raw := v.Get(paramClubs); raw != "" {
		var clubs []string
		for _, part := range strings.Split(raw, ",") {
			club := strings.TrimSpace(part)
			if club != "" && !containsString(clubs, club) {
				clubs = append(clubs, club)
			}
		}
		s.Categories = clubs
	}

	if raw := v.Get(paramSort); raw != "" {
		key := api.SortKey(raw)
		if SortAllowed(c, key) {
			s.Sort = key
		}
	}

	if isOwner && v.Get(paramWatchlist) == "true" {
		s.Watchlist = true
	}

	return s
}

func typesAreDefault(types []api.TypeTag) bool {
	if len(types) != len(AllTypes) {
		return false
	}
	for _, t := range AllTypes {
		if !containsType(types, t) {
			return false
		}
	}
	return true
}

// parseIntParam accepts positive integers only; anything else means
// "no bound".
func parseIntParam(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// parsePriceParam accepts non-negative decimals only.
func parsePriceParam(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

func containsStatus(set []api.StatusTag, t api.StatusTag) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func containsType(set []api.TypeTag, t api.TypeTag) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
