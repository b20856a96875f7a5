package filter

import "github.com/namebay/namebay/pkg/sdk/api"

// Context identifies which part of the app a filter state belongs to.
// Each context has its own allowed filter vocabulary.
type Context string

const (
	ContextMarketplace Context = "marketplace"
	ContextPortfolio   Context = "portfolio"
	ContextCategory    Context = "category"
)

// AllTypes is the full character-class selection. It is the default in every
// context: deselecting a tag is what narrows results (see query builder).
var AllTypes = []api.TypeTag{api.TypeLetters, api.TypeNumbers, api.TypeEmojis}

var statusVocab = map[Context][]api.StatusTag{
	ContextMarketplace: {
		api.StatusListed,
		api.StatusPremium,
		api.StatusAvailable,
		api.StatusExpiringSoon,
		api.StatusGracePeriod,
		api.StatusHasLastSale,
	},
	ContextPortfolio: {
		api.StatusListed,
		api.StatusUnlisted,
		api.StatusExpiringSoon,
		api.StatusGracePeriod,
		api.StatusHasLastSale,
	},
	ContextCategory: {
		api.StatusListed,
		api.StatusPremium,
		api.StatusAvailable,
		api.StatusHasLastSale,
	},
}

var sortVocab = map[Context][]api.SortKey{
	ContextMarketplace: {
		api.SortAlphabetical,
		api.SortAlphabeticalDesc,
		api.SortPriceLowToHigh,
		api.SortPriceHighToLow,
		api.SortHighestLastSale,
		api.SortExpirySoonest,
		api.SortRecentlyListed,
	},
	ContextPortfolio: {
		api.SortAlphabetical,
		api.SortAlphabeticalDesc,
		api.SortExpirySoonest,
		api.SortHighestLastSale,
	},
	ContextCategory: {
		api.SortAlphabetical,
		api.SortAlphabeticalDesc,
		api.SortPriceLowToHigh,
		api.SortPriceHighToLow,
		api.SortHighestLastSale,
	},
}

// StatusAllowed reports whether the tag is part of the context's vocabulary.
func StatusAllowed(c Context, tag api.StatusTag) bool {
	for _, t := range statusVocab[c] {
		if t == tag {
			return true
		}
	}
	return false
}

// TypeAllowed reports whether the tag is a known character-class.
func TypeAllowed(tag api.TypeTag) bool {
	for _, t := range AllTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// SortAllowed reports whether the sort key is part of the context's vocabulary.
func SortAllowed(c Context, key api.SortKey) bool {
	for _, k := range sortVocab[c] {
		if k == key {
			return true
		}
	}
	return false
}

// StatusVocabulary returns the context's selectable status tags, in display order.
func StatusVocabulary(c Context) []api.StatusTag {
	return statusVocab[c]
}

// SortVocabulary returns the context's selectable sort keys, in display order.
func SortVocabulary(c Context) []api.SortKey {
	return sortVocab[c]
}
