package fetcher

import (
	"math/big"
	"unicode"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/namebay/namebay/pkg/sdk/api"
)

// minSynthesisLength is the shortest registrable .eth label; shorter search
// terms never synthesize an exact-match row.
const minSynthesisLength = 3

// SyntheticName builds a local placeholder entity for an unregistered name
// so the exact search match always appears first. The token id is derived
// the same way the registrar derives it: uint256(keccak256(label)).
func SyntheticName(search string) api.Name {
	label := api.NormalizeSearch(search)
	id := new(big.Int).SetBytes(crypto.Keccak256([]byte(label)))

	return api.Name{
		TokenID:        id.String(),
		Name:           label + ".eth",
		HasNumbers:     containsDigit(label),
		HasEmoji:       containsEmoji(label),
		IsUnregistered: true,
	}
}

// ShouldSynthesize decides whether page 1 of a result set gets the
// placeholder prepended: search term long enough, no exclusionary filters,
// and the exact name not already returned by the backend.
func ShouldSynthesize(search string, f api.SearchFilters, items []api.Name) bool {
	label := api.NormalizeSearch(search)
	if len([]rune(label)) < minSynthesisLength {
		return false
	}
	if f.HasExclusionFilters() {
		return false
	}
	// 只在全市场搜索里合成；地址范围内的结果是某人的持仓，不插占位行
	if f.Owner != "" {
		return false
	}
	if len(f.Status) > 0 || len(f.Clubs) > 0 || f.ClubOverride != "" {
		return false
	}
	if f.MinLength != nil || f.MaxLength != nil || f.MinPriceETH != nil || f.MaxPriceETH != nil {
		return false
	}
	exact := label + ".eth"
	for _, it := range items {
		if it.Name == exact {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// containsEmoji matches the backend's coarse classification: anything in
// the supplementary symbol planes counts.
func containsEmoji(s string) bool {
	for _, r := range s {
		if r >= 0x1F000 || (r >= 0x2600 && r <= 0x27BF) {
			return true
		}
	}
	return false
}
