package fetcher

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/namebay/namebay/pkg/sdk/api"
)

func allTypes() []api.TypeTag {
	return []api.TypeTag{api.TypeLetters, api.TypeNumbers, api.TypeEmojis}
}

func TestSyntheticName(t *testing.T) {
	n := SyntheticName("  Vault.ETH ")

	assert.Equal(t, "vault.eth", n.Name)
	assert.True(t, n.IsUnregistered)
	assert.False(t, n.HasNumbers)
	assert.False(t, n.HasEmoji)

	// token id 与注册表一致：uint256(keccak256(label))
	want := new(big.Int).SetBytes(crypto.Keccak256([]byte("vault"))).String()
	assert.Equal(t, want, n.TokenID)
}

func TestSyntheticName_Classification(t *testing.T) {
	assert.True(t, SyntheticName("abc123").HasNumbers)
	assert.True(t, SyntheticName("fire🔥").HasEmoji)
}

func TestShouldSynthesize(t *testing.T) {
	base := api.SearchFilters{Types: allTypes()}

	cases := []struct {
		name   string
		search string
		mutate func(*api.SearchFilters)
		items  []api.Name
		want   bool
	}{
		{name: "plain search", search: "abc", want: true},
		{name: "too short", search: "ab", want: false},
		{name: "multibyte counts runes", search: "中中中", want: true},
		{name: "empty search", search: "", want: false},
		{
			name: "exclusion filters active", search: "abc",
			mutate: func(f *api.SearchFilters) { f.Types = nil },
			want:   false,
		},
		{
			name: "status filter active", search: "abc",
			mutate: func(f *api.SearchFilters) { f.Status = []api.StatusTag{api.StatusListed} },
			want:   false,
		},
		{
			name: "club page", search: "abc",
			mutate: func(f *api.SearchFilters) { f.ClubOverride = "999club" },
			want:   false,
		},
		{
			name: "owner-scoped search", search: "abc",
			mutate: func(f *api.SearchFilters) { f.Owner = "0x1111111111111111111111111111111111111111" },
			want:   false,
		},
		{
			name: "price bound active", search: "abc",
			mutate: func(f *api.SearchFilters) {
				min := decimal.NewFromInt(1)
				f.MinPriceETH = &min
			},
			want: false,
		},
		{
			name: "exact match already present", search: "abc",
			items: []api.Name{{Name: "abc.eth"}},
			want:  false,
		},
		{
			name: "near match does not block", search: "abc",
			items: []api.Name{{Name: "abcd.eth"}},
			want:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := base
			f.Search = tc.search
			if tc.mutate != nil {
				tc.mutate(&f)
			}
			assert.Equal(t, tc.want, ShouldSynthesize(tc.search, f, tc.items))
		})
	}
}
