package api

import (
	"testing"
	"testing/quick"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTypes = []TypeTag{TypeLetters, TypeNumbers, TypeEmojis}

func TestBuildSearchParams_OmitEmpty(t *testing.T) {
	// 默认全选类型时不应该发任何参数
	f := SearchFilters{Types: allTypes}
	v := BuildSearchParams(f, 0, 0)
	assert.Empty(t, v.Encode())
}

func TestBuildSearchParams_PageAndLimit(t *testing.T) {
	v := BuildSearchParams(SearchFilters{Types: allTypes}, 3, 50)
	assert.Equal(t, "3", v.Get("page"))
	assert.Equal(t, "50", v.Get("limit"))
}

func TestBuildSearchParams_TypePolarity(t *testing.T) {
	// 类型标签是反向语义：全空才发排除参数，部分选中不发
	cases := []struct {
		name  string
		types []TypeTag
		want  bool
	}{
		{"all selected", allTypes, false},
		{"numbers only", []TypeTag{TypeNumbers}, false},
		{"letters and emojis", []TypeTag{TypeLetters, TypeEmojis}, false},
		{"none selected", nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := BuildSearchParams(SearchFilters{Types: tc.types}, 0, 0)
			if tc.want {
				assert.Equal(t, "false", v.Get("filters[hasNumbers]"))
				assert.Equal(t, "false", v.Get("filters[hasEmojis]"))
			} else {
				assert.False(t, v.Has("filters[hasNumbers]"))
				assert.False(t, v.Has("filters[hasEmojis]"))
			}
		})
	}
}

func TestBuildSearchParams_StatusTable(t *testing.T) {
	cases := []struct {
		tag   StatusTag
		param string
		value string
	}{
		{StatusListed, "filters[showListings]", "true"},
		{StatusPremium, "filters[isPremiumPeriod]", "true"},
		{StatusAvailable, "filters[showAvailables]", "true"},
		{StatusUnlisted, "filters[showUnlisted]", "true"},
		{StatusExpiringSoon, "filters[expiringWithinDays]", "60"},
		{StatusGracePeriod, "filters[isGracePeriod]", "true"},
		{StatusHasLastSale, "filters[hasSales]", "true"},
	}

	for _, tc := range cases {
		t.Run(string(tc.tag), func(t *testing.T) {
			f := SearchFilters{Types: allTypes, Status: []StatusTag{tc.tag}}
			v := BuildSearchParams(f, 0, 0)
			assert.Equal(t, tc.value, v.Get(tc.param))
		})
	}
}

func TestBuildSearchParams_StatusCombination(t *testing.T) {
	// 多个状态标签展开成独立参数，互不干扰
	f := SearchFilters{
		Types:  allTypes,
		Status: []StatusTag{StatusListed, StatusExpiringSoon},
	}
	v := BuildSearchParams(f, 0, 0)
	assert.Equal(t, "true", v.Get("filters[showListings]"))
	assert.Equal(t, "60", v.Get("filters[expiringWithinDays]"))
	assert.False(t, v.Has("filters[isPremiumPeriod]"))
}

func TestEthToWei(t *testing.T) {
	cases := []struct {
		eth  string
		want string
	}{
		{"0.5", "500000000000000000"},
		{"1", "1000000000000000000"},
		{"0.000000000000000001", "1"},
		{"12.25", "12250000000000000000"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.eth)
		require.NoError(t, err)
		assert.Equal(t, tc.want, EthToWei(d), "eth=%s", tc.eth)
	}
}

func TestBuildSearchParams_PriceBounds(t *testing.T) {
	min := decimal.RequireFromString("0.5")
	max := decimal.RequireFromString("2")
	f := SearchFilters{Types: allTypes, MinPriceETH: &min, MaxPriceETH: &max}

	v := BuildSearchParams(f, 0, 0)
	assert.Equal(t, "500000000000000000", v.Get("filters[minPrice]"))
	assert.Equal(t, "2000000000000000000", v.Get("filters[maxPrice]"))
}

func TestBuildSearchParams_LengthBounds(t *testing.T) {
	three, five := 3, 5
	f := SearchFilters{Types: allTypes, MinLength: &three, MaxLength: &five}

	v := BuildSearchParams(f, 0, 0)
	assert.Equal(t, "3", v.Get("filters[minLength]"))
	assert.Equal(t, "5", v.Get("filters[maxLength]"))
}

func TestBuildSearchParams_ClubOverride(t *testing.T) {
	f := SearchFilters{
		Types:        allTypes,
		Clubs:        []string{"999club", "10kclub"},
		ClubOverride: "pokemon",
	}
	v := BuildSearchParams(f, 0, 0)
	// 页面级分类覆盖多选列表
	assert.Equal(t, "pokemon", v.Get("filters[clubs][]"))

	f.ClubOverride = ""
	v = BuildSearchParams(f, 0, 0)
	assert.Equal(t, "999club,10kclub", v.Get("filters[clubs][]"))
}

func TestBuildSearchParams_SortSplit(t *testing.T) {
	cases := []struct {
		key   SortKey
		field string
		order string
	}{
		{SortAlphabetical, "name", "asc"},
		{SortAlphabeticalDesc, "name", "desc"},
		{SortPriceLowToHigh, "price", "asc"},
		{SortPriceHighToLow, "price", "desc"},
		{SortHighestLastSale, "last_sale", "desc"},
		{SortExpirySoonest, "expiry", "asc"},
		{SortRecentlyListed, "listed", "desc"},
	}

	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			v := BuildSearchParams(SearchFilters{Types: allTypes, Sort: tc.key}, 0, 0)
			assert.Equal(t, tc.field, v.Get("sortBy"))
			assert.Equal(t, tc.order, v.Get("sortOrder"))
		})
	}
}

func TestBuildSearchParams_NoSort(t *testing.T) {
	v := BuildSearchParams(SearchFilters{Types: allTypes}, 0, 0)
	assert.False(t, v.Has("sortBy"))
	assert.False(t, v.Has("sortOrder"))
}

func TestNormalizeSearch(t *testing.T) {
	cases := map[string]string{
		"  Vault.ETH ": "vault",
		"vault.eth":    "vault",
		"VAULT":        "vault",
		"":             "",
		"  ":           "",
		"abc.eth.eth":  "abc.eth", // 只剥一层后缀
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeSearch(in), "in=%q", in)
	}
}

func TestBuildSearchParams_OwnerLowercased(t *testing.T) {
	f := SearchFilters{Types: allTypes, Owner: "0xABCDEF0123456789abcdef0123456789ABCDEF01"}
	v := BuildSearchParams(f, 0, 0)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", v.Get("filters[owner]"))
}

// 同一个过滤元组序列化两次必须得到完全相同的查询串（它是抓取缓存的 key）
func TestBuildSearchParams_Deterministic(t *testing.T) {
	prop := func(search string, listed, premium, noTypes bool, minLen uint8) bool {
		f := SearchFilters{Search: search, Types: allTypes}
		if listed {
			f.Status = append(f.Status, StatusListed)
		}
		if premium {
			f.Status = append(f.Status, StatusPremium)
		}
		if noTypes {
			f.Types = nil
		}
		if minLen > 0 {
			n := int(minLen)
			f.MinLength = &n
		}
		return BuildSearchParams(f, 1, 50).Encode() == BuildSearchParams(f, 1, 50).Encode()
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}
