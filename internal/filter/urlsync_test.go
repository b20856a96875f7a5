package filter

import (
	"math/rand"
	"net/url"
	"testing"
	"testing/quick"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/namebay/namebay/pkg/sdk/api"
)

func TestEncodeQuery_DefaultStateIsEmpty(t *testing.T) {
	// 默认状态编码出来必须是空串，分享链接才不会带一堆默认参数
	for _, c := range []Context{ContextMarketplace, ContextPortfolio, ContextCategory} {
		assert.Empty(t, EncodeQuery(NewState(c)).Encode(), "context=%s", c)
	}
}

func TestEncodeQuery_ScrollTopNeverLeaks(t *testing.T) {
	s := NewState(ContextMarketplace)
	s.ScrollTop = 420
	s.OpenPanels = []string{"status"}
	assert.Empty(t, EncodeQuery(s).Encode())
}

func TestEncodeQuery_EmptyTypesMarker(t *testing.T) {
	s := NewState(ContextMarketplace)
	s.Types = nil
	v := EncodeQuery(s)
	assert.Equal(t, "none", v.Get("types"))

	parsed := ParseQuery(ContextMarketplace, v, false)
	assert.Empty(t, parsed.Types)
}

func TestEncodeQuery_WatchlistOwnerOnly(t *testing.T) {
	s := NewState(ContextPortfolio)
	s.Watchlist = true

	// 非所有者：私有过滤不进 URL
	s.IsOwner = false
	assert.False(t, EncodeQuery(s).Has("watchlist"))

	s.IsOwner = true
	assert.Equal(t, "true", EncodeQuery(s).Get("watchlist"))
}

func TestParseQuery_WatchlistIgnoredForVisitors(t *testing.T) {
	v := url.Values{"watchlist": {"true"}}
	s := ParseQuery(ContextPortfolio, v, false)
	assert.False(t, s.Watchlist)

	s = ParseQuery(ContextPortfolio, v, true)
	assert.True(t, s.Watchlist)
}

func TestParseQuery_LenientOnGarbage(t *testing.T) {
	v := url.Values{
		"q":         {"vault"},
		"status":    {"listed,bogus,premium"},
		"types":     {"letters,dragons"},
		"minLength": {"-5"},
		"maxLength": {"abc"},
		"minPrice":  {"not-a-number"},
		"maxPrice":  {"-1.5"},
		"sort":      {"by_vibes"},
	}
	s := ParseQuery(ContextMarketplace, v, false)

	assert.Equal(t, "vault", s.Search)
	assert.Equal(t, []api.StatusTag{api.StatusListed, api.StatusPremium}, s.Status)
	assert.Equal(t, []api.TypeTag{api.TypeLetters}, s.Types)
	assert.Nil(t, s.Length.Min)
	assert.Nil(t, s.Length.Max)
	assert.Nil(t, s.Price.Min)
	assert.Nil(t, s.Price.Max)
	assert.Empty(t, s.Sort)
}

func TestParseQuery_ContextVocabulary(t *testing.T) {
	// unlisted 只在 portfolio 词表里
	v := url.Values{"status": {"unlisted"}}

	s := ParseQuery(ContextMarketplace, v, false)
	assert.Empty(t, s.Status)

	s = ParseQuery(ContextPortfolio, v, false)
	assert.Equal(t, []api.StatusTag{api.StatusUnlisted}, s.Status)
}

func TestParseQuery_DedupsRepeatedTags(t *testing.T) {
	v := url.Values{"status": {"listed,listed,listed"}}
	s := ParseQuery(ContextMarketplace, v, false)
	assert.Equal(t, []api.StatusTag{api.StatusListed}, s.Status)
}

// randomState 在上下文词表内构造一个合法状态
func randomState(rng *rand.Rand, c Context) State {
	s := NewState(c)

	if rng.Intn(2) == 0 {
		s.Search = []string{"vault", "999", "abc", "niceday"}[rng.Intn(4)]
	}

	vocab := StatusVocabulary(c)
	for _, tag := range vocab {
		if rng.Intn(3) == 0 {
			s.Status = append(s.Status, tag)
		}
	}

	switch rng.Intn(3) {
	case 0:
		// 默认：全选
	case 1:
		s.Types = nil
	case 2:
		s.Types = []api.TypeTag{AllTypes[rng.Intn(len(AllTypes))]}
	}

	if rng.Intn(2) == 0 {
		n := rng.Intn(10) + 1
		s.Length.Min = &n
	}
	if rng.Intn(2) == 0 {
		n := rng.Intn(20) + 10
		s.Length.Max = &n
	}
	if rng.Intn(2) == 0 {
		d := decimal.New(int64(rng.Intn(1000)+1), -2)
		s.Price.Min = &d
	}
	if rng.Intn(2) == 0 {
		d := decimal.New(int64(rng.Intn(10000)+1000), -2)
		s.Price.Max = &d
	}
	if rng.Intn(2) == 0 {
		s.Categories = []string{"999club"}
	}

	sorts := SortVocabulary(c)
	if rng.Intn(2) == 0 {
		s.Sort = sorts[rng.Intn(len(sorts))]
	}

	if c == ContextPortfolio {
		s.IsOwner = true
		s.Watchlist = rng.Intn(2) == 0
	}
	return s
}

// 往返律：Parse(Encode(s)) 对每个 URL 可见字段都还原 s
func TestURLRoundTrip(t *testing.T) {
	contexts := []Context{ContextMarketplace, ContextPortfolio, ContextCategory}

	prop := func(seed int64, pick uint8) bool {
		rng := rand.New(rand.NewSource(seed))
		c := contexts[int(pick)%len(contexts)]
		s := randomState(rng, c)

		got := ParseQuery(c, EncodeQuery(s), s.IsOwner)

		if got.Search != s.Search {
			return false
		}
		if !assert.ObjectsAreEqual(s.Status, got.Status) {
			return false
		}
		if !typesEqual(s.Types, got.Types) {
			return false
		}
		if !intPtrEqual(s.Length.Min, got.Length.Min) || !intPtrEqual(s.Length.Max, got.Length.Max) {
			return false
		}
		if !pricePtrEqual(s.Price.Min, got.Price.Min) || !pricePtrEqual(s.Price.Max, got.Price.Max) {
			return false
		}
		if !assert.ObjectsAreEqual(s.Categories, got.Categories) {
			return false
		}
		if got.Sort != s.Sort {
			return false
		}
		return got.Watchlist == s.Watchlist
	}

	if err := quick.Check(prop, &quick.Config{MaxCount: 500}); err != nil {
		t.Fatal(err)
	}
}

func typesEqual(a, b []api.TypeTag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func pricePtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
