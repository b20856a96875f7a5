package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"

	"github.com/namebay/namebay/pkg/logger"
	"github.com/namebay/namebay/pkg/sdk/api"
)

// 本地假后台：实现与线上一致的搜索协议，方便离线跑 browser/search。

func main() {
	var (
		addr  = flag.String("addr", ":8080", "监听地址")
		count = flag.Int("count", 500, "生成的名称数量")
	)
	flag.Parse()

	if err := logger.Init(logger.Config{Level: "info"}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	fixtures := generateFixtures(*count)
	logger.Infof("[mockapi] serving %d names on %s", len(fixtures), *addr)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/v1/names/search", searchHandler(fixtures))
	r.GET("/api/v1/names/:name", nameHandler(fixtures))
	r.GET("/api/v1/accounts/:address", accountHandler(fixtures))

	if err := r.Run(*addr); err != nil {
		logger.Errorf("[mockapi] server exited: %v", err)
		os.Exit(1)
	}
}

var sampleWords = []string{
	"vault", "nebula", "oracle", "beacon", "cipher", "quartz", "ember",
	"harbor", "lumen", "mosaic", "pixel", "raven", "saffron", "tundra",
	"velvet", "willow", "zenith", "atlas", "bridge", "cobalt",
}

var sampleEmojis = []string{"🔥", "🚀", "🌙", "⚡", "💎"}

func generateFixtures(n int) []api.Name {
	now := time.Now()
	out := make([]api.Name, 0, n)

	for i := 0; i < n; i++ {
		var label string
		switch i % 5 {
		case 0:
			label = sampleWords[i%len(sampleWords)] + strconv.Itoa(i)
		case 1:
			label = strconv.Itoa(10000 + i)
		case 2:
			label = sampleEmojis[i%len(sampleEmojis)] + sampleEmojis[(i+1)%len(sampleEmojis)]
		default:
			label = sampleWords[i%len(sampleWords)] + sampleWords[(i+7)%len(sampleWords)]
		}

		name := api.Name{
			TokenID:    tokenID(label),
			Name:       label + ".eth",
			HasNumbers: strings.ContainsAny(label, "0123456789"),
			HasEmoji:   i%5 == 2,
		}

		owner := fmt.Sprintf("0x%040x", i+1)
		name.Owner = &owner

		reg := now.AddDate(-1, -(i % 12), 0)
		exp := now.AddDate(0, 0, 30+(i%400))
		name.RegistrationDate = &reg
		name.ExpiryDate = &exp

		switch i % 4 {
		case 0:
			name.IsListed = true
			wei := big.NewInt(int64(i%100+1)).Mul(big.NewInt(int64(i%100+1)), big.NewInt(1e16)).String()
			name.ListingPriceWei = &wei
		case 1:
			name.IsPremium = true
		case 2:
			name.IsGracePeriod = true
		}

		if i%3 == 0 {
			sale := big.NewInt(int64(i%50+1) * 1e15).String()
			name.LastSalePriceWei = &sale
		}

		out = append(out, name)
	}
	return out
}

func tokenID(label string) string {
	h := crypto.Keccak256([]byte(label))
	return new(big.Int).SetBytes(h).String()
}

func searchHandler(all []api.Name) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 200 {
			limit = 50
		}

		matched := filterNames(all, c, q)
		sortNames(matched, c.Query("sortBy"), c.Query("sortOrder"))

		total := len(matched)
		totalPages := (total + limit - 1) / limit
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"names": matched[start:end],
				"pagination": gin.H{
					"page":       page,
					"limit":      limit,
					"total":      total,
					"totalPages": totalPages,
					"hasNext":    page < totalPages,
					"hasPrev":    page > 1,
				},
			},
		})
	}
}

func filterNames(all []api.Name, c *gin.Context, q string) []api.Name {
	var (
		showListings = c.Query("filters[showListings]") == "true"
		premium      = c.Query("filters[isPremiumPeriod]") == "true"
		grace        = c.Query("filters[isGracePeriod]") == "true"
		hasSales     = c.Query("filters[hasSales]") == "true"
		unlisted     = c.Query("filters[showUnlisted]") == "true"
		noNumbers    = c.Query("filters[hasNumbers]") == "false"
		noEmojis     = c.Query("filters[hasEmojis]") == "false"
		owner        = c.Query("filters[owner]")
	)

	expiringDays := 0
	if v := c.Query("filters[expiringWithinDays]"); v != "" {
		expiringDays, _ = strconv.Atoi(v)
	}
	minLen, _ := strconv.Atoi(c.Query("filters[minLength]"))
	maxLen, _ := strconv.Atoi(c.Query("filters[maxLength]"))

	var minPrice, maxPrice *big.Int
	if v := c.Query("filters[minPrice]"); v != "" {
		minPrice, _ = new(big.Int).SetString(v, 10)
	}
	if v := c.Query("filters[maxPrice]"); v != "" {
		maxPrice, _ = new(big.Int).SetString(v, 10)
	}

	out := make([]api.Name, 0, len(all))
	for _, n := range all {
		label := strings.TrimSuffix(n.Name, ".eth")
		if q != "" && !strings.Contains(label, q) {
			continue
		}
		if showListings && !n.IsListed {
			continue
		}
		if premium && !n.IsPremium {
			continue
		}
		if grace && !n.IsGracePeriod {
			continue
		}
		if unlisted && n.IsListed {
			continue
		}
		if hasSales && n.LastSalePriceWei == nil {
			continue
		}
		if expiringDays > 0 {
			if n.ExpiryDate == nil || time.Until(*n.ExpiryDate) > time.Duration(expiringDays)*24*time.Hour {
				continue
			}
		}
		if noNumbers && n.HasNumbers {
			continue
		}
		if noEmojis && n.HasEmoji {
			continue
		}
		if owner != "" && (n.Owner == nil || !strings.EqualFold(*n.Owner, owner)) {
			continue
		}
		if minLen > 0 && len([]rune(label)) < minLen {
			continue
		}
		if maxLen > 0 && len([]rune(label)) > maxLen {
			continue
		}
		if minPrice != nil || maxPrice != nil {
			if n.ListingPriceWei == nil {
				continue
			}
			price, ok := new(big.Int).SetString(*n.ListingPriceWei, 10)
			if !ok {
				continue
			}
			if minPrice != nil && price.Cmp(minPrice) < 0 {
				continue
			}
			if maxPrice != nil && price.Cmp(maxPrice) > 0 {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func sortNames(names []api.Name, by, order string) {
	if by == "" {
		return
	}
	desc := order == "desc"

	less := func(a, b api.Name) bool { return a.Name < b.Name }
	switch by {
	case "price":
		less = func(a, b api.Name) bool {
			return weiOrZero(a.ListingPriceWei).Cmp(weiOrZero(b.ListingPriceWei)) < 0
		}
	case "last_sale":
		less = func(a, b api.Name) bool {
			return weiOrZero(a.LastSalePriceWei).Cmp(weiOrZero(b.LastSalePriceWei)) < 0
		}
	case "expiry":
		less = func(a, b api.Name) bool {
			return timeOrZero(a.ExpiryDate).Before(timeOrZero(b.ExpiryDate))
		}
	case "listed":
		less = func(a, b api.Name) bool {
			return timeOrZero(a.RegistrationDate).Before(timeOrZero(b.RegistrationDate))
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		if desc {
			return less(names[j], names[i])
		}
		return less(names[i], names[j])
	})
}

func weiOrZero(s *string) *big.Int {
	if s == nil {
		return big.NewInt(0)
	}
	v, ok := new(big.Int).SetString(*s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return v
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func accountHandler(all []api.Name) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := strings.ToLower(c.Param("address"))
		// 持有名称的地址用它第一个名字当档案名
		for _, n := range all {
			if n.Owner != nil && strings.EqualFold(*n.Owner, addr) {
				c.JSON(200, gin.H{
					"success": true,
					"data":    gin.H{"address": addr, "display": n.Name, "avatar": ""},
				})
				return
			}
		}
		c.JSON(200, gin.H{
			"success": true,
			"data":    gin.H{"address": addr, "display": shortAddr(addr), "avatar": ""},
		})
	}
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func nameHandler(all []api.Name) gin.HandlerFunc {
	return func(c *gin.Context) {
		want := strings.ToLower(c.Param("name"))
		for _, n := range all {
			if strings.EqualFold(n.Name, want) {
				c.JSON(200, gin.H{"success": true, "data": n})
				return
			}
		}
		c.JSON(404, gin.H{
			"success": false,
			"error":   gin.H{"code": "NOT_FOUND", "message": "name not found"},
		})
	}
}
