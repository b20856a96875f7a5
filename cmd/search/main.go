package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/namebay/namebay/internal/filter"
	"github.com/namebay/namebay/pkg/config"
	"github.com/namebay/namebay/pkg/logger"
	"github.com/namebay/namebay/pkg/sdk/api"
)

// 一次性搜索工具：同一套查询参数构建逻辑，但不进 TUI，直接打印表格。

func main() {
	var (
		configPath = flag.String("config", "", "配置文件路径")
		query      = flag.String("q", "", "搜索词")
		status     = flag.String("status", "", "状态标签，逗号分隔 (listed,premium,available,unlisted,expiring_soon,grace_period,has_last_sale)")
		types      = flag.String("type", "", "类型标签，逗号分隔 (letters,numbers,emojis)；留空表示全部")
		minLen     = flag.Int("min-len", 0, "最小名称长度")
		maxLen     = flag.Int("max-len", 0, "最大名称长度")
		minPrice   = flag.String("min-price", "", "最低价格（ETH）")
		maxPrice   = flag.String("max-price", "", "最高价格（ETH）")
		clubs      = flag.String("club", "", "club 列表，逗号分隔")
		sortKey    = flag.String("sort", "", "排序: name_asc name_desc price_asc price_desc last_sale_desc expiry_asc listed_desc")
		owner      = flag.String("owner", "", "仅显示该地址拥有的名称")
		pages      = flag.Int("pages", 1, "抓取页数")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{Level: "warn"}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	f, err := buildFilters(*query, *status, *types, *minLen, *maxLen, *minPrice, *maxPrice, *clubs, *sortKey, *owner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.RetryCount)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tPRICE (ETH)\tEXPIRES")

	total := 0
	for page := 1; page <= *pages; page++ {
		resp, _, err := client.SearchNames(ctx, f, page, cfg.API.PageSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "page %d: %v\n", page, err)
			break
		}
		items := resp.Items()
		for _, n := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.Name, statusOf(n), priceOf(n), expiryOf(n))
		}
		total += len(items)
		if !resp.Data.Pagination.HasNext && resp.Data.Pagination.Page >= resp.Data.Pagination.TotalPages {
			break
		}
	}
	w.Flush()
	fmt.Printf("\n%d names\n", total)
}

func buildFilters(query, status, types string, minLen, maxLen int, minPrice, maxPrice, clubs, sortKey, owner string) (api.SearchFilters, error) {
	f := api.SearchFilters{
		Search: api.NormalizeSearch(query),
		Owner:  owner,
		Types:  filter.AllTypes,
	}

	for _, s := range splitList(status) {
		tag := api.StatusTag(s)
		if !filter.StatusAllowed(filter.ContextMarketplace, tag) {
			return f, fmt.Errorf("unknown status %q", s)
		}
		f.Status = append(f.Status, tag)
	}

	if types != "" {
		f.Types = nil
		for _, s := range splitList(types) {
			tag := api.TypeTag(s)
			if !filter.TypeAllowed(tag) {
				return f, fmt.Errorf("unknown type %q", s)
			}
			f.Types = append(f.Types, tag)
		}
	}

	if minLen > 0 {
		f.MinLength = &minLen
	}
	if maxLen > 0 {
		f.MaxLength = &maxLen
	}

	if minPrice != "" {
		d, err := decimal.NewFromString(minPrice)
		if err != nil {
			return f, fmt.Errorf("bad -min-price: %v", err)
		}
		f.MinPriceETH = &d
	}
	if maxPrice != "" {
		d, err := decimal.NewFromString(maxPrice)
		if err != nil {
			return f, fmt.Errorf("bad -max-price: %v", err)
		}
		f.MaxPriceETH = &d
	}

	f.Clubs = splitList(clubs)

	if sortKey != "" {
		key := api.SortKey(sortKey)
		if !filter.SortAllowed(filter.ContextMarketplace, key) {
			return f, fmt.Errorf("unknown sort %q", sortKey)
		}
		f.Sort = key
	}

	return f, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func statusOf(n api.Name) string {
	switch {
	case n.IsUnregistered:
		return "available"
	case n.IsGracePeriod:
		return "grace"
	case n.IsPremium:
		return "premium"
	case n.IsListed:
		return "listed"
	default:
		return "unlisted"
	}
}

var weiPerEth = decimal.New(1, 18)

func priceOf(n api.Name) string {
	if n.ListingPriceWei == nil {
		return "-"
	}
	d, err := decimal.NewFromString(*n.ListingPriceWei)
	if err != nil {
		return "-"
	}
	return d.Div(weiPerEth).StringFixedBank(4)
}

func expiryOf(n api.Name) string {
	if n.ExpiryDate == nil {
		return "-"
	}
	return n.ExpiryDate.Format("2006-01-02")
}
