package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/namebay/namebay/internal/fetcher"
	"github.com/namebay/namebay/internal/filter"
	"github.com/namebay/namebay/internal/identity"
	"github.com/namebay/namebay/internal/tui"
	"github.com/namebay/namebay/pkg/cache"
	"github.com/namebay/namebay/pkg/config"
	"github.com/namebay/namebay/pkg/logger"
	"github.com/namebay/namebay/pkg/persistence"
	"github.com/namebay/namebay/pkg/sdk/api"
)

func main() {
	var (
		configPath = flag.String("config", "", "配置文件路径")
		contextArg = flag.String("context", "marketplace", "浏览上下文: marketplace | portfolio | category")
		club       = flag.String("club", "", "分类页固定的 club（仅 category 上下文）")
		owner      = flag.String("owner", "", "组合页的钱包地址（仅 portfolio 上下文）")
		link       = flag.String("link", "", "从分享链接的查询串启动，如 'q=vault&status=listed'")
		noCache    = flag.Bool("no-cache", false, "关闭磁盘页缓存")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// TUI 占用 stdout，日志只写文件
	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		FileOnly:   true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := filter.Context(*contextArg)
	switch ctx {
	case filter.ContextMarketplace, filter.ContextPortfolio, filter.ContextCategory:
	default:
		fmt.Fprintf(os.Stderr, "unknown context %q\n", *contextArg)
		os.Exit(1)
	}
	if ctx == filter.ContextCategory && *club == "" {
		fmt.Fprintln(os.Stderr, "category context requires -club")
		os.Exit(1)
	}
	if ctx == filter.ContextPortfolio && *owner == "" {
		fmt.Fprintln(os.Stderr, "portfolio context requires -owner")
		os.Exit(1)
	}

	svc := persistence.NewJSONFileService(cfg.StateDir)
	store := filter.NewStore(ctx, svc)

	// 终端里打开自己的组合页就是所有者本人
	if ctx == filter.ContextPortfolio {
		st := store.State()
		st.IsOwner = true
		store.Hydrate(st)
	}

	// 分享链接优先于上次会话恢复的状态
	if *link != "" {
		values, err := url.ParseQuery(strings.TrimPrefix(*link, "?"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -link: %v\n", err)
			os.Exit(1)
		}
		store.Hydrate(filter.ParseQuery(ctx, values, *owner != ""))
	}

	var pageCache *cache.PageCache
	if !*noCache {
		pageCache, err = cache.OpenPageCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			logger.Warnf("[browser] open page cache failed, running without: %v", err)
		} else {
			defer pageCache.Close()
		}
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.RetryCount)
	ctrl := fetcher.NewController(client, pageCache, cfg.API.PageSize)

	// 组合页标题用档案名，查不到就退回地址
	ownerDisplay := ""
	if ctx == filter.ContextPortfolio {
		idCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if acct, err := identity.NewService(cfg.API.BaseURL, cfg.API.Timeout).FetchAccount(idCtx, *owner); err == nil {
			ownerDisplay = acct.Display
		} else {
			logger.Debugf("[browser] identity lookup failed: %v", err)
		}
		cancel()
	}

	model := tui.New(tui.Options{
		Context:      ctx,
		Store:        store,
		Controller:   ctrl,
		UI:           cfg.UI,
		ClubOverride: *club,
		Owner:        *owner,
		OwnerDisplay: ownerDisplay,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}

	// 退出后打印当前过滤条件的分享串
	if q := filter.EncodeQuery(store.State()).Encode(); q != "" {
		fmt.Printf("share: -link %q\n", q)
	}
}
