package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/namebay/namebay/internal/common"
	"github.com/namebay/namebay/internal/fetcher"
	"github.com/namebay/namebay/internal/filter"
	"github.com/namebay/namebay/internal/vlist"
	"github.com/namebay/namebay/pkg/config"
)

// focusArea 当前键盘焦点
type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusPanel
)

// searchSettledMsg 防抖结束后的搜索词
type searchSettledMsg string

// fetchDoneMsg 一次抓取完成
type fetchDoneMsg struct {
	changed bool
}

// Options wires the browser model to its collaborators.
type Options struct {
	Context      filter.Context
	Store        *filter.Store
	Controller   *fetcher.Controller
	UI           config.UIConfig
	ClubOverride string // category pages pin a single club
	Owner        string // portfolio pages scope to an address
	OwnerDisplay string // resolved profile name for the header, optional
}

// Model 是市场浏览器的 bubbletea 状态
type Model struct {
	ctx  filter.Context
	opts Options

	store *filter.Store
	ctrl  *fetcher.Controller

	searchInput textinput.Model
	debouncer   *common.TextDebouncer
	settledCh   chan string
	fetchGate   *common.Debouncer // 限制滚动触发的预取频率

	params vlist.Params
	cursor int // selected row index within items

	focus      focusArea
	panelIndex int // cursor within the filter panel

	width  int
	height int
	ready  bool
}

// New builds the browser model. The filter store seeds the search box and
// scroll offset so re-entering a view restores position.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "search names"
	ti.CharLimit = 64
	ti.Width = 32

	state := opts.Store.State()
	ti.SetValue(state.Search)

	settledCh := make(chan string, 1)
	deb := common.NewTextDebouncer(
		time.Duration(opts.UI.DebounceMs)*time.Millisecond,
		func(v string) { settledCh <- v },
	)

	m := Model{
		ctx:         opts.Context,
		opts:        opts,
		store:       opts.Store,
		ctrl:        opts.Controller,
		searchInput: ti,
		debouncer:   deb,
		settledCh:   settledCh,
		fetchGate:   common.NewDebouncer(prefetchGateInterval),
		params: vlist.Params{
			RowHeight:       opts.UI.RowHeight,
			Gap:             opts.UI.RowGap,
			OverscanCount:   opts.UI.OverscanCount,
			ScrollThreshold: opts.UI.ScrollThreshold,
		},
	}

	// 初始 key 来自持久化状态
	m.ctrl.SetFilters(state.SearchFilters(opts.ClubOverride, opts.Owner))
	return m
}

// Init kicks off the first fetch and the settled-search listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchCmd(), m.waitSettled())
}

// waitSettled blocks on the debouncer's output channel.
func (m Model) waitSettled() tea.Cmd {
	ch := m.settledCh
	return func() tea.Msg {
		return searchSettledMsg(<-ch)
	}
}

// prefetchGateInterval caps how often scroll events may trigger a fetch.
const prefetchGateInterval = 200 * time.Millisecond

// prefetchCmd is the bottom-threshold fetch path. Scroll events arrive much
// faster than pages resolve, so it runs through the interval gate; explicit
// re-keys (search settled, filter toggled) bypass it via rekeyCmd.
func (m Model) prefetchCmd() tea.Cmd {
	if !m.ctrl.HasNextPage() || m.ctrl.Loading() {
		return nil
	}
	now := time.Now()
	if ready, _ := m.fetchGate.Ready(now); !ready {
		return nil
	}
	m.fetchGate.Mark(now)
	return m.fetchCmd()
}

// fetchCmd runs one FetchNextPage off the UI loop. The controller collapses
// overlapping calls, so firing it eagerly is safe.
func (m Model) fetchCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return fetchDoneMsg{changed: ctrl.FetchNextPage(ctx)}
	}
}

// rekeyCmd re-keys the controller from the current filter state and, when
// the key actually changed, fetches page 1.
func (m Model) rekeyCmd() tea.Cmd {
	state := m.store.State()
	if m.ctrl.SetFilters(state.SearchFilters(m.opts.ClubOverride, m.opts.Owner)) {
		return m.fetchCmd()
	}
	return nil
}

// listHeight 列表可视高度（扣掉头部、搜索框、筛选行、底部帮助）
func (m Model) listHeight() int {
	h := m.height - 7
	if m.focus == focusPanel {
		h -= m.panelLines()
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) viewParams() vlist.Params {
	p := m.params
	p.ViewportHeight = m.listHeight() * p.RowHeight
	return p
}
