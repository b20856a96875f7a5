package tui

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/namebay/namebay/internal/filter"
	"github.com/namebay/namebay/pkg/sdk/api"
)

var weiPerEth = decimal.New(1, 18)

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	state := m.store.State()
	var b strings.Builder

	b.WriteString(m.renderHeader(state))
	b.WriteString("\n")
	b.WriteString(m.renderSearch())
	b.WriteString("\n")
	b.WriteString(m.renderChips(state))
	b.WriteString("\n")

	if m.focus == focusPanel {
		b.WriteString(m.renderPanel(state))
	}

	b.WriteString(m.renderList(state))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader(state filter.State) string {
	title := "namebay"
	switch m.ctx {
	case filter.ContextPortfolio:
		title = "namebay · portfolio"
		if m.opts.OwnerDisplay != "" {
			title = "namebay · " + m.opts.OwnerDisplay
		}
	case filter.ContextCategory:
		title = "namebay · " + m.opts.ClubOverride
	}

	count := fmt.Sprintf("%d names", len(m.ctrl.Items()))
	if m.ctrl.Loading() {
		count += " · fetching"
	}
	line := headerStyle.Render(title) + " " + dimStyle.Render(count)
	if m.ctrl.Stale() {
		line += " " + staleStyle.Render("[cached]")
	}
	return line
}

func (m Model) renderSearch() string {
	prompt := "search: "
	if m.focus == focusSearch {
		prompt = titleStyle.Render("search: ")
	}
	return prompt + m.searchInput.View()
}

// renderChips 把当前生效的过滤条件画成一行小标签
func (m Model) renderChips(state filter.State) string {
	var chips []string

	for _, tag := range state.Status {
		chips = append(chips, chipOnStyle.Render(statusLabels[tag]))
	}
	if len(state.Types) != len(filter.AllTypes) {
		for _, tag := range state.Types {
			chips = append(chips, chipOnStyle.Render(typeLabels[tag]))
		}
		if len(state.Types) == 0 {
			chips = append(chips, chipOnStyle.Render("Letters only"))
		}
	}
	if state.Length.Min != nil || state.Length.Max != nil {
		chips = append(chips, chipStyle.Render(rangeChip("len", intLabel(state.Length.Min), intLabel(state.Length.Max))))
	}
	if state.Price.Min != nil || state.Price.Max != nil {
		chips = append(chips, chipStyle.Render(rangeChip("Ξ", decLabel(state.Price.Min), decLabel(state.Price.Max))))
	}
	for _, club := range state.Categories {
		chips = append(chips, chipStyle.Render(club))
	}
	if state.Sort != "" {
		chips = append(chips, chipStyle.Render("sort: "+sortLabels[state.Sort]))
	}
	if state.Watchlist {
		chips = append(chips, chipOnStyle.Render("Watchlist"))
	}

	if len(chips) == 0 {
		return dimStyle.Render("no filters · press f")
	}
	return strings.Join(chips, " ")
}

func (m Model) renderList(state filter.State) string {
	items := m.ctrl.Items()
	p := m.viewParams()
	win := p.Compute(state.ScrollTop, len(items))

	if len(items) == 0 {
		if m.ctrl.Loading() {
			return dimStyle.Render("  fetching...")
		}
		return dimStyle.Render("  no names match")
	}

	stride := p.RowHeight + p.Gap
	if stride <= 0 {
		stride = 1
	}
	firstVisible := state.ScrollTop / stride
	visible := m.listHeight()

	// 渲染整个窗口再裁出可见段，overscan 行只是缓冲
	rows := make([]string, 0, win.Count())
	for i := win.Start; i < win.End; i++ {
		rows = append(rows, m.renderRow(items[i], i == m.cursor))
	}

	lo := firstVisible - win.Start
	if lo < 0 {
		lo = 0
	}
	hi := lo + visible
	if hi > len(rows) {
		hi = len(rows)
	}
	out := strings.Join(rows[lo:hi], "\n")

	if m.ctrl.Loading() && win.End >= len(items) {
		out += "\n" + dimStyle.Render("  loading more...")
	}
	return out
}

func (m Model) renderRow(n api.Name, selected bool) string {
	name := n.Name

	var tag, price string
	switch {
	case n.IsUnregistered:
		tag = unregisteredStyle.Render("available")
	case n.IsGracePeriod:
		tag = graceStyle.Render("grace")
	case n.IsPremium:
		tag = premiumStyle.Render("premium")
	case n.IsListed:
		tag = listedStyle.Render("listed")
	default:
		tag = dimStyle.Render("unlisted")
	}

	if n.ListingPriceWei != nil {
		price = formatWei(*n.ListingPriceWei)
	} else if n.HighestOfferWei != nil {
		price = dimStyle.Render("offer " + formatWei(*n.HighestOfferWei))
	}

	line := fmt.Sprintf("  %-28s %-10s %s", name, tag, price)
	if selected {
		return selectedRowStyle.Render("> " + line[2:])
	}
	return line
}

func (m Model) renderHelp() string {
	return helpStyle.Render("/ search · f filters · j/k move · g/G top/bottom · q quit")
}

// formatWei 把 wei 字符串转成 ETH 显示值
func formatWei(wei string) string {
	d, err := decimal.NewFromString(wei)
	if err != nil {
		return wei
	}
	return d.Div(weiPerEth).StringFixedBank(4) + " Ξ"
}

func rangeChip(label, lo, hi string) string {
	return fmt.Sprintf("%s %s–%s", label, lo, hi)
}

func intLabel(v *int) string {
	if v == nil {
		return "∗"
	}
	return fmt.Sprintf("%d", *v)
}

func decLabel(v *decimal.Decimal) string {
	if v == nil {
		return "∗"
	}
	return v.String()
}
