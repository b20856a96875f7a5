package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/namebay/namebay/internal/filter"
	"github.com/namebay/namebay/pkg/sdk/api"
)

// 筛选面板：手风琴分区（status / type / length / price / clubs / sort），
// 展开状态保存在 store 里。

const (
	sectionStatus = "status"
	sectionType   = "type"
	sectionLength = "length"
	sectionPrice  = "price"
	sectionClubs  = "clubs"
	sectionSort   = "sort"
)

type panelEntryKind int

const (
	entrySection panelEntryKind = iota
	entryStatus
	entryType
	entryLength
	entryPrice
	entryClub
	entrySort
	entryClear
)

type panelEntry struct {
	kind    panelEntryKind
	label   string
	section string
	status  api.StatusTag
	typeTag api.TypeTag
	sort    api.SortKey
	length  filter.LengthRange
	price   filter.PriceRange
	club    string
}

// 长度和价格用预设档位，终端里不做自由输入
var lengthPresets = []struct {
	label string
	rng   filter.LengthRange
}{
	{"3 chars", rangeOf(3, 3)},
	{"4 chars", rangeOf(4, 4)},
	{"5–9 chars", rangeOf(5, 9)},
	{"10+ chars", filter.LengthRange{Min: intPtr(10)}},
}

var pricePresets = []struct {
	label string
	rng   filter.PriceRange
}{
	{"under 0.1 ETH", priceRange("", "0.1")},
	{"0.1 – 1 ETH", priceRange("0.1", "1")},
	{"1 – 10 ETH", priceRange("1", "10")},
	{"10+ ETH", priceRange("10", "")},
}

var clubPresets = []string{"999club", "10kclub", "100kclub"}

func intPtr(n int) *int { return &n }

func rangeOf(min, max int) filter.LengthRange {
	return filter.LengthRange{Min: intPtr(min), Max: intPtr(max)}
}

func priceRange(min, max string) filter.PriceRange {
	var r filter.PriceRange
	if min != "" {
		d := decimal.RequireFromString(min)
		r.Min = &d
	}
	if max != "" {
		d := decimal.RequireFromString(max)
		r.Max = &d
	}
	return r
}

var statusLabels = map[api.StatusTag]string{
	api.StatusListed:       "Listed",
	api.StatusPremium:      "Premium",
	api.StatusAvailable:    "Available",
	api.StatusUnlisted:     "Unlisted",
	api.StatusExpiringSoon: "Expiring Soon",
	api.StatusGracePeriod:  "Grace Period",
	api.StatusHasLastSale:  "Has Last Sale",
}

var typeLabels = map[api.TypeTag]string{
	api.TypeLetters: "Letters",
	api.TypeNumbers: "Numbers",
	api.TypeEmojis:  "Emojis",
}

var sortLabels = map[api.SortKey]string{
	api.SortAlphabetical:     "A → Z",
	api.SortAlphabeticalDesc: "Z → A",
	api.SortPriceLowToHigh:   "Price: low to high",
	api.SortPriceHighToLow:   "Price: high to low",
	api.SortHighestLastSale:  "Highest last sale",
	api.SortExpirySoonest:    "Expiring soonest",
	api.SortRecentlyListed:   "Recently listed",
}

func panelOpen(state filter.State, section string) bool {
	for _, s := range state.OpenPanels {
		if s == section {
			return true
		}
	}
	return false
}

// panelEntries flattens the accordion into a navigable list: headers always
// present, items only when their section is expanded.
func (m Model) panelEntries(state filter.State) []panelEntry {
	var entries []panelEntry

	entries = append(entries, panelEntry{kind: entrySection, label: "Status", section: sectionStatus})
	if panelOpen(state, sectionStatus) {
		for _, tag := range filter.StatusVocabulary(m.ctx) {
			entries = append(entries, panelEntry{kind: entryStatus, label: statusLabels[tag], status: tag})
		}
	}

	entries = append(entries, panelEntry{kind: entrySection, label: "Type", section: sectionType})
	if panelOpen(state, sectionType) {
		for _, tag := range filter.AllTypes {
			entries = append(entries, panelEntry{kind: entryType, label: typeLabels[tag], typeTag: tag})
		}
	}

	entries = append(entries, panelEntry{kind: entrySection, label: "Length", section: sectionLength})
	if panelOpen(state, sectionLength) {
		for _, p := range lengthPresets {
			entries = append(entries, panelEntry{kind: entryLength, label: p.label, length: p.rng})
		}
	}

	entries = append(entries, panelEntry{kind: entrySection, label: "Price", section: sectionPrice})
	if panelOpen(state, sectionPrice) {
		for _, p := range pricePresets {
			entries = append(entries, panelEntry{kind: entryPrice, label: p.label, price: p.rng})
		}
	}

	// 组合页不挑分类：看的是一个地址的持仓，不是市场分片
	if m.ctx != filter.ContextPortfolio && m.opts.ClubOverride == "" {
		entries = append(entries, panelEntry{kind: entrySection, label: "Clubs", section: sectionClubs})
		if panelOpen(state, sectionClubs) {
			for _, club := range clubPresets {
				entries = append(entries, panelEntry{kind: entryClub, label: club, club: club})
			}
		}
	}

	entries = append(entries, panelEntry{kind: entrySection, label: "Sort", section: sectionSort})
	if panelOpen(state, sectionSort) {
		for _, key := range filter.SortVocabulary(m.ctx) {
			entries = append(entries, panelEntry{kind: entrySort, label: sortLabels[key], sort: key})
		}
	}

	entries = append(entries, panelEntry{kind: entryClear, label: "Clear all filters"})
	return entries
}

func (m Model) panelLines() int {
	return len(m.panelEntries(m.store.State())) + 1 // +1 标题行
}

func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.store.State()
	entries := m.panelEntries(state)

	switch msg.String() {
	case "esc":
		m.focus = focusList
		return m, nil

	case "up", "k":
		if m.panelIndex > 0 {
			m.panelIndex--
		}
		return m, nil

	case "down", "j":
		if m.panelIndex < len(entries)-1 {
			m.panelIndex++
		}
		return m, nil

	case " ", "enter":
		if m.panelIndex >= len(entries) {
			return m, nil
		}
		entry := entries[m.panelIndex]

		switch entry.kind {
		case entrySection:
			m.store.Dispatch(filter.TogglePanel(entry.section))
			return m, nil

		case entryStatus:
			m.store.Dispatch(filter.ToggleStatus(entry.status))
		case entryType:
			m.store.Dispatch(filter.ToggleType(entry.typeTag))
		case entryLength:
			// 档位是单选，点已选中的档位等于取消
			if lengthEqual(state.Length, entry.length) {
				m.store.Dispatch(filter.SetLength(nil, nil))
			} else {
				m.store.Dispatch(filter.SetLength(entry.length.Min, entry.length.Max))
			}
		case entryPrice:
			if priceEqual(state.Price, entry.price) {
				m.store.Dispatch(filter.SetPriceRange(nil, nil))
			} else {
				m.store.Dispatch(filter.SetPriceRange(entry.price.Min, entry.price.Max))
			}
		case entryClub:
			m.store.Dispatch(filter.ToggleCategory(entry.club))
		case entrySort:
			if state.Sort == entry.sort {
				m.store.Dispatch(filter.SetSort(""))
			} else {
				m.store.Dispatch(filter.SetSort(entry.sort))
			}
		case entryClear:
			m.store.Dispatch(filter.ClearFilters())
			m.searchInput.SetValue("")
		}

		// 任何过滤条件变化都使累计页失效并回到顶部
		m.cursor = 0
		m.store.Dispatch(filter.SetScrollTop(0))
		return m, m.rekeyCmd()
	}

	return m, nil
}

func (m Model) renderPanel(state filter.State) string {
	entries := m.panelEntries(state)
	var b strings.Builder

	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n")

	for i, entry := range entries {
		cursor := "  "
		if m.focus == focusPanel && i == m.panelIndex {
			cursor = "> "
		}

		var line string
		switch entry.kind {
		case entrySection:
			marker := "+"
			if panelOpen(state, entry.section) {
				marker = "-"
			}
			line = fmt.Sprintf("%s[%s] %s", cursor, marker, entry.label)

		case entryStatus:
			line = fmt.Sprintf("%s  (%s) %s", cursor, checkMark(containsStatusTag(state.Status, entry.status)), entry.label)
		case entryType:
			line = fmt.Sprintf("%s  (%s) %s", cursor, checkMark(containsTypeTag(state.Types, entry.typeTag)), entry.label)
		case entryLength:
			line = fmt.Sprintf("%s  (%s) %s", cursor, checkMark(lengthEqual(state.Length, entry.length)), entry.label)
		case entryPrice:
			line = fmt.Sprintf("%s  (%s) %s", cursor, checkMark(priceEqual(state.Price, entry.price)), entry.label)
		case entryClub:
			line = fmt.Sprintf("%s  (%s) %s", cursor, checkMark(containsClub(state.Categories, entry.club)), entry.label)
		case entrySort:
			line = fmt.Sprintf("%s  (%s) %s", cursor, checkMark(state.Sort == entry.sort), entry.label)
		case entryClear:
			line = fmt.Sprintf("%s%s", cursor, dimStyle.Render(entry.label))
		}

		if m.focus == focusPanel && i == m.panelIndex {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func checkMark(on bool) string {
	if on {
		return "x"
	}
	return " "
}

func containsStatusTag(set []api.StatusTag, t api.StatusTag) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func containsTypeTag(set []api.TypeTag, t api.TypeTag) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func containsClub(set []string, club string) bool {
	for _, v := range set {
		if v == club {
			return true
		}
	}
	return false
}

func lengthEqual(a, b filter.LengthRange) bool {
	return intBoundEqual(a.Min, b.Min) && intBoundEqual(a.Max, b.Max)
}

func priceEqual(a, b filter.PriceRange) bool {
	return priceBoundEqual(a.Min, b.Min) && priceBoundEqual(a.Max, b.Max)
}

func intBoundEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func priceBoundEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
