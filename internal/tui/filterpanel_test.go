package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namebay/namebay/internal/fetcher"
	"github.com/namebay/namebay/internal/filter"
	"github.com/namebay/namebay/pkg/config"
	"github.com/namebay/namebay/pkg/sdk/api"
)

func newTestModel(t *testing.T, c filter.Context) Model {
	t.Helper()
	store := filter.NewStore(c, nil)
	ctrl := fetcher.NewController(failingClient{}, nil, 10)
	return New(Options{
		Context:    c,
		Store:      store,
		Controller: ctrl,
		UI:         config.Default().UI,
	})
}

type failingClient struct{}

func (failingClient) SearchNames(ctx context.Context, f api.SearchFilters, page, limit int) (*api.SearchResponse, []byte, error) {
	return nil, nil, assert.AnError
}

func TestPanelEntries_CollapsedByDefault(t *testing.T) {
	m := newTestModel(t, filter.ContextMarketplace)
	entries := m.panelEntries(m.store.State())

	// 收起时只有分区头和清空按钮
	// marketplace: status / type / length / price / clubs / sort
	require.Len(t, entries, 7)
	for _, e := range entries[:6] {
		assert.Equal(t, entrySection, e.kind)
	}
	assert.Equal(t, entryClear, entries[6].kind)
}

func TestPanelEntries_PortfolioHidesClubs(t *testing.T) {
	m := newTestModel(t, filter.ContextPortfolio)
	for _, e := range m.panelEntries(m.store.State()) {
		assert.NotEqual(t, sectionClubs, e.section)
	}
}

func TestHandlePanelKey_LengthPresetIsRadio(t *testing.T) {
	m := newTestModel(t, filter.ContextMarketplace)
	m.focus = focusPanel
	m.store.Dispatch(filter.TogglePanel(sectionLength))

	entries := m.panelEntries(m.store.State())
	for i, e := range entries {
		if e.kind == entryLength {
			m.panelIndex = i
			break
		}
	}

	next, _ := m.handlePanelKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	state := m.store.State()
	require.NotNil(t, state.Length.Min)
	assert.Equal(t, 3, *state.Length.Min)

	// 再选同一档位等于取消
	next, _ = m.handlePanelKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Nil(t, m.store.State().Length.Min)
}

func TestPanelEntries_ExpandWithVocabulary(t *testing.T) {
	m := newTestModel(t, filter.ContextPortfolio)
	m.store.Dispatch(filter.TogglePanel(sectionStatus))

	entries := m.panelEntries(m.store.State())
	statusRows := 0
	for _, e := range entries {
		if e.kind == entryStatus {
			statusRows++
		}
	}
	// portfolio 词表里有 5 个状态
	assert.Equal(t, len(filter.StatusVocabulary(filter.ContextPortfolio)), statusRows)
}

func TestHandlePanelKey_ToggleStatus(t *testing.T) {
	m := newTestModel(t, filter.ContextMarketplace)
	m.focus = focusPanel

	// 展开 status 分区
	next, _ := m.handlePanelKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.True(t, panelOpen(m.store.State(), sectionStatus))

	// 移到第一个状态项并选中
	next, _ = m.handlePanelKey(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	next, _ = m.handlePanelKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	state := m.store.State()
	require.Len(t, state.Status, 1)
	assert.Equal(t, filter.StatusVocabulary(filter.ContextMarketplace)[0], state.Status[0])
}

func TestHandlePanelKey_SortIsRadio(t *testing.T) {
	m := newTestModel(t, filter.ContextMarketplace)
	m.focus = focusPanel

	m.store.Dispatch(filter.TogglePanel(sectionSort))
	entries := m.panelEntries(m.store.State())

	// 找到第一个排序项
	idx := -1
	for i, e := range entries {
		if e.kind == entrySort {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	m.panelIndex = idx

	next, _ := m.handlePanelKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, api.SortAlphabetical, m.store.State().Sort)

	// 再按一次取消选中
	next, _ = m.handlePanelKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Empty(t, m.store.State().Sort)
}

func TestHandlePanelKey_ClearResets(t *testing.T) {
	m := newTestModel(t, filter.ContextMarketplace)
	m.focus = focusPanel
	m.store.Dispatch(filter.SetSearch("vault"))
	m.store.Dispatch(filter.ToggleStatus(api.StatusListed))

	entries := m.panelEntries(m.store.State())
	m.panelIndex = len(entries) - 1 // 清空按钮在最后

	next, _ := m.handlePanelKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	state := m.store.State()
	assert.Empty(t, state.Search)
	assert.Empty(t, state.Status)
}
