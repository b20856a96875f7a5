package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/namebay/namebay/internal/filter"
	"github.com/namebay/namebay/pkg/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// 终端尺寸变化
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case searchSettledMsg:
		// 防抖后的搜索词：写入 store 并重建抓取 key
		m.store.Dispatch(filter.SetSearch(string(msg)))
		m.cursor = 0
		m.store.Dispatch(filter.SetScrollTop(0))
		return m, tea.Batch(m.rekeyCmd(), m.waitSettled())

	case fetchDoneMsg:
		// 列表可能变长了；靠近底部时继续预取
		if msg.changed && m.nearBottom() {
			return m, m.prefetchCmd()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// 全局按键
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()

	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "f":
		if m.focus == focusPanel {
			m.focus = focusList
		} else {
			m.focus = focusPanel
			m.panelIndex = 0
		}
		return m, nil
	}

	if m.focus == focusPanel {
		return m.handlePanelKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.focus = focusList
		m.searchInput.Blur()
		// 回车立刻结算，不等防抖窗口
		m.debouncer.Stop()
		m.store.Dispatch(filter.SetSearch(m.searchInput.Value()))
		m.cursor = 0
		m.store.Dispatch(filter.SetScrollTop(0))
		return m, m.rekeyCmd()
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != before {
		m.debouncer.Update(v)
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.ctrl.Items()
	count := len(items)
	p := m.viewParams()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < count-1 {
			m.cursor++
		}
	case "pgup":
		m.cursor -= p.VisibleCount()
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "pgdown":
		m.cursor += p.VisibleCount()
		if m.cursor > count-1 {
			m.cursor = count - 1
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = count - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	default:
		return m, nil
	}

	return m.syncScroll()
}

// syncScroll keeps the cursor inside the viewport, persists the offset and
// triggers the next page when the view runs near the bottom.
func (m Model) syncScroll() (tea.Model, tea.Cmd) {
	p := m.viewParams()
	stride := p.RowHeight + p.Gap
	if stride <= 0 {
		stride = 1
	}
	count := len(m.ctrl.Items())

	scrollTop := m.store.State().ScrollTop
	cursorTop := m.cursor * stride

	if cursorTop < scrollTop {
		scrollTop = cursorTop
	}
	if bottom := cursorTop + stride; bottom > scrollTop+p.ViewportHeight {
		scrollTop = bottom - p.ViewportHeight
	}
	scrollTop = p.ClampScroll(scrollTop, count)

	if scrollTop != m.store.State().ScrollTop {
		m.store.Dispatch(filter.SetScrollTop(scrollTop))
	}

	if m.nearBottom() {
		return m, m.prefetchCmd()
	}
	return m, nil
}

func (m Model) nearBottom() bool {
	p := m.viewParams()
	return p.NearBottom(m.store.State().ScrollTop, len(m.ctrl.Items()))
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.debouncer.Stop()
	if err := m.store.Persist(); err != nil {
		logger.Warnf("[tui] persist filter state failed: %v", err)
	}
	return m, tea.Quit
}
