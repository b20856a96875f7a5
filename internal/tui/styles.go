package tui

import "github.com/charmbracelet/lipgloss"

var (
	// 样式定义
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	listedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")) // 绿色

	premiumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")) // 黄色

	unregisteredStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")) // 青色

	graceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")) // 红色

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("7"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("238")).
			Padding(0, 1)

	chipOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("2")).
			Padding(0, 1)

	staleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("3"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
