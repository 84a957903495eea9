// Package tui implements an interactive sales browser on bubbletea. It
// is a read-only view over an already-fetched sales list: sorting and
// pagination run locally through the report engine, no requests are
// made while the browser is open.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
)

const pageSize = 15

// sortCycle is the order the sort key advances through.
var sortCycle = []string{
	report.SaleSortDate,
	report.SaleSortSeller,
	report.SaleSortPayment,
	report.SaleSortTotal,
}

// Model holds the browser state.
type Model struct {
	keymap    KeyMap
	sortIdx   int
	direction report.Direction
	sales     []model.Sale
	table     table.Model
	paginator paginator.Model
	width     int
	quitting  bool
}

// NewModel builds a browser over the given sales list. The list should
// already be filtered; the browser only sorts and paginates.
func NewModel(sales []model.Sale) Model {
	columns := []table.Column{
		{Title: "Date", Width: 17},
		{Title: "Seller", Width: 18},
		{Title: "Payment", Width: 10},
		{Title: "Items", Width: 6},
		{Title: "Total", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(pageSize+1),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(cli.PrimaryColor)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize
	p.SetTotalPages(len(sales))

	m := Model{
		keymap:    DefaultKeyMap(),
		direction: report.Descending,
		sales:     sales,
		table:     t,
		paginator: p,
	}
	m.refresh()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.NextPage):
			if !m.paginator.OnLastPage() {
				m.paginator.NextPage()
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, m.keymap.PrevPage):
			m.paginator.PrevPage()
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keymap.Sort):
			m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
			m.paginator.Page = 0
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keymap.Reverse):
			if m.direction == report.Ascending {
				m.direction = report.Descending
			} else {
				m.direction = report.Ascending
			}
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := cli.FormatTitle(fmt.Sprintf("Sales (%d, total %s)", len(m.sales), cli.FormatMoney(report.SalesTotal(m.sales))))
	footer := cli.SubtleStyle.Render(fmt.Sprintf(
		"page %s · sort %s %s · n/p page · s sort · r reverse · q quit",
		m.paginator.View(), m.sortColumn(), m.directionLabel(),
	))

	return lipgloss.JoinVertical(lipgloss.Left, header, m.table.View(), footer)
}

func (m Model) sortColumn() string {
	return sortCycle[m.sortIdx]
}

func (m Model) directionLabel() string {
	if m.direction == report.Ascending {
		return "asc"
	}
	return "desc"
}

// refresh re-derives the visible rows from the sort and page state.
func (m *Model) refresh() {
	sorted := report.SortBy(m.sales, report.SaleComparator(m.sortColumn()), m.direction)
	page := report.Paginate(sorted, m.paginator.Page+1, pageSize)

	rows := make([]table.Row, len(page))
	for i, sale := range page {
		rows[i] = table.Row{
			sale.CreatedAt.Format("2006-01-02 15:04"),
			sale.SellerName(),
			string(sale.PaymentMethod),
			fmt.Sprintf("%d", len(sale.Details)),
			cli.FormatMoney(sale.Total),
		}
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}
