package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/commute/trip"
)

var headers = []string{"Date", "", "Provider", "From", "To", "Price"}

const priceColumn = 5

// Table renders legs followed by their subtotals.
type Table struct {
	// Currency is the ISO code prices are billed in.
	Currency string

	// Plain disables borders and colors and aligns columns with spaces,
	// which is easier to process with other tools.
	Plain bool
}

// Render writes the table for legs to w.
func (t *Table) Render(w io.Writer, legs []trip.Leg) error {
	rows := make([][]string, 0, len(legs))
	for _, leg := range legs {
		rows = append(rows, []string{
			leg.Date.String(),
			leg.Date.Weekday().String()[:3],
			leg.Provider.String(),
			leg.From,
			leg.To,
			t.money(leg.Price),
		})
	}

	summary := Summarize(legs)

	var body string
	if t.Plain {
		body = plainTable(rows)
	} else {
		body = t.styledTable(w, rows)
	}
	if _, err := fmt.Fprintln(w, body); err != nil {
		return err
	}

	return t.renderSummary(w, summary)
}

func (t *Table) styledTable(w io.Writer, rows [][]string) string {
	re := lipgloss.NewRenderer(w)
	header := re.NewStyle().Bold(true).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)
	dim := cell.Faint(true)
	price := cell.Align(lipgloss.Right).Foreground(lipgloss.Color("5"))

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 1:
				return dim
			case col == priceColumn:
				return price
			}
			return cell
		}).
		String()
}

// plainTable aligns rows in columns separated by two spaces. Prices are
// right aligned.
func plainTable(rows [][]string) string {
	all := append([][]string{headers}, rows...)

	widths := make([]int, len(headers))
	for _, row := range all {
		for i, value := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(value))
		}
	}

	var b strings.Builder
	for n, row := range all {
		if n > 0 {
			b.WriteByte('\n')
		}
		var line strings.Builder
		for i, value := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			if i == priceColumn {
				line.WriteString(runewidth.FillLeft(value, widths[i]))
			} else {
				line.WriteString(runewidth.FillRight(value, widths[i]))
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
	}
	return b.String()
}

func (t *Table) renderSummary(w io.Writer, s Summary) error {
	re := lipgloss.NewRenderer(w)
	label := re.NewStyle()
	amount := re.NewStyle().Foreground(lipgloss.Color("5"))
	total := re.NewStyle().Bold(true)
	if t.Plain {
		amount, total = label, label
	}

	lines := make([][2]string, 0, len(s.Providers)+2)
	for _, sub := range s.Providers {
		lines = append(lines, [2]string{
			fmt.Sprintf("%s (%d legs)", sub.Provider, sub.Legs),
			t.money(sub.Amount),
		})
	}
	lines = append(lines,
		[2]string{fmt.Sprintf("Total (%d legs, %d days)", s.Legs, s.Days), t.money(s.Total)},
	)

	labelWidth, amountWidth := 0, 0
	for _, l := range lines {
		labelWidth = max(labelWidth, runewidth.StringWidth(l[0]))
		amountWidth = max(amountWidth, runewidth.StringWidth(l[1]))
	}

	for i, l := range lines {
		style := amount
		if i == len(lines)-1 {
			style = total
		}
		_, err := fmt.Fprintf(w, "%s  %s\n",
			label.Render(runewidth.FillRight(l[0], labelWidth)),
			style.Render(runewidth.FillLeft(l[1], amountWidth)),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) money(d decimal.Decimal) string {
	return Money(d, t.Currency)
}

// Money formats an amount with two decimals and the currency symbol, for
// example "€ 3.45". Unknown currencies are printed as their code.
func Money(d decimal.Decimal, currency string) string {
	symbol := currency
	switch strings.ToUpper(currency) {
	case "", "EUR":
		symbol = "€"
	}
	return symbol + " " + d.StringFixed(2)
}
