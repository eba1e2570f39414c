package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/commute/trip"
)

const (
	// DefaultCurrencyColumn matches bean-format's default alignment.
	DefaultCurrencyColumn = 52

	postingIndent  = 2
	minimumSpacing = 2
)

// Ledger writes commute days as Beancount transactions, one per day with a
// posting per provider:
//
//	2025-06-24 * "Commute" "Hilversum > Duivendrecht > Amsterdam Centraal"
//	  Expenses:Commute:GVB                             1.12 EUR
//	  Expenses:Commute:NS                              7.45 EUR
//	  Liabilities:OV-Chipkaart
type Ledger struct {
	Expenses       string
	Funding        string
	Currency       string
	CurrencyColumn int

	// OpenAccounts emits open directives for the used accounts, dated on
	// the first day, so the output is a valid ledger on its own.
	OpenAccounts bool
}

// Write writes the transactions for legs to w.
func (l *Ledger) Write(w io.Writer, legs []trip.Leg) error {
	bw := bufio.NewWriter(w)
	days := Days(legs)

	if l.OpenAccounts && len(days) > 0 {
		l.writeOpen(bw, days)
	}

	for i, day := range days {
		if i > 0 || l.OpenAccounts {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "%s * %s %s\n", day.Date, quote("Commute"), quote(day.Route()))
		for _, sub := range day.ByProvider() {
			l.writePosting(bw, l.account(sub.Provider), sub.Amount)
		}
		fmt.Fprintf(bw, "%s%s\n", strings.Repeat(" ", postingIndent), l.Funding)
	}

	return bw.Flush()
}

func (l *Ledger) writeOpen(w *bufio.Writer, days []Day) {
	var accounts []string
	for _, sub := range subtotals(flatten(days)) {
		accounts = append(accounts, l.account(sub.Provider))
	}
	accounts = append(accounts, l.Funding)

	for _, account := range accounts {
		fmt.Fprintf(w, "%s open %s %s\n", days[0].Date, account, l.Currency)
	}
}

// writePosting right-aligns the number so the currency starts at the
// currency column, keeping at least minimumSpacing after the account.
func (l *Ledger) writePosting(w *bufio.Writer, account string, amount decimal.Decimal) {
	column := l.CurrencyColumn
	if column <= 0 {
		column = DefaultCurrencyColumn
	}

	number := amount.StringFixed(2)
	prefix := strings.Repeat(" ", postingIndent) + account
	used := runewidth.StringWidth(prefix) + runewidth.StringWidth(number) + 1
	padding := max(minimumSpacing, column-1-used)

	fmt.Fprintf(w, "%s%s%s %s\n", prefix, strings.Repeat(" ", padding), number, l.Currency)
}

func (l *Ledger) account(p trip.Provider) string {
	return l.Expenses + ":" + p.String()
}

func flatten(days []Day) []trip.Leg {
	var legs []trip.Leg
	for _, d := range days {
		legs = append(legs, d.Legs...)
	}
	return legs
}

// quote produces a Beancount string literal.
func quote(s string) string {
	return strconv.Quote(s)
}
