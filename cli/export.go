package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/commute/report"
	"github.com/robinvdvleuten/commute/telemetry"
)

type ExportCmd struct {
	File FileOrStdin `help:"Statement text or PDF (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	FilterFlags
	Format         string `help:"Output format (${enum})." enum:"beancount,ics" default:"beancount" short:"f"`
	OpenAccounts   bool   `help:"Emit open directives for the used accounts (beancount only)."`
	CurrencyColumn int    `help:"Column for currency alignment (beancount only)." default:"52"`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("export %s", cmd.File.Base()))
	defer reportTelemetry()

	st, err := loadCommutes(runCtx, globals, &cmd.File, cmd.FilterFlags)
	if err != nil {
		return failLoad(ctx.Stderr, st, err)
	}

	warnUnmatched(ctx.Stderr, st.scanned)

	timer := telemetry.StartTimer(runCtx, fmt.Sprintf("export.%s (%d legs)", cmd.Format, len(st.legs)))
	defer timer.End()

	switch cmd.Format {
	case "ics":
		cal := &report.Calendar{Currency: st.cfg.CurrencyCode()}
		return cal.Write(ctx.Stdout, st.legs)
	default:
		ledger := &report.Ledger{
			Expenses:       st.cfg.ExpensesAccount(),
			Funding:        st.cfg.FundingAccount(),
			Currency:       st.cfg.CurrencyCode(),
			CurrencyColumn: cmd.CurrencyColumn,
			OpenAccounts:   cmd.OpenAccounts,
		}
		return ledger.Write(ctx.Stdout, st.legs)
	}
}
