package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/commute/config"
	"github.com/robinvdvleuten/commute/output"
	"github.com/robinvdvleuten/commute/report"
)

// DoctorCmd provides doctor utilities for debugging statements.
type DoctorCmd struct {
	Legs LegsCmd `cmd:"" help:"List every fare line recognized in a statement, before filtering."`
}

// LegsCmd shows what the scanner makes of a statement.
type LegsCmd struct {
	File FileOrStdin `help:"Statement text or PDF (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Raw  bool        `help:"Dump the scanned legs as Go values."`
}

// Run executes the legs command.
func (cmd *LegsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	cfg, err := config.Load(globals.Config)
	if err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("doctor legs %s", cmd.File.Base()))
	defer reportTelemetry()

	st, err := scan(runCtx, cfg, &cmd.File)
	if err != nil {
		return failLoad(ctx.Stderr, st, err)
	}

	if cmd.Raw {
		repr.New(ctx.Stdout).Println(st.scanned.Legs)
	} else {
		tbl := &report.Table{Currency: cfg.CurrencyCode(), Plain: true}
		if err := tbl.Render(ctx.Stdout, st.scanned.Legs); err != nil {
			return err
		}
	}

	styles := output.NewStyles(ctx.Stderr)
	if len(st.scanned.Unmatched) == 0 {
		_, _ = fmt.Fprintln(ctx.Stderr, styles.Success(fmt.Sprintf("All %d fare lines resolved", len(st.scanned.Legs))))
		return nil
	}
	for _, line := range st.scanned.Unmatched {
		_, _ = fmt.Fprintf(ctx.Stderr, "%s: %s %s\n",
			styles.FilePath(line.Pos.String()),
			styles.Warning(fmt.Sprintf("unknown %s station", line.Provider)),
			styles.Dim(line.Text),
		)
	}

	return nil
}
