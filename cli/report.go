package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/commute/report"
	"github.com/robinvdvleuten/commute/telemetry"
)

type ReportCmd struct {
	File FileOrStdin `help:"Statement text or PDF (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	FilterFlags
	Plain bool `help:"Print without borders and colors."`
}

func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("report %s", cmd.File.Base()))
	defer reportTelemetry()

	return renderReport(runCtx, ctx.Stdout, ctx.Stderr, globals, &cmd.File, cmd.FilterFlags, cmd.Plain)
}

func renderReport(ctx context.Context, stdout, stderr io.Writer, globals *Globals, file *FileOrStdin, flags FilterFlags, plain bool) error {
	st, err := loadCommutes(ctx, globals, file, flags)
	if err != nil {
		return failLoad(stderr, st, err)
	}

	warnUnmatched(stderr, st.scanned)

	if len(st.legs) == 0 {
		printInfof(stderr, "No commute legs found in %s", file.Base())
		return nil
	}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("report.render (%d legs)", len(st.legs)))
	defer timer.End()

	tbl := &report.Table{Currency: st.cfg.CurrencyCode(), Plain: plain}
	return tbl.Render(stdout, st.legs)
}
