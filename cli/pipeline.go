package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/robinvdvleuten/commute/config"
	"github.com/robinvdvleuten/commute/invoice"
	"github.com/robinvdvleuten/commute/telemetry"
	"github.com/robinvdvleuten/commute/trip"
)

// FilterFlags select which legs count as commutes.
type FilterFlags struct {
	From    []string `help:"Home-side station, repeatable. Overrides the configuration." sep:"none" placeholder:"STATION"`
	To      []string `help:"Work-side station, repeatable. Overrides the configuration." sep:"none" placeholder:"STATION"`
	AllDays bool     `help:"Keep legs travelled in weekends."`
}

// statement is a scanned statement and, after filtering, its commute legs.
type statement struct {
	cfg     *config.Config
	source  []byte
	scanned *invoice.Result
	legs    []trip.Leg
}

// loadCommutes reads the configuration and the statement and filters the
// scanned legs down to commutes. On a parse error the returned statement
// still carries the source text for rendering.
func loadCommutes(ctx context.Context, globals *Globals, file *FileOrStdin, flags FilterFlags) (*statement, error) {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return nil, err
	}

	stations, err := cfg.Stations(flags.From, flags.To)
	if err != nil {
		return nil, err
	}

	st, err := scan(ctx, cfg, file)
	if err != nil {
		return st, err
	}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("trip.filter (%d legs)", len(st.scanned.Legs)))
	st.legs = trip.FilterPerProvider(st.scanned.Legs, stations)
	if cfg.Workdays() && !flags.AllDays {
		st.legs = trip.Workdays(st.legs)
	}
	timer.End()

	return st, nil
}

func scan(ctx context.Context, cfg *config.Config, file *FileOrStdin) (*statement, error) {
	text, err := file.Text(ctx)
	if err != nil {
		return nil, err
	}

	st := &statement{cfg: cfg, source: text}
	st.scanned, err = invoice.New(cfg.ScannerOptions()...).Scan(ctx, file.Filename, text)
	if err != nil {
		return st, err
	}
	return st, nil
}

// failLoad reports a parse error with its source context on w and turns it
// into a CommandError. Other errors are returned unchanged for kong to print.
func failLoad(w io.Writer, st *statement, err error) error {
	var parseErr *invoice.ParseError
	if !errors.As(err, &parseErr) {
		return err
	}

	var source []byte
	if st != nil {
		source = st.source
	}
	_, _ = fmt.Fprintln(w, NewErrorRenderer(source).Render(err))
	printError(w, "parse error")

	return NewCommandError(1)
}

func warnUnmatched(w io.Writer, result *invoice.Result) {
	if n := len(result.Unmatched); n > 0 {
		printInfof(w, "%d fare line(s) with unknown stations, run `commute doctor legs` for details", n)
	}
}
