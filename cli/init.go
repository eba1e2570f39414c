package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"

	"github.com/robinvdvleuten/commute/config"
	"github.com/robinvdvleuten/commute/output"
)

type InitCmd struct {
	From  []string `help:"Home-side station, repeatable." sep:"none" placeholder:"STATION"`
	To    []string `help:"Work-side station, repeatable." sep:"none" placeholder:"STATION"`
	Force bool     `help:"Overwrite configured stations without asking." short:"f"`
}

func (cmd *InitCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return err
	}

	if (len(cfg.From) > 0 || len(cfg.To) > 0) && !cmd.Force {
		overwrite, err := promptYesNo(fmt.Sprintf("%s already has stations. Overwrite?", globals.Config))
		if err != nil {
			return err
		}
		if !overwrite {
			printInfof(ctx.Stderr, "Keeping %s (use --force to overwrite)", pathStyle.Render(globals.Config))
			return nil
		}
	}

	from, to := cmd.From, cmd.To
	if len(from) == 0 || len(to) == 0 {
		if !isTerminal() {
			return errors.New("--from and --to are required when stdin is not a terminal")
		}
		if from, to, err = askStations(from, to); err != nil {
			return err
		}
	}

	cfg.From, cfg.To = from, to
	if _, err := cfg.Stations(nil, nil); err != nil {
		return err
	}

	if err := config.Save(globals.Config, cfg); err != nil {
		return err
	}

	printSuccess(ctx.Stderr, fmt.Sprintf("Saved %d home and %d work station(s) to %s",
		len(cfg.From), len(cfg.To), pathStyle.Render(globals.Config)))
	_, _ = fmt.Fprintf(ctx.Stderr, "  %s\n",
		output.NewStyles(ctx.Stderr).Route(strings.Join(cfg.From, ", "), strings.Join(cfg.To, ", ")))

	return nil
}

// askStations prompts for comma-separated station lists, prefilled with
// whatever was passed on the command line.
func askStations(from, to []string) ([]string, []string, error) {
	fromText := strings.Join(from, ", ")
	toText := strings.Join(to, ", ")

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Home stations").
			Description("Comma-separated, as printed on the statement.").
			Value(&fromText),
		huh.NewInput().
			Title("Work stations").
			Description("Comma-separated, as printed on the statement.").
			Value(&toText),
	))
	if err := form.Run(); err != nil {
		return nil, nil, fmt.Errorf("failed to read stations: %w", err)
	}

	return splitList(fromText), splitList(toText), nil
}

func splitList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
