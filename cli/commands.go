package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Config    string `help:"Configuration file." type:"path" default:"~/.commute.json" env:"COMMUTE_CONFIG"`
}

type Commands struct {
	Globals

	Report ReportCmd `cmd:"" help:"Show the commute legs found in an NS statement."`
	Export ExportCmd `cmd:"" help:"Export commute days as Beancount transactions or calendar events."`
	Watch  WatchCmd  `cmd:"" help:"Show the report again whenever the statement or configuration changes."`
	Init   InitCmd   `cmd:"" help:"Configure home and work stations."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging statements."`
}

// CLI is the root of the command tree.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`
	Commands
}

// New builds the kong parser for cli. Extra options are applied last, so
// tests can replace writers and the exit function.
func New(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Vars{
			"version": BuildVersion(),
		},
		kong.Name("commute"),
		kong.Description("Find home-work commutes in NS travel statements."),
		kong.UsageOnError(),
		kong.Bind(&cli.Globals),
	}
	return kong.New(cli, append(opts, options...)...)
}

// BuildVersion combines Version and CommitSHA for display.
func BuildVersion() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, CommitSHA)
}
