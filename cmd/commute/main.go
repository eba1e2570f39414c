package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/robinvdvleuten/commute/cli"
)

func main() {
	var c cli.CLI
	parser, err := cli.New(&c)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run()

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}
