package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors and PDF viewers
// produce for a single save.
const watchDebounce = 100 * time.Millisecond

type WatchCmd struct {
	File string `help:"Statement text or PDF to watch." arg:"" type:"existingfile"`
	FilterFlags
	Plain bool `help:"Print without borders and colors."`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	targets := []string{cmd.File}
	if globals.Config != "" {
		targets = append(targets, globals.Config)
	}

	// Directories are watched rather than files, so atomic saves that
	// replace the file keep being noticed.
	for i, dir := range watchDirs(targets) {
		if err := watcher.Add(dir); err != nil {
			if i == 0 {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			log.Printf("not watching %s: %v", dir, err)
		}
	}

	render := func() {
		file := &FileOrStdin{Filename: cmd.File}
		err := renderReport(sigCtx, ctx.Stdout, ctx.Stderr, globals, file, cmd.FilterFlags, cmd.Plain)

		var cmdErr *CommandError
		if err != nil && !errors.As(err, &cmdErr) {
			printError(ctx.Stderr, err.Error())
		}
	}

	render()
	printInfof(ctx.Stderr, "Watching %s for changes (press Ctrl+C to stop)", pathStyle.Render(cmd.File))

	return watchLoop(sigCtx, watcher.Events, watcher.Errors, matchPaths(targets), watchDebounce, render)
}

// watchLoop calls onChange once events for matching paths have been quiet
// for delay. It returns when ctx is done or events is closed.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, match func(string) bool, delay time.Duration, onChange func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !match(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func watchDirs(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	dirs := make([]string, 0, len(paths))
	for _, path := range paths {
		dir := filepath.Dir(absPath(path))
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func matchPaths(paths []string) func(string) bool {
	want := make(map[string]bool, len(paths))
	for _, path := range paths {
		want[absPath(path)] = true
	}
	return func(name string) bool {
		return want[absPath(name)]
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
