package main

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/CallMeChewy/Finder/internal/display"
	"github.com/CallMeChewy/Finder/internal/errors"
)

// watchCommand runs the search, then re-runs it after every quiet period
// following a file change under the root.
func watchCommand(c *cli.Context) error {
	cfg, root, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	debounce := time.Duration(c.Int("debounce-ms")) * time.Millisecond

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watchDirs(watcher, root); err != nil {
		return err
	}

	rerun := func() {
		result, err := runSearch(ctx, cfg, root)
		if err != nil {
			var noFiles *errors.NoFilesError
			if stderrors.As(err, &noFiles) {
				fmt.Fprintln(os.Stderr, noFiles.Error())
				return
			}
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
			return
		}
		display.WriteMatches(os.Stdout, result)
	}
	rerun()

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories must be watched as they appear.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-pending:
			fmt.Fprintln(os.Stdout, "--- files changed, searching again ---")
			rerun()
		}
	}
}

func watchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}
