package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/1F35C/signature-verifier/state"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-verify FILE whenever it changes",
		Long: `Watch FILE and verify its content on every change, printing each
result state. A missing or empty file shows as idle.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args[0])
		},
	}
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string) error {
	engine, err := a.engine()
	if err != nil {
		return err
	}

	path = filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "sigverify: creating watcher")
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrap(err, "sigverify: watching directory")
	}

	c := state.NewController(engine,
		state.WithLogger(a.logger.Named("state")),
		state.WithCache(a.cfg.Cache.TTL),
	)
	defer c.Close()
	states, unsubscribe := c.Subscribe()
	defer unsubscribe()

	load := func() {
		data, err := os.ReadFile(path) //nolint
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("reading watched file failed", zap.String("path", path), zap.Error(err))
			return
		}
		c.SetInput(ctx, string(data))
	}

	var mu sync.Mutex
	var timer *time.Timer
	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(a.cfg.Watch.Debounce, load)
	}
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}()

	a.logger.Info("watching", zap.String("path", path), zap.Duration("debounce", a.cfg.Watch.Debounce))
	load()

	out := cmd.OutOrStdout()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				resetTimer()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", zap.Error(err))
		case s, ok := <-states:
			if !ok {
				return nil
			}
			if err := renderState(out, s, a.jsonOutput); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
