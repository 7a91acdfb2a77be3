package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bronystylecrazy/ultrawire/config"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type WatchCommand struct {
	pipeline *Pipeline
	config   config.CompileConfig
	log      *zap.Logger
}

func NewWatchCommand(pipeline *Pipeline, cfg config.CompileConfig, log *zap.Logger) *WatchCommand {
	return &WatchCommand{pipeline: pipeline, config: cfg, log: log}
}

func (c *WatchCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile the services file whenever it changes",
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}
	addPlanFlags(cmd, c.config)
	cmd.Flags().Duration("debounce", c.config.Debounce, "delay before recompiling after a change")
	return cmd
}

func (c *WatchCommand) Run(cmd *cobra.Command, args []string) error {
	services, format, err := planFlags(cmd)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	compile := func() {
		result, err := c.pipeline.Compile(ctx, services)
		if err == nil {
			err = writeResult(cmd.OutOrStdout(), result, format)
		}
		if err != nil {
			// Keep watching; the next save may fix the file.
			fmt.Fprintf(cmd.ErrOrStderr(), "compile %s: %v\n", services, err)
		}
	}
	return watchFile(ctx, services, debounce, c.log, compile)
}

// watchFile runs onChange once, then again after every write to path settles for
// debounce. It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, log *zap.Logger, onChange func()) error {
	if log == nil {
		log = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: %s: %w", dir, err)
	}
	target := filepath.Clean(path)
	log.Info("watching services file", zap.String("path", target), zap.Duration("debounce", debounce))

	onChange()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("services file changed", zap.Stringer("op", event.Op))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			onChange()
		}
	}
}
