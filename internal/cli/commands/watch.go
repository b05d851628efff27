package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tsawler/gridtable/notify"
)

// watchDebounce collapses the burst of events an editor save produces
const watchDebounce = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <scene>",
		Short: "Relayout tables whenever the scene file changes",
		Long: `Watch a scene file and relayout every table in it each time it is
saved, so dragging a divider in the editor is followed by a fitted table.

Writes only happen when a layout actually changed; the tool's own save does
not trigger another write. Stop with Ctrl+C.`,
		Example: `  gridtable watch drawing.excalidraw`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return watchScene(cmd.Context(), cmdCtx, args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

// watchScene runs until ctx is done.
func watchScene(ctx context.Context, cmdCtx *CommandContext, path string, w io.Writer) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors and our own save replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	logger := cmdCtx.Logger
	notifier := notify.NewLogNotifier(logger, cmdCtx.Localizer)
	pass := func() {
		saved, err := relayoutFile(ctx, cmdCtx, notifier, abs)
		if err != nil {
			logger.Error("relayout failed", "file", path, "error", err)
		}
		if saved {
			_, _ = fmt.Fprintf(w, "Updated %s\n", path)
		}
	}

	pass()
	_, _ = fmt.Fprintf(w, "Watching %s\n", path)

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			logger.Debug("change detected", "file", path)
			pass()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// relayoutFile relays out every table in the file and saves it when a layout
// changed. Tables that fail are skipped; their errors are returned joined.
func relayoutFile(ctx context.Context, cmdCtx *CommandContext, n notify.Notifier, path string) (bool, error) {
	scene, err := loadScene(path, false)
	if err != nil {
		return false, err
	}

	tool := cmdCtx.Tool(scene).WithNotifier(n)
	_, relayoutErr := relayoutAll(ctx, tool)

	saved, err := saveScene(scene, path)
	if err != nil {
		return false, err
	}
	return saved, relayoutErr
}
