package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/gridtable"
	"github.com/tsawler/gridtable/canvas"
	"github.com/tsawler/gridtable/config"
	"github.com/tsawler/gridtable/font"
	"github.com/tsawler/gridtable/notify"
)

// configKey is used to store config in context.
type configKey struct{}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from ctx, falling back to defaults.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Table:    config.Default(),
		Language: "en",
		Measurer: config.MeasurerOpenType,
	}
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Localizer *notify.Localizer
	Notifier  notify.Notifier
	Measurer  font.Measurer
}

// NewCommandContext builds the logger, notifier and measurer the loaded
// configuration asks for.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := GetConfig(cmd.Context())

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	measurer, err := newMeasurer(cfg.Measurer)
	if err != nil {
		return nil, err
	}

	loc := notify.NewLocalizer(cfg.Language)
	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Localizer: loc,
		Notifier:  notify.NewWriterNotifier(cmd.OutOrStdout(), loc),
		Measurer:  measurer,
	}, nil
}

func newMeasurer(name string) (font.Measurer, error) {
	switch name {
	case config.MeasurerMetrics:
		return font.NewMetricsMeasurer(), nil
	case config.MeasurerOpenType, "":
		m, err := font.NewOpenTypeMeasurer()
		if err != nil {
			return nil, fmt.Errorf("failed to load fonts: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown measurer %q", name)
	}
}

// Tool returns a gridtable tool bound to scene.
func (c *CommandContext) Tool(scene *canvas.Scene) *gridtable.Tool {
	return gridtable.On(scene).
		WithMeasurer(c.Measurer).
		WithNotifier(c.Notifier).
		WithLogger(c.Logger).
		WithTable(c.Cfg.Table)
}

// Helper functions shared across commands

// loadScene reads the scene at path. When create is set, a missing file
// yields an empty scene.
func loadScene(path string, create bool) (*canvas.Scene, error) {
	scene, err := canvas.LoadScene(path)
	if err == nil {
		return scene, nil
	}
	if create && errors.Is(err, os.ErrNotExist) {
		return canvas.NewScene(), nil
	}
	return nil, err
}

// saveScene writes the scene back when a commit changed it.
func saveScene(scene *canvas.Scene, path string) (bool, error) {
	if !scene.Dirty() {
		return false, nil
	}
	if err := scene.Save(path); err != nil {
		return false, fmt.Errorf("failed to save %s: %w", path, err)
	}
	return true, nil
}

// pickTable returns id when set, otherwise the only table in the scene.
func pickTable(ctx context.Context, tool *gridtable.Tool, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	infos, err := tool.Tables(ctx)
	if err != nil {
		return "", err
	}
	switch len(infos) {
	case 0:
		return "", errors.New("the scene has no tables")
	case 1:
		return infos[0].ID, nil
	default:
		return "", fmt.Errorf("the scene has %d tables; pass --table", len(infos))
	}
}

func printOutcome(cmd *cobra.Command, o *gridtable.Outcome) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %dx%d, %d elements\n",
		o.Action, o.TableID, o.Grid.RowCount(), o.Grid.ColCount(), o.Elements)
}
