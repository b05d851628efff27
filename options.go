package gridtable

import (
	"log/slog"

	"github.com/tsawler/gridtable/config"
	"github.com/tsawler/gridtable/font"
	"github.com/tsawler/gridtable/notify"
)

// MinHostVersion is the oldest host version the tool runs against
const MinHostVersion = "1.8.21"

// Options holds the collaborators and settings of a Tool.
type Options struct {
	measurer       font.Measurer
	notifier       notify.Notifier
	logger         *slog.Logger
	minHostVersion string
	table          config.Table
}

// defaultOptions returns the default tool options.
func defaultOptions() Options {
	return Options{
		measurer:       font.NewMetricsMeasurer(),
		notifier:       notify.Discard,
		logger:         slog.New(slog.DiscardHandler),
		minHostVersion: MinHostVersion,
		table:          config.Default(),
	}
}

// clone creates a copy of Options. Every field is a value or a shared
// collaborator, so a shallow copy is enough.
func (o Options) clone() Options {
	return o
}
