// Command gridtable creates and relays out tables in Excalidraw scene files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/gridtable/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
