package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cs2ts/internal/compiler"
	"cs2ts/internal/diag"
	"cs2ts/internal/options"
	"cs2ts/internal/ui"
)

// runCompileWithUI drives the progress view while the compilation runs on
// its own goroutine. Leaving the view early cancels the compilation.
func runCompileWithUI(ctx context.Context, title string, files []string, cfg compiler.Config, req compiler.ProjectRequest, opts *options.CompilerOptions) (diag.Result[*compiler.WrittenSet], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan compiler.Event, 256)
	outcome := make(chan diag.Result[*compiler.WrittenSet], 1)

	go func() {
		cfg.Progress = compiler.ChannelSink{Ch: events}
		outcome <- compiler.New(cfg).Compile(ctx, req, opts)
		close(events)
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	cancel()
	go func() {
		for range events {
		}
	}()
	return <-outcome, uiErr
}
