package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/shared"
	"github.com/whataflick/flick/internal/ui"
)

// TUI launches the interactive terminal interface.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store unavailable, run `flick setup database`", shared.ErrSessionMissing)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/flick-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	shell := ui.NewShell(ctx, ui.Context{
		Backend: r.backend,
		Posters: r.posters,
		Engine:  r.engine,
		Store:   r.sessions,
		Logger:  fileLogger,
	})
	p := tea.NewProgram(shell)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
