package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hrform/internal/editor"
	"hrform/internal/gateway/httpstore"
	"hrform/internal/platform/config"
	"hrform/internal/tui"
)

func main() {
	id := flag.String("id", "", "employee id to open the form on")
	flag.Parse()

	if err := run(*id); err != nil {
		fmt.Fprintf(os.Stderr, "hrform editor: %v\n", err)
		os.Exit(1)
	}
}

func run(navigationID string) error {
	cfg := config.LoadEditor()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal belongs to the form, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	client := httpstore.New(cfg.APIURL, httpstore.WithToken(cfg.APIToken))
	if cfg.APIToken == "" {
		loginCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
		_, err := client.Login(loginCtx, cfg.Email, cfg.Password)
		cancel()
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	model := tui.New(ctx, client, navigationID,
		editor.WithLoadTimeout(cfg.LoadTimeout),
		editor.WithSubmitTimeout(cfg.SubmitTimeout),
		editor.WithLogger(logger),
	)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Done() {
		fmt.Println(editor.MsgUpdated)
		fmt.Println("next:", editor.ListingScreen)
	}
	return nil
}
