package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/charlesng35/favorites/internal/client"
	"github.com/charlesng35/favorites/internal/models"
	"github.com/charlesng35/favorites/internal/ui"
	"github.com/charlesng35/favorites/pkg/logger"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	if err := logger.InitWithOptions(logger.Options{
		Level:       "debug",
		OutputPaths: []string{cmd.String("log-file")},
		Service:     "favorites-tui",
	}); err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logger.Sync()

	api := r.client(cmd)
	logger.WithModule("tui").Info("starting", zap.String("api", api.BaseURL()))

	p := tea.NewProgram(ui.NewModel(ctx, api), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// List prints one page, or every page with --all.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	api := r.client(cmd)
	take := cmd.Int("take")

	var cursor *uint
	if c := cmd.Int("cursor"); c > 0 {
		value := uint(c)
		cursor = &value
	}

	var rows []models.Favorite
	var next *uint
	for {
		page, err := api.List(ctx, take, cursor)
		if err != nil {
			return err
		}
		rows = append(rows, page.Data...)
		next = page.NextCursor
		if !cmd.Bool("all") || next == nil {
			break
		}
		cursor = next
	}

	if cmd.Bool("json") {
		return r.writeJSON(client.Page{Data: rows, NextCursor: next})
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(r.output, "No favorites.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "TYPE", "DIRECTOR", "YEAR", "DURATION", "BUDGET").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, f := range rows {
		t.Row(fmt.Sprint(f.ID), f.Title, f.Type.Label(), f.Director, f.YearTime, f.Duration, f.Budget)
	}
	if _, err := fmt.Fprintln(r.output, t.String()); err != nil {
		return err
	}
	if next != nil {
		_, err := fmt.Fprintf(r.output, "next cursor: %d\n", *next)
		return err
	}
	return nil
}

// Show prints one favorite.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	favorite, err := r.client(cmd).Get(ctx, id)
	if err != nil {
		return err
	}
	return r.writeJSON(favorite)
}

// Add creates a favorite from flags.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	input := client.FavoriteInput{
		Title:    cmd.String("title"),
		Type:     models.FavoriteType(strings.ToUpper(strings.TrimSpace(cmd.String("type")))),
		Director: cmd.String("director"),
		Budget:   cmd.String("budget"),
		Location: cmd.String("location"),
		Duration: cmd.String("duration"),
		YearTime: cmd.String("year"),
	}
	if cmd.IsSet("description") {
		description := cmd.String("description")
		input.Description = &description
	}

	created, err := r.client(cmd).Create(ctx, input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.output, "created %d: %s\n", created.ID, created.Title)
	return err
}

// Remove deletes a favorite by id.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.client(cmd).Delete(ctx, id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.output, "deleted %d\n", id)
	return err
}

// Health pings the server.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	api := r.client(cmd)
	if err := api.Health(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.output, "%s is healthy\n", api.BaseURL())
	return err
}
