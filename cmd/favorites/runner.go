package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/charlesng35/favorites/internal/client"
)

// ErrInvalidArgument is returned for malformed command line input.
var ErrInvalidArgument = errors.New("invalid argument")

// Runner holds the dependencies shared by every command action.
type Runner struct {
	httpClient *http.Client
	output     io.Writer
}

// RunnerOpts configures a Runner.
type RunnerOpts struct {
	HTTPClient *http.Client
	Output     io.Writer
}

// NewRunner creates a Runner, defaulting output to stdout.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{httpClient: opts.HTTPClient, output: opts.Output}
}

// Command builds the root command.
func (r *Runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "favorites",
		Usage: "Browse and manage favorite movies and TV shows",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "Base URL of the favorites server",
				Value:   client.DefaultBaseURL,
				Sources: cli.EnvVars("FAVORITES_API_URL"),
			},
		},
		Commands: []*cli.Command{
			r.tuiCommand(),
			r.listCommand(),
			r.showCommand(),
			r.addCommand(),
			r.removeCommand(),
			r.healthCommand(),
		},
		Writer: r.output,
	}
}

func (r *Runner) tuiCommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File receiving log output while the TUI owns the terminal",
				Value: filepath.Join(os.TempDir(), "favorites-tui.log"),
			},
		},
		Action: r.TUI,
	}
}

func (r *Runner) listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Print favorites page by page",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "take", Usage: "Rows per page (1-100)", Value: 10},
			&cli.IntFlag{Name: "cursor", Usage: "Start after this id"},
			&cli.BoolFlag{Name: "all", Usage: "Follow cursors until the last page"},
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.List,
	}
}

func (r *Runner) showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one favorite as JSON",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.Show,
	}
}

func (r *Runner) addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a favorite",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "type", Usage: "MOVIE or TV_SHOW", Required: true},
			&cli.StringFlag{Name: "director", Required: true},
			&cli.StringFlag{Name: "budget", Required: true},
			&cli.StringFlag{Name: "location", Required: true},
			&cli.StringFlag{Name: "duration", Required: true},
			&cli.StringFlag{Name: "year", Usage: "Year or year range", Required: true},
			&cli.StringFlag{Name: "description"},
		},
		Action: r.Add,
	}
}

func (r *Runner) removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a favorite",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.Remove,
	}
}

func (r *Runner) healthCommand() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check that the server is reachable",
		Action: r.Health,
	}
}

func (r *Runner) client(cmd *cli.Command) *client.Client {
	return client.New(cmd.String("api"), r.httpClient)
}

func (r *Runner) writeJSON(data any) error {
	encoder := json.NewEncoder(r.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: id %q must be a positive integer", ErrInvalidArgument, raw)
	}
	return uint(id), nil
}
