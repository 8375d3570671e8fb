package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/five82/dreamwall/internal/app"
	"github.com/five82/dreamwall/internal/secret"
	"github.com/five82/dreamwall/internal/settings"
)

func (g *Globals) options(stderr bool) app.Options {
	return app.Options{ConfigPath: g.Config, Debug: g.Debug, Stderr: stderr && g.Debug}
}

// TuiCmd launches the interactive UI.
type TuiCmd struct{}

func (c *TuiCmd) Run(ctx context.Context, g *Globals) error {
	return app.RunTUI(ctx, g.options(false))
}

// DaemonCmd runs the refresh loop headless.
type DaemonCmd struct{}

func (c *DaemonCmd) Run(ctx context.Context, g *Globals) error {
	return app.RunDaemon(ctx, g.options(true))
}

// GenerateCmd runs one cycle.
type GenerateCmd struct {
	Text string `arg:"" optional:"" help:"Custom prompt; the category prompt is used when empty."`
}

func (c *GenerateCmd) Run(ctx context.Context, g *Globals) error {
	res, err := app.Generate(ctx, g.options(true), c.Text)
	if err != nil {
		return err
	}
	fmt.Printf("Wallpaper updated successfully.\nPrompt: %s\nImage:  %s\n", res.Prompt, res.ImagePath)
	return nil
}

// PromptCmd resolves a prompt without generating anything.
type PromptCmd struct {
	Text string `arg:"" optional:"" help:"Custom prompt to combine with the style and descriptor."`
	Seed int64  `help:"Seed for reproducible draws; negative picks randomly." default:"-1"`
}

func (c *PromptCmd) Run(g *Globals) error {
	var seed *uint64
	if c.Seed >= 0 {
		s := uint64(c.Seed)
		seed = &s
	}
	text, err := app.Preview(g.options(false), c.Text, seed)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// StatusCmd prints persisted state.
type StatusCmd struct{}

func (c *StatusCmd) Run(g *Globals) error {
	report, err := app.Status(g.options(false))
	if err != nil {
		return err
	}
	printReport(os.Stdout, report, time.Now())
	return nil
}

func printReport(w io.Writer, r app.Report, now time.Time) {
	auto := "off"
	if r.AutoRefresh {
		auto = "on"
	}
	next := "Not yet scheduled"
	if !r.NextUpdate.IsZero() {
		next = fmt.Sprintf("%s (%s)", r.NextUpdate.Format(settings.TimeLayout), humanize.RelTime(r.NextUpdate, now, "ago", "from now"))
	}
	owner := "none"
	if r.Running {
		owner = fmt.Sprintf("pid %d", r.OwnerPID)
	}
	custom := r.Custom
	if custom == "" {
		custom = "—"
	}

	fmt.Fprintf(w, "Data dir:      %s\n", r.DataDir)
	fmt.Fprintf(w, "Auto-refresh:  %s (every %d minutes)\n", auto, int(r.Interval.Minutes()))
	fmt.Fprintf(w, "Next update:   %s\n", next)
	fmt.Fprintf(w, "Running:       %s\n", owner)
	fmt.Fprintf(w, "Style:         %s\n", r.Style)
	fmt.Fprintf(w, "Descriptor:    %s\n", r.Descriptor)
	fmt.Fprintf(w, "Category:      %s\n", r.Category)
	fmt.Fprintf(w, "Custom prompt: %s\n", custom)
}

// AutoCmd toggles the persisted auto-refresh flag.
type AutoCmd struct {
	State string `arg:"" enum:"on,off" help:"on or off."`
}

func (c *AutoCmd) Run(g *Globals) error {
	st, err := app.SetAuto(g.options(false), c.State == "on")
	if err != nil {
		return err
	}
	if st.AutoRefresh {
		fmt.Println("Auto-refresh enabled. A running dreamwall picks this up within a second; otherwise start 'dreamwall daemon'.")
		return nil
	}
	fmt.Println("Auto-refresh disabled.")
	return nil
}

// TokenCmd groups keyring operations.
type TokenCmd struct {
	Set   TokenSetCmd   `cmd:"" help:"Store a token (prompts when omitted)."`
	Clear TokenClearCmd `cmd:"" help:"Remove the stored token."`
}

// TokenSetCmd stores the image service token.
type TokenSetCmd struct {
	Value string `arg:"" optional:"" help:"Token value."`
}

func (c *TokenSetCmd) Run() error {
	value := strings.TrimSpace(c.Value)
	if value == "" {
		err := huh.NewInput().
			Title("Image service token").
			EchoMode(huh.EchoModePassword).
			Value(&value).
			Run()
		if err != nil {
			return err
		}
	}
	if err := secret.SetToken(value); err != nil {
		return err
	}
	fmt.Println("Token stored in the OS keyring.")
	return nil
}

// TokenClearCmd removes the stored token.
type TokenClearCmd struct{}

func (c *TokenClearCmd) Run() error {
	if err := secret.DeleteToken(); err != nil {
		if errors.Is(err, secret.ErrNotFound) {
			fmt.Println("No token stored.")
			return nil
		}
		return err
	}
	fmt.Println("Token removed.")
	return nil
}
