package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `help:"Print version and exit."`
	Config  string           `help:"Config file path." type:"path" placeholder:"PATH"`
	Debug   bool             `help:"Enable debug logging."`
}

// CLI is the command tree.
type CLI struct {
	Globals

	Tui      TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Daemon   DaemonCmd   `cmd:"" help:"Run the auto-refresh loop without a UI."`
	Generate GenerateCmd `cmd:"" help:"Generate and set one wallpaper now."`
	Prompt   PromptCmd   `cmd:"" help:"Print the prompt the next refresh would use."`
	Status   StatusCmd   `cmd:"" help:"Show schedule and settings."`
	Auto     AutoCmd     `cmd:"" help:"Turn auto-refresh on or off."`
	Token    TokenCmd    `cmd:"" help:"Manage the image service token in the OS keyring."`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("dreamwall"),
		kong.Description("AI-generated desktop wallpapers on a schedule."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dreamwall: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "dreamwall: %v\n", err)
		return 1
	}
	return 0
}
