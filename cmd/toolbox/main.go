// Command toolbox drives the AI toolbox from the terminal: one subcommand per
// tool plus an interactive dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tuannvm/ai-toolbox/internal/config"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/toolbox"
	"github.com/tuannvm/ai-toolbox/internal/tui"
)

const (
	appName = "toolbox"
	Version = "0.1.0"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	cfg *config.Config
	tb  *toolbox.Toolbox
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &app{}
	v := config.GetViper()

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "AI content generation toolbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.NewConfig()
			if err := log.Init(a.cfg.LogLevel, a.cfg.LogFormat); err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a.tb = toolbox.New(a.cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-url", "", "Base URL of the toolbox API")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("export-dir", "", "Directory for exported results")
	flags.String("comment-service", "", "Comment generator: fixture or live")
	for key, name := range map[string]string{
		"TOOLBOX_API_BASE_URL": "api-url",
		"LOG_LEVEL":            "log-level",
		"EXPORT_DIR":           "export-dir",
		"COMMENT_SERVICE":      "comment-service",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(
		socialCmd(a),
		youtubeCmd(a),
		communicationCmd(a),
		jiraCmd(a),
		commentCmd(a),
		agentCallCmd(a),
		&cobra.Command{
			Use:   "dashboard",
			Short: "Open the interactive dashboard",
			RunE: func(cmd *cobra.Command, args []string) error {
				return tui.Run(a.tb)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return nil
			},
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}
