// Command poodle maintains the Mood Poodle profile widget. Each subcommand
// is one invocation of the system: the scheduled refresh, a single
// interaction, a cooldown resolution, or the long-running webhook server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Ba4bes/moodpoodle/internal/adapter/github"
	"github.com/Ba4bes/moodpoodle/internal/adapter/metrics"
	"github.com/Ba4bes/moodpoodle/internal/adapter/render"
	"github.com/Ba4bes/moodpoodle/internal/adapter/statefile"
	"github.com/Ba4bes/moodpoodle/internal/app"
	"github.com/Ba4bes/moodpoodle/internal/command"
	"github.com/Ba4bes/moodpoodle/internal/platform/config"
	"github.com/Ba4bes/moodpoodle/internal/platform/logging"
	"github.com/Ba4bes/moodpoodle/internal/platform/version"
	"github.com/Ba4bes/moodpoodle/internal/ratelimit"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "poodle",
		Short:         "Mood Poodle profile widget",
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInitCmd(),
		newRefreshCmd(),
		newInteractCmd(),
		newResolveCmd(),
		newRenderCmd(),
		newStatusCmd(),
		newServeCmd(),
	)

	if err := root.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads the environment configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// buildService wires the application service with its real collaborators.
func buildService(ctx context.Context, cfg *config.Config, clock clockwork.Clock, m *metrics.AppMetrics) (*app.Service, error) {
	fs := afero.NewOsFs()

	phrases := command.DefaultPhrases()
	if cfg.PhrasesFile != "" {
		var err error
		phrases, err = command.LoadPhrases(fs, cfg.PhrasesFile)
		if err != nil {
			return nil, err
		}
	}

	client := github.NewClient(ctx, cfg.GitHubToken)
	owner, repoName := cfg.SplitRepo()

	svc := app.NewService(
		statefile.New(fs, cfg.StatePath, clock),
		client,
		github.NewNotifier(client.REST(), owner, repoName),
		render.NewReadmeSink(fs, cfg.ReadmePath),
		clock,
		cfg.Username,
		app.Options{
			Limiter: ratelimit.NewLimiter(cfg.RateLimitWindow, cfg.RateLimitMax),
			Phrases: phrases,
			Metrics: m,
		},
	)
	return svc, nil
}
