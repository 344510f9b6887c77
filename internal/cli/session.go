package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"letsstretch/internal/catalog"
	"letsstretch/internal/core/clock"
	"letsstretch/internal/core/model"
	"letsstretch/internal/core/session"

	"github.com/spf13/cobra"
)

var sessionFlags struct {
	count      int
	duration   int
	rest       int
	categories []string
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Play a guided stretch session in the terminal",
	Long: `Plays a session of randomly chosen stretches with a countdown for each
stretch and a rest between them. Values not given as flags come from settings.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	flags := sessionCmd.Flags()
	flags.IntVarP(&sessionFlags.count, "count", "n", 0, "stretches in the session")
	flags.IntVarP(&sessionFlags.duration, "duration", "d", 0, "seconds to hold each stretch")
	flags.IntVarP(&sessionFlags.rest, "rest", "r", -1, "seconds to rest between stretches")
	flags.StringSliceVarP(&sessionFlags.categories, "category", "c", nil, "categories to draw from (desk_friendly, mat_required)")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(false, true)
	if err != nil {
		return err
	}
	defer env.close()

	config, err := sessionConfig(env.settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	loop := clock.NewLoop(0)
	player, err := newSessionPlayer(env.catalog, config, clock.NewSystem(loop.Dispatch))
	if err != nil {
		return err
	}
	env.logger.Printf("session: %d stretches", player.TotalStretches())

	return playInLoop(ctx, loop, cmd.OutOrStdout(), player)
}

func sessionConfig(settings model.Settings) (model.SessionConfig, error) {
	config := settings.SessionConfig()
	if sessionFlags.count > 0 {
		config.StretchesPerSession = sessionFlags.count
	}
	if sessionFlags.duration > 0 {
		config.StretchDurationSeconds = sessionFlags.duration
	}
	if sessionFlags.rest >= 0 {
		config.RestIntervalSeconds = sessionFlags.rest
	}
	if len(sessionFlags.categories) > 0 {
		categories, err := parseCategories(sessionFlags.categories)
		if err != nil {
			return config, fmt.Errorf("parse categories: %w", err)
		}
		config.Categories = categories
	}
	return config, nil
}

func newSessionPlayer(repository *catalog.Repository, config model.SessionConfig, provider clock.Provider) (*session.Player, error) {
	stretches := repository.RandomN(config.StretchesPerSession, config.Categories...)
	if len(stretches) == 0 {
		return nil, fmt.Errorf("build session for %v: %w", config.Categories, catalog.ErrContentUnavailable)
	}
	return session.NewPlayer(stretches, config.StretchDurationSeconds, config.RestIntervalSeconds, provider), nil
}

// playInLoop runs player on loop until it completes or ctx ends.
func playInLoop(ctx context.Context, loop *clock.Loop, out io.Writer, player *session.Player) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := printSession(out, player, cancel)
	loop.Dispatch(player.Start)

	err := loop.Run(runCtx)
	if player.IsCompleted() {
		return nil
	}
	unsubscribe()
	player.EndSession()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "Session ended.")
		return nil
	}
	return err
}
