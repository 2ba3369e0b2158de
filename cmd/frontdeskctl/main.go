// Command frontdeskctl runs the front desk workflow from a terminal: initialize a
// hotel, start and finish shifts, and record and follow up entries.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/core/services"
	"github.com/SscSPs/front_desk_log/internal/core/session"
	"github.com/SscSPs/front_desk_log/internal/platform/config"
	"github.com/SscSPs/front_desk_log/internal/platform/storage"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// opener builds the session of one hotel and a function releasing its storage.
type opener func(ctx context.Context, hotelID string) (*session.Session, func(), error)

// app is the state shared by every command of one invocation.
type app struct {
	open    opener
	hotelID string
	output  string

	sess    *session.Session
	release func()
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	root, cleanup := newRootCmd(storageOpener(logger))
	err := root.Execute()
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// storageOpener opens the storage selected by configuration.
func storageOpener(logger *slog.Logger) opener {
	return func(ctx context.Context, hotelID string) (*session.Session, func(), error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		var seed []domain.Hotel
		for _, id := range cfg.MemoryHotelIDs {
			seed = append(seed, domain.Hotel{HotelID: id, Name: id, Code: id})
		}
		repos, release, err := storage.Open(ctx, cfg, logger, seed...)
		if err != nil {
			return nil, nil, err
		}
		return session.New(hotelID, services.NewServiceContainer(repos)), release, nil
	}
}

// newRootCmd builds the command tree. cleanup releases storage opened by a command.
func newRootCmd(open opener) (*cobra.Command, func()) {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "frontdeskctl",
		Short: "Front desk shift log",
		Long: `frontdeskctl records what happens at a hotel front desk.

Every command loads the hotel's current shift, previous shift and the entries
still waiting to be dealt with before it runs.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "token" || cmd.Name() == "help" {
				return nil
			}
			return a.init(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&a.hotelID, "hotel", os.Getenv("FRONTDESK_HOTEL"), "Hotel ID (defaults to $FRONTDESK_HOTEL)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "Output format: text or json")

	root.AddCommand(
		newInitCmd(a),
		newShiftCmd(a),
		newEntryCmd(a),
		newHistoryCmd(a),
		newTokenCmd(),
	)
	cleanup := func() {
		if a.release != nil {
			a.release()
			a.release = nil
		}
	}
	return root, cleanup
}

// init opens the session and initializes it, reporting a retryable failure.
func (a *app) init(cmd *cobra.Command) error {
	if a.hotelID == "" {
		return fmt.Errorf("--hotel is required")
	}
	if a.output != "text" && a.output != "json" {
		return fmt.Errorf("unknown output format %q", a.output)
	}
	sess, release, err := a.open(cmd.Context(), a.hotelID)
	if err != nil {
		return err
	}
	a.sess, a.release = sess, release

	if err := sess.Initialize(cmd.Context()); err != nil {
		if failed, _ := sess.InitializationFailed(); failed {
			fmt.Fprintln(cmd.ErrOrStderr(), "Could not load the hotel. Run the command again to retry.")
		}
		return err
	}
	return nil
}
