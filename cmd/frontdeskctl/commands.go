package main

import (
	"errors"
	"fmt"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/platform/config"
	"github.com/SscSPs/front_desk_log/internal/utils"
	"github.com/spf13/cobra"
)

func (a *app) printer(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), json: a.output == "json"}
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Show the current shift, the previous shift and pending entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printer(cmd).state(a.sess.State())
		},
	}
}

func newShiftCmd(a *app) *cobra.Command {
	shift := &cobra.Command{
		Use:   "shift",
		Short: "Start, finish and correct shifts",
	}

	var (
		receptionist string
		counters     map[string]string
		copyForward  bool
		force        bool
		editor       string
	)

	start := &cobra.Command{
		Use:   "start",
		Short: "Start a shift",
		Long: `Start a shift for the given receptionist.

With --copy-forward the previous shift's end counters are used as the starting
point and any --counter given overrides them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := parseCounters(counters)
			if err != nil {
				return err
			}
			var base domain.CounterSnapshot
			if copyForward {
				if base, err = a.sess.CopyForward(); err != nil {
					return err
				}
			}
			s, err := a.sess.Start(cmd.Context(), receptionist, overlay(base, draft))
			if err != nil {
				var active *apperrors.ShiftAlreadyActiveError
				if errors.As(err, &active) && active.Receptionist != "" {
					return fmt.Errorf("%s already has an active shift since %s, it must be finished first", active.Receptionist, active.StartedAt.Local().Format(timeLayout))
				}
				return err
			}
			return a.printer(cmd).shift(s)
		},
	}
	start.Flags().StringVar(&receptionist, "receptionist", "", "Receptionist name (required)")
	start.Flags().StringToStringVar(&counters, "counter", nil, "Counter value, e.g. --counter cash_brl=150 --counter pens_count=3")
	start.Flags().BoolVar(&copyForward, "copy-forward", false, "Start from the previous shift's end counters")
	_ = start.MarkFlagRequired("receptionist")

	finish := &cobra.Command{
		Use:   "finish",
		Short: "Finish the current shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := parseCounters(counters)
			if err != nil {
				return err
			}
			s, err := a.sess.Finish(cmd.Context(), draft.Finalize(), force)
			if err != nil {
				var unresolved *apperrors.UnresolvedEntriesError
				if errors.As(err, &unresolved) {
					return fmt.Errorf("%d entries are still open or in progress, they will be handed over; run again with --force to finish", unresolved.Count)
				}
				return err
			}
			return a.printer(cmd).shift(s)
		},
	}
	finish.Flags().StringToStringVar(&counters, "counter", nil, "End counter value, e.g. --counter cash_brl=150")
	finish.Flags().BoolVar(&force, "force", false, "Finish even though entries are unresolved")

	reconcile := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare the start counters with end counters typed so far",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := parseCounters(counters)
			if err != nil {
				return err
			}
			report, err := a.sess.Reconcile(draft)
			if err != nil {
				return err
			}
			return a.printer(cmd).report(report)
		},
	}
	reconcile.Flags().StringToStringVar(&counters, "counter", nil, "End counter value")

	editCounters := &cobra.Command{
		Use:   "edit-counters",
		Short: "Correct the current shift's start counters",
		Long:  "Replace the start counters. Fields not given are set to zero. The old values are kept in the edit history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := parseCounters(counters)
			if err != nil {
				return err
			}
			s, err := a.sess.EditCounters(cmd.Context(), draft.Finalize(), editor)
			if err != nil {
				return err
			}
			return a.printer(cmd).shift(s)
		},
	}
	editCounters.Flags().StringToStringVar(&counters, "counter", nil, "Counter value")
	editCounters.Flags().StringVar(&editor, "editor", "", "Who is making the correction (required)")
	_ = editCounters.MarkFlagRequired("editor")

	forward := &cobra.Command{
		Use:   "copy-forward",
		Short: "Show the previous shift's end counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.sess.CopyForward()
			if err != nil {
				return err
			}
			return a.printer(cmd).counters(c)
		},
	}

	shift.AddCommand(start, finish, reconcile, editCounters, forward)
	return shift
}

func newEntryCmd(a *app) *cobra.Command {
	entry := &cobra.Command{
		Use:   "entry",
		Short: "Record and follow up entries",
	}

	var author, editor string

	add := &cobra.Command{
		Use:   "add TEXT",
		Short: "Record an entry in the current shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.sess.AddEntry(cmd.Context(), args[0], author)
			if err != nil {
				return err
			}
			return a.printer(cmd).entry(e)
		},
	}
	add.Flags().StringVar(&author, "author", "", "Author (defaults to the receptionist)")

	comment := &cobra.Command{
		Use:   "comment ENTRY_ID TEXT",
		Short: "Reply to an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.sess.AddComment(cmd.Context(), args[0], args[1], author)
			if err != nil {
				return err
			}
			return a.printer(cmd).entry(e)
		},
	}
	comment.Flags().StringVar(&author, "author", "", "Author (defaults to the receptionist)")

	status := &cobra.Command{
		Use:       "status ENTRY_ID open|in_progress|closed",
		Short:     "Change an entry's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.EntryOpen), string(domain.EntryInProgress), string(domain.EntryClosed)},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.sess.SetStatus(cmd.Context(), args[0], domain.EntryStatus(args[1]))
			if err != nil {
				return err
			}
			return a.printer(cmd).entry(e)
		},
	}

	edit := &cobra.Command{
		Use:   "edit ENTRY_ID TEXT",
		Short: "Replace an entry's text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.sess.EditText(cmd.Context(), args[0], args[1], editor)
			if err != nil {
				return err
			}
			return a.printer(cmd).entry(e)
		},
	}
	edit.Flags().StringVar(&editor, "editor", "", "Who is editing (required)")
	_ = edit.MarkFlagRequired("editor")

	list := &cobra.Command{
		Use:   "list",
		Short: "List this shift's entries and everything still pending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printer(cmd).visible(a.sess.State().VisibleEntries)
		},
	}

	comments := &cobra.Command{
		Use:   "comments ENTRY_ID",
		Short: "List the comments of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.sess.Comments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer(cmd).entries(c)
		},
	}

	entry.AddCommand(add, comment, status, edit, list, comments)
	return entry
}

func newHistoryCmd(a *app) *cobra.Command {
	var shiftID string
	cmd := &cobra.Command{
		Use:   "history [ENTRY_ID]",
		Short: "Show the edit history of an entry, or of a shift's counters with --shift",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				records []domain.AuditRecord
				err     error
			)
			switch {
			case shiftID != "" && len(args) == 0:
				records, err = a.sess.History(cmd.Context(), domain.AuditShiftCounters, shiftID)
			case shiftID == "" && len(args) == 1:
				records, err = a.sess.History(cmd.Context(), domain.AuditEntry, args[0])
			default:
				return fmt.Errorf("give either an entry id or --shift")
			}
			if err != nil {
				return err
			}
			return a.printer(cmd).history(records)
		},
	}
	cmd.Flags().StringVar(&shiftID, "shift", "", "Shift ID whose counter edits to show")
	return cmd
}

// newTokenCmd issues an API token for a hotel, signed with the server's JWT_SECRET.
func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for --hotel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hotelID, _ := cmd.Flags().GetString("hotel")
			if hotelID == "" {
				return fmt.Errorf("--hotel is required")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			token, err := utils.GenerateHotelToken(hotelID, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
