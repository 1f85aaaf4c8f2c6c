package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iwneis/neishelper/core/catalog"
	"github.com/iwneis/neishelper/core/checklist"
)

const barWidth = 20

var (
	errUnknownID = errors.New("unknown checklist id")
	errNotSaved  = errors.New("checklist could not be saved")
)

func (cli *commandLine) showCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored checklist state of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			blob, found, err := cli.svc.Get(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if !found {
				cmd.Println("(empty)")
				return nil
			}
			cmd.Println(blob)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (default slot when empty)")
	return cmd
}

func (cli *commandLine) progressCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Print per-period progress of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := cli.svc.Progress(cmd.Context(), cli.catalog, userID)
			if err != nil {
				return err
			}
			bars := isTerminalFunc()
			for _, pp := range report.Periods {
				cmd.Println(formatProgress(pp.Label, pp.Progress, bars))
			}
			cmd.Println(formatProgress("전체", report.Overall, bars))
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (default slot when empty)")
	return cmd
}

func (cli *commandLine) toggleCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "toggle ID [ID...]",
		Short: "Toggle checklist items or sub-items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, ids []string) error {
			known := make(map[string]bool)
			for _, id := range catalog.ScopeIDs(cli.catalog.Items()) {
				known[id] = true
			}
			for _, id := range ids {
				if !known[id] {
					return errors.Wrapf(errUnknownID, "%q", id)
				}
			}

			store := cli.openStore(cmd.Context(), userID)
			for _, id := range ids {
				mark := " "
				if store.Toggle(id) {
					mark = "x"
				}
				cmd.Printf("[%s] %s\n", mark, id)
			}
			return cli.closeStore(cmd.Context(), store)
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (default slot when empty)")
	return cmd
}

func (cli *commandLine) resetCmd() *cobra.Command {
	var userID, period, category string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Uncheck every item and sub-item of a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := catalog.ParsePeriod(period)
			if err != nil {
				return err
			}
			c, err := catalog.ParseCategory(category)
			if err != nil {
				return err
			}
			ids := catalog.ScopeIDs(catalog.FilterByCategory(cli.catalog.ItemsForPeriod(p), c))

			store := cli.openStore(cmd.Context(), userID)
			store.ResetScope(ids...)
			if err = cli.closeStore(cmd.Context(), store); err != nil {
				return err
			}
			cmd.Printf("reset %d ids of %s\n", len(ids), p.Label())
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (default slot when empty)")
	cmd.Flags().StringVarP(&period, "period", "p", "", "period to reset (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "all", "only reset this category")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}

// openStore runs a Store in-process against the checklist service.
func (cli *commandLine) openStore(ctx context.Context, userID string) *checklist.Store {
	store := checklist.NewStore(
		cli.svc,
		cli.svc.UserID(userID),
		checklist.WithLogger(cli.logger),
		checklist.WithSaveTimeout(cli.saveTimeout),
	)
	store.Load(ctx)
	return store
}

// closeStore waits for the scheduled saves and checks the last one reached storage,
// since the Store itself never reports save failures.
func (cli *commandLine) closeStore(ctx context.Context, store *checklist.Store) error {
	store.Wait()

	want, err := store.State().Encode()
	if err != nil {
		return err
	}
	got, _, err := cli.svc.Get(ctx, store.UserID())
	if err != nil {
		return errors.Wrapf(errNotSaved, "reading back: %v", err)
	}
	if got != want {
		return errNotSaved
	}
	return nil
}

func formatProgress(label string, p checklist.Progress, bars bool) string {
	line := fmt.Sprintf("%-16s %3d/%-3d %3d%%", label, p.Checked, p.Total, p.Percent())
	if !bars {
		return line
	}
	filled := barWidth * p.Percent() / 100
	return line + " " + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
