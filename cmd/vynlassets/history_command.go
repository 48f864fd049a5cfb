package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vynlassets/internal/journal"
)

var errJournalDisabled = errors.New("run journal is disabled; set journal.enabled = true in the config")

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or the entries of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(store *journal.Store) error {
				if store == nil {
					return errJournalDisabled
				}
				if len(args) == 1 {
					return showRunEntries(cmd, store, args[0])
				}
				return listRuns(cmd, store, limit)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}

func listRuns(cmd *cobra.Command, store *journal.Store, limit int) error {
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	spec := tableSpec{
		headers: []string{"Run", "Operation", "Started", "Dry run", "Copied", "Missing", "Size", "Error"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	}
	for _, run := range runs {
		spec.rows = append(spec.rows, []string{
			run.ID,
			run.Operation,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			yesNo(run.DryRun),
			strconv.Itoa(run.Copied),
			strconv.Itoa(run.Missing),
			formatBytes(run.Bytes, run.DryRun),
			run.Error,
		})
	}
	fmt.Fprintln(out, renderTable(spec))
	return nil
}

func showRunEntries(cmd *cobra.Command, store *journal.Store, runID string) error {
	entries, err := store.Entries(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "Run %s recorded no entries\n", runID)
		return nil
	}

	spec := tableSpec{
		title:   "Run " + runID,
		headers: []string{"Kind", "Album", "Name", "Outcome", "Destination", "Detail"},
	}
	for _, e := range entries {
		spec.rows = append(spec.rows, []string{
			string(e.Kind), e.Album, e.Name, string(e.Outcome), e.Destination, e.Detail,
		})
	}
	fmt.Fprintln(out, renderTable(spec))
	return nil
}
