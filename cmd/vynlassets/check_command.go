package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vynlassets/internal/preflight"
)

var errPreflightFailed = errors.New("preflight checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify source and destination paths without copying",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			spec := tableSpec{
				headers: []string{"Check", "Status", "Detail"},
			}
			for _, r := range results {
				spec.rows = append(spec.rows, []string{r.Name, checkStatus(r), r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(spec))

			if preflight.AnyFailed(results) {
				return errPreflightFailed
			}
			return nil
		},
	}
}

func checkStatus(r preflight.Result) string {
	switch {
	case r.Passed:
		return "ok"
	case r.Optional:
		return "warn"
	default:
		return "fail"
	}
}
