package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subtext/internal/config"
	"subtext/internal/pipeline"
	"subtext/internal/project"
	"subtext/internal/qc"
)

func newQCCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "qc <project-id>",
		Short: "Validate a project's subtitle track against the QC rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				_, track, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				issues := qc.Run(track, pipeline.QCOptions(cfg))
				out := cmd.OutOrStdout()
				if len(issues) == 0 {
					fmt.Fprintln(out, "QC: clean")
					return nil
				}
				rows := make([][]string, 0, len(issues))
				for _, issue := range issues {
					rows = append(rows, []string{
						strconv.Itoa(issue.CueIndex),
						string(issue.Severity),
						string(issue.Kind),
						issue.Message,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Cue", "Severity", "Rule", "Detail"}, rows, 1))
				printQCSummary(out, issues)
				return nil
			})
		},
	}
}
