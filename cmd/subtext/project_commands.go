package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subtext/internal/config"
	"subtext/internal/project"
	"subtext/internal/subtitle"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect and manage stored extraction projects",
	}
	cmd.AddCommand(newProjectListCommand(ctx))
	cmd.AddCommand(newProjectShowCommand(ctx))
	cmd.AddCommand(newProjectDeleteCommand(ctx))
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				projects, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(projects) == 0 {
					fmt.Fprintln(out, "No projects.")
					return nil
				}
				rows := make([][]string, 0, len(projects))
				for _, proj := range projects {
					rows = append(rows, []string{
						proj.ID,
						proj.SourceMedia,
						proj.Language,
						strconv.Itoa(proj.CueCount),
						proj.UpdatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Source", "Lang", "Cues", "Updated"}, rows, 4))
				return nil
			})
		},
	}
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var withCues bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				proj, track, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:       %s\n", proj.ID)
				fmt.Fprintf(out, "Source:   %s\n", proj.SourceMedia)
				fmt.Fprintf(out, "Language: %s\n", proj.Language)
				fmt.Fprintf(out, "Cues:     %d\n", proj.CueCount)
				fmt.Fprintf(out, "Settings: fps=%.2f roi=%s ocr=%s similarity=%.2f min_duration=%dms\n",
					proj.Settings.SampleFPS, proj.Settings.ROIMode, proj.Settings.OCREngine,
					proj.Settings.SimilarityThreshold, proj.Settings.MinDurationMS)
				if !withCues {
					return nil
				}
				rows := make([][]string, 0, len(track.Cues))
				for _, cue := range track.Cues {
					rows = append(rows, []string{
						strconv.Itoa(cue.Index),
						subtitle.FormatTimecode(cue.StartMS),
						subtitle.FormatTimecode(cue.EndMS),
						cue.Text,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"#", "Start", "End", "Text"}, rows, 1))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withCues, "cues", false, "Include the full cue list")
	return cmd
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
