package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subtext/internal/config"
	"subtext/internal/pipeline"
	"subtext/internal/project"
	"subtext/internal/translate"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import externally translated tables back into a project",
	}
	cmd.AddCommand(newImportCSVCommand(ctx))
	return cmd
}

func newImportCSVCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "csv <project-id> <file>",
		Short: "Merge a translated CSV against the project's cues",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				proj, track, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				f, err := os.Open(args[1]) //nolint:gosec
				if err != nil {
					return pipeline.Wrap(pipeline.ErrInput, "import", fmt.Sprintf("open %s", args[1]), err)
				}
				defer f.Close()
				table, err := translate.ImportCSV(f)
				if err != nil {
					return pipeline.Wrap(pipeline.ErrCodec, "import", "parse translation csv", err)
				}

				result := translate.Merge(track, table, nil)
				out := cmd.OutOrStdout()
				for _, warning := range result.Warnings {
					fmt.Fprintf(out, "warning: %s\n", warning.Message)
				}

				base := outputBase(proj.SourceMedia)
				for _, lang := range table.Languages {
					translated := result.Tracks[lang]
					if translated == nil || len(translated.Cues) == 0 {
						fmt.Fprintf(out, "%s: nothing to write\n", lang)
						continue
					}
					path, truncated, err := writeTrackSRT(cfg, translated, base, lang)
					if err != nil {
						return err
					}
					reportTruncated(out, path, truncated)
					fmt.Fprintf(out, "Wrote %s (%d cues)\n", path, len(translated.Cues))
				}
				fmt.Fprintf(out, "Matched %d of %d cues, %d warnings\n",
					result.Matched, len(track.Cues), len(result.Warnings))
				return nil
			})
		},
	}
}
