package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"subtext/internal/config"
	"subtext/internal/pipeline"
	"subtext/internal/project"
	"subtext/internal/translate"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project's track to an interchange format",
	}
	cmd.AddCommand(newExportSRTCommand(ctx))
	cmd.AddCommand(newExportCSVCommand(ctx))
	return cmd
}

func newExportSRTCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "srt <project-id>",
		Short: "Write the track as a SubRip file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				proj, track, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				lang := language
				if lang == "" {
					lang = proj.Language
				}
				path, truncated, err := writeTrackSRT(cfg, track, outputBase(proj.SourceMedia), lang)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				reportTruncated(out, path, truncated)
				fmt.Fprintf(out, "Wrote %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&language, "lang", "", "Language code for the output name (defaults to the track language)")
	return cmd
}

func newExportCSVCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "csv <project-id>",
		Short: "Write the track as a translation table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				proj, track, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				path := filepath.Join(cfg.Paths.OutputDir,
					fmt.Sprintf("%s.%s.csv", outputBase(proj.SourceMedia), proj.Language))
				f, err := os.Create(path) //nolint:gosec
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				if err := translate.ExportCSV(f, track, proj.Language); err != nil {
					_ = f.Close()
					return pipeline.Wrap(pipeline.ErrCodec, "export", "write translation csv", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			})
		},
	}
}
