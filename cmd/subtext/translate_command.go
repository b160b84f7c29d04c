package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"subtext/internal/config"
	"subtext/internal/pipeline"
	"subtext/internal/project"
	"subtext/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var languages []string

	cmd := &cobra.Command{
		Use:   "translate <project-id>",
		Short: "Translate a project's track through the configured provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *project.Store) error {
				proj, track, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				targets := languages
				if len(targets) == 0 {
					targets = cfg.Translate.TargetLanguages
				}
				if len(targets) == 0 {
					return pipeline.Wrap(pipeline.ErrConfiguration, "translate", "no target languages configured", nil)
				}
				provider, err := buildProvider(cfg)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				base := outputBase(proj.SourceMedia)
				for _, lang := range targets {
					translated, skipped, err := translate.Apply(cmd.Context(), provider, track, lang)
					if err != nil {
						return pipeline.Wrap(pipeline.ErrExternalTool, "translate", fmt.Sprintf("language %s", lang), err)
					}
					if skipped > 0 {
						fmt.Fprintf(out, "%s: %d cues had no translation and were skipped\n", lang, skipped)
					}
					if len(translated.Cues) == 0 {
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
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&languages, "lang", nil, "Target language codes (defaults to translate.target_languages)")
	return cmd
}

func buildProvider(cfg *config.Config) (translate.Provider, error) {
	switch cfg.Translate.Provider {
	case "http":
		opts := []translate.HTTPOption{translate.WithAPIKey(cfg.Translate.APIKey)}
		if cfg.Translate.TimeoutSeconds > 0 {
			opts = append(opts, translate.WithHTTPClient(&http.Client{
				Timeout: time.Duration(cfg.Translate.TimeoutSeconds) * time.Second,
			}))
		}
		return translate.NewHTTPProvider(cfg.Translate.Endpoint, opts...), nil
	case "static":
		if cfg.Translate.GlossaryPath == "" {
			return nil, pipeline.Wrap(pipeline.ErrConfiguration, "translate",
				"static provider requires translate.glossary_path", nil)
		}
		table, err := translate.LoadGlossary(cfg.Translate.GlossaryPath)
		if err != nil {
			return nil, pipeline.Wrap(pipeline.ErrConfiguration, "translate", "load glossary", err)
		}
		return translate.NewStaticProvider(table), nil
	default:
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "translate",
			fmt.Sprintf("unknown provider %q", cfg.Translate.Provider), nil)
	}
}
