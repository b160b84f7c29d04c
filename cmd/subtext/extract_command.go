package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subtext/internal/frames"
	"subtext/internal/logging"
	"subtext/internal/pipeline"
	"subtext/internal/project"
	"subtext/internal/qc"
	"subtext/internal/textutil"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var keepFrames bool

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Sample a video, read text off each frame, and build a subtitle track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			source := args[0]
			if _, err := os.Stat(source); err != nil {
				return pipeline.Wrap(pipeline.ErrInput, "extract", fmt.Sprintf("source %s", source), err)
			}

			detector, err := pipeline.BuildDetector(cfg)
			if err != nil {
				return err
			}

			base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			workDir := filepath.Join(cfg.Paths.DataDir, "frames", textutil.SanitizeFileName(base))
			sampler := frames.NewSampler(
				cfg.Extraction.FFmpegBinary, source, cfg.Extraction.SampleFPS,
				cfg.Extraction.ROIMode, cfg.Extraction.ROIRect, workDir)
			if err := sampler.Start(cmd.Context()); err != nil {
				return pipeline.Wrap(pipeline.ErrExternalTool, "extract", "sample frames", err)
			}
			if !keepFrames {
				defer os.RemoveAll(workDir)
			}
			logger.Info("frames sampled",
				logging.String("source", source),
				logging.Int("frames", sampler.FrameCount()))

			runner := pipeline.New(cfg, logger, detector)
			result, err := runner.Extract(cmd.Context(), source, sampler)
			if err != nil {
				return err
			}

			store, err := project.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			proj := &project.Project{
				SourceMedia: source,
				Language:    cfg.Format.SourceLanguage,
				Settings:    pipeline.SnapshotSettings(cfg),
			}
			if err := store.Save(cmd.Context(), proj, result.Track); err != nil {
				return err
			}

			outPath, truncated, err := writeTrackSRT(cfg, result.Track, base, cfg.Format.SourceLanguage)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project %s: %d cues from %d frames (%d skipped)\n",
				proj.ID, len(result.Track.Cues), result.FrameCount, result.SkippedFrames)
			reportTruncated(out, outPath, truncated)
			fmt.Fprintf(out, "Wrote %s\n", outPath)
			printQCSummary(out, result.Issues)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "Keep the sampled frame images after extraction")
	return cmd
}

func printQCSummary(out io.Writer, issues []qc.Issue) {
	summary := qc.Summarize(issues)
	if summary.Total() == 0 {
		fmt.Fprintln(out, "QC: clean")
		return
	}
	fmt.Fprintf(out, "QC: %d errors, %d warnings, %d info\n",
		summary.Errors, summary.Warnings, summary.Infos)
}
