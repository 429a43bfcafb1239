package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"flipbook/internal/logging"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var delayMS int
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Export a project as a looping animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(runCtx context.Context, env *appEnv) error {
				projectName := args[0]
				if _, err := selectProject(runCtx, env, projectName); err != nil {
					return err
				}

				artifact, err := env.session.Export(runCtx, delayMS)
				if err != nil {
					return err
				}
				defer func() {
					if cerr := env.session.CloseExport(runCtx); cerr != nil {
						env.logger.Warn("close export overlay", logging.Error(cerr))
					}
				}()

				target := strings.TrimSpace(outputPath)
				if target == "" {
					target = filepath.Join(env.cfg.Paths.ExportDir, sanitizeFileName(projectName)+".gif")
				}
				if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
					return fmt.Errorf("write animation: %w", err)
				}

				if nerr := env.notifier.NotifyExportCompleted(runCtx, projectName, artifact.FrameCount, len(artifact.Data)); nerr != nil {
					env.logger.Warn("export notification failed", logging.Error(nerr))
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Exported %q: %d frames, %dx%d, %dms per frame -> %s\n",
					projectName, artifact.FrameCount, artifact.Width, artifact.Height, artifact.DelayMS, target)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&delayMS, "delay", 200, "Per-frame display delay in milliseconds")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default <export_dir>/<project>.gif)")
	return cmd
}

// sanitizeFileName keeps project names safe to use as file names.
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", string(os.PathSeparator), "_")
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		return "animation"
	}
	return cleaned
}
