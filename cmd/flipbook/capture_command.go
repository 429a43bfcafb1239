package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCaptureCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "capture <project> <image>...",
		Short: "Capture still images as frames of a project",
		Long: `Capture decodes each image, scales it down to the configured maximum
width when wider, re-encodes it as JPEG, and appends it to the project.
Images are appended in argument order.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(runCtx context.Context, env *appEnv) error {
				projectName := args[0]
				if _, err := selectProject(runCtx, env, projectName); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				var count int
				for _, path := range args[1:] {
					file, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("open image %s: %w", path, err)
					}
					count, err = env.session.CaptureFrame(runCtx, file)
					file.Close()
					if err = reportWarning(stderrf(cmd), err); err != nil {
						return fmt.Errorf("capture %s: %w", path, err)
					}
					fmt.Fprintf(out, "Captured %s as frame %d of %q\n", path, count, projectName)
				}
				return nil
			})
		},
	}
}
