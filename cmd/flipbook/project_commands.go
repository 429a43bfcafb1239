package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage animation projects",
	}

	projectCmd.AddCommand(newProjectCreateCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))

	return projectCmd
}

func newProjectCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(runCtx context.Context, env *appEnv) error {
				created, err := env.session.CreateProject(runCtx, args[0])
				if err = reportWarning(stderrf(cmd), err); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %q\n", created.Name)
				return nil
			})
		},
	}
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects and frame counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(runCtx context.Context, env *appEnv) error {
				summaries, err := env.session.List(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintln(out, "No projects yet. Create one with `flipbook project create <name>`.")
					return nil
				}

				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{s.Name, strconv.Itoa(s.FrameCount)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Project", "Frames"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a project's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(runCtx context.Context, env *appEnv) error {
				proj, err := selectProject(runCtx, env, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Project: %s\n", proj.Name)
				fmt.Fprintf(out, "Frames:  %d\n", len(proj.Frames))
				var total int
				for _, frame := range proj.Frames {
					total += len(frame)
				}
				fmt.Fprintf(out, "Stored:  %d bytes\n", total)
				return nil
			})
		},
	}
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a project and all its frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(runCtx context.Context, env *appEnv) error {
				if err := reportWarning(stderrf(cmd), deleteProject(runCtx, env, args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %q\n", args[0])
				return nil
			})
		},
	}
}

func stderrf(cmd *cobra.Command) func(format string, a ...any) {
	return func(format string, a ...any) {
		fmt.Fprintf(cmd.ErrOrStderr(), format, a...)
	}
}
