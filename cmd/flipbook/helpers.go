package main

import (
	"context"

	"flipbook/internal/project"
	"flipbook/internal/services"
	"flipbook/internal/session"
)

// selectProject opens the named project, mapping the empty collection to a
// not-found error instead of a state violation.
func selectProject(ctx context.Context, env *appEnv, name string) (project.Project, error) {
	if env.session.State() == session.StateEmpty {
		return project.Project{}, services.Wrap(services.ErrNotFound, "cli", "select", name, nil)
	}
	return env.session.SelectProject(ctx, name)
}

func deleteProject(ctx context.Context, env *appEnv, name string) error {
	if env.session.State() == session.StateEmpty {
		return services.Wrap(services.ErrNotFound, "cli", "delete", name, nil)
	}
	return env.session.DeleteProject(ctx, name)
}
