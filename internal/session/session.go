// Package session coordinates the interactive workflow over the registry,
// capture pipeline, and animation assembler.
//
// A session moves through a small set of states and rejects operations that
// do not apply to the current state. All operations on one session are
// serialized; concurrent callers observe a consistent state.
package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"flipbook/internal/capture"
	"flipbook/internal/gifenc"
	"flipbook/internal/logging"
	"flipbook/internal/project"
	"flipbook/internal/services"
)

// State identifies where the session is in the workflow.
type State string

const (
	// StateLoading is the initial state before the collection is loaded.
	StateLoading State = "loading"
	// StateEmpty means the collection holds no projects.
	StateEmpty State = "empty"
	// StateProjectList means projects exist and none is selected.
	StateProjectList State = "project_list"
	// StateProjectView means a project is selected for capture and export.
	StateProjectView State = "project_view"
	// StateExportOverlay means a finished animation is being presented.
	StateExportOverlay State = "export_overlay"
)

// Session drives the capture-and-export workflow.
type Session struct {
	mu        sync.Mutex
	registry  *project.Registry
	pipeline  *capture.Pipeline
	assembler *gifenc.Assembler
	logger    *slog.Logger

	state    State
	selected string
	artifact *gifenc.Artifact
}

// New builds a session over its collaborators. Call Initialize before any
// other method.
func New(registry *project.Registry, pipeline *capture.Pipeline, assembler *gifenc.Assembler, logger *slog.Logger) *Session {
	return &Session{
		registry:  registry,
		pipeline:  pipeline,
		assembler: assembler,
		logger:    logging.NewComponentLogger(logger, "session"),
		state:     StateLoading,
	}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selected returns the name of the selected project, if any.
func (s *Session) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected != ""
}

// Artifact returns the animation currently presented in the export overlay.
func (s *Session) Artifact() (*gifenc.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact, s.artifact != nil
}

// Initialize loads the collection and leaves the session on the project
// list, or on the empty state when no projects exist yet.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return s.guardErr("initialize")
	}

	ctx = s.operationContext(ctx, "initialize", "")
	if err := s.registry.Initialize(ctx); err != nil {
		return err
	}
	s.settleBrowseState(ctx)
	return nil
}

// List returns project summaries. Available in every post-load state.
func (s *Session) List(ctx context.Context) ([]project.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading {
		return nil, s.guardErr("list")
	}
	return s.registry.List(ctx), nil
}

// CreateProject adds a project and selects it. A persistence warning does
// not block selection.
func (s *Session) CreateProject(ctx context.Context, name string) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateEmpty, StateProjectList:
	default:
		return project.Project{}, s.guardErr("create project")
	}

	ctx = s.operationContext(ctx, "create project", name)
	created, err := s.registry.Create(ctx, name)
	if err != nil && !services.IsWarning(err) {
		return project.Project{}, err
	}

	s.selected = created.Name
	s.state = StateProjectView
	logging.WithContext(ctx, s.logger).Info("project selected after create")
	return created, err
}

// SelectProject opens an existing project for capture and export.
func (s *Session) SelectProject(ctx context.Context, name string) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateProjectList {
		return project.Project{}, s.guardErr("select project")
	}

	ctx = s.operationContext(ctx, "select project", name)
	proj, err := s.registry.Get(ctx, name)
	if err != nil {
		return project.Project{}, err
	}

	s.selected = proj.Name
	s.state = StateProjectView
	logging.WithContext(ctx, s.logger).Info("project selected")
	return proj, nil
}

// DeleteProject removes a project. Deleting the selected project clears the
// selection and returns the session to browsing.
func (s *Session) DeleteProject(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateProjectList, StateProjectView:
	default:
		return s.guardErr("delete project")
	}

	ctx = s.operationContext(ctx, "delete project", name)
	err := s.registry.Delete(ctx, name)
	if err != nil && !services.IsWarning(err) {
		return err
	}

	if s.selected == name {
		s.selected = ""
	}
	if s.selected == "" {
		s.settleBrowseState(ctx)
	}
	return err
}

// CaptureFrame appends one normalized frame to the selected project.
func (s *Session) CaptureFrame(ctx context.Context, r io.Reader) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateProjectView {
		return 0, s.guardErr("capture frame")
	}

	ctx = s.operationContext(ctx, "capture frame", s.selected)
	return s.pipeline.Capture(ctx, s.selected, r)
}

// Export assembles the selected project's animation and opens the export
// overlay over it.
func (s *Session) Export(ctx context.Context, delayMS int) (*gifenc.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateProjectView {
		return nil, s.guardErr("export")
	}

	ctx = s.operationContext(ctx, "export", s.selected)
	proj, err := s.registry.Get(ctx, s.selected)
	if err != nil {
		return nil, err
	}

	artifact, err := s.assembler.Assemble(ctx, proj, delayMS)
	if err != nil {
		return nil, err
	}

	s.artifact = artifact
	s.state = StateExportOverlay
	logging.WithContext(ctx, s.logger).Info("export overlay opened",
		logging.String("artifact", artifact.ID))
	return artifact, nil
}

// CloseExport dismisses the export overlay and returns to the project view.
func (s *Session) CloseExport(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateExportOverlay {
		return s.guardErr("close export")
	}

	s.artifact = nil
	s.state = StateProjectView
	return nil
}

// GoBack steps out of the current screen: the overlay closes to the project
// view, and the project view closes to browsing.
func (s *Session) GoBack(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateExportOverlay:
		s.artifact = nil
		s.state = StateProjectView
		return nil
	case StateProjectView:
		s.selected = ""
		s.settleBrowseState(s.operationContext(ctx, "go back", ""))
		return nil
	case StateEmpty, StateProjectList:
		// Already browsing; nothing to step out of.
		return nil
	default:
		return s.guardErr("go back")
	}
}

// Warning exposes the registry's latest persistence warning.
func (s *Session) Warning() error {
	return s.registry.Warning()
}

// settleBrowseState picks between the empty and list states. Callers hold
// s.mu.
func (s *Session) settleBrowseState(ctx context.Context) {
	if len(s.registry.List(ctx)) == 0 {
		s.state = StateEmpty
	} else {
		s.state = StateProjectList
	}
}

func (s *Session) guardErr(operation string) error {
	return services.Wrap(services.ErrValidation, "session", operation,
		"not allowed in state "+string(s.state), nil)
}

// operationContext tags the context with the operation, project, and a
// fresh correlation id. Callers hold s.mu.
func (s *Session) operationContext(ctx context.Context, operation, projectName string) context.Context {
	ctx = services.WithOperation(ctx, operation)
	ctx = services.WithProject(ctx, projectName)
	return services.WithRequestID(ctx, uuid.NewString())
}
