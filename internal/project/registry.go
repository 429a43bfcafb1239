package project

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"flipbook/internal/logging"
	"flipbook/internal/notifications"
	"flipbook/internal/services"
)

// CollectionStore persists the project collection as a single unit.
// A missing collection loads as empty.
type CollectionStore interface {
	Load(ctx context.Context) (Collection, error)
	Save(ctx context.Context, collection Collection) error
}

// Registry owns the in-memory project collection and writes every mutation
// through to the store. Mutations that succeed in memory but fail to persist
// return a warning-grade error; services.IsWarning distinguishes them from
// failures that left the collection untouched.
type Registry struct {
	mu       sync.Mutex
	store    CollectionStore
	notifier notifications.Service
	logger   *slog.Logger

	collection Collection
	warning    error
}

// NewRegistry wires a registry to its store and notifier. Call Initialize
// before any other method.
func NewRegistry(store CollectionStore, notifier notifications.Service, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(nil)
	}
	return &Registry{
		store:    store,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "registry"),
	}
}

// Initialize loads the persisted collection. A load failure is fatal rather
// than warning-grade: proceeding with an empty collection would overwrite
// existing projects on the next save.
func (r *Registry) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.store.Load(ctx)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "registry", "initialize", "load collection", err)
	}
	r.collection = collection
	r.logger.Info("project collection loaded", logging.Int("projects", len(collection.Projects)))
	return nil
}

// List returns project summaries in creation order.
func (r *Registry) List(ctx context.Context) []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := make([]Summary, len(r.collection.Projects))
	for i, p := range r.collection.Projects {
		summaries[i] = Summary{Name: p.Name, FrameCount: len(p.Frames)}
	}
	return summaries
}

// Create adds an empty project. Names are compared after trimming and case
// folding, so "Cats" and " cats " collide, but the name is stored as typed.
func (r *Registry) Create(ctx context.Context, name string) (Project, error) {
	if strings.TrimSpace(name) == "" {
		return Project{}, services.Wrap(services.ErrInvalidName, "registry", "create", "name is empty", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := foldName(name)
	for _, p := range r.collection.Projects {
		if foldName(p.Name) == key {
			return Project{}, services.Wrap(services.ErrInvalidName, "registry", "create",
				"a project with this name already exists", nil)
		}
	}

	created := Project{Name: name}
	r.collection.Projects = append(r.collection.Projects, created)
	r.logger.Info("project created", logging.String("project", name))

	warn := r.persist(ctx, "create")
	if err := r.notifier.NotifyProjectCreated(ctx, name); err != nil {
		r.logger.Warn("project created notification failed", logging.Error(err))
	}
	return created.Clone(), warn
}

// Get returns a copy of the named project. Lookup is by exact stored name.
func (r *Registry) Get(ctx context.Context, name string) (Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return Project{}, services.Wrap(services.ErrNotFound, "registry", "get", name, nil)
	}
	return r.collection.Projects[idx].Clone(), nil
}

// Delete removes the named project and its frames.
func (r *Registry) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return services.Wrap(services.ErrNotFound, "registry", "delete", name, nil)
	}
	r.collection.Projects = append(r.collection.Projects[:idx], r.collection.Projects[idx+1:]...)
	r.logger.Info("project deleted", logging.String("project", name))

	warn := r.persist(ctx, "delete")
	if err := r.notifier.NotifyProjectDeleted(ctx, name); err != nil {
		r.logger.Warn("project deleted notification failed", logging.Error(err))
	}
	return warn
}

// AppendFrame appends a captured frame to the named project and returns the
// new frame count. Existing frames are never reordered or replaced.
func (r *Registry) AppendFrame(ctx context.Context, name string, frame StoredImage) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return 0, services.Wrap(services.ErrNotFound, "registry", "append frame", name, nil)
	}

	buf := make(StoredImage, len(frame))
	copy(buf, frame)
	r.collection.Projects[idx].Frames = append(r.collection.Projects[idx].Frames, buf)
	count := len(r.collection.Projects[idx].Frames)
	r.logger.Debug("frame appended",
		logging.String("project", name),
		logging.Int("frames", count))

	warn := r.persist(ctx, "append frame")
	if err := r.notifier.NotifyFrameCaptured(ctx, name, count); err != nil {
		r.logger.Warn("frame captured notification failed", logging.Error(err))
	}
	return count, warn
}

// Warning returns the warning from the most recent persist attempt, or nil
// if the collection on disk matches memory.
func (r *Registry) Warning() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warning
}

// persist writes the collection through to the store. Callers hold r.mu.
func (r *Registry) persist(ctx context.Context, operation string) error {
	err := r.store.Save(ctx, r.collection.Clone())
	if err == nil {
		r.warning = nil
		return nil
	}

	warn := services.Wrap(services.ErrPersistence, "registry", operation, "collection save failed", err)
	r.warning = warn
	r.logger.Warn("collection save failed, changes kept in memory",
		logging.String("operation", operation),
		logging.Error(err))
	if nerr := r.notifier.NotifyPersistenceWarning(ctx, err); nerr != nil {
		r.logger.Warn("persistence warning notification failed", logging.Error(nerr))
	}
	return warn
}

// indexOf finds a project by exact stored name. Callers hold r.mu.
func (r *Registry) indexOf(name string) int {
	for i, p := range r.collection.Projects {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// foldName normalizes a name for uniqueness comparison. A fresh caser is
// built per call because cases.Caser is not safe for concurrent use.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
