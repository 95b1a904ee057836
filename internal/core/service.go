package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"beamcore/pkg/domain"

	"github.com/google/uuid"
)

// ErrListNotFound reports a registry operation against an unknown list id.
type ErrListNotFound struct {
	ID string
}

func (e ErrListNotFound) Error() string {
	return fmt.Sprintf("experiment list %s not found", e.ID)
}

// Registry manages named experiment lists on top of a snapshot store.
// Registry methods serialize access through an internal lock; experiment
// lists handed out via GetList are live and follow the single-writer
// contract of the underlying container.
type Registry struct {
	mu      sync.RWMutex
	lists   map[string]*domain.ExperimentList
	store   domain.Store
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger installs a logger; the default discards everything.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics installs a metrics recorder; the default discards everything.
func WithMetrics(m MetricsRecorder) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithTracer installs a tracer; the default produces no spans.
func WithTracer(t Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewRegistry constructs a registry backed by the supplied store.
func NewRegistry(store domain.Store, opts ...Option) *Registry {
	r := &Registry{
		lists:   make(map[string]*domain.ExperimentList),
		store:   store,
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, operation)
	start := time.Now()
	err := fn(ctx)
	span.End(err)
	r.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	if err != nil {
		r.logger.Error(operation+" failed", "error", err)
	}
	return err
}

// CreateList registers a new experiment list holding the supplied
// experiments and returns its generated id.
func (r *Registry) CreateList(ctx context.Context, experiments ...domain.Experiment) (string, error) {
	var id string
	err := r.instrument(ctx, "create_list", func(context.Context) error {
		id = uuid.NewString()
		r.mu.Lock()
		r.lists[id] = domain.NewExperimentList(experiments...)
		r.mu.Unlock()
		r.logger.Info("experiment list created", "id", id, "size", len(experiments))
		return nil
	})
	return id, err
}

// GetList returns the live list registered under id, if present.
func (r *Registry) GetList(id string) (*domain.ExperimentList, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.lists[id]
	return list, ok
}

// IDs returns the ids of all registered lists in ascending order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.lists))
	for id := range r.lists {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AppendExperiments appends experiments to the list registered under id.
func (r *Registry) AppendExperiments(ctx context.Context, id string, experiments ...domain.Experiment) error {
	return r.instrument(ctx, "append_experiments", func(context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		list, ok := r.lists[id]
		if !ok {
			return ErrListNotFound{ID: id}
		}
		for _, e := range experiments {
			list.Append(e)
		}
		return nil
	})
}

// ReplaceModel retargets shared references in the list registered under id,
// with the semantics of ExperimentList.Replace.
func (r *Registry) ReplaceModel(ctx context.Context, id string, old, new any) error {
	return r.instrument(ctx, "replace_model", func(context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		list, ok := r.lists[id]
		if !ok {
			return ErrListNotFound{ID: id}
		}
		return list.Replace(old, new)
	})
}

// Validate evaluates the default consistency rules over the list
// registered under id. Violations are reported in the result, not as an
// error.
func (r *Registry) Validate(ctx context.Context, id string) (domain.Result, error) {
	var res domain.Result
	err := r.instrument(ctx, "validate_list", func(context.Context) error {
		r.mu.RLock()
		defer r.mu.RUnlock()
		list, ok := r.lists[id]
		if !ok {
			return ErrListNotFound{ID: id}
		}
		res = list.Validate()
		return nil
	})
	return res, err
}

// SaveList exports the list registered under id and writes the snapshot to
// the store.
func (r *Registry) SaveList(ctx context.Context, id string) error {
	return r.instrument(ctx, "save_list", func(ctx context.Context) error {
		r.mu.RLock()
		list, ok := r.lists[id]
		r.mu.RUnlock()
		if !ok {
			return ErrListNotFound{ID: id}
		}
		snap, err := list.Export()
		if err != nil {
			return fmt.Errorf("export list %s: %w", id, err)
		}
		if err := r.store.SaveList(ctx, id, snap); err != nil {
			return fmt.Errorf("save list %s: %w", id, err)
		}
		r.logger.Debug("experiment list saved", "id", id, "size", list.Size())
		return nil
	})
}

// LoadList reads the snapshot stored under id and registers the rebuilt
// list, replacing any in-memory list with the same id.
func (r *Registry) LoadList(ctx context.Context, id string) error {
	return r.instrument(ctx, "load_list", func(ctx context.Context) error {
		snap, ok, err := r.store.LoadList(ctx, id)
		if err != nil {
			return fmt.Errorf("load list %s: %w", id, err)
		}
		if !ok {
			return ErrListNotFound{ID: id}
		}
		list, err := domain.FromSnapshot(snap)
		if err != nil {
			return fmt.Errorf("decode list %s: %w", id, err)
		}
		r.mu.Lock()
		r.lists[id] = list
		r.mu.Unlock()
		r.logger.Debug("experiment list loaded", "id", id, "size", list.Size())
		return nil
	})
}

// DeleteList removes the list registered under id from memory and from the
// store, reporting whether either held it.
func (r *Registry) DeleteList(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := r.instrument(ctx, "delete_list", func(ctx context.Context) error {
		r.mu.Lock()
		if _, ok := r.lists[id]; ok {
			delete(r.lists, id)
			removed = true
		}
		r.mu.Unlock()
		stored, err := r.store.DeleteList(ctx, id)
		if err != nil {
			return fmt.Errorf("delete list %s: %w", id, err)
		}
		removed = removed || stored
		return nil
	})
	return removed, err
}
