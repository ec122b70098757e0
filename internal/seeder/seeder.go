// Package seeder runs roles, the department tree and employees as one unit of work.
package seeder

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/orgtree/internal/core/events"
	"github.com/frahmantamala/orgtree/internal/core/randstream"
	"github.com/frahmantamala/orgtree/internal/department"
	"github.com/frahmantamala/orgtree/internal/employee"
	"github.com/frahmantamala/orgtree/internal/role"
)

// Repositories are bound to the transaction of one UnitOfWork.
type Repositories struct {
	Roles       role.RepositoryAPI
	Departments department.TreeStore
	Employees   employee.RepositoryAPI
}

type UnitOfWork interface {
	Repositories() Repositories
	// Truncate empties employees, departments and roles and resets their id
	// sequences.
	Truncate(ctx context.Context) error
}

// Store runs fn in a transaction, committing only when fn returns nil.
type Store interface {
	Atomically(ctx context.Context, fn func(uow UnitOfWork) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Recorder interface {
	BatchInserted(size int)
	SeedFinished(d time.Duration, err error)
}

type Result struct {
	Roles       int
	Departments int
	Employees   int
	Duration    time.Duration
}

type Seeder struct {
	store     Store
	publisher EventPublisher
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewSeeder(store Store, publisher EventPublisher, recorder Recorder, logger *slog.Logger) *Seeder {
	return &Seeder{
		store:     store,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source for employment dates and run duration.
func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// Run validates cfg and then provisions roles, builds the department tree and
// populates employees in a single transaction. Any error rolls everything back.
func (s *Seeder) Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	start := s.now()
	s.publish(ctx, events.NewSeedStartedEvent(cfg.Seed, cfg.Employees))
	s.logger.Info("seeding started",
		"employees", cfg.Employees,
		"roles", cfg.Roles,
		"seed", cfg.Seed,
		"batch_size", cfg.BatchSize,
		"truncate", cfg.Truncate)

	var result Result
	err := s.store.Atomically(ctx, func(uow UnitOfWork) error {
		if cfg.Truncate {
			if err := uow.Truncate(ctx); err != nil {
				s.logger.Error("failed to truncate tables", "error", err)
				return err
			}
			s.logger.Info("truncated employees, departments and roles")
		}

		repos := uow.Repositories()
		stream := randstream.New(cfg.Seed)

		roles, err := role.NewProvisioner(repos.Roles, cfg.BatchSize, s.logger).
			EnsureRoles(ctx, cfg.Roles, stream, cfg.StrictRoles)
		if err != nil {
			return err
		}

		nodes, err := department.NewTreeBuilder(repos.Departments, s.logger).
			EnsureTree(ctx, department.DefaultShape, cfg.BatchSize)
		if err != nil {
			return err
		}
		departmentIDs := make([]int64, len(nodes))
		for i, n := range nodes {
			departmentIDs[i] = n.ID
		}

		reported := 0
		created, err := employee.NewPopulator(repos.Employees, s.logger).
			WithClock(s.now).
			Populate(ctx, employee.PopulateParams{
				Total:       cfg.Employees,
				BatchSize:   cfg.BatchSize,
				Roles:       roles,
				Departments: departmentIDs,
				Stream:      stream,
				Progress: func(inserted, total int) {
					s.recordBatch(inserted - reported)
					reported = inserted
					s.publish(ctx, events.NewSeedBatchInsertedEvent(inserted, total))
				},
			})
		if err != nil {
			return err
		}

		result = Result{Roles: len(roles), Departments: len(nodes), Employees: created}
		return nil
	})

	result.Duration = s.now().Sub(start)
	if s.recorder != nil {
		s.recorder.SeedFinished(result.Duration, err)
	}
	if err != nil {
		s.logger.Error("seeding failed, transaction rolled back", "error", err)
		return Result{}, err
	}

	s.publish(ctx, events.NewSeedCompletedEvent(result.Roles, result.Departments, result.Employees, result.Duration))
	s.logger.Info("seeding completed",
		"roles", result.Roles,
		"departments", result.Departments,
		"employees", result.Employees,
		"duration", result.Duration)
	return result, nil
}

func (s *Seeder) recordBatch(size int) {
	if s.recorder != nil {
		s.recorder.BatchInserted(size)
	}
}

func (s *Seeder) publish(ctx context.Context, event events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ctx, event)
	}
}
