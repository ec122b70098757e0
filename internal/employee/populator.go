package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/core/randstream"
	"github.com/frahmantamala/orgtree/internal/role"
)

const (
	MaxSalaryOffset = 120_000
	MaxBackdateDays = 3650
	secondsPerDay   = 24 * 60 * 60
)

// Name pools. Their order is part of the seeded output.
var (
	firstNames = []string{
		"Данил", "Иван", "Глеб", "Святослав", "Петр", "Николай", "Августин",
		"Икакий", "Александр", "Матвей",
	}
	lastNames = []string{
		"Федоров", "Якимов", "Петров", "Сапожников", "Курдюмов", "Хлебников",
		"Исаев", "Пушкарев",
	}
	middleNames = []string{
		"Евгеньевич", "Сергеевич", "Александрович", "Иванович", "Глебович",
		"Святославович", "Николаевич", "Августинович",
	}
)

// ProgressFunc is called after every inserted batch with the running total.
type ProgressFunc func(inserted, total int)

type PopulateParams struct {
	Total       int
	BatchSize   int
	Roles       []role.Baseline
	Departments []int64
	Stream      *randstream.Stream
	Progress    ProgressFunc
}

type Populator struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewPopulator(repo RepositoryAPI, logger *slog.Logger) *Populator {
	return &Populator{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used as the base of employment dates.
func (p *Populator) WithClock(now func() time.Time) *Populator {
	p.now = now
	return p
}

// Populate generates p.Total employees and inserts them batch by batch.
//
// Employee k (counted from 0 over the whole run) goes to department
// Departments[k % len(Departments)], and its random attributes are drawn in a
// fixed order, so a given seed yields the same employees whatever the batch
// size.
func (p *Populator) Populate(ctx context.Context, params PopulateParams) (int, error) {
	if err := params.validate(); err != nil {
		return 0, err
	}

	existing, err := p.repo.Count(ctx)
	if err != nil {
		p.logger.Error("failed to count employees", "error", err)
		return 0, err
	}
	if existing != 0 {
		return 0, internal.NewStateConflictError(
			fmt.Sprintf("employee table already has %d rows; use --truncate to reset before seeding, or clear employees manually", existing),
			internal.ErrCodeEmployeesExist,
			internal.RecordCounts{Employees: existing},
		)
	}

	now := p.now()
	created := 0
	batch := make([]*Employee, 0, min(params.BatchSize, params.Total))

	for created < params.Total {
		n := min(params.BatchSize, params.Total-created)
		batch = batch[:0]

		for i := 0; i < n; i++ {
			e, err := params.generate(created+i, now)
			if err != nil {
				return created, err
			}
			batch = append(batch, e)
		}

		if err := p.repo.BulkCreate(ctx, batch); err != nil {
			p.logger.Error("failed to insert employee batch", "error", err, "offset", created, "size", n)
			return created, err
		}
		created += n

		p.logger.Debug("inserted employee batch", "inserted", created, "total", params.Total)
		if params.Progress != nil {
			params.Progress(created, params.Total)
		}
	}

	p.logger.Info("created employees", "count", created, "departments", len(params.Departments), "roles", len(params.Roles))
	return created, nil
}

func (params PopulateParams) validate() error {
	switch {
	case params.Total <= 0:
		return internal.NewConfigurationError("employees must be > 0", internal.ErrCodeInvalidConfig)
	case params.BatchSize <= 0:
		return internal.NewConfigurationError("batch_size must be > 0", internal.ErrCodeInvalidConfig)
	case len(params.Roles) == 0:
		return internal.NewConfigurationError("no roles available for employee generation", internal.ErrCodeEmptyRolePool)
	case len(params.Departments) == 0:
		return internal.NewConfigurationError("no departments available for employee generation", internal.ErrCodeEmptyDepartment)
	case params.Stream == nil:
		return internal.NewConfigurationError("random stream is required", internal.ErrCodeInvalidConfig)
	}
	return nil
}

// generate builds employee k. The draw order is fixed: role, salary offset,
// first, last and middle name, days, seconds.
func (params PopulateParams) generate(k int, now time.Time) (*Employee, error) {
	s := params.Stream
	departmentID := params.Departments[k%len(params.Departments)]

	r := randstream.Choice(s, params.Roles)
	salary := r.BaselineSalary + int64(s.IntRange(0, MaxSalaryOffset))

	fn := randstream.Choice(s, firstNames)
	ln := randstream.Choice(s, lastNames)
	mn := randstream.Choice(s, middleNames)
	fullName := fmt.Sprintf("%s %s %s #%d", fn, ln, mn, k+1)

	days := s.IntRange(0, MaxBackdateDays)
	seconds := s.IntRange(0, secondsPerDay-1)
	employmentDate := now.Add(-(time.Duration(days)*24*time.Hour + time.Duration(seconds)*time.Second))

	return NewEmployee(fullName, r.ID, r.BaselineSalary, departmentID, salary, employmentDate)
}
