package role

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/core/randstream"
)

const (
	MinBaselineSalary = 50_000
	MaxBaselineSalary = 140_000
)

// curatedNames is the pool shuffled by EnsureRoles. Its order is part of the
// seeded output, so append only.
var curatedNames = []string{
	"Junior Developer",
	"Developer",
	"Senior Developer",
	"Tech Lead",
	"QA Engineer",
	"DevOps Engineer",
	"Product Manager",
	"Data Analyst",
	"HR Specialist",
	"Accountant",
	"Designer",
	"Support Engineer",
}

type Provisioner struct {
	repo      RepositoryAPI
	logger    *slog.Logger
	batchSize int
}

func NewProvisioner(repo RepositoryAPI, batchSize int, logger *slog.Logger) *Provisioner {
	return &Provisioner{
		repo:      repo,
		logger:    logger,
		batchSize: batchSize,
	}
}

// EnsureRoles returns the existing role pool untouched when one exists, and
// otherwise creates count roles with random baseline salaries. With strict
// set, an existing pool whose size differs from count is a state conflict
// instead of being reused.
func (p *Provisioner) EnsureRoles(ctx context.Context, count int, stream *randstream.Stream, strict bool) ([]Baseline, error) {
	if count <= 0 {
		return nil, internal.NewConfigurationError("roles must be > 0", internal.ErrCodeInvalidConfig)
	}

	existing, err := p.repo.GetAll(ctx)
	if err != nil {
		p.logger.Error("failed to load existing roles", "error", err)
		return nil, err
	}
	if len(existing) > 0 {
		if strict && len(existing) != count {
			return nil, internal.NewStateConflictError(
				fmt.Sprintf("role table already has %d rows but %d were requested; use --truncate to reset", len(existing), count),
				internal.ErrCodeRolePoolMismatch,
				internal.RecordCounts{Roles: int64(len(existing))},
			)
		}
		p.logger.Info("reusing existing roles", "count", len(existing), "requested", count)
		return toBaselines(existing), nil
	}

	names := append([]string(nil), curatedNames...)
	randstream.Shuffle(stream, names)
	synthesize := count > len(names)

	roles := make([]*Role, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Role %d", i+1)
		if !synthesize {
			name = names[i]
		}
		r, err := NewRole(name, int64(stream.IntRange(MinBaselineSalary, MaxBaselineSalary)))
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}

	if err := p.repo.BulkCreate(ctx, roles, p.batchSize); err != nil {
		p.logger.Error("failed to create roles", "error", err, "count", count)
		return nil, err
	}

	created, err := p.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Info("created roles", "count", len(created))
	return toBaselines(created), nil
}

func toBaselines(roles []*Role) []Baseline {
	out := make([]Baseline, len(roles))
	for i, r := range roles {
		out[i] = r.Baseline()
	}
	return out
}
