package role

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/orgtree/internal"
)

// RepositoryAPI is the role store. GetAll returns roles ordered by name, then id.
type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*Role, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	BulkCreate(ctx context.Context, roles []*Role, batchSize int) error
	CountEmployees(ctx context.Context, roleID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get roles from repository", "error", err)
		return nil, err
	}

	responses := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, r.ToResponse())
	}
	return responses, nil
}

// DeleteRole removes a role that no employee references.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return internal.ErrRoleNotFound
	}

	inUse, err := s.repo.CountEmployees(ctx, id)
	if err != nil {
		s.logger.Error("failed to count role employees", "error", err, "role_id", id)
		return err
	}
	if inUse > 0 {
		s.logger.Warn("role delete blocked", "role_id", id, "employees", inUse)
		return internal.NewStateConflictError(
			fmt.Sprintf("role %d is referenced by %d employees", id, inUse),
			internal.ErrCodeRoleInUse,
			internal.RecordCounts{Employees: inUse},
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete role", "error", err, "role_id", id)
		return err
	}

	s.logger.Info("role deleted", "role_id", id, "name", r.Name)
	return nil
}
