package employee

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/orgtree/internal"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// RepositoryAPI is the employee store. ListByDepartment orders by full name,
// then id.
type RepositoryAPI interface {
	Count(ctx context.Context) (int64, error)
	BulkCreate(ctx context.Context, employees []*Employee) error
	DepartmentExists(ctx context.Context, departmentID int64) (bool, error)
	CountByDepartment(ctx context.Context, departmentID int64) (int64, error)
	ListByDepartment(ctx context.Context, departmentID int64, limit, offset int) ([]*Employee, error)
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

func (s *Service) ListByDepartment(ctx context.Context, departmentID int64, limit, offset int) (*EmployeesResponse, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)
	offset = max(offset, 0)

	exists, err := s.repo.DepartmentExists(ctx, departmentID)
	if err != nil {
		s.logger.Error("failed to check department", "error", err, "department_id", departmentID)
		return nil, err
	}
	if !exists {
		return nil, internal.ErrDepartmentNotFound
	}

	total, err := s.repo.CountByDepartment(ctx, departmentID)
	if err != nil {
		s.logger.Error("failed to count department employees", "error", err, "department_id", departmentID)
		return nil, err
	}

	employees, err := s.repo.ListByDepartment(ctx, departmentID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list department employees", "error", err, "department_id", departmentID)
		return nil, err
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}
	return &EmployeesResponse{
		Employees: responses,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
