package department

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/core/events"
)

// RepositoryAPI is the department store.
type RepositoryAPI interface {
	TreeStore
	GetByID(ctx context.Context, id int64) (*Node, error)
	UpdateParent(ctx context.Context, id int64, parentID *int64) error
	// DeleteSubtree removes the given departments and their employees
	// atomically and reports how many employees went with them.
	DeleteSubtree(ctx context.Context, ids []int64) (int64, error)
}

// TreeReader loads every department with its employee count, ordered by id.
type TreeReader interface {
	ListRows(ctx context.Context) ([]Row, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo      RepositoryAPI
	reader    TreeReader
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, reader TreeReader, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		reader:    reader,
		publisher: publisher,
		logger:    logger,
	}
}

// GetTree loads a snapshot of all departments and assembles it.
func (s *Service) GetTree(ctx context.Context) ([]*TreeNode, error) {
	rows, err := s.reader.ListRows(ctx)
	if err != nil {
		s.logger.Error("failed to load department rows", "error", err)
		return nil, err
	}

	forest, err := Assemble(rows, DefaultLabel)
	if err != nil {
		s.logger.Error("department hierarchy is inconsistent", "error", err)
		return nil, err
	}
	return forest, nil
}

// ChangeParent moves a department under parentID, or makes it a root when
// parentID is nil, rejecting moves that would break the hierarchy.
func (s *Service) ChangeParent(ctx context.Context, id int64, parentID *int64) (*Node, error) {
	node, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, internal.ErrDepartmentNotFound
	}

	all, err := s.repo.ListOrdered(ctx, 0)
	if err != nil {
		return nil, err
	}
	index := NewParentIndex(all)

	if err := ValidateParent(&id, parentID, index.Lookup); err != nil {
		s.logger.Warn("department move rejected", "department_id", id, "parent_id", parentID, "error", err)
		return nil, err
	}

	if err := s.repo.UpdateParent(ctx, id, parentID); err != nil {
		s.logger.Error("failed to update department parent", "error", err, "department_id", id)
		return nil, err
	}

	node.ParentID = parentID
	s.publish(ctx, events.NewDepartmentReparentedEvent(id, parentID))
	s.logger.Info("department moved", "department_id", id, "parent_id", parentID)
	return node, nil
}

// DeleteDepartment removes a department, its whole subtree and their employees.
func (s *Service) DeleteDepartment(ctx context.Context, id int64) (DeleteResult, error) {
	all, err := s.repo.ListOrdered(ctx, 0)
	if err != nil {
		return DeleteResult{}, err
	}
	index := NewParentIndex(all)
	if _, ok := index.Lookup(id); !ok {
		return DeleteResult{}, internal.ErrDepartmentNotFound
	}

	ids := index.Descendants(id)
	employees, err := s.repo.DeleteSubtree(ctx, ids)
	if err != nil {
		s.logger.Error("failed to delete department subtree", "error", err, "department_id", id)
		return DeleteResult{}, err
	}

	s.publish(ctx, events.NewDepartmentDeletedEvent(id, len(ids)))
	s.logger.Info("department deleted", "department_id", id, "departments", len(ids), "employees", employees)
	return DeleteResult{Departments: len(ids), Employees: employees}, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(context.WithoutCancel(ctx), event)
	}
}
