package department

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/orgtree/internal"
)

// TreeStore is the storage the builder needs. Identities are assigned by the
// store; ListOrdered returns departments by ascending id, all of them when
// limit <= 0.
type TreeStore interface {
	Count(ctx context.Context) (int64, error)
	ListOrdered(ctx context.Context, limit int) ([]Node, error)
	BulkCreate(ctx context.Context, parentIDs []*int64, batchSize int) error
}

type TreeBuilder struct {
	store  TreeStore
	logger *slog.Logger
}

func NewTreeBuilder(store TreeStore, logger *slog.Logger) *TreeBuilder {
	return &TreeBuilder{
		store:  store,
		logger: logger,
	}
}

// EnsureTree creates the department hierarchy described by shape, level by
// level, or returns the first shape.Total() existing departments when the
// table already holds at least that many. A non-empty table below the target
// is a state conflict.
//
// Each level is inserted before the next one is computed, and the ids of the
// freshly inserted level are read back in id order, so parent links always
// point at identities the store has actually assigned.
func (b *TreeBuilder) EnsureTree(ctx context.Context, shape Shape, batchSize int) ([]Node, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	target := shape.Total()

	existing, err := b.store.Count(ctx)
	if err != nil {
		b.logger.Error("failed to count departments", "error", err)
		return nil, err
	}
	if existing >= int64(target) {
		b.logger.Info("reusing existing department tree", "existing", existing, "target", target)
		return b.store.ListOrdered(ctx, target)
	}
	if existing != 0 {
		return nil, internal.NewStateConflictError(
			fmt.Sprintf("department table already has %d rows; use --truncate to reset before seeding, or clear departments manually", existing),
			internal.ErrCodePartialTree,
			internal.RecordCounts{Departments: existing},
		)
	}

	if err := b.store.BulkCreate(ctx, []*int64{nil}, batchSize); err != nil {
		b.logger.Error("failed to create root department", "error", err)
		return nil, err
	}
	created, err := b.store.ListOrdered(ctx, 1)
	if err != nil {
		return nil, err
	}
	prevLevel := created

	for level := 2; level <= shape.Levels(); level++ {
		count := shape.LevelCounts[level-1]
		if len(prevLevel) == 0 {
			return nil, internal.NewInvariantViolationError(
				fmt.Sprintf("level %d has no parents to attach to", level),
				internal.ErrCodeTreeCountMismatch,
			)
		}

		parents := make([]*int64, count)
		for i := range parents {
			parentID := prevLevel[i%len(prevLevel)].ID
			parents[i] = &parentID
		}
		if err := b.store.BulkCreate(ctx, parents, batchSize); err != nil {
			b.logger.Error("failed to create department level", "error", err, "level", level)
			return nil, err
		}

		expected := shape.cumulative(level)
		all, err := b.store.ListOrdered(ctx, expected)
		if err != nil {
			return nil, err
		}
		if len(all) != expected {
			return nil, internal.NewInvariantViolationError(
				fmt.Sprintf("department creation mismatch after level %d: expected %d, got %d", level, expected, len(all)),
				internal.ErrCodeTreeCountMismatch,
			)
		}

		prevLevel = all[shape.cumulative(level-1):expected]
		created = all
		b.logger.Debug("created department level", "level", level, "count", count)
	}

	if len(created) != target {
		return nil, internal.NewInvariantViolationError(
			fmt.Sprintf("department creation mismatch: expected %d, got %d", target, len(created)),
			internal.ErrCodeTreeCountMismatch,
		)
	}

	b.logger.Info("created department tree", "departments", len(created), "levels", shape.Levels())
	return created, nil
}
