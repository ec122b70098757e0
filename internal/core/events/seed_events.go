package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSeedStarted        = "seed.started"
	EventTypeSeedBatchInserted  = "seed.batch_inserted"
	EventTypeSeedCompleted      = "seed.completed"
	EventTypeDepartmentReparent = "department.reparented"
	EventTypeDepartmentDeleted  = "department.deleted"
)

type SeedBatchInsertedEvent struct {
	BaseEvent
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

func newBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewSeedStartedEvent(seed int64, employees int) BaseEvent {
	return newBaseEvent(EventTypeSeedStarted, map[string]interface{}{
		"seed":      seed,
		"employees": employees,
	})
}

func NewSeedBatchInsertedEvent(inserted, total int) *SeedBatchInsertedEvent {
	return &SeedBatchInsertedEvent{
		BaseEvent: newBaseEvent(EventTypeSeedBatchInserted, map[string]interface{}{
			"inserted": inserted,
			"total":    total,
		}),
		Inserted: inserted,
		Total:    total,
	}
}

func NewSeedCompletedEvent(roles, departments, employees int, duration time.Duration) BaseEvent {
	return newBaseEvent(EventTypeSeedCompleted, map[string]interface{}{
		"roles":       roles,
		"departments": departments,
		"employees":   employees,
		"duration_ms": duration.Milliseconds(),
	})
}

func NewDepartmentReparentedEvent(departmentID int64, parentID *int64) BaseEvent {
	return newBaseEvent(EventTypeDepartmentReparent, map[string]interface{}{
		"department_id": departmentID,
		"parent_id":     parentID,
	})
}

func NewDepartmentDeletedEvent(departmentID int64, removed int) BaseEvent {
	return newBaseEvent(EventTypeDepartmentDeleted, map[string]interface{}{
		"department_id": departmentID,
		"removed":       removed,
	})
}
