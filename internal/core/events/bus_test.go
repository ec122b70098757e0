package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frahmantamala/orgtree/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("should deliver async events to every handler of the type", func() {
		var calls atomic.Int32
		for i := 0; i < 3; i++ {
			bus.Subscribe(events.EventTypeSeedCompleted, func(ctx context.Context, e events.Event) error {
				calls.Add(1)
				return nil
			})
		}
		bus.Subscribe(events.EventTypeSeedStarted, func(ctx context.Context, e events.Event) error {
			calls.Add(100)
			return nil
		})

		bus.Publish(context.Background(), events.NewSeedCompletedEvent(1, 25, 10, time.Second))
		Eventually(calls.Load).Should(Equal(int32(3)))
		Consistently(calls.Load, 50*time.Millisecond).Should(Equal(int32(3)))
	})

	It("should stop at the first failing handler when synchronous", func() {
		var seen []int64
		bus.Subscribe(events.EventTypeSeedBatchInserted, func(ctx context.Context, e events.Event) error {
			seen = append(seen, int64(e.(*events.SeedBatchInsertedEvent).Inserted))
			return errors.New("sink full")
		})
		bus.Subscribe(events.EventTypeSeedBatchInserted, func(ctx context.Context, e events.Event) error {
			seen = append(seen, -1)
			return nil
		})

		err := bus.PublishSync(context.Background(), events.NewSeedBatchInsertedEvent(50, 100))
		Expect(err).To(MatchError(ContainSubstring("sink full")))
		Expect(seen).To(Equal([]int64{50}))
	})

	It("should ignore events nobody subscribed to", func() {
		Expect(bus.PublishSync(context.Background(), events.NewDepartmentDeletedEvent(3, 2))).To(Succeed())
	})

	It("should stamp events with an id and type", func() {
		parent := int64(1)
		e := events.NewDepartmentReparentedEvent(4, &parent)
		Expect(e.EventID()).NotTo(BeEmpty())
		Expect(e.EventType()).To(Equal(events.EventTypeDepartmentReparent))
		Expect(e.Payload()).To(HaveKeyWithValue("department_id", int64(4)))
	})
})
