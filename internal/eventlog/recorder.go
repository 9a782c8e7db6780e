package eventlog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vellum-cms/vellum-backend/internal/hook"
)

var (
	eventsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_events_recorded_total",
			Help: "Lifecycle events accepted into the ClickHouse write buffer",
		},
	)

	eventsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_events_dropped_total",
			Help: "Lifecycle events dropped because the write buffer was full",
		},
	)

	batchFlushFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_flush_failures_total",
			Help: "ClickHouse batch inserts that failed",
		},
	)
)

// EventSink receives event batches. Satisfied by Repository.
type EventSink interface {
	InsertEvents(ctx context.Context, events []LifecycleEvent) error
}

// recordedTopics are the bus topics the recorder persists
var recordedTopics = []string{
	hook.HookEntryAfterCreate,
	hook.HookEntryAfterSave,
	hook.HookEntryAfterPublish,
	hook.HookEntryAfterUnpublish,
	hook.HookEntryAfterArchive,
	hook.HookEntryAfterRestore,
	hook.HookEntryAfterDelete,
	hook.HookScheduleCreated,
	hook.HookScheduleCancelled,
	hook.HookScheduleFired,
}

// Recorder buffers lifecycle events from the event bus and writes them to
// ClickHouse in batches. Publishing is never blocked: when the buffer is
// full events are dropped and counted.
type Recorder struct {
	sink          EventSink
	buf           chan LifecycleEvent
	batchSize     int
	flushInterval time.Duration

	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewRecorder creates a Recorder writing to sink
func NewRecorder(sink EventSink, batchSize int, flushInterval time.Duration) *Recorder {
	if batchSize < 1 {
		batchSize = 100
	}
	if flushInterval <= 0 {
		flushInterval = 5 * time.Second
	}
	return &Recorder{
		sink:          sink,
		buf:           make(chan LifecycleEvent, batchSize*4),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		stop:          make(chan struct{}),
	}
}

// Attach subscribes the recorder to every lifecycle topic on the bus
func (r *Recorder) Attach(bus *hook.EventBus) {
	for _, topic := range recordedTopics {
		bus.Subscribe("eventlog", topic, r.handle)
	}
}

// handle converts a bus event into a row and enqueues it without blocking
func (r *Recorder) handle(event hook.Event) {
	row := LifecycleEvent{
		EventID:       uuid.NewString(),
		OccurredAt:    event.Timestamp,
		Topic:         event.Topic,
		SpaceID:       payloadString(event.Payload, "space_id"),
		EnvironmentID: payloadUint64(event.Payload, "environment_id"),
		EntryID:       payloadUint64(event.Payload, "entry_id"),
		ContentType:   payloadString(event.Payload, "content_type"),
		Status:        payloadString(event.Payload, "status"),
		Version:       uint32(payloadUint64(event.Payload, "version")),
		ActorID:       payloadUint64(event.Payload, "actor_id"),
		ActionID:      payloadString(event.Payload, "action_id"),
		Detail:        payloadString(event.Payload, "reason"),
	}

	select {
	case r.buf <- row:
		eventsRecordedTotal.Inc()
	default:
		eventsDroppedTotal.Inc()
	}
}

// Start launches the background flush loop
func (r *Recorder) Start() {
	r.wg.Add(1)
	go r.loop()
	log.Printf("[INFO] 이벤트 로그 기록 시작: batch=%d interval=%s", r.batchSize, r.flushInterval)
}

// Stop flushes buffered events and waits for the loop to exit
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	r.wg.Wait()
}

func (r *Recorder) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	batch := make([]LifecycleEvent, 0, r.batchSize)

	for {
		select {
		case row := <-r.buf:
			batch = append(batch, row)
			if len(batch) >= r.batchSize {
				batch = r.flush(batch)
			}
		case <-ticker.C:
			batch = r.flush(batch)
		case <-r.stop:
			// 남은 이벤트를 모두 비우고 종료
			for {
				select {
				case row := <-r.buf:
					batch = append(batch, row)
				default:
					r.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes the batch and returns an empty slice reusing the backing array
func (r *Recorder) flush(batch []LifecycleEvent) []LifecycleEvent {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.sink.InsertEvents(ctx, batch); err != nil {
		batchFlushFailures.Inc()
		log.Printf("[ERROR] 이벤트 로그 기록 실패 (%d건 유실): %v", len(batch), err)
	}
	return batch[:0]
}

func payloadString(p map[string]interface{}, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func payloadUint64(p map[string]interface{}, key string) uint64 {
	switch v := p[key].(type) {
	case uint64:
		return v
	case uint:
		return uint64(v)
	case uint32:
		return uint64(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case float64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	}
	return 0
}
