package cache

import (
	"sync"

	"github.com/wobblehealth/checkin-api/internal/domain/entities"
)

// EventLog is a bounded in-memory record of recent webhook events. It is
// per-instance, non-durable, best-effort telemetry: it resets on restart and
// must never be treated as a source of truth. Capacity is fixed at
// construction; once full, the oldest entries are dropped.
type EventLog struct {
	mu       sync.Mutex
	capacity int
	events   []entities.WebhookEvent
}

// DefaultCapacity bounds the log so webhook bursts cannot grow memory
const DefaultCapacity = 50

// NewEventLog creates an event log with the given capacity. A capacity of
// zero or less falls back to DefaultCapacity.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EventLog{
		capacity: capacity,
		events:   make([]entities.WebhookEvent, 0, capacity),
	}
}

// Append adds an event at the tail, evicting from the head past capacity.
// Append order follows arrival order of completed verifications.
func (l *EventLog) Append(event entities.WebhookEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	if len(l.events) > l.capacity {
		l.events = l.events[len(l.events)-l.capacity:]
	}
}

// Recent returns a copy of the last n events in arrival order, oldest first
func (l *EventLog) Recent(n int) []entities.WebhookEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.events) {
		n = len(l.events)
	}
	out := make([]entities.WebhookEvent, n)
	copy(out, l.events[len(l.events)-n:])
	return out
}

// Len reports the number of retained events
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
