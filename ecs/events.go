package ecs

import "errors"

var ErrNilEventLog = errors.New("ecs: event log is nil")

// EventReader is a consumer cursor into an EventLog. Each reader advances
// independently; events are only dropped once every live reader has read them.
type EventReader struct {
	id     int
	offset int
}

// EventLog is an append-only event sequence with per-consumer cursors.
type EventLog[T any] struct {
	items   []T
	base    int
	readers map[int]*EventReader
	nextID  int
}

// NewEventLog creates an empty log.
func NewEventLog[T any]() *EventLog[T] {
	return &EventLog[T]{readers: make(map[int]*EventReader)}
}

// Register creates a reader positioned at the end of the log, so it only
// observes events pushed after registration.
func (l *EventLog[T]) Register() (*EventReader, error) {
	if l == nil {
		return nil, ErrNilEventLog
	}
	if l.readers == nil {
		l.readers = make(map[int]*EventReader)
	}
	l.nextID++
	r := &EventReader{id: l.nextID, offset: l.base + len(l.items)}
	l.readers[r.id] = r
	return r, nil
}

// Unregister drops a reader and releases the backlog it was pinning.
func (l *EventLog[T]) Unregister(r *EventReader) {
	if l == nil || r == nil {
		return
	}
	delete(l.readers, r.id)
	l.compact()
}

// Push appends an event.
func (l *EventLog[T]) Push(evt T) {
	if l == nil {
		return
	}
	l.items = append(l.items, evt)
	if len(l.readers) == 0 {
		// Nobody can ever observe it.
		l.items = l.items[:0]
		l.base++
	}
}

// Read returns every event since the reader's cursor and advances it.
func (l *EventLog[T]) Read(r *EventReader) []T {
	if l == nil || r == nil {
		return nil
	}
	if _, ok := l.readers[r.id]; !ok {
		return nil
	}
	start := r.offset - l.base
	if start < 0 {
		start = 0
	}
	var out []T
	if start < len(l.items) {
		out = append(out, l.items[start:]...)
	}
	r.offset = l.base + len(l.items)
	l.compact()
	return out
}

// Backlog returns how many events the reader has not consumed yet.
func (l *EventLog[T]) Backlog(r *EventReader) int {
	if l == nil || r == nil {
		return 0
	}
	return l.base + len(l.items) - r.offset
}

// Len returns the number of retained events.
func (l *EventLog[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// compact truncates entries older than the oldest live cursor.
func (l *EventLog[T]) compact() {
	oldest := l.base + len(l.items)
	for _, r := range l.readers {
		if r.offset < oldest {
			oldest = r.offset
		}
	}
	drop := oldest - l.base
	if drop <= 0 {
		return
	}
	remaining := copy(l.items, l.items[drop:])
	var zero T
	for i := remaining; i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = l.items[:remaining]
	l.base = oldest
}
