package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrNoBindings = errors.New("input: no bindings")

// Sink receives events in order. *ecs.EventLog[Event] satisfies it.
type Sink interface {
	Push(Event)
}

// Bindings maps key names to the actions they trigger. Key names are
// compared case-insensitively.
type Bindings struct {
	keys map[string][]string
}

// NewBindings inverts an action -> keys table.
func NewBindings(actions map[string][]string) (*Bindings, error) {
	if len(actions) == 0 {
		return nil, ErrNoBindings
	}
	b := &Bindings{keys: make(map[string][]string)}
	names := make([]string, 0, len(actions))
	for action := range actions {
		names = append(names, action)
	}
	sort.Strings(names)
	for _, action := range names {
		if action == "" {
			return nil, fmt.Errorf("input: empty action name")
		}
		for _, key := range actions[action] {
			k := normalizeKey(key)
			if k == "" {
				return nil, fmt.Errorf("input: action %s: empty key name", action)
			}
			b.keys[k] = append(b.keys[k], action)
		}
	}
	return b, nil
}

// Actions returns the actions bound to key, in action-name order.
func (b *Bindings) Actions(key string) []string {
	if b == nil {
		return nil
	}
	return b.keys[normalizeKey(key)]
}

// Keys returns every bound key name.
func (b *Bindings) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.keys))
	for k := range b.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Translator converts per-tick device snapshots into events.
type Translator struct {
	bindings *Bindings
	lastX    float64
	lastY    float64
	primed   bool
}

func NewTranslator(b *Bindings) *Translator {
	return &Translator{bindings: b}
}

// Translate pushes release events, then press events, then at most one
// mouse-motion event for the cursor delta since the previous call. The first
// call only records the cursor position.
func (t *Translator) Translate(sink Sink, pressed, released []string, cursorX, cursorY float64) {
	if t == nil || sink == nil {
		return
	}
	for _, key := range released {
		for _, action := range t.bindings.Actions(key) {
			sink.Push(ActionReleased(action))
		}
	}
	for _, key := range pressed {
		for _, action := range t.bindings.Actions(key) {
			sink.Push(ActionPressed(action))
		}
	}
	if t.primed {
		dx, dy := cursorX-t.lastX, cursorY-t.lastY
		if dx != 0 || dy != 0 {
			sink.Push(MouseMoved(dx, dy))
		}
	}
	t.lastX, t.lastY = cursorX, cursorY
	t.primed = true
}
