package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/boomrig/input"
)

// keyboardSource polls ebiten once per tick and feeds the translator.
type keyboardSource struct {
	translator *input.Translator
	pressed    []ebiten.Key
	released   []ebiten.Key
}

func newKeyboardSource(t *input.Translator) *keyboardSource {
	return &keyboardSource{translator: t}
}

func (k *keyboardSource) SetTranslator(t *input.Translator) {
	k.translator = t
}

func (k *keyboardSource) Poll(sink input.Sink) {
	if sink == nil {
		return
	}
	k.pressed = inpututil.AppendJustPressedKeys(k.pressed[:0])
	k.released = inpututil.AppendJustReleasedKeys(k.released[:0])

	x, y := ebiten.CursorPosition()
	k.translator.Translate(sink, keyNames(k.pressed), keyNames(k.released), float64(x), float64(y))
}

func keyNames(keys []ebiten.Key) []string {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.String()
	}
	return names
}
