package annotate

import (
	"errors"
	"fmt"

	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/geom"
)

// ErrInvalidIndex is returned when Replace or Remove target a position that
// does not exist.
var ErrInvalidIndex = errors.New("invalid operation index")

// TextMeasurer reports the rendered extent of a text annotation.
type TextMeasurer func(Text) fonts.Metrics

// Model is the ordered list of committed operations. Later operations are
// painted over earlier ones.
type Model struct {
	ops     []Operation
	measure TextMeasurer
}

// Option configures a Model.
type Option func(*Model)

// WithMeasurer replaces the font based text measurement used by
// HitTestText.
func WithMeasurer(fn TextMeasurer) Option { return func(m *Model) { m.measure = fn } }

// NewModel returns an empty model.
func NewModel(opts ...Option) *Model {
	m := &Model{measure: Text.Metrics}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Commit appends op.
func (m *Model) Commit(op Operation) {
	m.ops = append(m.ops, op)
}

// Replace swaps the operation at i for op.
func (m *Model) Replace(i int, op Operation) error {
	if i < 0 || i >= len(m.ops) {
		return fmt.Errorf("replace %d of %d: %w", i, len(m.ops), ErrInvalidIndex)
	}
	m.ops[i] = op
	return nil
}

// Remove deletes the operation at i, keeping the order of the rest.
func (m *Model) Remove(i int) error {
	if i < 0 || i >= len(m.ops) {
		return fmt.Errorf("remove %d of %d: %w", i, len(m.ops), ErrInvalidIndex)
	}
	m.ops = append(m.ops[:i], m.ops[i+1:]...)
	return nil
}

// Len returns the number of committed operations.
func (m *Model) Len() int { return len(m.ops) }

// At returns the operation at i.
func (m *Model) At(i int) (Operation, bool) {
	if i < 0 || i >= len(m.ops) {
		return nil, false
	}
	return m.ops[i], true
}

// TextAt returns the text annotation at i.
func (m *Model) TextAt(i int) (Text, bool) {
	op, ok := m.At(i)
	if !ok {
		return Text{}, false
	}
	t, ok := op.(Text)
	return t, ok
}

// Ops returns a snapshot of the committed operations in paint order.
func (m *Model) Ops() []Operation {
	out := make([]Operation, len(m.ops))
	copy(out, m.ops)
	return out
}

// HitTestText returns the index of the most recently committed text
// annotation whose bounds contain p.
func (m *Model) HitTestText(p geom.PanelPoint) (int, bool) {
	for i := len(m.ops) - 1; i >= 0; i-- {
		t, ok := m.ops[i].(Text)
		if !ok {
			continue
		}
		if t.Bounds(m.measure(t)).Contains(p) {
			return i, true
		}
	}
	return -1, false
}
