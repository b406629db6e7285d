package dag

import (
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// slottedInput implements the Slotted(n) discipline (§4.4): exactly n named
// slots, each either empty or holding one upstream node handle.
type slottedInput struct {
	slots []slottedEntry
}

type slottedEntry struct {
	handle   NodeHandle
	occupied bool
}

func newSlottedInput(n int) *slottedInput {
	return &slottedInput{slots: make([]slottedEntry, n)}
}

func (s *slottedInput) connectSlot(op string, h NodeHandle, slot int) error {
	if slot < 0 || slot >= len(s.slots) {
		return hderr.New(op, hderr.InvalidSlot)
	}
	s.slots[slot] = slottedEntry{handle: h, occupied: true}
	return nil
}

func (s *slottedInput) disconnectSlot(op string, slot int) error {
	if slot < 0 || slot >= len(s.slots) {
		return hderr.New(op, hderr.InvalidSlot)
	}
	s.slots[slot] = slottedEntry{}
	return nil
}

func (s *slottedInput) disconnectHandle(h NodeHandle) {
	for i := range s.slots {
		if s.slots[i].occupied && s.slots[i].handle == h {
			s.slots[i] = slottedEntry{}
		}
	}
}

func (s *slottedInput) isSlotOccupied(op string, slot int) (bool, error) {
	if slot < 0 || slot >= len(s.slots) {
		return false, hderr.New(op, hderr.InvalidSlot)
	}
	return s.slots[slot].occupied, nil
}

func (s *slottedInput) isSatisfied() bool {
	for _, e := range s.slots {
		if !e.occupied {
			return false
		}
	}
	return true
}

func (s *slottedInput) allInputs() []NodeHandle {
	out := make([]NodeHandle, 0, len(s.slots))
	for _, e := range s.slots {
		if e.occupied {
			out = append(out, e.handle)
		}
	}
	return out
}

// multipleInput implements the Multiple(zero_allowed) discipline: an
// unbounded set of upstream handles. Unlike the original source, which
// stored this as a hash set (and so produced a run-order that varied between
// process invocations — SPEC_FULL.md §12), connection order is preserved so
// that the same graph always evaluates its Multiple inputs in the same
// order.
type multipleInput struct {
	order       []NodeHandle
	present     map[NodeHandle]bool
	zeroAllowed bool
}

func newMultipleInput(zeroAllowed bool) *multipleInput {
	return &multipleInput{present: make(map[NodeHandle]bool), zeroAllowed: zeroAllowed}
}

func (m *multipleInput) connect(h NodeHandle) {
	if m.present[h] {
		return
	}
	m.present[h] = true
	m.order = append(m.order, h)
}

func (m *multipleInput) disconnect(h NodeHandle) {
	if !m.present[h] {
		return
	}
	delete(m.present, h)
	for i, v := range m.order {
		if v == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *multipleInput) isSatisfied() bool {
	return m.zeroAllowed || len(m.order) > 0
}

func (m *multipleInput) allInputs() []NodeHandle {
	out := make([]NodeHandle, len(m.order))
	copy(out, m.order)
	return out
}

// inputComponent is the discriminated union of the two input disciplines,
// wrapping whichever one a node's processor type declared.
type inputComponent struct {
	kind     catalog.InputKind
	slotted  *slottedInput
	multiple *multipleInput
}

func newInputComponent(kind catalog.InputKind) *inputComponent {
	ic := &inputComponent{kind: kind}
	if kind.IsSlotted() {
		ic.slotted = newSlottedInput(kind.NumberOfSlots())
	} else {
		ic.multiple = newMultipleInput(kind.ZeroAllowed())
	}
	return ic
}

func (ic *inputComponent) connectSlot(op string, h NodeHandle, slot int) error {
	if ic.slotted == nil {
		return hderr.New(op, hderr.NodeInputTypeMismatch)
	}
	return ic.slotted.connectSlot(op, h, slot)
}

func (ic *inputComponent) connect(h NodeHandle) {
	if ic.multiple != nil {
		ic.multiple.connect(h)
	}
}

func (ic *inputComponent) disconnectSlot(op string, slot int) error {
	if ic.slotted == nil {
		return hderr.New(op, hderr.NodeInputTypeMismatch)
	}
	return ic.slotted.disconnectSlot(op, slot)
}

func (ic *inputComponent) disconnectHandle(h NodeHandle) {
	if ic.slotted != nil {
		ic.slotted.disconnectHandle(h)
		return
	}
	ic.multiple.disconnect(h)
}

func (ic *inputComponent) isSlotOccupied(op string, slot int) (bool, error) {
	if ic.slotted == nil {
		return false, hderr.New(op, hderr.NodeInputTypeMismatch)
	}
	return ic.slotted.isSlotOccupied(op, slot)
}

func (ic *inputComponent) isSatisfied() bool {
	if ic.slotted != nil {
		return ic.slotted.isSatisfied()
	}
	return ic.multiple.isSatisfied()
}

func (ic *inputComponent) allInputs() []NodeHandle {
	if ic.slotted != nil {
		return ic.slotted.allInputs()
	}
	return ic.multiple.allInputs()
}
