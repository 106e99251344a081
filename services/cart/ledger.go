package cart

import (
	"sync"
)

type Listener func(Snapshot)

type subscription struct {
	id       int
	listener Listener
}

// Ledger is the single owner of the cart of a session. State only changes through its
// operations; listeners are notified after every change.
type Ledger struct {
	sync.Mutex
	state         Snapshot
	subscriptions []subscription
	nextID        int
}

func NewLedger() *Ledger {
	return &Ledger{
		state: newSnapshot(nil),
	}
}

func (l *Ledger) AddItem(item Item) {
	l.apply(func(s Snapshot) Snapshot { return s.AddItem(item) })
}

// IncreaseQuantity is a no-op for an unknown uid.
func (l *Ledger) IncreaseQuantity(uid string) {
	l.apply(func(s Snapshot) Snapshot { return s.IncreaseQuantity(uid) })
}

// DecreaseQuantity removes the line when its quantity is 1. No-op for an unknown uid.
func (l *Ledger) DecreaseQuantity(uid string) {
	l.apply(func(s Snapshot) Snapshot { return s.DecreaseQuantity(uid) })
}

func (l *Ledger) RemoveItem(uid string) {
	l.apply(func(s Snapshot) Snapshot { return s.RemoveItem(uid) })
}

// RemoveOrdered removes what was checked out, keeping changes made in the meantime.
func (l *Ledger) RemoveOrdered(ordered []LineItem) {
	l.apply(func(s Snapshot) Snapshot { return s.RemoveOrdered(ordered) })
}

func (l *Ledger) Clear() {
	l.apply(func(s Snapshot) Snapshot { return s.Clear() })
}

func (l *Ledger) Snapshot() Snapshot {
	l.Lock()
	defer l.Unlock()

	return Snapshot{
		Items:         append([]LineItem{}, l.state.Items...),
		TotalQuantity: l.state.TotalQuantity,
		TotalAmount:   l.state.TotalAmount,
	}
}

func (l *Ledger) Items() []LineItem {
	return l.Snapshot().Items
}

func (l *Ledger) TotalQuantity() int {
	l.Lock()
	defer l.Unlock()

	return l.state.TotalQuantity
}

func (l *Ledger) TotalAmount() int64 {
	l.Lock()
	defer l.Unlock()

	return l.state.TotalAmount
}

// Subscribe registers a listener that receives the new state after every change. The
// returned func removes the listener again.
func (l *Ledger) Subscribe(listener Listener) func() {
	l.Lock()
	defer l.Unlock()

	l.nextID++
	id := l.nextID
	l.subscriptions = append(l.subscriptions, subscription{id: id, listener: listener})

	return func() {
		l.Lock()
		defer l.Unlock()

		for i, s := range l.subscriptions {
			if s.id == id {
				l.subscriptions = append(l.subscriptions[:i], l.subscriptions[i+1:]...)
				return
			}
		}
	}
}

func (l *Ledger) apply(mutation func(Snapshot) Snapshot) {
	l.Lock()
	before := l.state
	l.state = mutation(before)
	changed := !sameState(before, l.state)
	listeners := make([]Listener, 0, len(l.subscriptions))
	for _, s := range l.subscriptions {
		listeners = append(listeners, s.listener)
	}
	after := l.state
	l.Unlock()

	if !changed {
		return
	}
	for _, listener := range listeners {
		listener(Snapshot{
			Items:         append([]LineItem{}, after.Items...),
			TotalQuantity: after.TotalQuantity,
			TotalAmount:   after.TotalAmount,
		})
	}
}

func sameState(a, b Snapshot) bool {
	if a.TotalQuantity != b.TotalQuantity || a.TotalAmount != b.TotalAmount || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			return false
		}
	}
	return true
}
