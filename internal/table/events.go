package table

// Event types sent to subscribers.
const (
	EventState = "state"
	EventTick  = "tick"
)

const subscriberBuffer = 16

// Event is a state change or countdown tick.
type Event struct {
	Type      string    `json:"type"`
	State     *Snapshot `json:"state,omitempty"`
	Remaining int       `json:"remaining,omitempty"`
}

// Subscribe returns a channel of events and a cancel func. Slow subscribers
// miss events rather than block the table. The channel is closed on cancel or
// when the table closes.
func (t *Table) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if _, ok := t.subs[ch]; ok {
			delete(t.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (t *Table) publishLocked(ev Event) {
	for ch := range t.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
