package events

// Record is an emitted event with its sequence number
type Record struct {
	Seq   uint64
	Event TradeEvent
}

// Subscriber receives every emitted event, synchronously and in order
type Subscriber func(Record)

// Emitter assigns sequence numbers, keeps a bounded history and fans events
// out to subscribers in registration order. It belongs to one game session
// and is not safe for concurrent use.
type Emitter struct {
	seq         uint64
	history     []Record
	limit       int
	subscribers []Subscriber
}

// DefaultHistoryLimit bounds the retained event history
const DefaultHistoryLimit = 256

// NewEmitter creates an emitter retaining at most limit records (<= 0 uses the default)
func NewEmitter(limit int) *Emitter {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Emitter{limit: limit}
}

// Subscribe registers a subscriber
func (e *Emitter) Subscribe(s Subscriber) {
	e.subscribers = append(e.subscribers, s)
}

// Emit records the event and delivers it to every subscriber before returning.
// Subscribers added during delivery first see the next event.
func (e *Emitter) Emit(ev TradeEvent) Record {
	e.seq++
	rec := Record{Seq: e.seq, Event: ev}
	e.history = append(e.history, rec)
	if over := len(e.history) - e.limit; over > 0 {
		e.history = append(e.history[:0:0], e.history[over:]...)
	}

	for _, s := range e.subscribers {
		s(rec)
	}
	return rec
}

// History returns retained records, oldest first
func (e *Emitter) History() []Record {
	out := make([]Record, len(e.history))
	copy(out, e.history)
	return out
}

// Seq returns the sequence number of the last emitted event
func (e *Emitter) Seq() uint64 {
	return e.seq
}

// Reset restores the sequence counter after a load; history is cleared
func (e *Emitter) Reset(seq uint64) {
	e.seq = seq
	e.history = nil
}
