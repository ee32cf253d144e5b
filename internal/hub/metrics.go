package hub

import "sync/atomic"

// Metrics counts hub activity for the admin surface. All counters are
// atomic so the HTTP handlers can read them while the hub loop runs.
type Metrics struct {
	MessagesHandled int64
	JoinsAccepted   int64
	JoinsRejected   int64
	Ticks           int64
	BroadcastsSent  int64
	SendsSkipped    int64
	Malformed       int64
}

func (m *Metrics) IncHandled()        { atomic.AddInt64(&m.MessagesHandled, 1) }
func (m *Metrics) IncAccepted()       { atomic.AddInt64(&m.JoinsAccepted, 1) }
func (m *Metrics) IncRejected()       { atomic.AddInt64(&m.JoinsRejected, 1) }
func (m *Metrics) IncTick()           { atomic.AddInt64(&m.Ticks, 1) }
func (m *Metrics) IncBroadcast()      { atomic.AddInt64(&m.BroadcastsSent, 1) }
func (m *Metrics) AddSkipped(n int64) { atomic.AddInt64(&m.SendsSkipped, n) }
func (m *Metrics) IncMalformed()      { atomic.AddInt64(&m.Malformed, 1) }

// Snapshot returns a read-only copy for JSON output.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"messages_handled": atomic.LoadInt64(&m.MessagesHandled),
		"joins_accepted":   atomic.LoadInt64(&m.JoinsAccepted),
		"joins_rejected":   atomic.LoadInt64(&m.JoinsRejected),
		"ticks":            atomic.LoadInt64(&m.Ticks),
		"broadcasts_sent":  atomic.LoadInt64(&m.BroadcastsSent),
		"sends_skipped":    atomic.LoadInt64(&m.SendsSkipped),
		"malformed":        atomic.LoadInt64(&m.Malformed),
	}
}
