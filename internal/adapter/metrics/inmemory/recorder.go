package inmemory

import "sync"

// OpSnapshot is one operation's outcome counters.
type OpSnapshot struct {
	Total        uint64            `json:"total"`
	Success      uint64            `json:"success"`
	Conflict     uint64            `json:"conflict"`
	Failure      uint64            `json:"failure"`
	ByResultCode map[string]uint64 `json:"by_result_code"`
}

type Snapshot struct {
	Ops map[string]OpSnapshot `json:"ops"`
}

type opCounters struct {
	success  uint64
	conflict uint64
	failure  uint64
	byResult map[string]uint64
}

// Recorder keeps per-operation outcome counters in process memory.
type Recorder struct {
	mu  sync.Mutex
	ops map[string]*opCounters
}

func NewRecorder() *Recorder {
	return &Recorder{
		ops: map[string]*opCounters{},
	}
}

func (r *Recorder) RecordSuccess(op, resultCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.counters(op)
	c.success++
	c.byResult[resultCode]++
}

func (r *Recorder) RecordConflict(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters(op).conflict++
}

func (r *Recorder) RecordFailure(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters(op).failure++
}

func (r *Recorder) counters(op string) *opCounters {
	c, ok := r.ops[op]
	if !ok {
		c = &opCounters{byResult: map[string]uint64{}}
		r.ops[op] = c
	}
	return c
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{Ops: make(map[string]OpSnapshot, len(r.ops))}
	for op, c := range r.ops {
		s := OpSnapshot{
			Success:      c.success,
			Conflict:     c.conflict,
			Failure:      c.failure,
			Total:        c.success + c.conflict + c.failure,
			ByResultCode: make(map[string]uint64, len(c.byResult)),
		}
		for k, v := range c.byResult {
			s.ByResultCode[k] = v
		}
		out.Ops[op] = s
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
