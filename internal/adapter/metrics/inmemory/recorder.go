package inmemory

import (
	"maps"
	"sync"
)

type Snapshot struct {
	ApplyTotal    uint64            `json:"apply_total"`
	ApplyFailure  uint64            `json:"apply_failure"`
	ByCategory    map[string]uint64 `json:"by_category"`
	TickTotal     uint64            `json:"tick_total"`
	Expired       uint64            `json:"expired_total"`
	Withdrawals   uint64            `json:"withdrawal_total"`
	ByCraving     map[string]uint64 `json:"by_craving_outcome"`
	StoreFailures uint64            `json:"store_failures"`
}

type Recorder struct {
	mu            sync.Mutex
	applySuccess  uint64
	applyFailure  uint64
	byCategory    map[string]uint64
	ticks         uint64
	expired       uint64
	withdrawals   uint64
	byCraving     map[string]uint64
	storeFailures uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCategory: map[string]uint64{},
		byCraving:  map[string]uint64{},
	}
}

func (r *Recorder) RecordApply(category string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !success {
		r.applyFailure++
		return
	}
	r.applySuccess++
	r.byCategory[category]++
}

func (r *Recorder) RecordTick(expired, withdrawals int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.expired += uint64(expired)
	r.withdrawals += uint64(withdrawals)
}

func (r *Recorder) RecordCraving(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCraving[outcome]++
}

func (r *Recorder) RecordStoreFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeFailures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		ApplyTotal:    r.applySuccess + r.applyFailure,
		ApplyFailure:  r.applyFailure,
		ByCategory:    maps.Clone(r.byCategory),
		TickTotal:     r.ticks,
		Expired:       r.expired,
		Withdrawals:   r.withdrawals,
		ByCraving:     maps.Clone(r.byCraving),
		StoreFailures: r.storeFailures,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
