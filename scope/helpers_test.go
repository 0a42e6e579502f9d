package scope

import (
	"sort"
	"sync"
	"time"

	"chronoscope/timeutil"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

func clock() func() time.Time {
	return func() time.Time { return fixedNow }
}

type change struct {
	Range timeutil.TimeRange
	Meta  ChangeMeta
}

type recorder struct {
	mu      sync.Mutex
	changes []change
}

func (r *recorder) OnChange(tr timeutil.TimeRange, meta ChangeMeta) {
	r.mu.Lock()
	r.changes = append(r.changes, change{Range: tr, Meta: meta})
	r.mu.Unlock()
}

func (r *recorder) All() []change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]change(nil), r.changes...)
}

func (r *recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

// manualScheduler runs jobs only when Advance moves its virtual clock.
type manualScheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	nextID  int
	jobs    map[int]*manualJob
}

type manualJob struct {
	every time.Duration
	next  time.Duration
	fn    func()
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{jobs: make(map[int]*manualJob)}
}

func (s *manualScheduler) Every(d time.Duration, job func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.jobs[id] = &manualJob{every: d, next: s.elapsed + d, fn: job}
	return func() {
		s.mu.Lock()
		delete(s.jobs, id)
		s.mu.Unlock()
	}
}

func (s *manualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Advance moves the clock forward by d, running due jobs in order.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.elapsed + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var due *manualJob
		ids := make([]int, 0, len(s.jobs))
		for id := range s.jobs {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			j := s.jobs[id]
			if j.next <= target && (due == nil || j.next < due.next) {
				due = j
			}
		}
		if due == nil {
			s.elapsed = target
			s.mu.Unlock()
			return
		}
		s.elapsed = due.next
		due.next += due.every
		fn := due.fn
		s.mu.Unlock()

		fn()
	}
}
