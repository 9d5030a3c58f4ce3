package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/kubev2v/vehicle-runtime/pkg/task"
)

// Scheduler is the single tick thread that drives every registered task.
// It is constructed once by the executable controller and shared by every
// module executor.
type Scheduler struct {
	tickPeriod time.Duration
	observer   Observer

	mu       sync.Mutex // guards tasks and reporters; the tick thread holds it only to snapshot them
	tasks    []*task.Handle
	reporter map[string]ErrorReporter // owner name -> reporter

	tick      int64
	cancel    chan struct{}
	done      chan struct{}
	once      sync.Once
	startOnce sync.Once
}

// New creates a Scheduler with the given tick period. Pass nil for observer
// to discard diagnostics.
func New(tickPeriod time.Duration, observer Observer) *Scheduler {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Scheduler{
		tickPeriod: tickPeriod,
		observer:   observer,
		reporter:   make(map[string]ErrorReporter),
		cancel:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// RegisterErrorReporter associates an owner module name with the
// ErrorReporter that should receive its tasks' runtime exceptions.
func (s *Scheduler) RegisterErrorReporter(owner string, r ErrorReporter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reporter[owner] = r
}

// AddTask validates and inserts a task at its earliest legal position. It
// is safe to call only before Start or while the tick thread is not
// currently processing a tick — in practice, during a module's Init/Start,
// which the executable controller serializes against the tick thread.
func (s *Scheduler) AddTask(h *task.Handle) error {
	if h.Period < 1 {
		return fmt.Errorf("scheduler: task %q: period must be >= 1 tick, got %d", h.Name, h.Period)
	}
	if h.Offset < 0 || h.Offset >= h.Period {
		return fmt.Errorf("scheduler: task %q: offset %d must be in [0, period=%d)", h.Name, h.Offset, h.Period)
	}
	if h.Budget < 0 {
		return fmt.Errorf("scheduler: task %q: budget must be >= 0", h.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tasks {
		if existing.Owner == h.Owner && existing.Name == h.Name {
			return fmt.Errorf("scheduler: duplicate task %q for owner %q", h.Name, h.Owner)
		}
	}

	pos := s.legalPosition(h)
	s.tasks = append(s.tasks, nil)
	copy(s.tasks[pos+1:], s.tasks[pos:])
	s.tasks[pos] = h
	return nil
}

// legalPosition returns the earliest index at which h may be inserted
// without placing it before any task it must run after — either an owner
// listed in h.RunAfterModules, or a peer task (same owner as h) listed in
// h.RunAfterTasks. Both constraints are checked at search time, making the
// finer peer-task constraint first-class rather than the documented TODO
// in the source this spec was distilled from (see DESIGN.md).
func (s *Scheduler) legalPosition(h *task.Handle) int {
	pos := 0
	for i, existing := range s.tasks {
		if mustPrecede(h, existing) {
			pos = i + 1
		}
	}
	return pos
}

func mustPrecede(h, existing *task.Handle) bool {
	for _, m := range h.RunAfterModules {
		if existing.Owner == m {
			return true
		}
	}
	if existing.Owner == h.Owner {
		for _, p := range h.RunAfterTasks {
			if existing.Name == p {
				return true
			}
		}
	}
	return false
}

// Start launches the tick thread. It returns immediately; the thread runs
// until Stop is called.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() { go s.run() })
}

// Stop signals the tick thread to exit and waits for the current tick (if
// any is in flight) to finish before returning. On a scheduler that was
// never started it returns immediately.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.cancel)
	})
	s.startOnce.Do(func() { close(s.done) })
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.cancel:
			return
		case <-ticker.C:
			s.runTick()
		}
	}
}

func (s *Scheduler) runTick() {
	tick := s.tick
	s.tick++

	start := time.Now()

	s.mu.Lock()
	snapshot := make([]*task.Handle, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.Unlock()

	var executed []string
	for _, h := range snapshot {
		if !h.Eligible(tick) {
			continue
		}
		executed = append(executed, h.Name)
		s.runTask(tick, h)
	}

	s.observer.ObserveTick(tick, executed, time.Since(start))
}

func (s *Scheduler) runTask(tick int64, h *task.Handle) {
	defer func() {
		if rec := recover(); rec != nil {
			s.observer.ObserveTaskPanic(tick, h.Name, h.Owner, rec)
			s.mu.Lock()
			r := s.reporter[h.Owner]
			s.mu.Unlock()
			if r != nil {
				r.ReportTaskError(h.Name, rec)
			}
		}
	}()

	taskStart := time.Now()
	h.Fn(tick)
	elapsed := time.Since(taskStart)

	if h.Budget > 0 && elapsed > h.Budget {
		h.MarkOverrun(taskStart.Add(elapsed))
		s.observer.ObserveBudgetOverrun(tick, h.Name, h.Owner, h.Budget, elapsed)
	}
}

// Tasks returns a snapshot of the current task list in eligibility order,
// for introspection purposes only.
func (s *Scheduler) Tasks() []*task.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*task.Handle, len(s.tasks))
	copy(out, s.tasks)
	return out
}
