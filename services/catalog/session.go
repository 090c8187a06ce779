package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"bompick/models"
)

// fetchTask is one upstream discover request: a single page of a single media
// kind on a single platform.
type fetchTask struct {
	platform   models.Platform
	providerID int
	kind       models.MediaKind
	page       int
}

// Snapshot is the pipeline state a session publishes to clients. Revision
// increments on every publication so consumers can detect dataset changes
// without diffing contents.
type Snapshot struct {
	Contents      []models.Content `json:"contents"`
	IsLoading     bool             `json:"isLoading"`
	IsLoadingMore bool             `json:"isLoadingMore"`
	Error         string           `json:"error,omitempty"`
	Revision      int              `json:"revision"`
}

// Session is one fetch of the whole catalog. The worklist runs in two phases:
// the primary platforms publish a fast first dataset, the secondary platforms
// merge in behind it. Individual request failures are logged and swallowed;
// the session only errors when every request failed.
//
// The accumulator is owned by the session goroutine alone; concurrent request
// completions hand their pages back to it and all merging happens serially.
type Session struct {
	svc    *Service
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	snap Snapshot
	acc  *accumulator
}

func newSession(parent context.Context, svc *Service) *Session {
	ctx, cancel := context.WithCancel(parent)
	// The initial snapshot carries the service's current revision, not a fresh
	// one: consumers holding a replaced session's final dataset keep it until
	// this session actually publishes something.
	return &Session{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		snap:   Snapshot{Contents: []models.Content{}, IsLoading: true, Revision: int(svc.rev.Load())},
		acc:    newAccumulator(),
	}
}

// Snapshot returns the last published state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	return snap
}

// Cancel abandons the session. In-flight requests may still resolve but
// nothing further is published.
func (s *Session) Cancel() {
	s.cancel()
}

// Done is closed when the session goroutine has finished.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// publish applies update to the snapshot unless the session was abandoned.
// The cancellation check is cooperative: it runs immediately before every
// state change, per phase, not per in-flight request. Revisions come from the
// service-wide counter so they stay monotonic across refreshes.
func (s *Session) publish(update func(*Snapshot)) bool {
	if s.ctx.Err() != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.snap)
	s.snap.Revision = int(s.svc.rev.Add(1))
	return true
}

func (s *Session) run() {
	defer close(s.done)
	defer s.cancel()

	primary, secondary := s.svc.buildWorklist()

	okPrimary := s.mergeBatch(s.fetchBatch(primary))
	if s.ctx.Err() != nil {
		return
	}
	if len(secondary) == 0 {
		s.finish(okPrimary, len(primary))
		return
	}

	contents := s.acc.snapshot()
	s.publish(func(snap *Snapshot) {
		snap.Contents = contents
		snap.IsLoading = false
		snap.IsLoadingMore = true
	})

	okSecondary := s.mergeBatch(s.fetchBatch(secondary))
	if s.ctx.Err() != nil {
		return
	}
	s.finish(okPrimary+okSecondary, len(primary)+len(secondary))
}

// finish publishes the terminal snapshot. A session that got nothing from any
// request surfaces a single user-facing error; any partial success is just a
// smaller dataset.
func (s *Session) finish(succeeded, total int) {
	if succeeded == 0 && total > 0 {
		log.Printf("[catalog] session failed: all %d requests errored", total)
		s.publish(func(snap *Snapshot) {
			snap.Contents = []models.Content{}
			snap.IsLoading = false
			snap.IsLoadingMore = false
			snap.Error = "failed to load catalog data"
		})
		return
	}
	contents := s.acc.snapshot()
	log.Printf("[catalog] session complete: %d/%d requests ok, %d titles", succeeded, total, len(contents))
	s.publish(func(snap *Snapshot) {
		snap.Contents = contents
		snap.IsLoading = false
		snap.IsLoadingMore = false
		snap.Error = ""
	})
}

type taskResult struct {
	task fetchTask
	page *tmdbListPage
	err  error
}

// fetchBatch runs one phase of the worklist with bounded fan-out. Each slot in
// the result slice belongs to exactly one goroutine.
func (s *Session) fetchBatch(tasks []fetchTask) []taskResult {
	p := pool.New().WithMaxGoroutines(s.svc.maxConcurrent)
	results := make([]taskResult, len(tasks))
	for i, task := range tasks {
		i, task := i, task
		p.Go(func() {
			page, err := s.svc.client.discover(s.ctx, task.kind, task.providerID, task.page)
			results[i] = taskResult{task: task, page: page, err: err}
		})
	}
	p.Wait()
	return results
}

// mergeBatch folds one phase's results into the accumulator, serially, and
// returns how many requests succeeded. Failed requests contribute nothing.
func (s *Session) mergeBatch(results []taskResult) int {
	succeeded := 0
	for _, res := range results {
		if res.err != nil {
			log.Printf("[catalog] %s %s page %d failed: %v", res.task.platform, res.task.kind, res.task.page, res.err)
			continue
		}
		succeeded++
		for _, item := range res.page.Results {
			s.acc.add(transformItem(item, res.task.kind, []models.Platform{res.task.platform}, s.svc.defaultCountry))
		}
	}
	return succeeded
}
