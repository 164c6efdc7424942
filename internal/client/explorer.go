package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

// State is the load state of an Explorer.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// ErrorMessage is shown for every failed load. Server detail is discarded.
const ErrorMessage = "Failed to load recipes"

// DefaultLimit is the page size an Explorer starts with.
const DefaultLimit = 15

// DefaultDebounce delays loads triggered by filter edits.
const DefaultDebounce = 300 * time.Millisecond

// AllowedLimits are the page sizes a user may pick.
var AllowedLimits = []int{15, 20, 25, 30, 40, 50}

// ErrInvalidLimit is returned by SetLimit for sizes outside AllowedLimits.
var ErrInvalidLimit = errors.New("limit is not one of the allowed page sizes")

// ErrUnknownFilter is returned by SetFilter for keys other than the five
// filter query parameters.
var ErrUnknownFilter = errors.New("unknown filter")

var errEmptyResponse = errors.New("empty response")

// Fetcher is the API surface an Explorer loads from. *Client implements it.
type Fetcher interface {
	List(ctx context.Context, page, limit int) (*model.Envelope, error)
	Search(ctx context.Context, f query.FilterInput, page, limit int) (*model.Envelope, error)
}

// Snapshot is an immutable copy of the explorer state.
type Snapshot struct {
	State   State
	Filters query.FilterInput
	Page    int
	Limit   int
	Total   int64
	Data    []model.Recipe
	Error   string
}

// TotalPages is never less than one.
func (s Snapshot) TotalPages() int {
	return query.TotalPages(s.Total, s.Limit)
}

// HasActiveFilters reports whether loads go through search.
func (s Snapshot) HasActiveFilters() bool {
	return s.Filters.Active()
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithDebounce sets the delay applied to filter edits. Zero loads immediately.
func WithDebounce(d time.Duration) Option {
	return func(e *Explorer) { e.debounce = d }
}

// WithLogger sets the logger used for failed and discarded loads.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Explorer) { e.log = log }
}

// Explorer holds filter, paging and result state for a recipe browser.
// Every load carries a sequence number and only the response to the most
// recent load is applied. Subscribers are called from a single goroutine,
// one snapshot at a time, in the order the transitions were applied.
type Explorer struct {
	fetcher  Fetcher
	debounce time.Duration
	log      logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	filters  query.FilterInput
	page     int
	limit    int
	state    State
	data     []model.Recipe
	total    int64
	errMsg   string
	seq      uint64
	timer    *time.Timer
	timerGen uint64
	closed   bool
	subs     map[int]func(Snapshot)
	nextSub  int
	pending  []Snapshot

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewExplorer creates an idle explorer on page 1 with the default limit.
// Nothing is fetched until Load or a setter is called.
func NewExplorer(f Fetcher, opts ...Option) *Explorer {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	ctx, cancel := context.WithCancel(context.Background())
	e := &Explorer{
		fetcher:  f,
		debounce: DefaultDebounce,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		page:     1,
		limit:    DefaultLimit,
		state:    StateIdle,
		data:     []model.Recipe{},
		subs:     make(map[int]func(Snapshot)),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.dispatch()
	return e
}

// Subscribe registers fn to receive a snapshot after every applied
// transition. The returned function removes the subscription.
func (e *Explorer) Subscribe(fn func(Snapshot)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Snapshot returns the current state.
func (e *Explorer) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// HasActiveFilters reports whether any filter is non-blank.
func (e *Explorer) HasActiveFilters() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters.Active()
}

// Load fetches the current page immediately.
func (e *Explorer) Load() {
	e.update(func() time.Duration { return 0 })
}

// SetFilters replaces all filters, returns to page 1 and schedules a
// debounced load.
func (e *Explorer) SetFilters(f query.FilterInput) {
	e.update(func() time.Duration {
		e.filters = f
		e.page = 1
		return e.debounce
	})
}

// SetFilter edits one filter, keyed by its query parameter name (title,
// cuisine, rating, total_time or calories), and otherwise behaves like
// SetFilters.
func (e *Explorer) SetFilter(key, value string) error {
	var set func(*query.FilterInput)
	switch key {
	case "title":
		set = func(f *query.FilterInput) { f.Title = value }
	case "cuisine":
		set = func(f *query.FilterInput) { f.Cuisine = value }
	case "rating":
		set = func(f *query.FilterInput) { f.Rating = value }
	case "total_time":
		set = func(f *query.FilterInput) { f.TotalTime = value }
	case "calories":
		set = func(f *query.FilterInput) { f.Calories = value }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}

	e.update(func() time.Duration {
		set(&e.filters)
		e.page = 1
		return e.debounce
	})
	return nil
}

// ClearFilters empties every filter and returns to page 1.
func (e *Explorer) ClearFilters() {
	e.update(func() time.Duration {
		e.filters = query.FilterInput{}
		e.page = 1
		return 0
	})
}

// SetPage moves to page p (at least 1) and loads it.
func (e *Explorer) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	e.update(func() time.Duration {
		e.page = p
		return 0
	})
}

// NextPage advances one page unless already on the last one.
func (e *Explorer) NextPage() {
	e.mu.Lock()
	p := e.page + 1
	last := e.snapshotLocked().TotalPages()
	e.mu.Unlock()
	if p <= last {
		e.SetPage(p)
	}
}

// PrevPage goes back one page unless already on the first one.
func (e *Explorer) PrevPage() {
	e.mu.Lock()
	p := e.page - 1
	e.mu.Unlock()
	if p >= 1 {
		e.SetPage(p)
	}
}

// SetLimit changes the page size, returns to page 1 and loads.
func (e *Explorer) SetLimit(limit int) error {
	allowed := false
	for _, l := range AllowedLimits {
		if l == limit {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidLimit
	}
	e.update(func() time.Duration {
		e.limit = limit
		e.page = 1
		return 0
	})
	return nil
}

// Close cancels pending and in-flight loads, waits for them to finish and
// delivers any snapshots still queued for subscribers.
func (e *Explorer) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		<-e.done
		return
	}
	e.closed = true
	e.stopTimerLocked()
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
	close(e.stop)
	<-e.done
}

// update applies mutate under the lock, then starts or schedules a load
// after the returned delay.
func (e *Explorer) update(mutate func() time.Duration) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	delay := mutate()
	e.stopTimerLocked()
	if delay > 0 {
		// The edit is accepted now, so anything in flight is already stale.
		e.seq++
		e.state = StateLoading
		e.errMsg = ""
		e.timerGen++
		gen := e.timerGen
		e.timer = time.AfterFunc(delay, func() { e.fire(gen) })
	} else {
		e.startLocked()
	}
	e.publishAndUnlock()
}

func (e *Explorer) fire(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.timerGen {
		e.mu.Unlock()
		return
	}
	e.timer = nil
	e.startLocked()
	e.publishAndUnlock()
}

func (e *Explorer) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.timerGen++
}

func (e *Explorer) startLocked() {
	e.seq++
	seq := e.seq
	e.state = StateLoading
	e.errMsg = ""

	filters, page, limit := e.filters, e.page, e.limit
	e.wg.Add(1)
	go e.fetch(seq, filters, page, limit)
}

func (e *Explorer) fetch(seq uint64, filters query.FilterInput, page, limit int) {
	defer e.wg.Done()

	var (
		env *model.Envelope
		err error
	)
	if filters.Active() {
		env, err = e.fetcher.Search(e.ctx, filters, page, limit)
	} else {
		env, err = e.fetcher.List(e.ctx, page, limit)
	}

	e.mu.Lock()
	if e.closed || seq != e.seq {
		e.mu.Unlock()
		e.log.WithField("seq", seq).Debug("Discarding stale response")
		return
	}

	if err == nil && env == nil {
		err = errEmptyResponse
	}
	if err != nil {
		e.log.WithError(err).Warn("Failed to load recipes")
		e.state = StateError
		e.errMsg = ErrorMessage
		e.data = []model.Recipe{}
		e.total = 0
	} else {
		e.state = StateLoaded
		e.data = env.Data
		if e.data == nil {
			e.data = []model.Recipe{}
		}
		e.total = env.Total
	}
	e.publishAndUnlock()
}

func (e *Explorer) snapshotLocked() Snapshot {
	data := make([]model.Recipe, len(e.data))
	copy(data, e.data)
	return Snapshot{
		State:   e.state,
		Filters: e.filters,
		Page:    e.page,
		Limit:   e.limit,
		Total:   e.total,
		Data:    data,
		Error:   e.errMsg,
	}
}

// publishAndUnlock queues a snapshot for the dispatcher and releases the lock.
func (e *Explorer) publishAndUnlock() {
	e.pending = append(e.pending, e.snapshotLocked())
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Explorer) dispatch() {
	defer close(e.done)
	for {
		select {
		case <-e.wake:
			e.deliver()
		case <-e.stop:
			e.deliver()
			return
		}
	}
}

// deliver hands every queued snapshot to the current subscribers, oldest first.
func (e *Explorer) deliver() {
	for {
		e.mu.Lock()
		batch := e.pending
		e.pending = nil
		subs := make([]func(Snapshot), 0, len(e.subs))
		for _, fn := range e.subs {
			subs = append(subs, fn)
		}
		e.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, snap := range batch {
			for _, fn := range subs {
				fn(snap)
			}
		}
	}
}
