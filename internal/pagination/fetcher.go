// Package pagination keeps one page of a remote collection in memory and
// moves it forward, backward or to an arbitrary page.
package pagination

import (
	"context"
	"fmt"
	"sync"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/metrics"
	"internmatch-client/internal/models"
)

// FetchFunc loads one page. perPage may be 0 to let the service choose.
type FetchFunc[T any] func(ctx context.Context, page, perPage int) (models.Page[T], error)

// IDFunc identifies an item for local removal.
type IDFunc[T any] func(item T) int

// DeleteFunc deletes one item remotely.
type DeleteFunc func(ctx context.Context) error

// State is a snapshot of the fetcher.
type State[T any] struct {
	Page    models.Page[T]
	Loading bool
	// Err is the last failure; it is cleared by the next successful fetch.
	Err error
	// Loaded is false until the first fetch succeeds.
	Loaded bool
}

// Fetcher holds the current page. Every fetch carries a sequence number and
// only the latest one may commit; starting a fetch cancels the one in flight.
type Fetcher[T any] struct {
	name    string
	fetch   FetchFunc[T]
	id      IDFunc[T]
	perPage int
	logger  logger.Logger

	mu      sync.Mutex
	page    models.Page[T]
	loading bool
	loaded  bool
	err     error
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
}

type Option func(*options)

type options struct {
	name    string
	perPage int
	logger  logger.Logger
}

// WithName sets the collection label used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithPerPage(n int) Option {
	return func(o *options) { o.perPage = n }
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

func New[T any](fetch FetchFunc[T], id IDFunc[T], opts ...Option) *Fetcher[T] {
	o := options{name: "collection"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Fetcher[T]{
		name:    o.name,
		fetch:   fetch,
		id:      id,
		perPage: o.perPage,
		logger:  logger.OrNop(o.logger).WithFields(map[string]interface{}{"collection": o.name}),
		page:    models.EmptyPage[T](),
	}
}

type request struct {
	seq    uint64
	page   int
	ctx    context.Context
	cancel context.CancelFunc
}

// Load fetches page and replaces the current page with the result. Once a
// page has loaded, pages past the known last page are refused without a
// request. A superseded or closed fetch returns a STALE_RESPONSE error and
// leaves the state alone.
func (f *Fetcher[T]) Load(ctx context.Context, page int) error {
	if page < 1 {
		return errors.NewInvalidTransitionError(fmt.Sprintf("page %d is before the first page", page))
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return errors.NewInvalidTransitionError("view closed")
	}
	if f.loaded && page > f.page.TotalPages {
		total := f.page.TotalPages
		f.mu.Unlock()
		return errors.NewInvalidTransitionError(fmt.Sprintf("page %d is outside 1..%d", page, total))
	}
	req := f.beginLocked(ctx, page)
	f.mu.Unlock()
	return f.run(req)
}

// Refresh re-fetches the current page.
func (f *Fetcher[T]) Refresh(ctx context.Context) error {
	f.mu.Lock()
	page := f.page.Page
	f.mu.Unlock()
	return f.Load(ctx, page)
}

// Next moves forward one page. It does nothing on the last page or while a
// fetch is in flight.
func (f *Fetcher[T]) Next(ctx context.Context) error {
	return f.step(ctx, +1)
}

// Previous moves back one page. It does nothing on the first page or while
// a fetch is in flight.
func (f *Fetcher[T]) Previous(ctx context.Context) error {
	return f.step(ctx, -1)
}

func (f *Fetcher[T]) step(ctx context.Context, delta int) error {
	f.mu.Lock()
	target := f.page.Page + delta
	if f.closed || f.loading || target < 1 || target > f.page.TotalPages {
		f.mu.Unlock()
		return nil
	}
	req := f.beginLocked(ctx, target)
	f.mu.Unlock()
	return f.run(req)
}

// GoTo jumps to page. Pages outside 1..TotalPages are refused without a
// request. Unlike Next and Previous it supersedes a fetch in flight.
func (f *Fetcher[T]) GoTo(ctx context.Context, page int) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return errors.NewInvalidTransitionError("view closed")
	}
	if page < 1 || page > f.page.TotalPages {
		total := f.page.TotalPages
		f.mu.Unlock()
		return errors.NewInvalidTransitionError(fmt.Sprintf("page %d is outside 1..%d", page, total))
	}
	req := f.beginLocked(ctx, page)
	f.mu.Unlock()
	return f.run(req)
}

// Remove deletes the item with id remotely, then drops it from the current
// page and re-fetches. The total is decremented only if the item was on the
// page. When the current page no longer exists the fetch moves back to the
// new last page. Nothing local changes unless del succeeds.
func (f *Fetcher[T]) Remove(ctx context.Context, id int, del DeleteFunc) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return errors.NewInvalidTransitionError("view closed")
	}
	f.mu.Unlock()

	if err := del(ctx); err != nil {
		f.mu.Lock()
		if !f.closed {
			f.err = err
		}
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	kept := make([]T, 0, len(f.page.Items))
	for _, item := range f.page.Items {
		if f.id(item) != id {
			kept = append(kept, item)
		}
	}
	// The total only moves when the item was actually on this page.
	if len(kept) < len(f.page.Items) && f.page.TotalCount > 0 {
		f.page.TotalCount--
	}
	f.page.Items = kept
	target := f.page.Page
	if last := f.lastPageLocked(); target > last {
		target = last
	}
	req := f.beginLocked(ctx, target)
	f.mu.Unlock()

	f.logger.Debug("item removed, refetching", map[string]interface{}{"id": id, "page": target})
	return f.run(req)
}

// lastPageLocked estimates the last page after a local removal.
func (f *Fetcher[T]) lastPageLocked() int {
	if f.perPage > 0 {
		last := (f.page.TotalCount + f.perPage - 1) / f.perPage
		if last < 1 {
			last = 1
		}
		return last
	}
	if len(f.page.Items) == 0 && f.page.Page > 1 {
		return f.page.Page - 1
	}
	return f.page.TotalPages
}

// Close detaches the fetcher from its view. The fetch in flight is
// cancelled and no later response changes the state.
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.loading = false
}

func (f *Fetcher[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.page
	p.Items = append([]T(nil), f.page.Items...)
	return State[T]{Page: p, Loading: f.loading, Err: f.err, Loaded: f.loaded}
}

func (f *Fetcher[T]) PerPage() int {
	return f.perPage
}

func (f *Fetcher[T]) beginLocked(ctx context.Context, page int) request {
	if f.cancel != nil {
		f.cancel()
	}
	f.seq++
	reqCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.loading = true
	return request{seq: f.seq, page: page, ctx: reqCtx, cancel: cancel}
}

func (f *Fetcher[T]) run(req request) error {
	defer req.cancel()

	result, err := f.fetch(req.ctx, req.page, f.perPage)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		metrics.PageResponsesDiscarded.WithLabelValues(f.name, "closed").Inc()
		return errors.NewStaleResponseError(fmt.Sprintf("%s page %d arrived after close", f.name, req.page))
	}
	if req.seq != f.seq {
		metrics.PageResponsesDiscarded.WithLabelValues(f.name, "superseded").Inc()
		return errors.NewStaleResponseError(fmt.Sprintf("%s page %d superseded", f.name, req.page))
	}

	f.loading = false
	f.cancel = nil
	if err != nil {
		f.err = err
		f.logger.Warn("page fetch failed", map[string]interface{}{
			"page":      req.page,
			"errorCode": string(errors.CodeOf(err)),
		})
		return err
	}

	if result.Items == nil {
		result.Items = []T{}
	}
	f.page = result
	f.err = nil
	f.loaded = true
	return nil
}
