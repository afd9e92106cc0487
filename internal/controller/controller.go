// Copyright 2026 The Launchdash Authors
// SPDX-License-Identifier: MIT

// Package controller owns the dashboard's selection state and keeps both
// charts consistent with it. Events are applied one at a time: a site change
// recomputes both charts, a payload change recomputes only the correlation
// chart, and subscribers see each fully recomputed snapshot in order.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/davetashner/launchdash/internal/chart"
	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/pipeline"
	"github.com/davetashner/launchdash/internal/selection"
)

// EventKind names a selection change.
type EventKind string

// Event kinds.
const (
	EventInit           EventKind = "init"
	EventSiteChanged    EventKind = "site_changed"
	EventPayloadChanged EventKind = "payload_changed"
)

// ErrUnknownEvent is returned by Dispatch for an unrecognized event kind.
var ErrUnknownEvent = errors.New("unknown event kind")

// Event is a user-driven change to one selection input.
type Event struct {
	Kind    EventKind       `json:"kind"`
	Site    string          `json:"site,omitempty"`
	Payload selection.Range `json:"payload"`
}

// Snapshot is the controller's output for one revision. ProportionRevision
// and CorrelationRevision record the revision at which each chart was last
// recomputed.
type Snapshot struct {
	Revision            uint64           `json:"revision"`
	EventID             string           `json:"event_id"`
	Event               EventKind        `json:"event"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Selection           selection.State  `json:"selection"`
	Domain              selection.Domain `json:"domain"`
	Proportion          chart.Spec       `json:"proportion"`
	ProportionRevision  uint64           `json:"proportion_revision"`
	Correlation         chart.Spec       `json:"correlation"`
	CorrelationRevision uint64           `json:"correlation_revision"`
}

// Listener receives every snapshot after it has been fully recomputed.
type Listener func(Snapshot)

// Controller is the single session's reactive state. It is safe for
// concurrent use.
type Controller struct {
	ds       *dataset.Dataset
	domain   selection.Domain
	renderer chart.Renderer
	logger   *slog.Logger
	metrics  *metrics
	now      func() time.Time

	mu sync.Mutex // serializes events and their listeners

	stateMu sync.RWMutex
	snap    Snapshot

	subsMu  sync.Mutex
	nextSub int
	subs    []subscription
}

type subscription struct {
	id int
	fn Listener
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithRegisterer registers the controller's metrics with reg. Without it the
// metrics are collected but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Controller) { c.metrics = newMetrics(reg) }
}

// WithRenderer overrides the chart renderer.
func WithRenderer(r chart.Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithClock overrides the time source used for Snapshot.UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller over ds and renders both charts for the default
// selection: every site, full payload range.
func New(ds *dataset.Dataset, opts ...Option) *Controller {
	c := &Controller{
		ds:       ds,
		domain:   selection.NewDomain(ds),
		renderer: chart.Renderer{Columns: ds.Mapping()},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = newMetrics(nil)
	}

	c.snap = Snapshot{
		Selection: c.domain.Default(),
		Domain:    c.domain,
	}
	c.apply(EventInit, c.snap.Selection, true)
	return c
}

// Dataset returns the dataset the controller was built over.
func (c *Controller) Dataset() *dataset.Dataset { return c.ds }

// Domain returns the selection control bounds.
func (c *Controller) Domain() selection.Domain { return c.domain.Clone() }

// Snapshot returns a copy of the latest snapshot. It does not wait for an
// event in progress, so listeners may call it.
func (c *Controller) Snapshot() Snapshot {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.snap.clone()
}

func (s Snapshot) clone() Snapshot {
	s.Domain = s.Domain.Clone()
	s.Proportion = s.Proportion.Clone()
	s.Correlation = s.Correlation.Clone()
	return s
}

// SelectSite changes the selected site and recomputes both charts. An empty
// site selects every site. An unknown site returns selection.ErrUnknownSite
// and leaves the state unchanged.
func (c *Controller) SelectSite(site string) (Snapshot, error) {
	site, err := c.domain.NormalizeSite(site)
	if err != nil {
		return c.Snapshot(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.snap.Selection
	next.Site = site
	return c.apply(EventSiteChanged, next, true), nil
}

// SelectPayload changes the payload range and recomputes the correlation
// chart only. Endpoints are swapped when low > high and clamped into the
// domain. Non-finite endpoints return selection.ErrInvalidRange.
func (c *Controller) SelectPayload(low, high float64) (Snapshot, error) {
	r, err := c.domain.Clamp(selection.Range{Low: low, High: high})
	if err != nil {
		return c.Snapshot(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.snap.Selection
	next.Payload = r
	return c.apply(EventPayloadChanged, next, false), nil
}

// Dispatch applies a generic event.
func (c *Controller) Dispatch(ev Event) (Snapshot, error) {
	switch ev.Kind {
	case EventSiteChanged:
		return c.SelectSite(ev.Site)
	case EventPayloadChanged:
		return c.SelectPayload(ev.Payload.Low, ev.Payload.High)
	default:
		return c.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
}

// CorrelationRows returns the rows behind the current correlation chart.
func (c *Controller) CorrelationRows() []dataset.LaunchRecord {
	sel := c.Snapshot().Selection
	return pipeline.FilterForCorrelation(c.ds, sel.Site, sel.Payload)
}

// Subscribe registers fn to receive every subsequent snapshot. Listeners run
// synchronously, in revision order, on the goroutine that applied the event;
// the next event waits until they return. A listener may read the Controller
// and subscribe or unsubscribe, but SelectSite, SelectPayload and Dispatch
// from a listener deadlock. The returned func unsubscribes.
func (c *Controller) Subscribe(fn Listener) (cancel func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { c.unsubscribe(id) })
	}
}

func (c *Controller) unsubscribe(id int) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

// apply recomputes the charts for next, publishes the snapshot and notifies
// listeners. The caller holds c.mu (or is New), so reading c.snap here needs
// no stateMu. Both derivations read next, so neither chart can observe a
// stale selection.
func (c *Controller) apply(kind EventKind, next selection.State, proportion bool) Snapshot {
	snap := c.snap
	snap.Revision++
	snap.EventID = uuid.NewString()
	snap.Event = kind
	snap.UpdatedAt = c.now()
	snap.Selection = next

	if proportion {
		snap.Proportion = c.renderProportion(next)
		snap.ProportionRevision = snap.Revision
	}
	snap.Correlation = c.renderCorrelation(next)
	snap.CorrelationRevision = snap.Revision

	c.stateMu.Lock()
	c.snap = snap
	c.stateMu.Unlock()

	c.metrics.events.WithLabelValues(string(kind)).Inc()
	c.logger.Debug("selection applied",
		"event", kind,
		"event_id", snap.EventID,
		"revision", snap.Revision,
		"site", next.Site,
		"payload", next.Payload.String(),
	)

	c.notify(snap)
	return snap.clone()
}

func (c *Controller) renderProportion(sel selection.State) chart.Spec {
	start := time.Now()
	spec := c.renderer.Proportion(sel.Site, pipeline.FilterForProportion(c.ds, sel.Site))
	c.metrics.observe(chartProportion, spec.RowCount, time.Since(start))
	return spec
}

func (c *Controller) renderCorrelation(sel selection.State) chart.Spec {
	start := time.Now()
	spec := c.renderer.Correlation(sel.Site, pipeline.FilterForCorrelation(c.ds, sel.Site, sel.Payload))
	c.metrics.observe(chartCorrelation, spec.RowCount, time.Since(start))
	return spec
}

func (c *Controller) notify(snap Snapshot) {
	c.subsMu.Lock()
	subs := append([]subscription(nil), c.subs...)
	c.subsMu.Unlock()

	for _, s := range subs {
		s.fn(snap.clone())
	}
}
