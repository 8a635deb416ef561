// Package syncer coordinates the ledger cache with the upstream costs API
// and keeps the derived dashboard view current.
//
// All cache writes funnel through the Coordinator. Reads of the derived
// totals and the chart projection go through View, which is recomputed
// synchronously after every mutation so the dashboard never waits for a
// network round trip.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/moneta-app/backend/internal/ledger"
	"github.com/moneta-app/backend/internal/models"
	"github.com/moneta-app/backend/internal/monthctx"
	"github.com/moneta-app/backend/internal/remote"
	"github.com/moneta-app/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	// ErrStaleResponse marks a month load whose response arrived after
	// another month was requested. It is suppressed, never surfaced to
	// users: the newer load owns the cache.
	ErrStaleResponse = errors.New("the response belongs to a month that is no longer selected")

	// ErrEntryNotFound is returned when no entry with the ID is cached
	// for the selected month.
	ErrEntryNotFound = errors.New("no cost entry with this ID is cached for the selected month")
)

// writeTimeout bounds the asynchronous remote calls that follow an
// optimistic local mutation.
const writeTimeout = 30 * time.Second

var syncFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moneta_remote_sync_failures_total",
		Help: "How many asynchronous writes to the costs API failed, partitioned by operation.",
	},
	[]string{"operation"},
)

func init() {
	prometheus.MustRegister(syncFailures)
}

// View is the derived state for the selected month. The slices are replaced
// wholesale on every recomputation and must be treated as read-only.
type View struct {
	Month      types.Month            `json:"month"`
	Sums       ledger.CostTypeSums    `json:"byCostType"`
	Categories []ledger.CategoryTotal `json:"categories"`
	Chart      ledger.Projection      `json:"chart"`
}

// Coordinator bridges the ledger cache and the costs API.
type Coordinator struct {
	remote remote.Client
	cache  *ledger.Ledger
	months *monthctx.Context

	mu         sync.Mutex
	generation uint64
	view       View

	writes        sync.WaitGroup
	reportFailure func(operation string, err error)
}

// New returns a Coordinator that reloads the ledger whenever the month
// selection changes.
func New(client remote.Client, cache *ledger.Ledger, months *monthctx.Context) *Coordinator {
	c := &Coordinator{
		remote: client,
		cache:  cache,
		months: months,
		reportFailure: func(operation string, err error) {
			log.Error().Err(err).Str("operation", operation).Msg("write to the costs API failed, keeping local state")
			syncFailures.WithLabelValues(operation).Inc()
		},
	}

	c.mu.Lock()
	c.recompute(months.Selected())
	c.mu.Unlock()

	months.Subscribe(func(month types.Month) {
		err := c.LoadForMonth(context.Background(), month)
		if err != nil && !errors.Is(err, ErrStaleResponse) {
			log.Warn().Err(err).Str("month", month.String()).Msg("loading the selected month failed, keeping the cached ledger")
		}
	})

	return c
}

// View returns the current derived state.
func (c *Coordinator) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.view
}

// Entries returns a snapshot of the cached ledger.
func (c *Coordinator) Entries() []models.CostEntry {
	return c.cache.Snapshot()
}

// Entry returns a copy of one cached entry by ID.
func (c *Coordinator) Entry(id string) (models.CostEntry, bool) {
	return c.cache.Get(id)
}

// LoadForMonth replaces the ledger with the entries effective in the month
// and recomputes the derived view.
//
// Loads fail soft: on any error the cache keeps its previous content. A
// response that arrives after a newer load was requested is discarded with
// ErrStaleResponse so an older response can never overwrite newer state.
func (c *Coordinator) LoadForMonth(ctx context.Context, month types.Month) error {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	entries, err := c.remote.ListForMonth(ctx, month)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation || !month.Equal(c.months.Selected()) {
		return ErrStaleResponse
	}

	c.cache.Replace(entries)
	c.recompute(month)
	return nil
}

// CreateEntry validates the draft, creates it upstream and appends the
// authoritative response to the cache. Afterwards a full month load runs:
// a recurring entry changes which months it is visible in, so patching the
// current view alone is not enough. On failure the cache is unchanged and
// the draft stays with the caller for retry.
func (c *Coordinator) CreateEntry(ctx context.Context, draft models.EntryEditable) (models.CostEntry, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return models.CostEntry{}, err
	}

	month := c.months.Selected()

	created, err := c.remote.Create(ctx, draft, month)
	if err != nil {
		return models.CostEntry{}, err
	}

	c.mu.Lock()
	c.cache.Append(created)
	c.recompute(month)
	c.mu.Unlock()

	err = c.LoadForMonth(ctx, month)
	if err != nil && !errors.Is(err, ErrStaleResponse) {
		// The entry is created and cached, the reload is best effort
		log.Warn().Err(err).Msg("reload after create failed, keeping the appended entry")
	}

	return created, nil
}

// SetOverride patches the override of one cached entry for one month,
// value nil removes it. The cache and the derived view update immediately;
// the write to the costs API runs asynchronously afterwards.
//
// A failed remote write is reported and counted but deliberately not
// rolled back locally: responsiveness wins, and the next month load
// reconciles the cache with upstream.
func (c *Coordinator) SetOverride(id string, month types.Month, value *decimal.Decimal) error {
	c.mu.Lock()
	if !c.cache.SetOverride(id, month, value) {
		c.mu.Unlock()
		return ErrEntryNotFound
	}
	c.recompute(c.view.Month)
	c.mu.Unlock()

	c.writes.Add(1)
	go func() {
		defer c.writes.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := c.remote.PatchOverride(ctx, id, month, value); err != nil {
			c.reportFailure("override", err)
		}
	}()

	return nil
}

// DeleteEntry removes the entry from the cache, recomputes the view and
// issues the remote delete asynchronously. Deletion is not scoped to a
// month: upstream drops the entry with all its overrides.
//
// Like SetOverride, a failed remote delete does not restore the entry; it
// reappears with the next month load if upstream still has it.
func (c *Coordinator) DeleteEntry(id string) error {
	c.mu.Lock()
	if !c.cache.Remove(id) {
		c.mu.Unlock()
		return ErrEntryNotFound
	}
	c.recompute(c.view.Month)
	c.mu.Unlock()

	c.writes.Add(1)
	go func() {
		defer c.writes.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := c.remote.Delete(ctx, id); err != nil {
			c.reportFailure("delete", err)
		}
	}()

	return nil
}

// Flush waits for all in-flight asynchronous writes, used on shutdown.
func (c *Coordinator) Flush() {
	c.writes.Wait()
}

// recompute rebuilds the derived view from the current cache.
// Callers must hold c.mu.
func (c *Coordinator) recompute(month types.Month) {
	snapshot := c.cache.Snapshot()
	categories := ledger.AggregateByCategory(snapshot, month)

	c.view = View{
		Month:      month,
		Sums:       ledger.Aggregate(snapshot, month),
		Categories: categories,
		Chart:      ledger.Project(categories),
	}
}
