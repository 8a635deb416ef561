// Package monthctx holds the currently selected month of the dashboard.
//
// The selection is persisted in the session store so it survives restarts
// and is multicast to subscribers on every change, which is how the sync
// coordinator learns that it has to reload the ledger.
package monthctx

import (
	"sync"
	"time"

	"github.com/moneta-app/backend/internal/session"
	"github.com/moneta-app/backend/internal/types"
	"github.com/rs/zerolog/log"
)

const settingKey = "selected_month"

// Context is the selected (month, year) pair.
type Context struct {
	mu       sync.Mutex
	store    *session.Store
	selected types.Month
	subs     []func(types.Month)
}

// New returns a Context initialized from the session store. When nothing is
// persisted yet, the month of now is selected and written back, mirroring
// the UI defaulting to the current calendar month on first use.
//
// A nil store disables persistence; the selection then only lives for the
// lifetime of the process.
func New(store *session.Store, now time.Time) (*Context, error) {
	c := &Context{
		store:    store,
		selected: types.MonthOf(now.UTC()),
	}

	if store == nil {
		return c, nil
	}

	value, ok, err := store.Get(settingKey)
	if err != nil {
		return nil, err
	}

	if ok {
		month, err := types.ParseMonth(value)
		if err != nil {
			// A corrupt value is replaced with the default, not fatal
			log.Warn().Str("value", value).Msg("persisted month selection is invalid, falling back to the current month")
		} else {
			c.selected = month
			return c, nil
		}
	}

	return c, store.Set(settingKey, c.selected.String())
}

// Selected returns the currently selected month.
func (c *Context) Selected() types.Month {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selected
}

// Set selects a month, persists the selection and notifies all subscribers
// synchronously in registration order. Subscribers are also notified when
// the selection did not change, matching the UI, where clicking the active
// month re-triggers a load.
func (c *Context) Set(month types.Month) error {
	c.mu.Lock()
	c.selected = month
	subs := make([]func(types.Month), len(c.subs))
	copy(subs, c.subs)
	store := c.store
	c.mu.Unlock()

	if store != nil {
		if err := store.Set(settingKey, month.String()); err != nil {
			return err
		}
	}

	for _, fn := range subs {
		fn(month)
	}

	return nil
}

// Subscribe registers a callback for selection changes. Any number of
// independent subscribers may register; there is no unsubscribe because
// subscribers live as long as the process.
func (c *Context) Subscribe(fn func(types.Month)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subs = append(c.subs, fn)
}
