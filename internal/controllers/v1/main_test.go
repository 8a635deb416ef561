package v1_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/moneta-app/backend/internal/controllers/v1"
	"github.com/moneta-app/backend/internal/ledger"
	"github.com/moneta-app/backend/internal/models"
	"github.com/moneta-app/backend/internal/monthctx"
	"github.com/moneta-app/backend/internal/remote"
	"github.com/moneta-app/backend/internal/session"
	"github.com/moneta-app/backend/internal/syncer"
	"github.com/moneta-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory stand-in for the costs API.
type fakeClient struct {
	mu      sync.Mutex
	entries map[types.Month][]models.CostEntry

	err error
}

var _ remote.Client = (*fakeClient)(nil)

func (f *fakeClient) ListForMonth(_ context.Context, month types.Month) ([]models.CostEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return append([]models.CostEntry(nil), f.entries[month]...), nil
}

func (f *fakeClient) Create(_ context.Context, draft models.EntryEditable, month types.Month) (models.CostEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return models.CostEntry{}, f.err
	}

	entry := models.CostEntry{ID: "generated-1", EntryEditable: draft}
	f.entries[month] = append(f.entries[month], entry)
	return entry, nil
}

func (f *fakeClient) PatchOverride(_ context.Context, _ string, _ types.Month, _ *decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeClient) Delete(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// testMonth is the month all handler tests are scoped to.
var testMonth = types.NewMonth(2026, time.May)

func testEntry(id, name, category string, costType types.CostType, amount int64) models.CostEntry {
	return models.CostEntry{
		ID: id,
		EntryEditable: models.EntryEditable{
			Name:       name,
			Category:   category,
			CostType:   costType,
			BaseAmount: decimal.NewFromInt(amount),
			Recurring:  true,
		},
	}
}

// newTestEngine builds a router with the v1 routes on top of a fake costs
// API that serves the entries for the test month.
func newTestEngine(t *testing.T, entries ...models.CostEntry) (*gin.Engine, *fakeClient, *syncer.Coordinator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := session.Connect(filepath.Join(t.TempDir(), "session.db"))
	require.Nil(t, err)

	months, err := monthctx.New(store, time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC))
	require.Nil(t, err)

	client := &fakeClient{entries: map[types.Month][]models.CostEntry{
		testMonth: entries,
	}}

	coordinator := syncer.New(client, ledger.New(), months)
	require.Nil(t, coordinator.LoadForMonth(context.Background(), testMonth))

	engine := gin.New()
	v1.Register(engine.Group("/v1"), &v1.Server{
		Coordinator: coordinator,
		Months:      months,
	})

	return engine, client, coordinator
}
