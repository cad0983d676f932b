package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/natpakans-stack/carpark-live-dashboard/config"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/observability"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/refresh"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/store"
)

// stubSource satisfies refresh.RowSource; handler tests never fetch.
type stubSource struct{}

func (stubSource) FetchRows(ctx context.Context) ([]model.RawRow, error) { return nil, nil }

// seedEvents is the collection most handler tests run against. 2024-03-15 is
// a Friday, so it shows up in the arrival trend.
func seedEvents() []model.ParkingEvent {
	return []model.ParkingEvent{
		{RecordedAt: "2024-03-15T18:35:00+07:00", TimeOfEvent: "18:30", Location: "คอนโด", Floor: "5", ExitDate: "2024-03-15"},
		{RecordedAt: "2024-03-20T19:05:00+07:00", TimeOfEvent: "19:00", Location: "คอนโด", Floor: "5", ExitDate: "2024-03-20"},
		{RecordedAt: "2024-04-02T18:05:00+07:00", TimeOfEvent: "18:00", Location: "คอนโด", Floor: "3", ExitDate: "2024-04-02"},
		{RecordedAt: "2024-03-15T07:55:00+07:00", TimeOfEvent: "07:50", Location: "โรงเรียน", Floor: "-", ExitDate: "2024-03-15"},
		{RecordedAt: "2024-03-15T08:45:00+07:00", TimeOfEvent: "08:40", Location: "ออฟฟิศ", Floor: "-", ExitDate: "2024-03-15"},
		{RecordedAt: "2024-03-16T12:05:00+07:00", TimeOfEvent: "12:00", Location: "เซ็นทรัล", Floor: "-", ExitDate: "2024-03-16"},
	}
}

type testAPI struct {
	router *gin.Engine
	events *store.Events
	db     *gorm.DB
}

// setupAPI wires a full router around an in-memory database and a seeded
// snapshot. webpushOptions may be nil to exercise the push-disabled paths.
func setupAPI(t *testing.T, webpushOptions *webpush.Options) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PushSubscription{}))

	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
		},
		Refresh: config.RefreshConfig{
			Enabled:         true,
			IntervalSeconds: 300,
			Interval:        300 * time.Second,
			Timezone:        "Asia/Bangkok",
			Location:        loc,
		},
	}

	events := store.NewEvents()
	require.True(t, events.ApplyResult(1, seedEvents(), nil, time.Date(2024, 4, 2, 18, 10, 0, 0, loc)))

	respCache := cache.New(time.Minute, time.Minute)
	sched := refresh.NewScheduler(cfg, stubSource{}, events, respCache, nil, observability.NewMetricsForTesting())

	handler := NewHandler(events, store.NewGormStore(db), sched, webpushOptions, loc)
	return &testAPI{
		router: NewRouter(handler, &cfg.Server, respCache),
		events: events,
		db:     db,
	}
}

// get issues a GET through the full middleware chain. httptest.NewRequest
// populates RequestURI, which the caching middleware keys on.
func (a *testAPI) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	a.router.ServeHTTP(w, req)
	return w
}
