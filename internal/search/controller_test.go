package search

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/vedur-cli/vedur/internal/geo"
	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/testutil"
)

var reykjavik = models.Location{Title: "Reykjavík", Lat: 64.1355, Lng: -21.8954}

// fakeClient returns canned entries or an error and records what the
// controller showed while it was being called.
type fakeClient struct {
	mu      sync.Mutex
	entries []models.ForecastEntry
	err     error
	calls   [][2]float64
	during  []State
	ctrl    *Controller
	block   chan struct{}
}

func (f *fakeClient) WeatherSearch(ctx context.Context, lat, lng float64) ([]models.ForecastEntry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, [2]float64{lat, lng})
	if f.ctrl != nil {
		f.during = append(f.during, f.ctrl.State())
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.entries, f.err
}

func TestNew_StartsHidden(t *testing.T) {
	c := New(&fakeClient{})
	testutil.AssertEqual(t, c.State().Kind, KindHidden)
	testutil.AssertFalse(t, c.State().Visible())
	testutil.AssertEqual(t, c.Token(), uint64(0))
	testutil.AssertFalse(t, c.GeolocationSupported())
}

func TestSearch_LoadingBeforeClientCall(t *testing.T) {
	client := &fakeClient{entries: []models.ForecastEntry{{Time: "2024-01-01T09:00"}}}
	c := New(client)
	client.ctrl = c

	req := c.Search(reykjavik)
	testutil.AssertEqual(t, c.State().Kind, KindLoading)
	testutil.AssertLen(t, client.calls, 0)

	state := c.Do(context.Background(), req)
	testutil.AssertEqual(t, state.Kind, KindResults)
	testutil.AssertLen(t, client.during, 1)
	testutil.AssertEqual(t, client.during[0].Kind, KindLoading)
	testutil.AssertEqual(t, client.calls[0], [2]float64{64.1355, -21.8954})
}

func TestSearch_TerminalStates(t *testing.T) {
	entries := []models.ForecastEntry{
		{Time: "2024-01-01T09:00", Temperature: 1.24, Precipitation: 0},
		{Time: "2024-01-01T10:00", Temperature: 2.951, Precipitation: 0.25},
		{Time: "2024-01-01T11:00", Temperature: -0.5, Precipitation: 1},
	}

	tests := []struct {
		name        string
		entries     []models.ForecastEntry
		err         error
		wantKind    Kind
		wantMessage string
		wantEntries int
	}{
		{name: "results", entries: entries, wantKind: KindResults, wantEntries: 3},
		{name: "empty", entries: []models.ForecastEntry{}, wantKind: KindError, wantMessage: MsgNoData},
		{name: "nil", entries: nil, wantKind: KindError, wantMessage: MsgNoData},
		{name: "client error", err: errors.New("API error 500: boom"), wantKind: KindError, wantMessage: "API error 500: boom"},
		{name: "client error with data", entries: entries, err: errors.New("partial"), wantKind: KindError, wantMessage: "partial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&fakeClient{entries: tt.entries, err: tt.err})
			state := c.Do(context.Background(), c.Search(reykjavik))

			testutil.AssertEqual(t, state.Kind, tt.wantKind)
			testutil.AssertEqual(t, state.Message, tt.wantMessage)
			testutil.AssertLen(t, state.Entries, tt.wantEntries)
			testutil.AssertTrue(t, state.Terminal())
			if tt.wantKind == KindResults {
				testutil.AssertEqual(t, state.Location, reykjavik)
				for i := range entries {
					testutil.AssertEqual(t, state.Entries[i], entries[i])
				}
			}
		})
	}
}

func TestSearch_ReplacesPreviousState(t *testing.T) {
	client := &fakeClient{err: errors.New("down")}
	c := New(client)

	c.Do(context.Background(), c.Search(reykjavik))
	testutil.AssertEqual(t, c.State().Kind, KindError)

	client.err = nil
	client.entries = []models.ForecastEntry{{Time: "2024-01-01T09:00"}}
	c.Search(reykjavik)
	testutil.AssertEqual(t, c.State().Kind, KindLoading)
	testutil.AssertEqual(t, c.State().Message, "")
}

func TestApply_StaleOutcomeDropped(t *testing.T) {
	first := &fakeClient{entries: []models.ForecastEntry{{Time: "2024-01-01T09:00"}}}
	c := New(first)

	older := c.Search(reykjavik)
	newer := c.Search(models.Location{Title: "Tokyo", Lat: 35.6764, Lng: 139.65})
	testutil.AssertEqual(t, older.Token()+1, newer.Token())

	// The newer search settles first.
	testutil.AssertTrue(t, c.Apply(newer.Run(context.Background())))
	testutil.AssertEqual(t, c.State().Location.Title, "Tokyo")

	// The superseded one settles late and must not win.
	testutil.AssertFalse(t, c.Apply(older.Run(context.Background())))
	testutil.AssertEqual(t, c.State().Location.Title, "Tokyo")
}

func TestApply_StaleWhileLoading(t *testing.T) {
	c := New(&fakeClient{err: errors.New("slow failure")})

	older := c.Search(reykjavik)
	c.Search(reykjavik)

	testutil.AssertFalse(t, c.Apply(older.Run(context.Background())))
	testutil.AssertEqual(t, c.State().Kind, KindLoading)
}

func TestConcurrentSearches_LatestWins(t *testing.T) {
	client := &fakeClient{
		entries: []models.ForecastEntry{{Time: "2024-01-01T09:00"}},
		block:   make(chan struct{}),
	}
	c := New(client)

	var wg sync.WaitGroup
	reqs := []*Request{c.Search(reykjavik), c.Search(reykjavik), c.Search(reykjavik)}
	applied := make([]bool, len(reqs))
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req *Request) {
			defer wg.Done()
			applied[i] = c.Apply(req.Run(context.Background()))
		}(i, req)
	}
	close(client.block)
	wg.Wait()

	testutil.AssertFalse(t, applied[0])
	testutil.AssertFalse(t, applied[1])
	testutil.AssertTrue(t, applied[2])
	testutil.AssertEqual(t, c.State().Kind, KindResults)
}

func TestSearchMyLocation_Unsupported(t *testing.T) {
	client := &fakeClient{}
	c := New(client)

	req := c.SearchMyLocation()
	testutil.AssertTrue(t, req == nil)

	state := c.State()
	testutil.AssertEqual(t, state.Kind, KindError)
	testutil.AssertEqual(t, state.Message, MsgGeoUnsupported)
	testutil.AssertLen(t, client.calls, 0)

	// Do with an already-settled request is a no-op.
	testutil.AssertEqual(t, c.Do(context.Background(), req).Message, MsgGeoUnsupported)
}

func TestSearchMyLocation_Success(t *testing.T) {
	client := &fakeClient{entries: []models.ForecastEntry{{Time: "2024-01-01T09:00", Temperature: 3}}}
	locator := geo.Static(geo.Position{Latitude: 65.6835, Longitude: -18.0878})
	c := New(client, WithLocator(locator))
	client.ctrl = c

	req := c.SearchMyLocation()
	testutil.AssertTrue(t, req != nil)
	testutil.AssertEqual(t, c.State().Kind, KindLoading)

	state := c.Do(context.Background(), req)
	testutil.AssertEqual(t, state.Kind, KindResults)
	testutil.AssertEqual(t, state.Location.Title, "My location")
	testutil.AssertEqual(t, state.Location.Lat, 65.6835)
	testutil.AssertEqual(t, state.Location.Lng, -18.0878)
	testutil.AssertEqual(t, client.during[0].Kind, KindLoading)
}

func TestSearchMyLocation_Denied(t *testing.T) {
	gate := geo.NewGate()
	gate.Deny()
	client := &fakeClient{entries: []models.ForecastEntry{{Time: "2024-01-01T09:00"}}}
	c := New(client, WithLocator(geo.Gated(geo.Static(geo.Position{}), gate)))

	state := c.Do(context.Background(), c.SearchMyLocation())
	testutil.AssertEqual(t, state.Kind, KindError)
	testutil.AssertEqual(t, state.Message, MsgGeoFailed)
	testutil.AssertLen(t, client.calls, 0)
}

func TestSearchMyLocation_LocatorFailure(t *testing.T) {
	failing := geo.LocatorFunc(func(ctx context.Context) (geo.Position, error) {
		return geo.Position{}, geo.ErrUnavailable
	})
	c := New(&fakeClient{}, WithLocator(failing))

	state := c.Do(context.Background(), c.SearchMyLocation())
	testutil.AssertEqual(t, state.Message, MsgGeoFailed)
}

func TestSearchMyLocation_ContextDone(t *testing.T) {
	gate := geo.NewGate() // never decided
	c := New(&fakeClient{}, WithLocator(geo.Gated(geo.Static(geo.Position{}), gate)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state := c.Do(ctx, c.SearchMyLocation())
	testutil.AssertEqual(t, state.Kind, KindError)
	testutil.AssertEqual(t, state.Message, MsgGeoFailed)
}

func TestSearchMyLocation_ClientFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("request failed: no route to host")}
	c := New(client, WithLocator(geo.Static(geo.Position{Latitude: 1, Longitude: 2})))

	state := c.Do(context.Background(), c.SearchMyLocation())
	testutil.AssertEqual(t, state.Message, "request failed: no route to host")
}

type panicClient struct{}

func (panicClient) WeatherSearch(ctx context.Context, lat, lng float64) ([]models.ForecastEntry, error) {
	panic("weather client exploded")
}

func TestRequest_RunRecoversPanic(t *testing.T) {
	c := New(panicClient{})
	state := c.Do(context.Background(), c.Search(reykjavik))
	testutil.AssertEqual(t, state.Kind, KindError)
	testutil.AssertEqual(t, state.Message, "weather client exploded")
}

func TestController_Logger(t *testing.T) {
	var buf bytes.Buffer
	c := New(&fakeClient{}, WithLogger(log.New(&buf, "", 0)))

	c.Do(context.Background(), c.Search(reykjavik))
	testutil.AssertContains(t, buf.String(), "search #1 Reykjavík: loading")
	testutil.AssertContains(t, buf.String(), "search #1: error: "+MsgNoData)
}

func TestKind_String(t *testing.T) {
	testutil.AssertEqual(t, KindHidden.String(), "hidden")
	testutil.AssertEqual(t, KindLoading.String(), "loading")
	testutil.AssertEqual(t, KindError.String(), "error")
	testutil.AssertEqual(t, KindResults.String(), "results")
	testutil.AssertEqual(t, Kind(42).String(), "unknown")
}
