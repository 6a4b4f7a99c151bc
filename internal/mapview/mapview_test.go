// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/config"
	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/geodata"
	"github.com/deepak-ramesh/map-task/internal/i18n"
	"github.com/deepak-ramesh/map-task/internal/icon"
	"github.com/deepak-ramesh/map-task/internal/logger"
	"github.com/deepak-ramesh/map-task/internal/marker"
	"github.com/deepak-ramesh/map-task/internal/metrics"
	"github.com/deepak-ramesh/map-task/internal/presenter"
	"github.com/deepak-ramesh/map-task/internal/surface"
	"github.com/deepak-ramesh/map-task/internal/testhelper"
)

var dublinFeatures = []geodata.LocationFeature{
	{Coordinate: geo.Coordinate{Lat: 53.3446471, Lon: -6.2679528}, Name: "The Brazen Head", Website: "https://www.brazenhead.com/"},
	{Coordinate: geo.Coordinate{Lat: 53.3432011, Lon: -6.2669864}, Name: "St. Audoen's Church"},
}

func TestNew(t *testing.T) {
	t.Run("creating a controller succeeds", func(t *testing.T) {
		ctrl, _ := testController(t, surface.Static(true), &fakeSource{})
		if ctrl.State() != Uninitialized {
			t.Errorf("expected state %s, got %s", Uninitialized, ctrl.State())
		}
		if ctrl.query.Radius != 300 || ctrl.view.Zoom != 25 {
			t.Errorf("expected defaults from config, got %+v %+v", ctrl.query, ctrl.view)
		}
	})
	t.Run("missing dependencies fail", func(t *testing.T) {
		conf := testConfig(t)
		deps := testDeps(t, surface.Static(true), &fakeSource{}, testhelper.NewCanvas())
		tests := []struct {
			name   string
			modify func(*Dependencies)
		}{
			{"logger", func(d *Dependencies) { d.Logger = nil }},
			{"guard", func(d *Dependencies) { d.Guard = nil }},
			{"provider", func(d *Dependencies) { d.Provider = nil }},
			{"source", func(d *Dependencies) { d.Source = nil }},
			{"icons", func(d *Dependencies) { d.Icons = nil }},
			{"presenter", func(d *Dependencies) { d.Presenter = nil }},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				d := deps
				tc.modify(&d)
				if _, err := New(conf, d); err == nil {
					t.Error("expected controller creation to fail")
				}
			})
		}
	})
}

func TestController_Start(t *testing.T) {
	t.Run("unavailable surface leaves the controller uninitialized", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, cv := testController(t, surface.Static(false), source)
		ctrl.Start(t.Context())
		if ctrl.State() != Uninitialized {
			t.Errorf("expected state %s, got %s", Uninitialized, ctrl.State())
		}
		if ctrl.Provider.(*testhelper.Provider).Calls() != 0 {
			t.Error("expected provider not to be acquired")
		}
		if len(cv.Markers()) != 0 || source.Calls() != 0 {
			t.Error("expected nothing to be drawn or fetched")
		}
		select {
		case <-ctrl.Initialized():
			t.Error("expected initialized channel to stay open")
		default:
		}
		if err := ctrl.ReloadStatic(t.Context()); !errors.Is(err, ErrNotReady) {
			t.Errorf("expected ErrNotReady, got %v", err)
		}
	})
	t.Run("provider failure moves to failed", func(t *testing.T) {
		conf := testConfig(t)
		deps := testDeps(t, surface.Static(true), &fakeSource{}, nil)
		deps.Provider = &testhelper.Provider{Err: fmt.Errorf("%w: address in use", canvas.ErrProviderUnavailable)}
		ctrl, err := New(conf, deps)
		if err != nil {
			t.Fatalf("failed to create controller: %s", err)
		}
		ctrl.Start(t.Context())
		waitInitialized(t, ctrl)
		if ctrl.State() != Failed {
			t.Errorf("expected state %s, got %s", Failed, ctrl.State())
		}
		if err = ctrl.ClearDynamic(t.Context()); !errors.Is(err, ErrNotReady) {
			t.Errorf("expected ErrNotReady, got %v", err)
		}
	})
	t.Run("canvas errors move to failed", func(t *testing.T) {
		tests := []struct {
			name   string
			modify func(*testhelper.Canvas)
		}{
			{"set view", func(cv *testhelper.Canvas) { cv.ViewErr = canvas.ErrCanvasClosed }},
			{"tile layer", func(cv *testhelper.Canvas) { cv.LayerErr = canvas.ErrCanvasClosed }},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				ctrl, cv := testController(t, surface.Static(true), &fakeSource{})
				tc.modify(cv)
				ctrl.Start(t.Context())
				waitInitialized(t, ctrl)
				if ctrl.State() != Failed {
					t.Errorf("expected state %s, got %s", Failed, ctrl.State())
				}
			})
		}
	})
	t.Run("successful start seeds and fetches", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, cv := testController(t, surface.Static(true), source)
		ctrl.Start(t.Context())
		waitInitialized(t, ctrl)
		ctrl.Wait()

		if ctrl.State() != Ready {
			t.Fatalf("expected state %s, got %s", Ready, ctrl.State())
		}
		views := cv.Views()
		if len(views) != 1 || views[0].Center != (geo.Coordinate{Lat: 53.3429, Lon: -6.2675}) || views[0].Zoom != 25 {
			t.Errorf("unexpected views %+v", views)
		}
		if layers := cv.TileLayers(); len(layers) != 1 || !strings.Contains(layers[0].URL, "openstreetmap") {
			t.Errorf("unexpected tile layers %+v", layers)
		}
		static, dynamic := ctrl.MarkerCounts()
		if static != len(DefaultStaticMarkers) || dynamic != len(dublinFeatures) {
			t.Errorf("expected %d/%d markers, got %d/%d", len(DefaultStaticMarkers), len(dublinFeatures), static, dynamic)
		}
		if got := source.LastQuery(); got.Radius != 300 || got.Center.Lat != 53.3429 {
			t.Errorf("unexpected query %+v", got)
		}
		if ctrl.LastFetch().IsZero() {
			t.Error("expected last fetch time to be set")
		}
		if cv.Handler() == nil {
			t.Error("expected action handler to be registered")
		}
	})
	t.Run("static markers use their icons and the first popup opens", func(t *testing.T) {
		ctrl, cv := testController(t, surface.Static(true), &fakeSource{})
		ctrl.Start(t.Context())
		waitInitialized(t, ctrl)
		ctrl.Wait()

		static := cv.MarkersIn("static")
		if len(static) != 3 {
			t.Fatalf("expected 3 static markers, got %d", len(static))
		}
		wantCategories := []icon.Category{icon.Hotel, icon.Restaurant, icon.TouristSpot}
		for i, m := range static {
			if m.Icon.Category() != wantCategories[i] {
				t.Errorf("expected marker %d to use %s icon, got %s", i, wantCategories[i], m.Icon.Category())
			}
			if m.OpenPopup != (i == 0) {
				t.Errorf("expected only the first popup to open, marker %d open=%t", i, m.OpenPopup)
			}
		}
		if static[0].Popup != "Hotels" || static[0].Coordinate != (geo.Coordinate{Lat: 53.3429, Lon: -6.2713147}) {
			t.Errorf("unexpected first static marker %+v", static[0])
		}
	})
	t.Run("markers are listed per collection", func(t *testing.T) {
		ctrl, _ := testController(t, surface.Static(true), &fakeSource{features: dublinFeatures})
		if ctrl.Markers(marker.Static) != nil {
			t.Error("expected no markers before the map exists")
		}
		ctrl.Start(t.Context())
		ctrl.Wait()

		static := ctrl.Markers(marker.Static)
		if len(static) != len(DefaultStaticMarkers) {
			t.Fatalf("expected %d static markers, got %d", len(DefaultStaticMarkers), len(static))
		}
		for i, handle := range static {
			if handle.Coordinate() != DefaultStaticMarkers[i].Coordinate {
				t.Errorf("expected marker %d at %s, got %s", i, DefaultStaticMarkers[i].Coordinate, handle.Coordinate())
			}
		}
		dynamic := ctrl.Markers(marker.Dynamic)
		if len(dynamic) != len(dublinFeatures) || dynamic[0].Collection() != marker.Dynamic {
			t.Errorf("unexpected dynamic markers %+v", dynamic)
		}
	})
	t.Run("dynamic markers use the generic icon and rendered popups", func(t *testing.T) {
		source := &fakeSource{features: []geodata.LocationFeature{
			{Coordinate: geo.Coordinate{Lat: 1, Lon: 2}, Name: "A", Website: "http://x"},
			{Coordinate: geo.Coordinate{Lat: 3, Lon: 4}},
		}}
		ctrl, cv := testController(t, surface.Static(true), source)
		ctrl.Start(t.Context())
		waitInitialized(t, ctrl)
		ctrl.Wait()

		dynamic := cv.MarkersIn("dynamic")
		if len(dynamic) != 2 {
			t.Fatalf("expected 2 dynamic markers, got %d", len(dynamic))
		}
		if dynamic[0].Icon.Category() != icon.Generic {
			t.Errorf("expected generic icon, got %s", dynamic[0].Icon.Category())
		}
		if dynamic[0].Popup != `<b>A</b><br><a href="http://x" target="_blank">Website</a>` {
			t.Errorf("unexpected popup %q", dynamic[0].Popup)
		}
		if dynamic[1].Popup != `<b>Unnamed Location</b>` {
			t.Errorf("unexpected popup %q", dynamic[1].Popup)
		}
	})
	t.Run("malformed response leaves the dynamic collection empty", func(t *testing.T) {
		source := &fakeSource{err: &geodata.FetchError{Source: "fake", Err: geodata.ErrMalformedResponse}}
		ctrl, _ := testController(t, surface.Static(true), source)
		ctrl.Start(t.Context())
		waitInitialized(t, ctrl)
		ctrl.Wait()
		if ctrl.State() != Ready {
			t.Errorf("expected fetch failure not to affect state, got %s", ctrl.State())
		}
		if _, dynamic := ctrl.MarkerCounts(); dynamic != 0 {
			t.Errorf("expected no dynamic markers, got %d", dynamic)
		}
		if !ctrl.LastFetch().IsZero() {
			t.Error("expected last fetch time to stay unset")
		}
	})
	t.Run("wait covers the initialization", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, _ := testController(t, surface.Static(true), source)
		ctrl.Start(t.Context())
		ctrl.Wait()
		select {
		case <-ctrl.Initialized():
		default:
			t.Fatal("expected initialization to be finished once Wait returned")
		}
		if ctrl.State() != Ready {
			t.Errorf("expected state %s, got %s", Ready, ctrl.State())
		}
		if source.Calls() != 1 {
			t.Errorf("expected one fetch, got %d", source.Calls())
		}
	})
	t.Run("canceled context moves to failed", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, cv := testController(t, surface.Static(true), source)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		ctrl.Start(ctx)
		ctrl.Wait()
		if ctrl.State() != Failed {
			t.Errorf("expected state %s, got %s", Failed, ctrl.State())
		}
		if len(cv.Markers()) != 0 || source.Calls() != 0 || cv.Handler() != nil {
			t.Error("expected nothing to be drawn, fetched or registered")
		}
	})
	t.Run("action handler is registered once the map is ready", func(t *testing.T) {
		ctrl, cv := testController(t, surface.Static(true), &fakeSource{})
		cv.OnRegister = func() {
			if state := ctrl.State(); state != Ready {
				t.Errorf("expected action handler to be registered in state %s, got %s", Ready, state)
			}
		}
		ctrl.Start(t.Context())
		ctrl.Wait()
		if cv.Handler() == nil {
			t.Fatal("expected action handler to be registered")
		}
	})
	t.Run("second start is a no-op", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, _ := testController(t, surface.Static(true), source)
		ctrl.Start(t.Context())
		waitInitialized(t, ctrl)
		ctrl.Start(t.Context())
		ctrl.Wait()
		if calls := ctrl.Provider.(*testhelper.Provider).Calls(); calls != 1 {
			t.Errorf("expected provider to be acquired once, got %d", calls)
		}
		if source.Calls() != 1 {
			t.Errorf("expected one fetch, got %d", source.Calls())
		}
	})
}

func TestController_Actions(t *testing.T) {
	t.Run("each reload adds the static set again", func(t *testing.T) {
		ctrl, _ := readyController(t, &fakeSource{})
		for i := 0; i < 2; i++ {
			if err := ctrl.ReloadStatic(t.Context()); err != nil {
				t.Fatalf("failed to reload static markers: %s", err)
			}
		}
		if static, _ := ctrl.MarkerCounts(); static != 3*len(DefaultStaticMarkers) {
			t.Errorf("expected %d static markers, got %d", 3*len(DefaultStaticMarkers), static)
		}
	})
	t.Run("clearing static keeps dynamic markers", func(t *testing.T) {
		ctrl, cv := readyController(t, &fakeSource{features: dublinFeatures})
		if err := ctrl.ClearStatic(t.Context()); err != nil {
			t.Fatalf("failed to clear static markers: %s", err)
		}
		static, dynamic := ctrl.MarkerCounts()
		if static != 0 || dynamic != len(dublinFeatures) {
			t.Errorf("expected 0/%d markers, got %d/%d", len(dublinFeatures), static, dynamic)
		}
		if len(cv.MarkersIn("static")) != 0 {
			t.Error("expected static markers to be removed from the canvas")
		}
	})
	t.Run("clearing dynamic keeps static markers", func(t *testing.T) {
		ctrl, _ := readyController(t, &fakeSource{features: dublinFeatures})
		if err := ctrl.ClearDynamic(t.Context()); err != nil {
			t.Fatalf("failed to clear dynamic markers: %s", err)
		}
		if err := ctrl.ClearDynamic(t.Context()); err != nil {
			t.Fatalf("failed to clear dynamic markers twice: %s", err)
		}
		static, dynamic := ctrl.MarkerCounts()
		if static != len(DefaultStaticMarkers) || dynamic != 0 {
			t.Errorf("expected %d/0 markers, got %d/%d", len(DefaultStaticMarkers), static, dynamic)
		}
	})
	t.Run("refetch adds to the current dynamic markers", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, _ := readyController(t, source)
		if err := ctrl.RefetchDynamic(t.Context()); err != nil {
			t.Fatalf("failed to refetch: %s", err)
		}
		ctrl.Wait()
		if _, dynamic := ctrl.MarkerCounts(); dynamic != 2*len(dublinFeatures) {
			t.Errorf("expected %d dynamic markers, got %d", 2*len(dublinFeatures), dynamic)
		}
		if source.Calls() != 2 {
			t.Errorf("expected two fetches, got %d", source.Calls())
		}
	})
	t.Run("refetch outlives the triggering request", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, _ := readyController(t, source)
		reqCtx, cancel := context.WithCancel(t.Context())
		if err := ctrl.RefetchDynamic(reqCtx); err != nil {
			t.Fatalf("failed to refetch: %s", err)
		}
		cancel()
		ctrl.Wait()
		if _, dynamic := ctrl.MarkerCounts(); dynamic != 2*len(dublinFeatures) {
			t.Errorf("expected %d dynamic markers, got %d", 2*len(dublinFeatures), dynamic)
		}
	})
	t.Run("stale fetch after clear still inserts", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, _ := readyController(t, source)
		source.Block()
		if err := ctrl.RefetchDynamic(t.Context()); err != nil {
			t.Fatalf("failed to refetch: %s", err)
		}
		if err := ctrl.ClearDynamic(t.Context()); err != nil {
			t.Fatalf("failed to clear dynamic markers: %s", err)
		}
		source.Release()
		ctrl.Wait()
		if _, dynamic := ctrl.MarkerCounts(); dynamic != len(dublinFeatures) {
			t.Errorf("expected stale fetch to insert %d markers, got %d", len(dublinFeatures), dynamic)
		}
	})
	t.Run("actions push localized notifications", func(t *testing.T) {
		ctrl, cv := readyController(t, &fakeSource{})
		for _, action := range canvas.Actions {
			if err := ctrl.HandleAction(t.Context(), action); err != nil {
				t.Fatalf("failed to handle %s: %s", action, err)
			}
		}
		ctrl.Wait()
		want := []string{
			"Static Location Data Loaded", "Static Location Data Removed",
			"Dynamic Location Data Removed", "Dynamic Location Data Loaded",
		}
		got := cv.Notifications()
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("expected notifications %v, got %v", want, got)
		}
	})
	t.Run("unknown actions are rejected", func(t *testing.T) {
		ctrl, _ := readyController(t, &fakeSource{})
		if err := ctrl.HandleAction(t.Context(), "explode"); !errors.Is(err, canvas.ErrUnknownAction) {
			t.Errorf("expected ErrUnknownAction, got %v", err)
		}
	})
	t.Run("registered handler dispatches to the controller", func(t *testing.T) {
		ctrl, cv := readyController(t, &fakeSource{})
		if err := cv.Handler()(t.Context(), canvas.ActionClearStatic); err != nil {
			t.Fatalf("failed to handle action: %s", err)
		}
		if static, _ := ctrl.MarkerCounts(); static != 0 {
			t.Errorf("expected static markers to be cleared, got %d", static)
		}
	})
}

func TestController_RefreshDynamic(t *testing.T) {
	t.Run("refresh replaces the dynamic markers", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, _ := readyController(t, source)
		source.SetFeatures(dublinFeatures[:1])
		if err := ctrl.RefreshDynamic(t.Context()); err != nil {
			t.Fatalf("failed to refresh: %s", err)
		}
		if _, dynamic := ctrl.MarkerCounts(); dynamic != 1 {
			t.Errorf("expected 1 dynamic marker, got %d", dynamic)
		}
	})
	t.Run("failed refresh keeps the dynamic markers", func(t *testing.T) {
		source := &fakeSource{features: dublinFeatures}
		ctrl, _ := readyController(t, source)
		source.SetErr(&geodata.FetchError{Source: "fake", StatusCode: 504, Err: errors.New("gateway timeout")})
		if err := ctrl.RefreshDynamic(t.Context()); err == nil {
			t.Fatal("expected refresh to fail")
		}
		if _, dynamic := ctrl.MarkerCounts(); dynamic != len(dublinFeatures) {
			t.Errorf("expected %d dynamic markers, got %d", len(dublinFeatures), dynamic)
		}
	})
	t.Run("refresh before ready fails", func(t *testing.T) {
		ctrl, _ := testController(t, surface.Static(true), &fakeSource{})
		if err := ctrl.RefreshDynamic(t.Context()); !errors.Is(err, ErrNotReady) {
			t.Errorf("expected ErrNotReady, got %v", err)
		}
	})
}

func TestController_Metrics(t *testing.T) {
	conf := testConfig(t)
	cv := testhelper.NewCanvas()
	deps := testDeps(t, surface.Static(true), &fakeSource{features: dublinFeatures}, cv)
	deps.Metrics = metrics.New()
	ctrl, err := New(conf, deps)
	if err != nil {
		t.Fatalf("failed to create controller: %s", err)
	}
	ctrl.Start(t.Context())
	waitInitialized(t, ctrl)
	ctrl.Wait()
	if err = ctrl.HandleAction(t.Context(), canvas.ActionClearStatic); err != nil {
		t.Fatalf("failed to handle action: %s", err)
	}

	values, err := deps.Metrics.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %s", err)
	}
	tests := []struct {
		key  string
		want float64
	}{
		{"maptask_geodata_fetch_total;result=success", 1},
		{"maptask_markers_inserted_total;collection=static", 3},
		{"maptask_markers_inserted_total;collection=dynamic", 2},
		{"maptask_actions_total;action=clear-static", 1},
		{"maptask_markers;collection=static", 0},
		{"maptask_markers;collection=dynamic", 2},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if values[tc.key] != tc.want {
				t.Errorf("expected %f, got %f", tc.want, values[tc.key])
			}
		})
	}
}

func TestState_String(t *testing.T) {
	if Ready.String() != "ready" || Failed.String() != "failed" || State(42).String() != "state(42)" {
		t.Error("unexpected state names")
	}
}

type fakeSource struct {
	mu       sync.Mutex
	features []geodata.LocationFeature
	err      error
	calls    int
	query    geodata.Query
	gate     chan struct{}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(ctx context.Context, query geodata.Query) ([]geodata.LocationFeature, error) {
	f.mu.Lock()
	f.calls++
	f.query = query
	gate, features, err := f.gate, f.features, f.err
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return features, err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSource) LastQuery() geodata.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

func (f *fakeSource) SetFeatures(features []geodata.LocationFeature) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.features = features
}

func (f *fakeSource) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Block makes the following fetches wait until Release is called.
func (f *fakeSource) Block() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

func (f *fakeSource) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.gate)
	f.gate = nil
}

func waitInitialized(t *testing.T, ctrl *Controller) {
	t.Helper()
	select {
	case <-ctrl.Initialized():
	case <-time.After(time.Second * 5):
		t.Fatalf("controller did not finish initializing, state %s", ctrl.State())
	}
}

func readyController(t *testing.T, source *fakeSource) (*Controller, *testhelper.Canvas) {
	t.Helper()
	ctrl, cv := testController(t, surface.Static(true), source)
	ctrl.Start(t.Context())
	waitInitialized(t, ctrl)
	ctrl.Wait()
	if ctrl.State() != Ready {
		t.Fatalf("expected controller to be ready, got %s", ctrl.State())
	}
	return ctrl, cv
}

func testController(t *testing.T, guard surface.Guard, source *fakeSource) (*Controller, *testhelper.Canvas) {
	t.Helper()
	cv := testhelper.NewCanvas()
	ctrl, err := New(testConfig(t), testDeps(t, guard, source, cv))
	if err != nil {
		t.Fatalf("failed to create controller: %s", err)
	}
	return ctrl, cv
}

func testDeps(t *testing.T, guard surface.Guard, source *fakeSource, cv *testhelper.Canvas) Dependencies {
	t.Helper()
	conf := testConfig(t)
	lang, err := i18n.New(conf.Locale)
	if err != nil {
		t.Fatalf("failed to create i18n provider: %s", err)
	}
	pres, err := presenter.New(conf, lang)
	if err != nil {
		t.Fatalf("failed to create presenter: %s", err)
	}
	icons, err := icon.NewSet(conf.Icons.Root, conf.Icons.Size)
	if err != nil {
		t.Fatalf("failed to create icon set: %s", err)
	}
	return Dependencies{
		Guard:     guard,
		Provider:  &testhelper.Provider{Canvas: cv},
		Source:    source,
		Icons:     icons,
		Presenter: pres,
		Logger:    logger.NewLogger(conf.LogLevel, io.Discard),
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	conf, err := config.New()
	if err != nil {
		t.Fatalf("failed to create config: %s", err)
	}
	conf.Locale = "en"
	return conf
}
