// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package mapview drives the map: it checks for a display surface, creates the canvas, seeds the
// static markers and loads the dynamic markers from a geodata source.
package mapview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/config"
	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/geodata"
	"github.com/deepak-ramesh/map-task/internal/icon"
	"github.com/deepak-ramesh/map-task/internal/logger"
	"github.com/deepak-ramesh/map-task/internal/marker"
	"github.com/deepak-ramesh/map-task/internal/metrics"
	"github.com/deepak-ramesh/map-task/internal/surface"
)

// ErrNotReady is returned by user actions before the map finished initializing.
var ErrNotReady = errors.New("map view is not ready")

// StaticMarker is one of the fixed points of interest.
type StaticMarker struct {
	Label      string
	Coordinate geo.Coordinate
	Category   icon.Category
	OpenPopup  bool
}

// DefaultStaticMarkers are seeded once the map is created and on every reload.
var DefaultStaticMarkers = []StaticMarker{
	{Label: "Hotels", Coordinate: geo.Coordinate{Lat: 53.3429, Lon: -6.2713147}, Category: icon.Hotel, OpenPopup: true},
	{Label: "Restaurants", Coordinate: geo.Coordinate{Lat: 53.3430, Lon: -6.2513170}, Category: icon.Restaurant},
	{Label: "Tourist Spot", Coordinate: geo.Coordinate{Lat: 53.3431, Lon: -6.2613200}, Category: icon.TouristSpot},
}

// Presenter renders the texts shown on the map.
type Presenter interface {
	DynamicPopup(feature geodata.LocationFeature) (string, error)
	StaticPopup(label string) string
	Notification(action canvas.Action) string
}

// Dependencies are the collaborators of a Controller. Metrics is optional.
type Dependencies struct {
	Guard     surface.Guard
	Provider  canvas.Provider
	Source    geodata.Source
	Icons     *icon.Set
	Presenter Presenter
	Metrics   *metrics.Metrics
	Logger    *logger.Logger
}

type Controller struct {
	Dependencies

	view    canvas.View
	tiles   canvas.TileLayer
	query   geodata.Query
	statics []StaticMarker

	state       atomic.Int32
	startOnce   sync.Once
	initialized chan struct{}
	pending     sync.WaitGroup

	mu        sync.RWMutex
	ctx       context.Context
	canvas    canvas.Canvas
	markers   *marker.Manager
	lastFetch time.Time
}

// New returns a Controller for the map configured in conf. The center, zoom and search radius
// are fixed for the lifetime of the controller.
func New(conf *config.Config, deps Dependencies) (*Controller, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Guard == nil || deps.Provider == nil || deps.Source == nil {
		return nil, fmt.Errorf("guard, map provider and geodata source are required")
	}
	if deps.Icons == nil || deps.Presenter == nil {
		return nil, fmt.Errorf("icons and presenter are required")
	}

	center := geo.Coordinate{Lat: conf.Map.CenterLat, Lon: conf.Map.CenterLon}
	return &Controller{
		Dependencies: deps,
		view:         canvas.View{Center: center, Zoom: conf.Map.Zoom},
		tiles:        canvas.TileLayer{URL: conf.Map.TileURL, Attribution: conf.Map.Attribution},
		query:        geodata.Query{Center: center, Radius: conf.GeoData.Radius},
		statics:      DefaultStaticMarkers,
		initialized:  make(chan struct{}),
	}, nil
}

// Start consults the guard and initializes the map in the background. Fetches started later run
// with ctx. Only the first call has an effect.
func (c *Controller) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		if !c.Guard.Available() {
			c.Logger.Debug("no display surface available, map will not be initialized")
			return
		}
		c.mu.Lock()
		c.ctx = ctx
		c.mu.Unlock()
		c.setState(SurfaceChecked)
		c.pending.Add(1)
		go c.initialize(ctx)
	})
}

// Initialized is closed once the map is Ready or Failed.
func (c *Controller) Initialized() <-chan struct{} {
	return c.initialized
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

// Wait blocks until initialization and all running fetch cycles returned.
func (c *Controller) Wait() {
	c.pending.Wait()
}

func (c *Controller) initialize(ctx context.Context) {
	defer c.pending.Done()
	defer close(c.initialized)

	cv, err := c.Provider.Acquire(ctx)
	if err != nil {
		c.fail("failed to load map provider", err)
		return
	}
	if err = ctx.Err(); err != nil {
		c.fail("map initialization canceled", err)
		return
	}
	if err = cv.SetView(c.view); err != nil {
		c.fail("failed to set map view", err)
		return
	}
	c.setState(MapCreated)
	if err = cv.AddTileLayer(c.tiles); err != nil {
		c.fail("failed to attach base tile layer", err)
		return
	}
	c.setState(BaseLayerAttached)

	markers := marker.New(cv)
	c.mu.Lock()
	c.canvas = cv
	c.markers = markers
	c.mu.Unlock()
	c.observeCollections(markers)

	c.seedStatic()
	c.launchFetch()
	c.setState(Ready)
	cv.OnAction(c.HandleAction)
	c.Logger.Info("map initialized", slog.String("provider", c.Provider.Name()),
		slog.String("center", c.view.Center.String()), slog.Int("zoom", c.view.Zoom))
}

func (c *Controller) fail(msg string, err error) {
	c.Logger.Error(msg, logger.Err(err), slog.String("provider", c.Provider.Name()))
	c.setState(Failed)
}

func (c *Controller) setState(state State) {
	c.state.Store(int32(state))
	c.Logger.Debug("map view state changed", slog.String("state", state.String()))
}

func (c *Controller) observeCollections(markers *marker.Manager) {
	if c.Metrics == nil {
		return
	}
	for _, collection := range marker.Collections {
		err := c.Metrics.ObserveCollection(collection.String(), func() int { return markers.Len(collection) })
		if err != nil {
			c.Logger.Warn("failed to observe marker collection", logger.Err(err))
		}
	}
}

// seedStatic inserts the fixed set of markers. Earlier static markers are kept.
func (c *Controller) seedStatic() {
	for _, static := range c.statics {
		var opts []marker.InsertOption
		if static.OpenPopup {
			opts = append(opts, marker.WithOpenPopup())
		}
		spec, ok := c.Icons.Get(static.Category)
		if !ok {
			spec = c.Icons.MustGet(icon.Generic)
		}
		if _, err := c.markers.Insert(marker.Static, static.Coordinate, spec, c.Presenter.StaticPopup(static.Label),
			opts...); err != nil {
			c.Logger.Error("failed to insert static marker", logger.Err(err))
			continue
		}
		c.countInsert(marker.Static)
	}
}

func (c *Controller) countInsert(collection marker.Collection) {
	if c.Metrics != nil {
		c.Metrics.MarkersInserted.WithLabelValues(collection.String()).Inc()
	}
}

// markersIfReady returns the marker manager or ErrNotReady.
func (c *Controller) markersIfReady() (*marker.Manager, error) {
	if c.State() != Ready {
		return nil, ErrNotReady
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.markers, nil
}

func (c *Controller) notify(action canvas.Action) {
	c.mu.RLock()
	cv := c.canvas
	c.mu.RUnlock()
	if msg := c.Presenter.Notification(action); msg != "" && cv != nil {
		cv.Notify(msg)
	}
}
