// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/logger"
)

// Event types pushed to the browser.
const (
	EventSnapshot      = "snapshot"
	EventCaption       = "caption"
	EventView          = "view"
	EventTileLayer     = "tile_layer"
	EventMarkerAdded   = "marker_added"
	EventMarkerRemoved = "marker_removed"
	EventNotification  = "notification"
)

type markerState struct {
	ID        string  `json:"id"`
	Layer     string  `json:"layer"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	IconURL   string  `json:"icon_url,omitempty"`
	IconSize  [2]int  `json:"icon_size"`
	Popup     string  `json:"popup"`
	OpenPopup bool    `json:"open_popup"`
}

type snapshot struct {
	Caption    string             `json:"caption"`
	View       *canvas.View       `json:"view"`
	TileLayers []canvas.TileLayer `json:"tile_layers"`
	Markers    []markerState      `json:"markers"`
}

type event struct {
	Type      string            `json:"type"`
	Snapshot  *snapshot         `json:"snapshot,omitempty"`
	Caption   string            `json:"caption,omitempty"`
	View      *canvas.View      `json:"view,omitempty"`
	TileLayer *canvas.TileLayer `json:"tile_layer,omitempty"`
	Marker    *markerState      `json:"marker,omitempty"`
	ID        string            `json:"id,omitempty"`
	Message   string            `json:"message,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Canvas holds the authoritative map state. Every mutation is broadcast while the state lock is
// held, so a page that receives a snapshot never misses or duplicates a later event.
type Canvas struct {
	logger *logger.Logger
	hub    *hub
	engine *gin.Engine

	mu      sync.RWMutex
	closed  bool
	caption string
	view    *canvas.View
	layers  []canvas.TileLayer
	markers map[string]markerState
	order   []string
	handler canvas.ActionHandler
	labels  func(canvas.Action) string
}

func newCanvas(log *logger.Logger, metrics http.Handler) *Canvas {
	cv := &Canvas{
		logger:  log,
		hub:     newHub(log),
		markers: make(map[string]markerState),
	}
	cv.engine = cv.routes(metrics)
	return cv
}

// Handler returns the HTTP handler serving the page, the API and the websocket.
func (c *Canvas) Handler() http.Handler {
	return c.engine
}

func (c *Canvas) SetCaption(caption string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caption = caption
	c.broadcast(event{Type: EventCaption, Caption: caption})
}

func (c *Canvas) SetView(view canvas.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return canvas.ErrCanvasClosed
	}
	c.view = &view
	c.broadcast(event{Type: EventView, View: &view})
	return nil
}

func (c *Canvas) AddTileLayer(layer canvas.TileLayer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return canvas.ErrCanvasClosed
	}
	c.layers = append(c.layers, layer)
	c.broadcast(event{Type: EventTileLayer, TileLayer: &layer})
	return nil
}

func (c *Canvas) AddMarker(marker canvas.Marker) {
	state := markerState{
		ID:        marker.ID,
		Layer:     marker.Layer,
		Lat:       marker.Coordinate.Lat,
		Lon:       marker.Coordinate.Lon,
		Popup:     marker.Popup,
		OpenPopup: marker.OpenPopup,
	}
	if marker.Icon != nil {
		state.IconURL = marker.Icon.URL()
		state.IconSize[0], state.IconSize[1] = marker.Icon.Size()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if _, ok := c.markers[state.ID]; !ok {
		c.order = append(c.order, state.ID)
	}
	c.markers[state.ID] = state
	c.broadcast(event{Type: EventMarkerAdded, Marker: &state})
}

func (c *Canvas) RemoveMarker(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.markers[id]; !ok {
		return
	}
	delete(c.markers, id)
	c.order = lo.Without(c.order, id)
	c.broadcast(event{Type: EventMarkerRemoved, ID: id})
}

func (c *Canvas) Notify(message string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.broadcast(event{Type: EventNotification, Message: message})
}

func (c *Canvas) OnAction(handler canvas.ActionHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// MarkerCount returns the number of markers currently drawn.
func (c *Canvas) MarkerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.markers)
}

func (c *Canvas) actionHandler() canvas.ActionHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handler
}

// snapshotLocked must be called with c.mu held.
func (c *Canvas) snapshotLocked() *snapshot {
	snap := &snapshot{
		Caption:    c.caption,
		TileLayers: append([]canvas.TileLayer{}, c.layers...),
		Markers:    lo.Map(c.order, func(id string, _ int) markerState { return c.markers[id] }),
	}
	if c.view != nil {
		view := *c.view
		snap.View = &view
	}
	return snap
}

func (c *Canvas) snapshot() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// broadcast must be called with c.mu held.
func (c *Canvas) broadcast(ev event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	c.hub.broadcast(ev)
}

func (c *Canvas) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.hub.closeAll()
}
