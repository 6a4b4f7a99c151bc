// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package canvas defines the map rendering collaborator. A Provider is acquired once and yields
// the Canvas the map view draws on.
package canvas

import (
	"context"
	"errors"

	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/icon"
)

var (
	// ErrProviderUnavailable is returned by Provider.Acquire when no canvas can be created.
	ErrProviderUnavailable = errors.New("map provider unavailable")

	// ErrCanvasClosed is returned by canvas operations after the canvas has been closed.
	ErrCanvasClosed = errors.New("map canvas is closed")

	// ErrUnknownAction is returned by action handlers for actions they do not implement.
	ErrUnknownAction = errors.New("unknown map action")
)

// Provider is implemented by each rendering backend.
type Provider interface {
	Name() string
	Acquire(ctx context.Context) (Canvas, error)
}

// Canvas is a single map surface. Marker operations never fail; a closed canvas drops them.
type Canvas interface {
	SetView(view View) error
	AddTileLayer(layer TileLayer) error
	AddMarker(marker Marker)
	RemoveMarker(id string)
	Notify(message string)
	OnAction(handler ActionHandler)
}

// View is the visible map region.
type View struct {
	Center geo.Coordinate `json:"center"`
	Zoom   int            `json:"zoom"`
}

// TileLayer is the base imagery drawn beneath the markers.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Marker is a point annotation as the canvas draws it.
type Marker struct {
	ID         string
	Layer      string
	Coordinate geo.Coordinate
	Icon       *icon.Spec
	Popup      string
	OpenPopup  bool
}

// Action is a user triggered map action.
type Action string

const (
	ActionReloadStatic   Action = "reload-static"
	ActionClearStatic    Action = "clear-static"
	ActionClearDynamic   Action = "clear-dynamic"
	ActionRefetchDynamic Action = "refetch-dynamic"
)

// Actions lists every action a canvas offers to the user.
var Actions = []Action{ActionReloadStatic, ActionClearStatic, ActionClearDynamic, ActionRefetchDynamic}

// ActionHandler executes a user triggered action.
type ActionHandler func(ctx context.Context, action Action) error
