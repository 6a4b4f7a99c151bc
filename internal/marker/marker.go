// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package marker tracks the markers drawn on the map in two disjoint collections.
package marker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/icon"
)

// ErrUnknownCollection is returned for a collection value other than Static or Dynamic.
var ErrUnknownCollection = errors.New("unknown marker collection")

// Collection names one of the marker collections.
type Collection int

const (
	Static Collection = iota
	Dynamic
)

// Collections lists every known collection.
var Collections = []Collection{Static, Dynamic}

func (c Collection) String() string {
	switch c {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("collection(%d)", int(c))
	}
}

// Handle references a marker drawn on the canvas.
type Handle struct {
	id         string
	collection Collection
	coordinate geo.Coordinate
	icon       *icon.Spec
	popup      string
}

func (h Handle) ID() string                 { return h.id }
func (h Handle) Collection() Collection     { return h.collection }
func (h Handle) Coordinate() geo.Coordinate { return h.coordinate }
func (h Handle) Icon() *icon.Spec           { return h.icon }
func (h Handle) Popup() string              { return h.popup }

type insertOptions struct {
	openPopup bool
}

// InsertOption modifies a single Insert call.
type InsertOption func(*insertOptions)

// WithOpenPopup opens the popup of the marker once it is drawn.
func WithOpenPopup() InsertOption {
	return func(o *insertOptions) {
		o.openPopup = true
	}
}

// Manager owns the static and dynamic collections. Drawing on the canvas and updating a
// collection happen under the same lock.
type Manager struct {
	canvas canvas.Canvas

	mu          sync.Mutex
	collections map[Collection][]Handle
}

func New(cv canvas.Canvas) *Manager {
	return &Manager{
		canvas:      cv,
		collections: map[Collection][]Handle{Static: nil, Dynamic: nil},
	}
}

// Insert draws a marker and appends its handle to collection. The coordinate is passed to the
// canvas as is.
func (m *Manager) Insert(collection Collection, coord geo.Coordinate, spec *icon.Spec, popup string,
	opts ...InsertOption,
) (Handle, error) {
	if !known(collection) {
		return Handle{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	options := insertOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	handle := Handle{
		id:         uuid.NewString(),
		collection: collection,
		coordinate: coord,
		icon:       spec,
		popup:      popup,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvas.AddMarker(canvas.Marker{
		ID:         handle.id,
		Layer:      collection.String(),
		Coordinate: coord,
		Icon:       spec,
		Popup:      popup,
		OpenPopup:  options.openPopup,
	})
	m.collections[collection] = append(m.collections[collection], handle)
	return handle, nil
}

// Clear removes every marker of collection from the canvas and empties it. It returns the number
// of markers removed.
func (m *Manager) Clear(collection Collection) (int, error) {
	if !known(collection) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	handles := m.collections[collection]
	for _, handle := range handles {
		m.canvas.RemoveMarker(handle.id)
	}
	m.collections[collection] = nil
	return len(handles), nil
}

// Len returns the size of collection. Unknown collections are empty.
func (m *Manager) Len(collection Collection) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[collection])
}

// Handles returns a copy of the handles in collection, in insertion order.
func (m *Manager) Handles(collection Collection) []Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Map(m.collections[collection], func(h Handle, _ int) Handle { return h })
}

func known(collection Collection) bool {
	return lo.Contains(Collections, collection)
}
