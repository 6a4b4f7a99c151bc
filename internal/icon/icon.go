// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package icon holds the immutable marker icon definitions shared by all markers of a category.
package icon

import (
	"fmt"
	"path"
)

// Category labels a group of markers sharing the same icon.
type Category string

const (
	Hotel       Category = "hotel"
	Restaurant  Category = "restaurant"
	TouristSpot Category = "tourist_spot"
	Generic     Category = "generic"
)

// files maps each category to its image file below the asset root.
var files = map[Category]string{
	Hotel:       "hotel.png",
	Restaurant:  "restaurant.png",
	TouristSpot: "tourist.png",
	Generic:     "map_icon.png",
}

// Spec describes how a marker icon is drawn. A Spec is never modified after construction.
type Spec struct {
	category Category
	url      string
	width    int
	height   int
}

func (s *Spec) Category() Category { return s.category }
func (s *Spec) URL() string        { return s.url }
func (s *Spec) Size() (int, int)   { return s.width, s.height }

// Set is the fixed registry of icon specs, one per category.
type Set struct {
	specs map[Category]*Spec
}

// NewSet builds the icon registry with every image resolved relative to root and drawn at
// size x size pixels.
func NewSet(root string, size int) (*Set, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size: %d", size)
	}
	set := &Set{specs: make(map[Category]*Spec, len(files))}
	for category, file := range files {
		set.specs[category] = &Spec{
			category: category,
			url:      path.Join(root, file),
			width:    size,
			height:   size,
		}
	}
	return set, nil
}

// Get returns the spec for category.
func (s *Set) Get(category Category) (*Spec, bool) {
	spec, ok := s.specs[category]
	return spec, ok
}

// MustGet returns the spec for category and panics on an unknown category. Only the package
// constants are valid arguments.
func (s *Set) MustGet(category Category) *Spec {
	spec, ok := s.specs[category]
	if !ok {
		panic(fmt.Sprintf("unknown icon category: %q", category))
	}
	return spec
}

// Files returns the image file name of every category.
func Files() map[Category]string {
	out := make(map[Category]string, len(files))
	for k, v := range files {
		out[k] = v
	}
	return out
}
