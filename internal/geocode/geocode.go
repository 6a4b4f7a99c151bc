// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode resolves the map center into a human readable place.
package geocode

import (
	"context"
	"strings"

	"github.com/deepak-ramesh/map-task/internal/geo"
)

type Address struct {
	AddressFound bool
	Coordinate   geo.Coordinate
	DisplayName  string
	Country      string
	State        string
	City         string
	CityDistrict string
	Suburb       string
	Street       string
}

type Geocoder interface {
	Name() string
	Reverse(ctx context.Context, coords geo.Coordinate) (Address, error)
}

// Caption returns a short place name such as "Temple Bar, Dublin". It falls back to the display
// name and returns an empty string for addresses that were not found.
func (a Address) Caption() string {
	if !a.AddressFound {
		return ""
	}
	var parts []string
	for _, part := range []string{a.Suburb, a.City} {
		if part != "" && (len(parts) == 0 || parts[len(parts)-1] != part) {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return a.DisplayName
	}
	return strings.Join(parts, ", ")
}
