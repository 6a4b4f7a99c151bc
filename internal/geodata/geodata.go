// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geodata

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepak-ramesh/map-task/internal/geo"
)

// UnnamedLocation is shown for features without a name tag.
const UnnamedLocation = "Unnamed Location"

// ErrMalformedResponse is returned when a response does not carry a list of elements.
var ErrMalformedResponse = errors.New("malformed geodata response")

// Source is implemented by each geodata API backend.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query Query) ([]LocationFeature, error)
}

// Query selects the named points within Radius meters around Center.
type Query struct {
	Center geo.Coordinate
	Radius float64
}

// LocationFeature is a single point returned by a Source.
type LocationFeature struct {
	Coordinate geo.Coordinate
	Name       string
	Website    string
}

// Label returns the name of the feature, or UnnamedLocation when it has none.
func (f LocationFeature) Label() string {
	if f.Name == "" {
		return UnnamedLocation
	}
	return f.Name
}

// FetchError is returned when a fetch cycle fails. StatusCode is set for unexpected HTTP
// responses.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch geodata from %s (HTTP %d): %s", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch geodata from %s: %s", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
