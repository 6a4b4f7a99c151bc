// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package overpass

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	stdhttp "net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/geodata"
	"github.com/deepak-ramesh/map-task/internal/http"
)

const (
	APIEndpoint = "https://overpass-api.de/api/interpreter"
	name        = "overpass"
)

type Overpass struct {
	http     *http.Client
	endpoint string
	timeout  time.Duration
}

// Response is the envelope returned by the interpreter. Elements stays raw so that a missing or
// non-array value can be told apart from an empty result.
type Response struct {
	Elements json.RawMessage `json:"elements"`
}

type Element struct {
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Tags Tags     `json:"tags"`
}

type Tags struct {
	Name    string `json:"name"`
	Website string `json:"website"`
}

// New returns an Overpass source. An empty endpoint selects APIEndpoint; a timeout of zero leaves
// the deadline to the caller's context.
func New(client *http.Client, endpoint string, timeout time.Duration) *Overpass {
	if endpoint == "" {
		endpoint = APIEndpoint
	}
	return &Overpass{
		http:     client,
		endpoint: endpoint,
		timeout:  timeout,
	}
}

func (o *Overpass) Name() string {
	return name
}

// BuildQuery renders the Overpass QL selecting every named node around the query center.
func BuildQuery(query geodata.Query) string {
	return fmt.Sprintf(`[out:json];node(around:%s,%s,%s)["name"];out;`,
		strconv.FormatFloat(query.Radius, 'f', -1, 64),
		strconv.FormatFloat(query.Center.Lat, 'f', -1, 64),
		strconv.FormatFloat(query.Center.Lon, 'f', -1, 64),
	)
}

func (o *Overpass) Fetch(ctx context.Context, query geodata.Query) ([]geodata.LocationFeature, error) {
	var result Response
	values := url.Values{}
	values.Set("data", BuildQuery(query))

	code, err := o.http.GetWithTimeout(ctx, o.endpoint, &result, values, nil, o.timeout)
	if code != 0 && code != stdhttp.StatusOK {
		return nil, &geodata.FetchError{
			Source:     name,
			StatusCode: code,
			Err:        fmt.Errorf("unexpected response status: %s", stdhttp.StatusText(code)),
		}
	}
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if code == stdhttp.StatusOK && (errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
			errors.Is(err, io.ErrUnexpectedEOF)) {
			err = fmt.Errorf("%w: %w", geodata.ErrMalformedResponse, err)
		}
		return nil, &geodata.FetchError{Source: name, Err: err}
	}

	features, err := Parse(result)
	if err != nil {
		return nil, &geodata.FetchError{Source: name, Err: err}
	}
	return features, nil
}

// Parse turns the response into location features. Elements with a null or absent lat or lon,
// or with an unexpected shape, are skipped. A lat or lon of 0 counts as present.
func Parse(response Response) ([]geodata.LocationFeature, error) {
	raw := bytes.TrimSpace(response.Elements)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: elements missing", geodata.ErrMalformedResponse)
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("%w: elements is not an array", geodata.ErrMalformedResponse)
	}

	return lo.FilterMap(elements, func(item json.RawMessage, _ int) (geodata.LocationFeature, bool) {
		var element Element
		if err := json.Unmarshal(item, &element); err != nil {
			return geodata.LocationFeature{}, false
		}
		if element.Lat == nil || element.Lon == nil {
			return geodata.LocationFeature{}, false
		}
		return geodata.LocationFeature{
			Coordinate: geo.Coordinate{Lat: *element.Lat, Lon: *element.Lon},
			Name:       element.Tags.Name,
			Website:    element.Tags.Website,
		}, true
	}), nil
}
