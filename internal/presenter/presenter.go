// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/config"
	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/geodata"
)

// PopupContext is the data the dynamic popup template is rendered with.
type PopupContext struct {
	Name      string
	Website   string
	Latitude  float64
	Longitude float64
}

type Presenter struct {
	localizer    *spreak.Localizer
	humanizer    *humanize.Humanizer
	dynamicPopup *template.Template
}

// New parses the popup template and renders it once with sample data, so broken templates are
// reported at startup.
func New(conf *config.Config, localizer *spreak.Localizer) (*Presenter, error) {
	if localizer == nil {
		return nil, fmt.Errorf("localizer is required")
	}
	collection := humanize.MustNew(humanize.WithLocale(de.New()))
	pres := &Presenter{
		localizer: localizer,
		humanizer: collection.CreateHumanizer(localizer.Language()),
	}

	tpl, err := template.New("dynamic_popup").Funcs(pres.templateFuncMap()).Parse(conf.Templates.DynamicPopup)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dynamic popup template: %w", err)
	}
	pres.dynamicPopup = tpl

	sample := geodata.LocationFeature{
		Coordinate: geo.Coordinate{Lat: conf.Map.CenterLat, Lon: conf.Map.CenterLon},
		Name:       "Sample",
		Website:    "https://example.com/",
	}
	if _, err = pres.DynamicPopup(sample); err != nil {
		return nil, fmt.Errorf("failed to render dynamic popup template: %w", err)
	}

	return pres, nil
}

// DynamicPopup renders the popup of a fetched feature. Features without a name are shown with the
// localized placeholder.
func (p *Presenter) DynamicPopup(feature geodata.LocationFeature) (string, error) {
	name := feature.Name
	if name == "" {
		name = p.localizer.Get(geodata.UnnamedLocation)
	}
	buf := bytes.NewBuffer(nil)
	err := p.dynamicPopup.Execute(buf, PopupContext{
		Name:      name,
		Website:   feature.Website,
		Latitude:  feature.Coordinate.Lat,
		Longitude: feature.Coordinate.Lon,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StaticPopup returns the localized label of a fixed marker.
func (p *Presenter) StaticPopup(label string) string {
	return p.localizer.Get(label)
}

// Notification returns the message shown after action completed, or an empty string for actions
// without one.
func (p *Presenter) Notification(action canvas.Action) string {
	msg, ok := notifications[action]
	if !ok {
		return ""
	}
	return p.localizer.Get(msg)
}

// ActionLabel returns the localized button label of action. Unknown actions are named by their
// identifier.
func (p *Presenter) ActionLabel(action canvas.Action) string {
	label, ok := actionLabels[action]
	if !ok {
		return string(action)
	}
	return p.localizer.Get(label)
}

// FetchStatus describes when the dynamic markers were last fetched.
func (p *Presenter) FetchStatus(at time.Time) string {
	if at.IsZero() {
		return p.localizer.Get("never fetched")
	}
	return p.localizer.Getf("last fetched %s", p.humanizer.NaturalTime(at))
}
