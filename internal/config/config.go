// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"

	"github.com/deepak-ramesh/map-task/internal/geo"
)

const (
	configEnv = "MAPTASK"

	// MaxZoom is the deepest zoom level the map view accepts.
	MaxZoom = 25

	DefaultDynamicPopupTpl = `<b>{{.Name}}</b>{{if .Website}}<br><a href="{{.Website}}" target="_blank">{{loc "Website"}}</a>{{end}}`
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Server struct {
		Listen   string `fig:"listen" default:"127.0.0.1:8080"`
		Headless bool   `fig:"headless"`
	} `fig:"server"`

	Map struct {
		CenterLat   float64 `fig:"center_lat" default:"53.3429"`
		CenterLon   float64 `fig:"center_lon" default:"-6.2675"`
		Zoom        int     `fig:"zoom" default:"25"`
		TileURL     string  `fig:"tile_url" default:"https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`
		Attribution string  `fig:"attribution" default:"© OpenStreetMap contributors"`
	} `fig:"map"`

	Icons struct {
		Root string `fig:"root" default:"assets/icons"`
		Size int    `fig:"size" default:"20"`
	} `fig:"icons"`

	GeoData struct {
		Endpoint string        `fig:"endpoint" default:"https://overpass-api.de/api/interpreter"`
		Radius   float64       `fig:"radius" default:"300"`
		Timeout  time.Duration `fig:"timeout" default:"30s"`
	} `fig:"geodata"`

	Intervals struct {
		// Zero disables the periodic refresh
		DynamicRefresh time.Duration `fig:"dynamic_refresh" default:"0s"`
	} `fig:"intervals"`

	Templates struct {
		DynamicPopup string `fig:"dynamic_popup"`
	} `fig:"templates"`

	GeoCoder struct {
		Disable bool `fig:"disable"`
	} `fig:"geocoder"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if center := (geo.Coordinate{Lat: c.Map.CenterLat, Lon: c.Map.CenterLon}); !center.Valid() {
		return fmt.Errorf("invalid map center: %s", center)
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > MaxZoom {
		return fmt.Errorf("invalid map zoom: %d", c.Map.Zoom)
	}
	if c.Map.TileURL == "" {
		return fmt.Errorf("map tile url must not be empty")
	}
	if c.Icons.Size <= 0 {
		return fmt.Errorf("invalid icon size: %d", c.Icons.Size)
	}
	if c.GeoData.Endpoint == "" {
		return fmt.Errorf("geodata endpoint must not be empty")
	}
	if c.GeoData.Radius <= 0 {
		return fmt.Errorf("invalid geodata search radius: %f", c.GeoData.Radius)
	}
	if c.GeoData.Timeout < 0 {
		return fmt.Errorf("invalid geodata timeout: %s", c.GeoData.Timeout)
	}
	if c.Intervals.DynamicRefresh < 0 {
		return fmt.Errorf("invalid dynamic refresh interval: %s", c.Intervals.DynamicRefresh)
	}
	if !c.Server.Headless && c.Server.Listen == "" {
		return fmt.Errorf("server listen address must not be empty")
	}
	if c.Templates.DynamicPopup == "" {
		c.Templates.DynamicPopup = DefaultDynamicPopupTpl
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
