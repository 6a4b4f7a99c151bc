// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service wires the map view together and runs it until the context is canceled.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/canvas/web"
	"github.com/deepak-ramesh/map-task/internal/config"
	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/geocode"
	nominatim "github.com/deepak-ramesh/map-task/internal/geocode/provider/osm-nominatim"
	"github.com/deepak-ramesh/map-task/internal/geodata"
	"github.com/deepak-ramesh/map-task/internal/geodata/provider/overpass"
	"github.com/deepak-ramesh/map-task/internal/http"
	"github.com/deepak-ramesh/map-task/internal/icon"
	"github.com/deepak-ramesh/map-task/internal/logger"
	"github.com/deepak-ramesh/map-task/internal/mapview"
	"github.com/deepak-ramesh/map-task/internal/metrics"
	"github.com/deepak-ramesh/map-task/internal/presenter"
	"github.com/deepak-ramesh/map-task/internal/surface"
)

const (
	refreshJobName  = "dynamic_refresh_job"
	shutdownTimeout = time.Second * 5
)

type Service struct {
	SignalSrc signalSource

	config     *config.Config
	logger     *logger.Logger
	t          *spreak.Localizer
	http       *http.Client
	scheduler  gocron.Scheduler
	metrics    *metrics.Metrics
	presenter  *presenter.Presenter
	source     geodata.Source
	geocoder   geocode.Geocoder
	web        *web.Provider
	controller *mapview.Controller

	background sync.WaitGroup
	captionMu  sync.RWMutex
	caption    string
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	pres, err := presenter.New(conf, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}
	icons, err := icon.NewSet(conf.Icons.Root, conf.Icons.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon set: %w", err)
	}

	client := http.New(log)
	serv := &Service{
		SignalSrc: stdLibSignalSource{},
		config:    conf,
		logger:    log,
		t:         t,
		http:      client,
		scheduler: scheduler,
		metrics:   metrics.New(),
		presenter: pres,
		source:    overpass.New(client, conf.GeoData.Endpoint, conf.GeoData.Timeout),
	}
	if !conf.GeoCoder.Disable {
		serv.geocoder = nominatim.New(client, t.Language())
	}

	var provider canvas.Provider = noCanvas{}
	if conf.Server.Listen != "" {
		serv.web, err = web.New(conf.Server.Listen, log, web.WithMetricsHandler(serv.metrics.Handler()),
			web.WithActionLabels(pres.ActionLabel))
		if err != nil {
			return nil, fmt.Errorf("failed to create map canvas provider: %w", err)
		}
		provider = serv.web
	}

	serv.controller, err = mapview.New(conf, mapview.Dependencies{
		Guard:     surface.FromConfig(conf),
		Provider:  provider,
		Source:    serv.source,
		Icons:     icons,
		Presenter: pres,
		Metrics:   serv.metrics,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create map view: %w", err)
	}
	return serv, nil
}

// Run starts the map view, the periodic refresh and the signal handler, and blocks until ctx
// is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.config.Intervals.DynamicRefresh > 0 {
		if err := s.createScheduledJob(ctx, s.config.Intervals.DynamicRefresh, s.refreshDynamic,
			refreshJobName); err != nil {
			return err
		}
	}
	s.scheduler.Start()

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.resolveCaption(ctx)
	}()
	s.controller.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGUSR1, syscall.SIGUSR2)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		defer s.SignalSrc.Stop(sigChan)
		s.HandleSignals(ctx, sigChan)
	}()

	<-ctx.Done()
	return s.shutdown()
}

// ListFeatures runs a single fetch cycle and writes the found locations as a table to w. No map
// is created.
func (s *Service) ListFeatures(ctx context.Context, w io.Writer) error {
	center := s.center()
	features, err := s.source.Fetch(ctx, geodata.Query{Center: center, Radius: s.config.GeoData.Radius})
	if err != nil {
		return fmt.Errorf("failed to fetch dynamic locations: %w", err)
	}
	s.resolveCaption(ctx)
	return s.presenter.FeatureTable(w, s.Caption(), center, features)
}

// Caption returns the resolved name of the map center, if any.
func (s *Service) Caption() string {
	s.captionMu.RLock()
	defer s.captionMu.RUnlock()
	return s.caption
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// refreshDynamic replaces the dynamic markers with a fresh fetch. Nothing happens until the map
// is ready.
func (s *Service) refreshDynamic(ctx context.Context) {
	if s.controller.State() != mapview.Ready {
		s.logger.Debug("map view not ready, skipping dynamic refresh",
			slog.String("state", s.controller.State().String()))
		return
	}
	if err := s.controller.RefreshDynamic(ctx); err != nil {
		s.logger.Error("failed to refresh dynamic locations", logger.Err(err))
		return
	}
	_, dynamic := s.controller.MarkerCounts()
	s.logger.Debug("dynamic locations refreshed", slog.Int("count", dynamic))
}

// resolveCaption reverse geocodes the map center and shows the result above the map.
func (s *Service) resolveCaption(ctx context.Context) {
	if s.geocoder == nil || s.Caption() != "" {
		return
	}
	address, err := s.geocoder.Reverse(ctx, s.center())
	if err != nil {
		s.logger.Error("failed to reverse geocode map center", logger.Err(err),
			slog.String("geocoder", s.geocoder.Name()))
		return
	}
	caption := address.Caption()
	if caption == "" {
		s.logger.Debug("no address found for map center", slog.String("center", s.center().String()))
		return
	}

	s.captionMu.Lock()
	s.caption = caption
	s.captionMu.Unlock()
	if s.web != nil {
		s.web.SetCaption(caption)
	}
	s.logger.Debug("map center resolved", slog.String("caption", caption),
		slog.String("geocoder", s.geocoder.Name()))
}

func (s *Service) center() geo.Coordinate {
	return geo.Coordinate{Lat: s.config.Map.CenterLat, Lon: s.config.Map.CenterLon}
}

func (s *Service) shutdown() error {
	var errs []error
	if err := s.scheduler.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down scheduler: %w", err))
	}
	s.controller.Wait()
	s.background.Wait()

	if s.web != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.web.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close map canvas: %w", err))
		}
	}
	return errors.Join(errs...)
}

// noCanvas stands in for the web provider when no listen address is configured. The surface
// guard fails in that case, so it is never acquired.
type noCanvas struct{}

func (noCanvas) Name() string { return "none" }

func (noCanvas) Acquire(context.Context) (canvas.Canvas, error) {
	return nil, fmt.Errorf("%w: no listen address configured", canvas.ErrProviderUnavailable)
}
