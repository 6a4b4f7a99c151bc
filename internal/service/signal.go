// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepak-ramesh/map-task/internal/logger"
	"github.com/deepak-ramesh/map-task/internal/marker"
)

type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// stdLibSignalSource is the production implementation.
type stdLibSignalSource struct{}

func (stdLibSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (stdLibSignalSource) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// HandleSignals refreshes the dynamic markers on SIGUSR1 and logs the current map state on SIGUSR2
func (s *Service) HandleSignals(ctx context.Context, sigChan chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigChan:
			switch sig {
			case syscall.SIGUSR1:
				if err := s.controller.RefreshDynamic(ctx); err != nil {
					s.logger.Error("failed to refresh dynamic locations", logger.Err(err))
				}
			case syscall.SIGUSR2:
				static, dynamic := s.controller.MarkerCounts()
				s.logger.Info("current map state", slog.String("state", s.controller.State().String()),
					slog.Int("static", static), slog.Int("dynamic", dynamic),
					slog.String("fetch", s.presenter.FetchStatus(s.controller.LastFetch())),
					slog.String("caption", s.Caption()))
				s.logMarkers()
			}
		}
	}
}

func (s *Service) logMarkers() {
	for _, collection := range marker.Collections {
		for _, handle := range s.controller.Markers(collection) {
			s.logger.Debug("map marker", slog.String("collection", collection.String()),
				slog.String("id", handle.ID()), slog.String("coordinate", handle.Coordinate().String()),
				slog.String("icon", string(handle.Icon().Category())))
		}
	}
}
