// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package web implements a canvas that is drawn by Leaflet in the browser. The process keeps the
// authoritative map state and streams every change to connected pages over a websocket.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/logger"
)

const (
	name              = "leaflet-web"
	readHeaderTimeout = time.Second * 10
)

// Provider binds the HTTP listener on Acquire and serves the map page from then on.
type Provider struct {
	listen  string
	logger  *logger.Logger
	metrics http.Handler
	labels  func(canvas.Action) string

	mu      sync.Mutex
	caption string
	canvas   *Canvas
	server   *http.Server
	listener net.Listener
	addr     net.Addr
}

// Option configures a Provider.
type Option func(*Provider)

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(p *Provider) {
		p.metrics = h
	}
}

// WithCaption sets the caption shown above the map.
func WithCaption(caption string) Option {
	return func(p *Provider) {
		p.caption = caption
	}
}

// WithActionLabels sets the function naming the action buttons on the page. Without it the
// action identifiers are shown.
func WithActionLabels(fn func(canvas.Action) string) Option {
	return func(p *Provider) {
		p.labels = fn
	}
}

func New(listen string, log *logger.Logger, opts ...Option) (*Provider, error) {
	if listen == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if err := checkIcons(); err != nil {
		return nil, err
	}
	provider := &Provider{listen: listen, logger: log}
	for _, opt := range opts {
		opt(provider)
	}
	return provider, nil
}

func (p *Provider) Name() string {
	return name
}

// Acquire binds the listener and starts serving. Repeated calls return the same canvas.
func (p *Provider) Acquire(ctx context.Context) (canvas.Canvas, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.canvas != nil {
		return p.canvas, nil
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", p.listen)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to listen on %s: %w", canvas.ErrProviderUnavailable, p.listen, err)
	}

	cv := newCanvas(p.logger, p.metrics)
	cv.labels = p.labels
	cv.SetCaption(p.caption)
	server := &http.Server{
		Handler:           cv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("map canvas server stopped", logger.Err(err))
		}
	}()

	p.canvas = cv
	p.server = server
	p.listener = listener
	p.addr = listener.Addr()
	p.logger.Info("map canvas available", slog.String("url", "http://"+p.addr.String()+"/"))
	return cv, nil
}

// SetCaption updates the caption, before or after the canvas was acquired.
func (p *Provider) SetCaption(caption string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.caption = caption
	if p.canvas != nil {
		p.canvas.SetCaption(caption)
	}
}

// Addr returns the bound listener address, or nil before Acquire succeeded.
func (p *Provider) Addr() net.Addr {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addr
}

// Close disconnects all pages and shuts the HTTP server down.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	cv, server, listener := p.canvas, p.server, p.listener
	p.mu.Unlock()
	if cv == nil {
		return nil
	}
	cv.close()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down map canvas server: %w", err)
	}
	// Serve may not have taken over the listener yet
	if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to close map canvas listener: %w", err)
	}
	return nil
}
