// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/samber/lo"

	"github.com/deepak-ramesh/map-task/internal/canvas"
	"github.com/deepak-ramesh/map-task/internal/geo"
	"github.com/deepak-ramesh/map-task/internal/icon"
	"github.com/deepak-ramesh/map-task/internal/logger"
)

const geoJSONContentType = "application/geo+json"

//go:embed assets
var assetFS embed.FS

var indexTpl = template.Must(template.ParseFS(assetFS, "assets/index.html.tmpl"))

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type indexData struct {
	Caption string
	Actions []actionButton
}

type actionButton struct {
	Action canvas.Action
	Label  string
}

// checkIcons makes sure the image of every icon category is embedded.
func checkIcons() error {
	for category, file := range icon.Files() {
		if _, err := fs.Stat(assetFS, path.Join("assets", "icons", file)); err != nil {
			return fmt.Errorf("image for icon %s is not embedded: %w", category, err)
		}
	}
	return nil
}

func (c *Canvas) routes(metrics http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(c.logger))

	static, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	engine.StaticFS("/assets", http.FS(static))

	engine.GET("/", c.serveIndex)
	engine.GET("/ws", c.serveSocket)
	api := engine.Group("/api")
	api.GET("/state", c.serveState)
	api.GET("/markers.geojson", c.serveGeoJSON)
	api.POST("/actions/:action", c.serveAction)
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics))
	}
	return engine
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.Debug("http request", slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.Request.URL.Path), slog.Int("status", ctx.Writer.Status()),
			slog.Duration("duration", time.Since(start)))
	}
}

func (c *Canvas) serveIndex(ctx *gin.Context) {
	snap := c.snapshot()
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	buttons := lo.Map(canvas.Actions, func(action canvas.Action, _ int) actionButton {
		label := string(action)
		if c.labels != nil {
			label = c.labels(action)
		}
		return actionButton{Action: action, Label: label}
	})
	if err := indexTpl.Execute(ctx.Writer, indexData{Caption: snap.Caption, Actions: buttons}); err != nil {
		c.logger.Error("failed to render map page", logger.Err(err))
	}
}

func (c *Canvas) serveState(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.snapshot())
}

func (c *Canvas) serveGeoJSON(ctx *gin.Context) {
	snap := c.snapshot()
	collection := make(geom.GeoJSONFeatureCollection, 0, len(snap.Markers))
	for _, marker := range snap.Markers {
		point, err := geo.Coordinate{Lat: marker.Lat, Lon: marker.Lon}.Point()
		if err != nil {
			c.logger.Warn("skipping marker in GeoJSON export", logger.Err(err), slog.String("id", marker.ID))
			continue
		}
		collection = append(collection, geom.GeoJSONFeature{
			Geometry: point.AsGeometry(),
			ID:       marker.ID,
			Properties: map[string]interface{}{
				"layer": marker.Layer,
				"popup": marker.Popup,
				"icon":  marker.IconURL,
			},
		})
	}
	body, err := collection.MarshalJSON()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Data(http.StatusOK, geoJSONContentType, body)
}

func (c *Canvas) serveAction(ctx *gin.Context) {
	action := canvas.Action(ctx.Param("action"))
	if !lo.Contains(canvas.Actions, action) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": canvas.ErrUnknownAction.Error()})
		return
	}
	handler := c.actionHandler()
	if handler == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "map is not ready"})
		return
	}
	if err := handler(ctx.Request.Context(), action); err != nil {
		status := http.StatusConflict
		if errors.Is(err, canvas.ErrUnknownAction) {
			status = http.StatusNotFound
		}
		c.logger.Warn("map action failed", logger.Err(err), slog.String("action", string(action)))
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// serveSocket upgrades the connection and sends the current snapshot before any later event.
func (c *Canvas) serveSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Debug("failed to upgrade map page connection", logger.Err(err))
		return
	}

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		_ = conn.Close()
		return
	}
	cl := c.hub.attach(conn, event{Type: EventSnapshot, Snapshot: c.snapshotLocked(), Timestamp: time.Now()})
	c.mu.RUnlock()

	go c.hub.writePump(cl)
	go c.hub.readPump(cl)
}
