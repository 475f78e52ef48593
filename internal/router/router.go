// Package router assembles the echo instance: global middleware, API
// routes and the static frontend.
package router

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/handler"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/middleware"
)

// Deps are the handlers and middleware the routes are built from.  Cache
// and RateLimit may be nil.
type Deps struct {
	Restaurants  *handler.RestaurantHandler
	Availability *handler.AvailabilityHandler
	Bookings     *handler.BookingHandler
	DB           handler.Pinger
	Session      middleware.SessionConfig
	Cache        echo.MiddlewareFunc
	RateLimit    echo.MiddlewareFunc
	PublicDir    string
	Log          *logger.Logger
}

// New returns an echo instance with every route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			d.Log.Info("http_request", v.RequestID, v.Method+" "+v.URI,
				slog.Int("status", v.Status),
				slog.Int64("latency_ms", v.Latency.Milliseconds()),
				slog.String("remote_ip", v.RemoteIP))
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("64K"))
	e.Use(middleware.Session(d.Session))

	RegisterRoutes(e, d)
	return e
}

// RegisterRoutes mounts the health check, the JSON API and the static
// frontend.  Restaurant reads go through the response cache; writes go
// through the rate limiter.
func RegisterRoutes(e *echo.Echo, d Deps) {
	cache := passThrough(d.Cache)
	limit := passThrough(d.RateLimit)

	e.GET("/healthz", handler.Health(d.DB))

	api := e.Group("/api")
	api.GET("/restaurants", d.Restaurants.List, cache)
	api.GET("/restaurants/:id", d.Restaurants.Get, cache)
	api.POST("/check-availability", d.Availability.Check, limit)
	api.POST("/bookings", d.Bookings.Create, limit)
	api.GET("/bookings/:id", d.Bookings.Get)
	api.GET("/bookings/:id/qrcode", d.Bookings.QRCode)
	api.Any("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	})

	if d.PublicDir != "" {
		e.Static("/", d.PublicDir)
	}
}

func passThrough(m echo.MiddlewareFunc) echo.MiddlewareFunc {
	if m == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return m
}
