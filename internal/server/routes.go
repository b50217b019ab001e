package server

import (
	"net/http"

	"github.com/arpitbiyaniazz/ecooracal/internal/utility"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize bounds every request body; the largest field is 50,000 characters.
const maxBodySize = "256K"

// Advice routes, keyed by feature.
var featureRoutes = map[string]string{
	"water":       "/api/water-tips",
	"carbon":      "/api/carbon-tips",
	"electricity": "/api/electricity-tips",
	"esg":         "/api/esg-assessment",
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAccept, echo.HeaderContentType, echo.HeaderXRequestID},
		MaxAge:       300,
	}))
	e.Use(s.LoggerMiddleware)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger := utility.LoggerFromContext(c)
			evt := logger.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				evt = logger.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	// Operational routes
	e.GET("/health", s.healthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	// Advice routes
	e.GET("/api/features", s.featuresHandler)
	e.POST(featureRoutes["water"], s.waterTipsHandler)
	e.POST(featureRoutes["carbon"], s.carbonTipsHandler)
	e.POST(featureRoutes["electricity"], s.electricityTipsHandler)
	e.POST(featureRoutes["esg"], s.esgAssessmentHandler)

	return e
}

// LoggerMiddleware assigns a request ID and stores a logger carrying it in
// both the echo context and the request context.
func (s *Server) LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(utility.RequestIDKey, requestID)
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		logger := s.log.With().
			Str("request_id", requestID).
			Str("ip", utility.GetRealIP(c)).
			Logger()

		c.Set(utility.LoggerKey, &logger)
		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

		return next(c)
	}
}
