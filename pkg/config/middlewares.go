package config

import (
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware installs the global middleware stack; request lines are written to zap.
func SetupMiddleware(e *echo.Echo, log *logger.Logger) {
	reqLog := log.With("component", "http")
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				reqLog.Warn("request",
					"method", v.Method, "uri", v.URI, "status", v.Status,
					"latency", v.Latency, "remote_ip", v.RemoteIP, "error", v.Error)
				return nil
			}
			reqLog.Info("request",
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "remote_ip", v.RemoteIP)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
}
