package server

import (
	"github.com/labstack/echo/v4"

	"github.com/paratus/tasks/internal/application/invalidation"
)

// invalidationMiddleware gives each request a collector for the query keys its
// mutations invalidate and reports them in invalidation.HeaderName once the
// response is written.
func (s *Server) invalidationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			collector := invalidation.NewCollector()
			req := c.Request()
			c.SetRequest(req.WithContext(invalidation.WithCollector(req.Context(), collector)))

			c.Response().Before(func() {
				keys := collector.Keys()
				if len(keys) == 0 {
					return
				}
				c.Response().Header().Set(invalidation.HeaderName, invalidation.FormatHeader(keys))
			})

			return next(c)
		}
	}
}
