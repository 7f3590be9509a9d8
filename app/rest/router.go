// Package rest is the HTTP boundary: it routes requests to the
// services and translates domain failures to status codes.
package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter assembles the gin engine with both resource handlers and
// the shared middleware.
func NewRouter(categories CategoryService, products ProductService, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	NewCategoryHandler(categories, log).RegisterRoutes(router)
	NewProductHandler(products, log).RegisterRoutes(router)

	return router
}

// requestLogger logs one line per completed request.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("request completed")
	}
}

// parseID parses a path id. Ids are positive integers.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
