package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercatto/inventory-service/app/apperr"
	"github.com/mercatto/inventory-service/app/validation"
)

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}

func respondViolations(c *gin.Context, violations []validation.Violation) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "validation failed",
		"violations": violations,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
