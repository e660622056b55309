package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is returned by the root liveness endpoint.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status reports that the process is up.
// GET /
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "Ludo relay is running"})
}

// Health is a plain-text probe for load balancers.
// GET /health
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
