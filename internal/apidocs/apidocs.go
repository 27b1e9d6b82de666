// Package apidocs serves the interactive API documentation: a Swagger UI page and the OpenAPI
// document it renders.
package apidocs

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

//go:embed openapi.json
var openAPIDocument []byte

// Register mounts the documentation below /api-docs.
func Register(router gin.IRoutes) {
	router.GET("/api-docs", serveUI)
	router.GET("/api-docs/openapi.json", serveDocument)
}

// serveUI responds with the Swagger UI page. The page is not cached so that a new deployment
// shows up immediately.
func serveUI(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func serveDocument(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", openAPIDocument)
}
