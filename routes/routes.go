package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voicebook/handlers"
)

// RegisterRoutes wires the HTTP surface: the health root, the status
// endpoint, and the session/tool interface for the conversational layer.
func RegisterRoutes(r *gin.Engine, sh *handlers.SummaryHandler, sessions *handlers.SessionHandler) {
	r.GET("/", handlers.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/summary", sh.GetSummary)

		api.POST("/sessions", sessions.OpenSession)
		api.POST("/sessions/:sessionID/tools/:tool", sessions.InvokeTool)
		api.DELETE("/sessions/:sessionID", sessions.CloseSession)
	}
}

// CORS applies the permissive defaults the web frontend expects.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	})
}
