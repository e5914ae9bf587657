package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *MeetingHandler
	searchHandler  *SearchHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *MeetingHandler, searchHandler *SearchHandler) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		searchHandler:  searchHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupSearchRoutes(v1)
}

// setupMeetingRoutes configures meeting processing and history routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("/process", rt.meetingHandler.ProcessMeeting)
	meetingGroup.GET("", rt.meetingHandler.ListMeetings)
	meetingGroup.GET("/:id", rt.meetingHandler.GetMeeting)
	meetingGroup.GET("/:id/export", rt.meetingHandler.ExportMeeting)
}

// setupSearchRoutes configures semantic search routes
func (rt *Router) setupSearchRoutes(g *echo.Group) {
	g.POST("/search", rt.searchHandler.Search)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
