package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prepview/server/usecase"
)

// InitRoutes initializes all API routes. Synthesized audio is served
// statically from audioDir under /audio, matching the URLs the speech
// synthesizer hands out.
func InitRoutes(e *echo.Echo, svc *usecase.SessionService, audioDir string, logger *zap.Logger) {
	h := &handler{svc: svc, logger: logger}

	e.GET("/health", h.health)

	e.POST("/session/start", h.startSession)

	session := e.Group("/session/:id")
	session.POST("/config", h.setConfig)
	session.POST("/baseline", h.uploadBaseline)
	session.GET("/next_question", h.nextQuestion)
	session.POST("/answer", h.submitAnswer)
	session.POST("/finish", h.finishSession)
	session.POST("/survey", h.submitSurvey)

	e.GET("/sessions", h.listSummaries)
	e.GET("/sessions/download_all", h.downloadAll)
	e.GET("/sessions/:id/download", h.downloadSummary)

	e.Static("/audio", audioDir)
}
