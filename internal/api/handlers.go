package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prepview/server/domain"
	"github.com/prepview/server/usecase"
)

type handler struct {
	svc    *usecase.SessionService
	logger *zap.Logger
}

func (h *handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "prepview-server",
	})
}

func (h *handler) startSession(c echo.Context) error {
	var req ConsentRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid_request", "Invalid request format")
	}

	sessionID, err := h.svc.Start(c.Request().Context(), req.Accepted)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, StartResponse{SessionID: sessionID})
}

func (h *handler) setConfig(c echo.Context) error {
	var req ConfigRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid_request", "Invalid request format")
	}

	config, err := req.ToEntity()
	if err != nil {
		return h.badRequest(c, "invalid_config", err.Error())
	}

	if err := h.svc.SetConfig(c.Request().Context(), c.Param("id"), config); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (h *handler) uploadBaseline(c echo.Context) error {
	var req BaselineRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid_request", "Invalid request format")
	}

	features, err := req.VoiceFeatures.ToEntity()
	if err != nil {
		return h.badRequest(c, "invalid_voice_features", err.Error())
	}

	if err := h.svc.UploadBaseline(c.Request().Context(), c.Param("id"), features); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (h *handler) nextQuestion(c echo.Context) error {
	question, err := h.svc.NextQuestion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, QuestionResponse{
		ID:       question.ID,
		Text:     question.Text,
		AudioURL: question.AudioURL,
	})
}

func (h *handler) submitAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid_request", "Invalid request format")
	}
	if req.QuestionID == nil {
		return h.badRequest(c, "invalid_request", "question_id is required")
	}

	features, err := req.VoiceFeatures.ToEntity()
	if err != nil {
		return h.badRequest(c, "invalid_voice_features", err.Error())
	}

	followup, audioURL, err := h.svc.SubmitAnswer(c.Request().Context(), c.Param("id"), *req.QuestionID, req.Transcript, features)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, FollowupResponse{
		FollowupText: followup,
		AudioURL:     audioURL,
	})
}

func (h *handler) finishSession(c echo.Context) error {
	summary, err := h.svc.Finish(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *handler) submitSurvey(c echo.Context) error {
	var req SurveyRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid_request", "Invalid request format")
	}

	survey, err := req.ToEntity()
	if err != nil {
		return h.badRequest(c, "invalid_survey", err.Error())
	}

	if err := h.svc.SubmitSurvey(c.Request().Context(), c.Param("id"), survey); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (h *handler) listSummaries(c echo.Context) error {
	count, ids, err := h.svc.ListSummaries()
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, ListResponse{Count: count, SessionIDs: ids})
}

func (h *handler) downloadSummary(c echo.Context) error {
	sessionID := c.Param("id")
	path, err := h.svc.SummaryFilePath(sessionID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.Attachment(path, sessionID+".json")
}

func (h *handler) downloadAll(c echo.Context) error {
	archive, err := h.svc.ArchiveAll()
	if err != nil {
		return h.errorResponse(c, err)
	}

	filename := "sessions-" + time.Now().Format("20060102-150405") + ".zip"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/zip", archive)
}

func (h *handler) badRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: code, Message: message})
}

// errorResponse maps the four domain error kinds to four distinguishable
// HTTP statuses, each with a stable error code.
func (h *handler) errorResponse(c echo.Context, err error) error {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: errorCode(err), Message: err.Error()})
	case domain.KindPreconditionFailed:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errorCode(err), Message: err.Error()})
	case domain.KindSequenceExhausted:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: errorCode(err), Message: err.Error()})
	case domain.KindPersistenceFailure:
		h.logger.Error("Persistence failure", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "persistence_failure",
			Message: "Failed to read or write durable storage",
		})
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, domain.ErrSummaryNotFound):
		return "summary_not_found"
	case errors.Is(err, domain.ErrConsentRequired):
		return "consent_not_accepted"
	case errors.Is(err, domain.ErrConfigNotSet):
		return "config_not_set"
	case errors.Is(err, domain.ErrConfigLocked):
		return "config_locked"
	case errors.Is(err, domain.ErrNoMoreQuestions):
		return "no_more_questions"
	default:
		return "internal_error"
	}
}
