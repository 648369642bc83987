// Package api exposes the grader over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/scheduler"
	"github.com/mini-maxit/grader/pkg/constants"
	pkgerrors "github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"go.uber.org/zap"
)

type Server struct {
	scheduler scheduler.Scheduler
	engine    *gin.Engine
	logger    *zap.SugaredLogger
}

type gradeRequest struct {
	Language   string              `json:"language" binding:"required"`
	SourceCode string              `json:"source_code"`
	TestCases  []messages.TestCase `json:"test_cases"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(scheduler scheduler.Scheduler) *Server {
	s := &Server{
		scheduler: scheduler,
		engine:    gin.New(),
		logger:    logger.NewNamedLogger("http"),
	}

	s.engine.Use(requestID(), recovery(s.logger), accessLog(s.logger), bodyLimit(constants.MaxRequestBodyBytes))

	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/v1")
	v1.POST("/trial", s.grade(constants.ModeTrial))
	v1.POST("/submit", s.grade(constants.ModeSubmit))
	v1.GET("/languages", s.languages)
	v1.GET("/status", s.status)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) languages(c *gin.Context) {
	c.JSON(http.StatusOK, messages.ResponseHandshakePayload{Languages: s.scheduler.GetSupportedLanguages()})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, s.scheduler.GetWorkersStatus())
}

func (s *Server) grade(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID := c.GetString(requestIDKey)

		var req gradeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if isBodyTooLarge(err) {
				c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
				return
			}
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}

		// Reject unknown languages before occupying a worker.
		if _, err := languages.ParseLanguageType(req.Language); err != nil {
			s.writeError(c, messageID, err)
			return
		}

		result, err := s.scheduler.Grade(c.Request.Context(), messageID, &messages.TaskQueueMessage{
			Mode:         mode,
			LanguageType: req.Language,
			SourceCode:   req.SourceCode,
			TestCases:    req.TestCases,
		})
		if err != nil {
			s.writeError(c, messageID, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) writeError(c *gin.Context, messageID string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Errorf("Grading failed [MsgID: %s]: %s", messageID, err)
	} else {
		s.logger.Infof("Rejected request [MsgID: %s]: %s", messageID, err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidLanguageType),
		errors.Is(err, pkgerrors.ErrInvalidMode),
		errors.Is(err, pkgerrors.ErrEmptySourceCode):
		return http.StatusBadRequest
	case errors.Is(err, pkgerrors.ErrNoTestCases):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pkgerrors.ErrFailedToGetFreeWorker):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
