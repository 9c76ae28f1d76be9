package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tbxark/briefing"
	"github.com/tbxark/briefing/agent"
	"github.com/tbxark/briefing/dispatch"
	"go.uber.org/zap"
)

func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (s *Server) Schema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(s.flow.Schema()))
}

func (s *Server) ShowForm(c *gin.Context) {
	state, err := s.flow.Get(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to read session", zap.Error(err))
		c.String(http.StatusInternalServerError, agent.AlertMessage)
		return
	}
	data := newPageData(state.FormState, briefing.FieldErrorsFromStrings(state.Errors))
	data.Processing = state.Processing()
	s.render(c, http.StatusOK, data)
}

// SubmitForm applies every posted field, then submits the session.
func (s *Server) SubmitForm(c *gin.Context) {
	ctx, capture := dispatch.WithCapture(c.Request.Context())
	for _, f := range briefing.Fields() {
		value, ok := c.GetPostForm(string(f))
		if !ok {
			continue
		}
		if _, err := s.flow.Update(ctx, string(f), value); err != nil {
			s.logger.Warn("Rejected form value", zap.String("field", string(f)), zap.Error(err))
			s.renderState(c, http.StatusBadRequest, "Valor inválido para "+string(f)+".", "")
			return
		}
	}

	outcome, err := s.flow.Submit(ctx)
	switch {
	case errors.Is(err, agent.ErrSubmissionInFlight):
		s.renderState(c, http.StatusConflict, "Aguarde, o envio anterior ainda está em andamento.", "")
	case err != nil:
		s.renderState(c, http.StatusInternalServerError, agent.AlertMessage, "")
	case len(outcome.Errors) > 0:
		s.renderState(c, http.StatusUnprocessableEntity, "", "")
	default:
		s.renderState(c, http.StatusOK, "", capture.URL())
	}
}

func (s *Server) renderState(c *gin.Context, status int, alert, link string) {
	state, err := s.flow.Get(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to read session", zap.Error(err))
		c.String(http.StatusInternalServerError, agent.AlertMessage)
		return
	}
	data := newPageData(state.FormState, briefing.FieldErrorsFromStrings(state.Errors))
	data.Alert = alert
	data.DeepLink = link
	data.Processing = state.Processing()
	s.render(c, status, data)
}

func (s *Server) render(c *gin.Context, status int, data pageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		s.logger.Error("Failed to render page", zap.Error(err))
	}
}

func (s *Server) SessionState(c *gin.Context) {
	state, err := s.flow.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": agent.AlertMessage})
		return
	}
	c.JSON(http.StatusOK, state)
}

type fieldUpdate struct {
	Value string `json:"value"`
}

func (s *Server) UpdateField(c *gin.Context) {
	var req fieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	state, err := s.flow.Update(c.Request.Context(), c.Param("field"), req.Value)
	switch {
	case errors.Is(err, agent.ErrUnknownField):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, briefing.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		s.logger.Error("Failed to update field", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": agent.AlertMessage})
	default:
		c.JSON(http.StatusOK, state)
	}
}

type submitResponse struct {
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
	URL     string            `json:"url,omitempty"`
}

// SubmitJSON runs one complete submission in a throwaway session. Absent
// fields keep their defaults.
func (s *Server) SubmitJSON(c *gin.Context) {
	values := briefing.NewFieldValues()
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	if err := briefing.CheckOptions(values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := agent.WithStateKey(c.Request.Context(), "api:"+uuid.NewString())
	ctx, capture := dispatch.WithCapture(ctx)
	defer func() {
		if err := s.flow.Reset(ctx); err != nil {
			s.logger.Warn("Failed to drop API session", zap.Error(err))
		}
	}()

	if _, err := s.flow.Prefill(ctx, values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome, err := s.flow.Submit(ctx)
	switch {
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": agent.AlertMessage})
	case len(outcome.Errors) > 0:
		c.JSON(http.StatusUnprocessableEntity, submitResponse{Errors: outcome.Errors})
	default:
		c.JSON(http.StatusOK, submitResponse{Message: outcome.Message, URL: capture.URL()})
	}
}
