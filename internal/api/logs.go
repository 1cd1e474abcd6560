package api

import (
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"MarketLens/internal/recorder"
)

type logRequest struct {
	Level     string `json:"level" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Source    string `json:"source"`
	JSONData  string `json:"jsonData"`
	RequestID string `json:"requestId"`
	ErrorCode *int   `json:"errorCode"`
	Tags      string `json:"tags"`
}

type logCreated struct {
	ID int64 `json:"id"`
}

func (s *server) recentLogs(c *gin.Context) {
	ctx := c.Request.Context()
	if data, ok := s.Cache.get(ctx); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	logs, err := s.Logs.RecentLogs(RecentLogsLimit)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	data, err := sonic.Marshal(logs)
	if err != nil {
		fail(c, http.StatusInternalServerError, errors.Wrap(err, "encode logs"))
		return
	}
	s.Cache.set(ctx, data)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *server) createLog(c *gin.Context) {
	var req logRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.Wrap(err, "invalid log entry"))
		return
	}
	if req.RequestID != "" {
		if _, err := uuid.Parse(req.RequestID); err != nil {
			fail(c, http.StatusBadRequest, errors.Wrapf(err, "requestId %q", req.RequestID))
			return
		}
	}

	e := &recorder.LogEntry{
		Level:     strings.ToLower(strings.TrimSpace(req.Level)),
		Message:   req.Message,
		Source:    req.Source,
		JSONData:  req.JSONData,
		RequestID: req.RequestID,
		ErrorCode: req.ErrorCode,
		ClientIP:  c.ClientIP(),
		Tags:      req.Tags,
	}
	id, err := s.Logs.InsertLog(e)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	s.Cache.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, logCreated{ID: id})
}
