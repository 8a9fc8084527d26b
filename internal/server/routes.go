package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
	"github.com/lorenzotomasdiez/llm-debate/internal/models"
	"github.com/lorenzotomasdiez/llm-debate/internal/output"
	"github.com/sirupsen/logrus"
)

// startRequest is the body of POST /api/debates.
type startRequest struct {
	Topic     string `json:"topic"`
	Proponent string `json:"proponent"`
	Opponent  string `json:"opponent"`
	Judge     string `json:"judge"`
}

func registerRoutes(router *gin.Engine, opts StartOpts) {
	for name, h := range opts.Proxies {
		router.Any("/api/proxy/"+name, h.Serve)
	}

	api := router.Group("/api")
	api.POST("/debates", handleStart(opts.Session, opts.Log))
	api.GET("/debates/last", handleLast(opts.Session))
	api.GET("/debates/last/download", handleDownload(opts.Session))
	api.GET("/models", handleModels(opts.Aliases))

	router.GET("/healthz", handleHealth(opts.Session))
}

// handleStart runs a debate to completion. A run that aborts part-way still
// answers 200: the result carries the failure message in place of a verdict.
func handleStart(session *debate.Session, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input startRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if strings.TrimSpace(input.Topic) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a debate topic."})
			return
		}

		roles := debate.Assignment{Proponent: input.Proponent, Opponent: input.Opponent, Judge: input.Judge}
		result, err := session.Start(c.Request.Context(), input.Topic, roles)
		switch {
		case errors.Is(err, debate.ErrRunInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "A debate is already running."})
			return
		case errors.Is(err, debate.ErrEmptyTopic), errors.Is(err, debate.ErrMissingModel):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case result == nil:
			log.WithError(err).Error("debate could not start")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start debate"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func handleLast(session *debate.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := session.Last()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No debate history to download."})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func handleDownload(session *debate.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := session.Last()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No debate history to download."})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+output.HistoryFile+`"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(result.Export()))
	}
}

func handleModels(aliases *models.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"aliases": aliases.Aliases()})
	}
}

func handleHealth(session *debate.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "busy": session.Busy()})
	}
}
