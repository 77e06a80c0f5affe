package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"www.github.com/Wanderer0074348/SheetGrader/src/cache"
	"www.github.com/Wanderer0074348/SheetGrader/src/evaluator"
	"www.github.com/Wanderer0074348/SheetGrader/src/middleware"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
	"www.github.com/Wanderer0074348/SheetGrader/src/report"
	"www.github.com/Wanderer0074348/SheetGrader/src/session"
	"www.github.com/Wanderer0074348/SheetGrader/src/utils"
)

var pdfMagic = []byte("%PDF-")

type EvaluationHandler struct {
	engine   models.SheetEvaluator
	caches   *session.Manager
	sessions models.SessionRecorder
	maxSize  int64
	timeout  time.Duration
}

func NewEvaluationHandler(
	engine models.SheetEvaluator,
	caches *session.Manager,
	sessions models.SessionRecorder,
	maxSize int64,
	timeout time.Duration,
) *EvaluationHandler {
	return &EvaluationHandler{
		engine:   engine,
		caches:   caches,
		sessions: sessions,
		maxSize:  maxSize,
		timeout:  timeout,
	}
}

// HandleEvaluate grades an uploaded answer sheet. Identical (document, mode,
// criteria) within the session short-circuits to the cached result without a
// remote call; only successful evaluations ever enter the cache.
func (h *EvaluationHandler) HandleEvaluate(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	startTime := time.Now()

	mode, err := models.ParseMode(c.PostForm("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	criteria := c.PostForm("criteria")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing uploaded file"})
		return
	}
	if h.maxSize > 0 && fileHeader.Size > h.maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d byte upload limit", h.maxSize),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	if !bytes.HasPrefix(document, pdfMagic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a PDF"})
		return
	}

	req := &models.GradingRequest{
		Document: document,
		Filename: fileHeader.Filename,
		Mode:     mode,
		Criteria: criteria,
	}
	key := cache.ComputeKey(document, mode, criteria)

	if entry, ok := h.caches.Lookup(sessionID, key); ok {
		log.WithFields(log.Fields{"session": sessionID, "key": string(key)}).Info("cache hit")
		c.JSON(http.StatusOK, h.buildResponse(req, key, entry, true, startTime))
		return
	}

	log.WithFields(log.Fields{
		"session": sessionID,
		"file":    req.Filename,
		"mode":    string(mode),
	}).Info("cache miss, invoking remote evaluation")

	// A stuck provider must not hold the request open past the configured
	// evaluation timeout.
	evalCtx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(evalCtx, h.timeout)
		defer cancel()
	}

	rawReply, err := h.engine.Evaluate(evalCtx, req)
	if err != nil {
		// Failures are never cached; the next identical request retries.
		log.WithError(err).Error("remote evaluation failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    err.Error(),
			"provider": h.engine.Name(),
		})
		return
	}

	eval, err := evaluator.ParseEvaluation(rawReply)
	if err != nil {
		log.WithError(err).Error("failed to parse model reply")
		snippet := rawReply
		if len(snippet) > 2000 {
			snippet = snippet[:2000]
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        "failed to parse evaluation",
			"raw_response": snippet,
		})
		return
	}

	entry := cache.Entry{
		Evaluation:  eval,
		RawResponse: rawReply,
		Filename:    req.Filename,
		Mode:        mode,
		ModelUsed:   h.engine.Model(),
		CreatedAt:   time.Now(),
	}
	h.caches.Put(sessionID, key, entry)

	if err := h.sessions.RecordEvaluation(c.Request.Context(), sessionID); err != nil {
		log.WithError(err).Warn("failed to record evaluation on session")
	}

	c.JSON(http.StatusOK, h.buildResponse(req, key, entry, false, startTime))
}

func (h *EvaluationHandler) buildResponse(
	req *models.GradingRequest,
	key cache.Key,
	entry cache.Entry,
	cacheHit bool,
	startTime time.Time,
) *models.EvaluationResponse {
	prompt := evaluator.BuildPrompt(req.Mode, req.Criteria)
	return &models.EvaluationResponse{
		Evaluation:  entry.Evaluation,
		Filename:    entry.Filename,
		Mode:        entry.Mode,
		ModelUsed:   entry.ModelUsed,
		CacheKey:    string(key),
		CacheHit:    cacheHit,
		Latency:     time.Since(startTime),
		Timestamp:   time.Now(),
		CostMetrics: utils.CalculateCostMetrics(len(req.Document), prompt, entry.RawResponse, entry.ModelUsed, cacheHit),
	}
}

// HandleListEvaluations returns summaries of everything cached this session.
func (h *EvaluationHandler) HandleListEvaluations(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	c.JSON(http.StatusOK, gin.H{
		"session_id":  sessionID,
		"evaluations": h.caches.Entries(sessionID),
	})
}

// HandleGetReport renders a cached evaluation as downloadable text/Markdown.
func (h *EvaluationHandler) HandleGetReport(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	key := cache.Key(c.Param("key"))

	entry, ok := h.caches.Lookup(sessionID, key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached evaluation for this key"})
		return
	}

	format := c.DefaultQuery("format", "text")
	var body, contentType string
	switch format {
	case "text":
		body = report.RenderText(entry)
		contentType = "text/plain; charset=utf-8"
	case "markdown":
		body = report.RenderMarkdown(entry)
		contentType = "text/markdown; charset=utf-8"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown report format %q", format)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(entry, format)))
	c.Data(http.StatusOK, contentType, []byte(body))
}

// HandleClearCache empties the session's result cache (the explicit user
// "clear" action).
func (h *EvaluationHandler) HandleClearCache(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	h.caches.ClearSession(sessionID)
	log.WithField("session", sessionID).Info("cache cleared")
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (h *EvaluationHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"provider":  h.engine.Name(),
		"timestamp": time.Now(),
	})
}
