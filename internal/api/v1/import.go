package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"kontrakt/internal/importer"
	"kontrakt/internal/model"
)

// ImportRequest import options for one session. Overrides replace the
// suggested mapping verbatim for the keyed sheet, no re-scoring.
type ImportRequest struct {
	Sheets    []string                       `json:"sheets"`
	Overrides map[string][]model.FieldMapping `json:"overrides"`
	MaxRows   int                            `json:"maxRows"`
	Persist   *bool                          `json:"persist"`
}

// Import runs the pipeline over an uploaded workbook, streaming progress as
// SSE events. POST /api/workbook/:id/import
func (h *Handler) Import(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown workbook session"})
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid import request"})
		return
	}

	persist := true
	if req.Persist != nil {
		persist = *req.Persist
	}
	maxRows := req.MaxRows
	if maxRows == 0 {
		maxRows = h.cfg.Import.MaxRows
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	coordinator := importer.NewCoordinator(h.store, h.mapper, h.log)
	events := coordinator.Import(c.Request.Context(), importer.Options{
		Workbook:       session.Workbook,
		SourceFileName: session.FileName,
		Sheets:         req.Sheets,
		Overrides:      req.Overrides,
		MaxRows:        maxRows,
		Persist:        persist,
	})

	for event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}
}
