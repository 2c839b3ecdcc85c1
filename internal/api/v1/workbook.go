package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kontrakt/internal/excel"
	"kontrakt/internal/pipeline"
)

// UploadWorkbook accepts an xlsx upload, runs discovery and opens a session.
// POST /api/workbook
func (h *Handler) UploadWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file in upload"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	defer f.Close()

	wb, err := excel.OpenReader(f, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "not a readable workbook"})
		return
	}

	descriptors, err := pipeline.DiscoverWorkbook(wb)
	if err != nil {
		_ = wb.Close()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	session := h.sessions.Add(wb, descriptors)
	h.log.Info("workbook uploaded",
		zap.String("session", session.ID),
		zap.String("file", fileHeader.Filename),
		zap.Int("sheets", len(descriptors)))

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"fileName":  session.FileName,
		"sheets":    descriptors,
	})
}

// Sheets returns the discovery result of an open session.
// GET /api/workbook/:id/sheets
func (h *Handler) Sheets(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown workbook session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": session.Descriptors})
}

// SuggestMapping returns the mapper's suggestion for one sheet.
// GET /api/workbook/:id/sheets/:name/mapping
func (h *Handler) SuggestMapping(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown workbook session"})
		return
	}

	name := c.Param("name")
	for _, desc := range session.Descriptors {
		if desc.Name == name {
			c.JSON(http.StatusOK, h.mapper.Suggest(desc))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown sheet"})
}

// CloseWorkbook drops a session.
// DELETE /api/workbook/:id
func (h *Handler) CloseWorkbook(c *gin.Context) {
	h.sessions.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}
