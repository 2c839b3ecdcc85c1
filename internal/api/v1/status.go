package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kontrakt/internal/model"
)

// Status reports service health and the field catalog so a UI can render
// mapping editors without hardcoding it.
// GET /api/status
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"fields":   model.FieldCatalog(),
		"statuses": model.KnownStatuses(),
	})
}
