// Package v1 exposes the import pipeline over a local HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kontrakt/internal/config"
	"kontrakt/internal/pipeline"
	"kontrakt/internal/store"
)

// Handler V1 API handler
type Handler struct {
	store    *store.Store
	cfg      *config.AppConfig
	mapper   *pipeline.ColumnMapper
	sessions *sessionRegistry
	log      *zap.Logger
}

// NewHandler creates the API handler. The mapper is built from the configured
// pattern file when one is set, otherwise from the built-in dictionary.
func NewHandler(st *store.Store, cfg *config.AppConfig, log *zap.Logger) (*Handler, error) {
	table := pipeline.DefaultPatternTable()
	if cfg.Import.PatternFile != "" {
		loaded, err := pipeline.LoadPatternTable(cfg.Import.PatternFile)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	return &Handler{
		store:    st,
		cfg:      cfg,
		mapper:   pipeline.NewColumnMapperWithTable(table),
		sessions: newSessionRegistry(),
		log:      log,
	}, nil
}

// RegisterRoutes wires the API routes onto the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", h.Status)

	rg.POST("/workbook", h.UploadWorkbook)
	rg.GET("/workbook/:id/sheets", h.Sheets)
	rg.GET("/workbook/:id/sheets/:name/mapping", h.SuggestMapping)
	rg.POST("/workbook/:id/import", h.Import)
	rg.DELETE("/workbook/:id", h.CloseWorkbook)

	rg.GET("/records", h.ListRecords)
	rg.GET("/imports", h.ListImports)
}
