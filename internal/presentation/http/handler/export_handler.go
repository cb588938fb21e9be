package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ventapos/ventapos-api/internal/application/service"
	"github.com/ventapos/ventapos-api/internal/presentation/http/dto/response"
)

// ExportHandler handles data export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export streams a dataset as CSV, JSON or XLSX
func (h *ExportHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), c.Param("dataset"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(200, result.ContentType, result.Data)
}
