package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/service"
	"3genpadel/backend/pkg/response"
)

// DivisionHandler 分区模块 HTTP 处理器
type DivisionHandler struct {
	divisionSvc service.DivisionService
}

// NewDivisionHandler 创建 DivisionHandler
func NewDivisionHandler(divisionSvc service.DivisionService) *DivisionHandler {
	return &DivisionHandler{divisionSvc: divisionSvc}
}

// ListDivisions 获取赛段分区列表
// GET /api/v1/stages/:id/divisions
func (h *DivisionHandler) ListDivisions(c *gin.Context) {
	stageID := c.Param("id")
	if stageID == "" {
		response.BadRequest(c, 10001, "赛段ID不能为空")
		return
	}

	divisions, err := h.divisionSvc.ListByStage(c.Request.Context(), stageID)
	if err != nil {
		h.handleDivisionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": divisions})
}

// GetDivision 获取分区详情
// GET /api/v1/divisions/:id
func (h *DivisionHandler) GetDivision(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分区ID不能为空")
		return
	}

	division, err := h.divisionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDivisionError(c, err)
		return
	}

	response.OK(c, division)
}

// CreateDivision 创建分区
// POST /api/v1/divisions
func (h *DivisionHandler) CreateDivision(c *gin.Context) {
	var req dto.CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	division, err := h.divisionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDivisionError(c, err)
		return
	}

	response.Created(c, division)
}

// UpdateDivision 更新分区
// PUT /api/v1/divisions/:id
func (h *DivisionHandler) UpdateDivision(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分区ID不能为空")
		return
	}

	var req dto.UpdateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	division, err := h.divisionSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDivisionError(c, err)
		return
	}

	response.OK(c, division)
}

// DeleteDivision 删除分区
// DELETE /api/v1/divisions/:id
func (h *DivisionHandler) DeleteDivision(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分区ID不能为空")
		return
	}

	if err := h.divisionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDivisionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDivisionError 统一处理分区模块业务错误
func (h *DivisionHandler) handleDivisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDivisionNotFound):
		response.NotFound(c, 14001, "分区不存在")
	case errors.Is(err, service.ErrStageNotFound):
		response.NotFound(c, 13001, "赛段不存在")
	case errors.Is(err, service.ErrDivisionLevelTaken):
		response.Conflict(c, 14002, "该赛段已存在同级别分区")
	default:
		response.InternalError(c)
	}
}
