package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/service"
	"3genpadel/backend/pkg/response"
)

// PromotionConfigHandler 升降级配置模块 HTTP 处理器
type PromotionConfigHandler struct {
	configSvc service.PromotionConfigService
}

// NewPromotionConfigHandler 创建 PromotionConfigHandler
func NewPromotionConfigHandler(configSvc service.PromotionConfigService) *PromotionConfigHandler {
	return &PromotionConfigHandler{configSvc: configSvc}
}

// ListConfigs 获取赛段全部升降级配置（含赛段默认行）
// GET /api/v1/promotion-configs?stage_id=xxx
func (h *PromotionConfigHandler) ListConfigs(c *gin.Context) {
	stageID := c.Query("stage_id")
	if stageID == "" {
		response.BadRequest(c, 10001, "stage_id 不能为空")
		return
	}

	configs, err := h.configSvc.ListByStage(c.Request.Context(), stageID)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, gin.H{"list": configs})
}

// UpsertConfig 创建或更新升降级配置
// PUT /api/v1/promotion-configs
func (h *PromotionConfigHandler) UpsertConfig(c *gin.Context) {
	var req dto.UpsertPromotionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.configSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, cfg)
}

// DeleteConfig 删除升降级配置（回落到上一级默认）
// DELETE /api/v1/promotion-configs/:id
func (h *PromotionConfigHandler) DeleteConfig(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "配置ID不能为空")
		return
	}

	if err := h.configSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleConfigError 统一处理升降级配置模块业务错误
func (h *PromotionConfigHandler) handleConfigError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromotionConfigNotFound):
		response.NotFound(c, 18001, "升降级配置不存在")
	case errors.Is(err, service.ErrStageNotFound):
		response.NotFound(c, 13001, "赛段不存在")
	case errors.Is(err, service.ErrDivisionNotFound):
		response.NotFound(c, 14001, "分区不存在")
	default:
		response.InternalError(c)
	}
}
