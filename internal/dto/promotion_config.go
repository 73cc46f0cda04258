package dto

// ── 升降级配置模块 DTO ──

// UpsertPromotionConfigRequest 创建/更新升降级配置请求
// division_id 省略时写入赛段级默认行
type UpsertPromotionConfigRequest struct {
	StageID          string  `json:"stage_id"          binding:"required,uuid"`
	DivisionID       *string `json:"division_id"       binding:"omitempty,uuid"`
	PromotionPercent float64 `json:"promotion_percent" binding:"required,gt=0,lte=100"`
	PromotionMin     int     `json:"promotion_min"     binding:"min=0"`
	PromotionMax     int     `json:"promotion_max"     binding:"min=0"`
	PlayoffSlots     int     `json:"playoff_slots"     binding:"min=0"`
}

// PromotionConfigResponse 升降级配置响应
type PromotionConfigResponse struct {
	ID               string  `json:"id"`
	StageID          string  `json:"stage_id"`
	DivisionID       *string `json:"division_id"`
	PromotionPercent float64 `json:"promotion_percent"`
	PromotionMin     int     `json:"promotion_min"`
	PromotionMax     int     `json:"promotion_max"`
	PlayoffSlots     int     `json:"playoff_slots"`
}
