package dto

// ── 赛段模块 DTO ──

// CreateStageRequest 创建赛段请求
type CreateStageRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	StartDate string `json:"start_date" binding:"required"` // "2026-03-01"
	EndDate   string `json:"end_date"   binding:"required"` // "2026-06-30"
}

// UpdateStageRequest 更新赛段请求
type UpdateStageRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"     binding:"omitempty,oneof=active closed archived"`
}

// StageResponse 赛段信息响应
type StageResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
