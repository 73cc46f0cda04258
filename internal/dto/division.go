package dto

// ── 分区模块 DTO ──

// CreateDivisionRequest 创建分区请求
type CreateDivisionRequest struct {
	StageID string `json:"stage_id" binding:"required,uuid"`
	Level   int    `json:"level"    binding:"required,min=1"`
	Name    string `json:"name"     binding:"required,min=1,max=100"`
}

// UpdateDivisionRequest 更新分区请求
type UpdateDivisionRequest struct {
	Level *int    `json:"level" binding:"omitempty,min=1"`
	Name  *string `json:"name"  binding:"omitempty,min=1,max=100"`
}

// DivisionResponse 分区信息响应
type DivisionResponse struct {
	ID      string `json:"id"`
	StageID string `json:"stage_id"`
	Level   int    `json:"level"`
	Name    string `json:"name"`
}
