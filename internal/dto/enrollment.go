package dto

// ── 报名模块 DTO ──

// CreateEnrollmentRequest 报名请求
type CreateEnrollmentRequest struct {
	PlayerID   string `json:"player_id"   binding:"required,uuid"`
	StageID    string `json:"stage_id"    binding:"required,uuid"`
	DivisionID string `json:"division_id" binding:"required,uuid"`
}

// EnrollmentResponse 报名信息响应
type EnrollmentResponse struct {
	ID         string `json:"id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	StageID    string `json:"stage_id"`
	DivisionID string `json:"division_id"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}
