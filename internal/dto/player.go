package dto

// ── 球员模块 DTO ──

// CreatePlayerRequest 创建球员请求（仅管理员）
type CreatePlayerRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Role     string `json:"role"     binding:"omitempty,oneof=admin jugador"`
}

// UpdatePlayerRequest 更新球员请求
// 全局状态派生字段不可经此修改
type UpdatePlayerRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// PlayerResponse 球员信息响应
type PlayerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PlayerDetailResponse 球员详情响应（含全局状态字段）
type PlayerDetailResponse struct {
	PlayerResponse
	GlobalScore        float64 `json:"global_score"`
	TotalMatchesPlayed int     `json:"total_matches_played"`
	TotalMatchesWon    int     `json:"total_matches_won"`
	GlobalRecomputedAt string  `json:"global_recomputed_at,omitempty"`
}
