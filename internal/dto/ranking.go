package dto

// ── 排名模块 DTO ──

// RecomputeRankingRequest 手动触发单球员排名重算请求
type RecomputeRankingRequest struct {
	PlayerID   string `json:"player_id"   binding:"required,uuid"`
	StageID    string `json:"stage_id"    binding:"required,uuid"`
	DivisionID string `json:"division_id" binding:"required,uuid"`
}

// RankingRowResponse 单行排名响应
type RankingRowResponse struct {
	PlayerID           string  `json:"player_id"`
	PlayerName         string  `json:"player_name,omitempty"`
	MatchesPlayed      int     `json:"matches_played"`
	MatchesWon         int     `json:"matches_won"`
	IndividualScore    float64 `json:"individual_score"`
	GeneralScore       float64 `json:"general_score"`
	ParticipationBonus float64 `json:"participation_bonus"`
	FinalScore         float64 `json:"final_score"`
	SetDiff            int     `json:"set_diff"`
	GameDiff           int     `json:"game_diff"`
	WinsVsTop3         int     `json:"wins_vs_top3"`
	MinRequired        int     `json:"min_required"`
	MeetsMinimum       bool    `json:"meets_minimum"`
	RankPosition       *int    `json:"rank_position"`
}

// StandingsResponse 分区标准榜响应（含未达门槛的零场次行）
type StandingsResponse struct {
	StageID    string               `json:"stage_id"`
	DivisionID string               `json:"division_id"`
	Rows       []RankingRowResponse `json:"rows"`
}
