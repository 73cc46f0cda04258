package dto

// ── 比赛模块 DTO ──

// CreateMatchRequest 创建比赛请求
type CreateMatchRequest struct {
	StageID        string `json:"stage_id"         binding:"required,uuid"`
	DivisionID     string `json:"division_id"      binding:"required,uuid"`
	Team1Player1ID string `json:"team1_player1_id" binding:"required,uuid"`
	Team1Player2ID string `json:"team1_player2_id" binding:"required,uuid"`
	Team2Player1ID string `json:"team2_player1_id" binding:"required,uuid"`
	Team2Player2ID string `json:"team2_player2_id" binding:"required,uuid"`
}

// RecordResultRequest 录入比赛结果请求
type RecordResultRequest struct {
	Status          string   `json:"status"       binding:"required,oneof=played cancelled walkover"`
	SetsTeam1       int      `json:"sets_team1"   binding:"min=0"`
	SetsTeam2       int      `json:"sets_team2"   binding:"min=0"`
	GamesTeam1      int      `json:"games_team1"  binding:"min=0"`
	GamesTeam2      int      `json:"games_team2"  binding:"min=0"`
	WinnerTeam      int      `json:"winner_team"  binding:"omitempty,oneof=1 2"`
	NoShowPlayerIDs []string `json:"no_show_player_ids" binding:"omitempty,dive,uuid"`
}

// MatchResponse 比赛信息响应
type MatchResponse struct {
	ID              string   `json:"id"`
	StageID         string   `json:"stage_id"`
	DivisionID      string   `json:"division_id"`
	Team1Player1ID  string   `json:"team1_player1_id"`
	Team1Player2ID  string   `json:"team1_player2_id"`
	Team2Player1ID  string   `json:"team2_player1_id"`
	Team2Player2ID  string   `json:"team2_player2_id"`
	Status          string   `json:"status"`
	SetsTeam1       int      `json:"sets_team1"`
	SetsTeam2       int      `json:"sets_team2"`
	GamesTeam1      int      `json:"games_team1"`
	GamesTeam2      int      `json:"games_team2"`
	WinnerTeam      int      `json:"winner_team"`
	NoShowPlayerIDs []string `json:"no_show_player_ids,omitempty"`
	PlayedAt        string   `json:"played_at,omitempty"`
	CreatedAt       string   `json:"created_at"`
}
