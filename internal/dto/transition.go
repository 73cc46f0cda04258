package dto

// ── 赛段过渡模块 DTO ──

// TransitionPlayerResponse 过渡名单中的单个球员
type TransitionPlayerResponse struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name,omitempty"`
	FromPosition *int   `json:"from_position"`
}

// TransitionResultResponse 单分区过渡结果
type TransitionResultResponse struct {
	DivisionID      string                     `json:"division_id"`
	QuotaUsed       int                        `json:"quota_used"`
	Promoted        []TransitionPlayerResponse `json:"promoted"`
	Relegated       []TransitionPlayerResponse `json:"relegated"`
	PlayoffAscenso  []TransitionPlayerResponse `json:"playoff_ascenso"`
	PlayoffDescenso []TransitionPlayerResponse `json:"playoff_descenso"`
	Unchanged       []TransitionPlayerResponse `json:"unchanged"`
}

// StageTransitionResponse 整个赛段的过渡结果（按分区）
type StageTransitionResponse struct {
	StageID     string                     `json:"stage_id"`
	Committed   bool                       `json:"committed"`
	CommittedAt string                     `json:"committed_at,omitempty"`
	Divisions   []TransitionResultResponse `json:"divisions"`
}
