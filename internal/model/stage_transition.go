package model

import "time"

// 赛段过渡去向
const (
	MovementPromoted        = "promoted"
	MovementRelegated       = "relegated"
	MovementPlayoffAscenso  = "playoff_ascenso"
	MovementPlayoffDescenso = "playoff_descenso"
	MovementUnchanged       = "unchanged"
)

// StageTransition 赛段过渡表 — 对应 stage_transitions
//
// 提交一次过渡后，(stage, division, player) 的唯一约束阻止对同一赛段重复提交。
// 预览不落库，由 TransitionService 用同一套逻辑现算。
type StageTransition struct {
	TransitionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"transition_id"`
	StageID      string `gorm:"type:uuid;not null;index"                       json:"stage_id"`
	DivisionID   string `gorm:"type:uuid;not null"                             json:"division_id"`
	PlayerID     string `gorm:"type:uuid;not null"                             json:"player_id"`

	Movement     string    `gorm:"type:varchar(20);not null" json:"movement"`
	FromPosition *int      `json:"from_position"`
	QuotaUsed    int       `gorm:"not null"                  json:"quota_used"`
	CommittedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"committed_at"`
	CommittedBy  *string   `gorm:"type:uuid"                 json:"committed_by,omitempty"`
}

// TableName 指定表名
func (StageTransition) TableName() string { return "stage_transitions" }
