package model

import "time"

// Player 球员表 — 对应 players
//
// global_score / total_matches_played / total_matches_won 为跨分区的全局状态
// 派生字段，仅由 GlobalFormService 重算写入，任何其他路径不得修改。
type Player struct {
	PlayerID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"player_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'jugador'"    json:"role"` // admin | jugador

	GlobalScore        float64    `gorm:"not null;default:0" json:"global_score"`
	TotalMatchesPlayed int        `gorm:"not null;default:0" json:"total_matches_played"`
	TotalMatchesWon    int        `gorm:"not null;default:0" json:"total_matches_won"`
	GlobalRecomputedAt *time.Time `json:"global_recomputed_at,omitempty"`

	SoftDeleteModel
}

// TableName 指定表名
func (Player) TableName() string { return "players" }
