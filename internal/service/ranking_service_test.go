package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"3genpadel/backend/config"
	"3genpadel/backend/internal/model"
	"3genpadel/backend/internal/repository"
)

// ── 测试辅助 ──

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		Player:          newMockPlayerRepo(),
		Stage:           newMockStageRepo(),
		Division:        newMockDivisionRepo(),
		Enrollment:      newMockEnrollmentRepo(),
		Match:           newMockMatchRepo(),
		Ranking:         newMockRankingRepo(),
		PromotionConfig: newMockPromotionConfigRepo(),
		Transition:      newMockTransitionRepo(),
	}
}

func testRankingConfig() *config.Config {
	return &config.Config{
		Ranking: config.RankingConfig{RerankLockTTL: 10, RerankLockWait: 1},
	}
}

func setupTestRankingService() (RankingService, *repository.Repository) {
	repo := newTestRepo()
	logger := zap.NewNop()
	globalForm := NewGlobalFormService(repo, logger)
	svc := NewRankingService(testRankingConfig(), repo, nil, globalForm, logger)
	return svc, repo
}

// seedDivision 造一个赛段 + 分区 + n 名报名球员（player-01 .. player-0n）
func seedDivision(repo *repository.Repository, n int) (stageID, divisionID string) {
	ctx := context.Background()
	stage := &model.Stage{StageID: "stage-001", Name: "Etapa 1", Status: "active"}
	repo.Stage.Create(ctx, stage)
	division := &model.Division{DivisionID: "div-001", StageID: "stage-001", Level: 1, Name: "Primera"}
	repo.Division.Create(ctx, division)
	for i := 1; i <= n; i++ {
		pid := fmt.Sprintf("player-%02d", i)
		repo.Player.Create(ctx, &model.Player{PlayerID: pid, Name: pid, Email: pid + "@test.com"})
		repo.Enrollment.Create(ctx, &model.Enrollment{
			PlayerID: pid, StageID: "stage-001", DivisionID: "div-001",
			Status: model.EnrollmentActive,
		})
	}
	return "stage-001", "div-001"
}

// ── RecomputeDivision 测试 ──

func TestRankingService_Withdraw_RemovesStandingsRow(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 4)
	ctx := context.Background()

	if err := svc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		t.Fatalf("RecomputeDivision 应成功: %v", err)
	}

	// 退出报名走正式路径（内部触发重排），旧排名行必须被清掉
	enrollSvc := NewEnrollmentService(repo, svc, zap.NewNop())
	if err := enrollSvc.Withdraw(ctx, "enr-player-04-stage-001"); err != nil {
		t.Fatalf("Withdraw 应成功: %v", err)
	}

	standings, err := svc.GetStandings(ctx, stageID, divisionID)
	if err != nil {
		t.Fatalf("GetStandings 应成功: %v", err)
	}
	if len(standings.Rows) != 3 {
		t.Fatalf("退出后标准榜应剩 3 行，实际=%d", len(standings.Rows))
	}
	for _, row := range standings.Rows {
		if row.PlayerID == "player-04" {
			t.Error("退出的球员不应再出现在标准榜上")
		}
	}
	// 剩余行仍须是稠密名次 1..3
	for i, row := range standings.Rows {
		if row.RankPosition == nil || *row.RankPosition != i+1 {
			t.Errorf("第 %d 行名次应为 %d，实际=%v", i, i+1, row.RankPosition)
		}
	}
}

func TestRankingService_Recompute_ZeroMatchRowsCreated(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 4)

	if err := svc.RecomputeDivision(context.Background(), stageID, divisionID); err != nil {
		t.Fatalf("RecomputeDivision 应成功: %v", err)
	}

	rows, _ := repo.Ranking.ListByDivision(context.Background(), stageID, divisionID)
	if len(rows) != 4 {
		t.Fatalf("期望 4 行排名（含零场次行），实际=%d", len(rows))
	}
	for _, r := range rows {
		if r.MatchesPlayed != 0 || r.FinalScore != 0 {
			t.Errorf("零场次球员 %s 应为 0 分，实际 played=%d final=%f", r.PlayerID, r.MatchesPlayed, r.FinalScore)
		}
	}
}

func TestRankingService_Recompute_DensePositionsForEligibleOnly(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 4)
	ctx := context.Background()

	// 三场比赛：player-01/02 各打三场，player-03 打两场，player-04 打一场。
	// scope=3、4 人报名 → 门槛 = round((4*3/4)/2) = round(1.5) = 2，
	// player-04 未达门槛
	matches := []model.Match{
		playedMatch("m1", "player-01", "player-02", "player-03", "player-04", 1, 2, 0, 12, 4),
		playedMatch("m2", "player-01", "player-03", "player-02", "player-04", 1, 2, 1, 14, 10),
		playedMatch("m3", "player-01", "player-04", "player-02", "player-03", 2, 0, 2, 6, 12),
	}
	for i := range matches {
		matches[i].StageID = stageID
		matches[i].DivisionID = divisionID
		repo.Match.Create(ctx, &matches[i])
	}

	if err := svc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		t.Fatalf("RecomputeDivision 应成功: %v", err)
	}

	standings, err := svc.GetStandings(ctx, stageID, divisionID)
	if err != nil {
		t.Fatalf("GetStandings 应成功: %v", err)
	}

	// 全员打满 3 场或 2 场，门槛为 2，全员达标，名次应为稠密 1..4
	seen := make(map[int]bool)
	for _, row := range standings.Rows {
		if !row.MeetsMinimum {
			t.Errorf("球员 %s 应达门槛（played=%d, min=%d）", row.PlayerID, row.MatchesPlayed, row.MinRequired)
			continue
		}
		if row.RankPosition == nil {
			t.Errorf("达标球员 %s 应有名次", row.PlayerID)
			continue
		}
		seen[*row.RankPosition] = true
	}
	for p := 1; p <= 4; p++ {
		if !seen[p] {
			t.Errorf("名次序列缺少 %d", p)
		}
	}
}

func TestRankingService_Recompute_IneligibleGetsNilPosition(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 4)
	ctx := context.Background()

	// 五人报名、五场比赛但 player-04 一场未打。
	// scope=5、enrolled=5 → 门槛 = round((4*5/5)/2) = 2 场
	repo.Player.Create(ctx, &model.Player{PlayerID: "player-88", Name: "player-88", Email: "p88@test.com"})
	repo.Enrollment.Create(ctx, &model.Enrollment{
		PlayerID: "player-88", StageID: stageID, DivisionID: divisionID,
		Status: model.EnrollmentActive,
	})
	for i := 1; i <= 5; i++ {
		m := playedMatch(fmt.Sprintf("m%d", i),
			"player-01", "player-02", "player-03", "player-88", 1, 2, 0, 12, 6)
		m.StageID = stageID
		m.DivisionID = divisionID
		repo.Match.Create(ctx, &m)
	}

	if err := svc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		t.Fatalf("RecomputeDivision 应成功: %v", err)
	}

	row, err := repo.Ranking.GetByPlayer(ctx, "player-04", stageID, divisionID)
	if err != nil {
		t.Fatalf("player-04 应有排名行: %v", err)
	}
	if row.MeetsMinimum {
		t.Error("零场次球员不应达门槛")
	}
	if row.RankPosition != nil {
		t.Errorf("未达门槛球员名次应为 NULL，实际=%d", *row.RankPosition)
	}

	// 达标者名次仍为稠密 1..4
	rows, _ := repo.Ranking.ListByDivision(ctx, stageID, divisionID)
	k := 0
	for _, r := range rows {
		if r.RankPosition != nil {
			k++
		}
	}
	if k != 4 {
		t.Errorf("期望 4 名达标球员有名次，实际=%d", k)
	}
}

func TestRankingService_Recompute_Idempotent(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 4)
	ctx := context.Background()

	m := playedMatch("m1", "player-01", "player-02", "player-03", "player-04", 1, 2, 1, 14, 11)
	m.StageID = stageID
	m.DivisionID = divisionID
	repo.Match.Create(ctx, &m)

	if err := svc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		t.Fatalf("第一次重算应成功: %v", err)
	}
	first, _ := svc.GetStandings(ctx, stageID, divisionID)

	if err := svc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		t.Fatalf("第二次重算应成功: %v", err)
	}
	second, _ := svc.GetStandings(ctx, stageID, divisionID)

	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("两次重算行数应一致: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		if a.PlayerID != b.PlayerID || a.FinalScore != b.FinalScore {
			t.Errorf("第 %d 行不一致: %s/%f vs %s/%f", i, a.PlayerID, a.FinalScore, b.PlayerID, b.FinalScore)
		}
		if (a.RankPosition == nil) != (b.RankPosition == nil) {
			t.Errorf("第 %d 行名次空值不一致", i)
		}
	}
}

func TestRankingService_Recompute_AllNoShowMatch(t *testing.T) {
	// 四人全缺席的比赛：计入分区总场次分母，但无人获得个人战绩
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 4)
	ctx := context.Background()

	m := playedMatch("m1", "player-01", "player-02", "player-03", "player-04", 1, 2, 0, 12, 0)
	m.NoShowPlayerIDs = model.UUIDArray{"player-01", "player-02", "player-03", "player-04"}
	m.StageID = stageID
	m.DivisionID = divisionID
	repo.Match.Create(ctx, &m)

	if err := svc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		t.Fatalf("RecomputeDivision 应成功: %v", err)
	}

	rows, _ := repo.Ranking.ListByDivision(ctx, stageID, divisionID)
	for _, r := range rows {
		if r.MatchesPlayed != 0 {
			t.Errorf("全员缺席场次不应计个人战绩，%s played=%d", r.PlayerID, r.MatchesPlayed)
		}
	}
}

// ── GetStandings 自愈测试 ──

func TestRankingService_GetStandings_SelfHealsOnNonDense(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 3)
	ctx := context.Background()

	// 手工写入坏快照：名次 1、3 缺 2
	p1, p3 := 1, 3
	repo.Ranking.UpsertAll(ctx, []model.Ranking{
		{PlayerID: "player-01", StageID: stageID, DivisionID: divisionID, MeetsMinimum: true, RankPosition: &p1},
		{PlayerID: "player-02", StageID: stageID, DivisionID: divisionID, MeetsMinimum: true, RankPosition: &p3},
	})

	standings, err := svc.GetStandings(ctx, stageID, divisionID)
	if err != nil {
		t.Fatalf("GetStandings 应成功: %v", err)
	}

	// 自愈后按报名人群重建：3 名球员，零场次 → 门槛 0，全员稠密名次
	if len(standings.Rows) != 3 {
		t.Fatalf("自愈后应有 3 行，实际=%d", len(standings.Rows))
	}
	for i, row := range standings.Rows {
		if row.RankPosition == nil || *row.RankPosition != i+1 {
			t.Errorf("第 %d 行名次应为 %d，实际=%v", i, i+1, row.RankPosition)
		}
	}
}

// ── RecomputePlayer 测试 ──

func TestRankingService_RecomputePlayer_NotEnrolled(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 2)

	_, err := svc.RecomputePlayer(context.Background(), "stranger", stageID, divisionID)
	if !errors.Is(err, ErrPlayerNotEnrolled) {
		t.Errorf("期望 ErrPlayerNotEnrolled，实际: %v", err)
	}
}

func TestRankingService_RecomputePlayer_DivisionMismatch(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, _ := seedDivision(repo, 2)

	_, err := svc.RecomputePlayer(context.Background(), "player-01", stageID, "other-division")
	if !errors.Is(err, ErrPlayerNotEnrolled) {
		t.Errorf("报名分区不匹配应返回 ErrPlayerNotEnrolled，实际: %v", err)
	}
}

func TestRankingService_RecomputePlayer_ReturnsOwnRow(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 4)
	ctx := context.Background()

	m := playedMatch("m1", "player-01", "player-02", "player-03", "player-04", 1, 2, 0, 12, 3)
	m.StageID = stageID
	m.DivisionID = divisionID
	repo.Match.Create(ctx, &m)

	row, err := svc.RecomputePlayer(ctx, "player-01", stageID, divisionID)
	if err != nil {
		t.Fatalf("RecomputePlayer 应成功: %v", err)
	}
	if row.PlayerID != "player-01" {
		t.Errorf("应返回本人行，实际=%s", row.PlayerID)
	}
	if row.MatchesPlayed != 1 || row.MatchesWon != 1 {
		t.Errorf("期望 1 场 1 胜，实际 played=%d won=%d", row.MatchesPlayed, row.MatchesWon)
	}
}

// ── wins_vs_top3 级联测试 ──

func TestRankingService_WinsVsTop3_BreaksTie(t *testing.T) {
	svc, repo := setupTestRankingService()
	stageID, divisionID := seedDivision(repo, 7)
	ctx := context.Background()

	// 设计一组比赛使 player-05 与 player-06 总分、盘差、局差全同，
	// 但 player-05 的胜场对手含 top3、player-06 的不含
	matches := []model.Match{
		// top3 奠定：01/02 连胜，03 随后两胜追平总分
		playedMatch("m1", "player-01", "player-02", "player-03", "player-04", 1, 2, 0, 12, 6),
		playedMatch("m2", "player-01", "player-02", "player-03", "player-04", 1, 2, 0, 12, 6),
		// player-05 战胜 (01,04)，01 为 top3；player-06 战胜 (04,07)，均非 top3。
		// 两场比分完全相同
		playedMatch("m3", "player-05", "player-03", "player-01", "player-04", 1, 2, 1, 13, 10),
		playedMatch("m4", "player-06", "player-03", "player-04", "player-07", 1, 2, 1, 13, 10),
	}
	for i := range matches {
		matches[i].StageID = stageID
		matches[i].DivisionID = divisionID
		repo.Match.Create(ctx, &matches[i])
	}

	if err := svc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		t.Fatalf("RecomputeDivision 应成功: %v", err)
	}

	r5, _ := repo.Ranking.GetByPlayer(ctx, "player-05", stageID, divisionID)
	r6, _ := repo.Ranking.GetByPlayer(ctx, "player-06", stageID, divisionID)
	if r5 == nil || r6 == nil {
		t.Fatal("player-05 / player-06 应有排名行")
	}
	if r5.FinalScore != r6.FinalScore || r5.SetDiff != r6.SetDiff || r5.GameDiff != r6.GameDiff {
		t.Fatalf("测试前提破坏：两人前三级联应完全相同 (%f/%d/%d vs %f/%d/%d)",
			r5.FinalScore, r5.SetDiff, r5.GameDiff, r6.FinalScore, r6.SetDiff, r6.GameDiff)
	}
	if r5.WinsVsTop3 <= r6.WinsVsTop3 {
		t.Fatalf("player-05 对 top3 胜场应更多: %d vs %d", r5.WinsVsTop3, r6.WinsVsTop3)
	}
	if r5.RankPosition != nil && r6.RankPosition != nil && *r5.RankPosition >= *r6.RankPosition {
		t.Errorf("player-05 应排在 player-06 之前: %d vs %d", *r5.RankPosition, *r6.RankPosition)
	}
}
