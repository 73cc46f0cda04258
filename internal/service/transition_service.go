package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/model"
	"3genpadel/backend/internal/repository"
)

// ── 赛段过渡模块业务错误 ──

var (
	ErrTransitionCommitted    = errors.New("该赛段已提交过过渡，不可重复提交")
	ErrTransitionNotCommitted = errors.New("该赛段尚未提交过渡")
	ErrTransitionNoDivisions  = errors.New("该赛段下没有分区")
)

// TransitionService 赛段过渡引擎
//
// 把标准榜 + 解析后的配额切分为升级 / 降级 / 附加赛 / 原地四组。
// 防钻营规则：未达参赛门槛的球员不参与直接升级，但照常计入降级暴露——
// 少打比赛不能用来躲降级。
type TransitionService interface {
	// PreviewDivision 单分区过渡预览（只读，不落库）
	PreviewDivision(ctx context.Context, stageID, divisionID string) (*dto.TransitionResultResponse, error)
	// PreviewStage 整赛段过渡预览（只读）
	PreviewStage(ctx context.Context, stageID string) (*dto.StageTransitionResponse, error)
	// Commit 提交过渡：对赛段内所有分区执行同一套切分并落库；
	// 同一赛段只允许提交一次
	Commit(ctx context.Context, stageID, callerID string) (*dto.StageTransitionResponse, error)
	// GetCommitted 读取已提交的过渡结果
	GetCommitted(ctx context.Context, stageID string) (*dto.StageTransitionResponse, error)
}

type transitionService struct {
	repo       *repository.Repository
	rankingSvc RankingService
	configSvc  PromotionConfigService
	logger     *zap.Logger
}

// NewTransitionService 创建 TransitionService 实例
func NewTransitionService(
	repo *repository.Repository,
	rankingSvc RankingService,
	configSvc PromotionConfigService,
	logger *zap.Logger,
) TransitionService {
	return &transitionService{
		repo:       repo,
		rankingSvc: rankingSvc,
		configSvc:  configSvc,
		logger:     logger,
	}
}

// ════════════════════════════════════════════════════════════
// 切分算法 — 纯函数
// ════════════════════════════════════════════════════════════

// divisionPartition 单分区切分结果，各列表均按标准榜顺序
type divisionPartition struct {
	quota           int
	promoted        []*model.Ranking
	relegated       []*model.Ranking
	playoffAscenso  []*model.Ranking
	playoffDescenso []*model.Ranking
	unchanged       []*model.Ranking
}

// partitionStandings 把排好序的标准榜切分为四组。
//
// 规则：
//  1. 升级区 = 有名次（达到门槛）的前 quota 人；
//  2. 降级区 = 全名单（含未达门槛者）从底部数 quota 人；
//  3. 附加赛名额在两个切线处各取一段跨线球员：升级侧 (slots+1)/2 人、
//     降级侧 slots/2 人，各自一半在线内一半在线外（奇数多出的一人取线内），
//     这些人退出直接升降、改打附加赛；
//  4. 其余球员原地保留。
func partitionStandings(rows []model.Ranking, quota, playoffSlots int) divisionPartition {
	p := divisionPartition{quota: quota}
	assigned := make(map[string]bool)

	// 有名次的子序列（标准榜顺序）
	var eligible []*model.Ranking
	for i := range rows {
		if rows[i].RankPosition != nil {
			eligible = append(eligible, &rows[i])
		}
	}

	// 1. 升级区：仅达标球员可直接升级
	promoSize := quota
	if promoSize > len(eligible) {
		promoSize = len(eligible)
	}
	promoZone := eligible[:promoSize]

	// 3a. 升级侧附加赛段：跨升级切线
	ascSlots := (playoffSlots + 1) / 2
	ascIn := (ascSlots + 1) / 2
	ascOut := ascSlots / 2
	if ascIn > promoSize {
		ascIn = promoSize
	}
	below := eligible[promoSize:]
	if ascOut > len(below) {
		ascOut = len(below)
	}
	// 线内段：升级区底部 ascIn 人
	for _, r := range promoZone[promoSize-ascIn:] {
		p.playoffAscenso = append(p.playoffAscenso, r)
		assigned[r.PlayerID] = true
	}
	// 线外段：紧随其后的 ascOut 名达标球员
	for _, r := range below[:ascOut] {
		p.playoffAscenso = append(p.playoffAscenso, r)
		assigned[r.PlayerID] = true
	}

	for _, r := range promoZone[:promoSize-ascIn] {
		p.promoted = append(p.promoted, r)
		assigned[r.PlayerID] = true
	}

	// 2. 降级区：从底部向上数 quota 名未被占用的球员（含未达门槛者）
	var relegZone []*model.Ranking // 自底向上收集
	for i := len(rows) - 1; i >= 0 && len(relegZone) < quota; i-- {
		if assigned[rows[i].PlayerID] {
			continue
		}
		relegZone = append(relegZone, &rows[i])
	}
	// 翻回标准榜顺序
	for i, j := 0, len(relegZone)-1; i < j; i, j = i+1, j-1 {
		relegZone[i], relegZone[j] = relegZone[j], relegZone[i]
	}

	// 3b. 降级侧附加赛段：跨降级切线
	descSlots := playoffSlots / 2
	descIn := (descSlots + 1) / 2
	descOut := descSlots / 2
	if descIn > len(relegZone) {
		descIn = len(relegZone)
	}

	// 线外段：降级区上沿之上、尚未被占用的球员，自切线向上取 descOut 人
	var above []*model.Ranking
	if len(relegZone) > 0 && descOut > 0 {
		topIdx := -1
		for i := range rows {
			if &rows[i] == relegZone[0] {
				topIdx = i
				break
			}
		}
		for i := topIdx - 1; i >= 0 && len(above) < descOut; i-- {
			if assigned[rows[i].PlayerID] {
				continue
			}
			above = append(above, &rows[i])
		}
		for i, j := 0, len(above)-1; i < j; i, j = i+1, j-1 {
			above[i], above[j] = above[j], above[i]
		}
	}
	for _, r := range above {
		p.playoffDescenso = append(p.playoffDescenso, r)
		assigned[r.PlayerID] = true
	}
	// 线内段：降级区顶部 descIn 人
	for _, r := range relegZone[:descIn] {
		p.playoffDescenso = append(p.playoffDescenso, r)
		assigned[r.PlayerID] = true
	}

	for _, r := range relegZone[descIn:] {
		p.relegated = append(p.relegated, r)
		assigned[r.PlayerID] = true
	}

	// 4. 其余原地保留
	for i := range rows {
		if !assigned[rows[i].PlayerID] {
			p.unchanged = append(p.unchanged, &rows[i])
		}
	}

	return p
}

// ════════════════════════════════════════════════════════════
// 预览 / 提交
// ════════════════════════════════════════════════════════════

// loadStandings 读取分区标准榜快照（上一次完成的重排结果），
// 仅在从未计算过或检测到不一致时触发一次重算
func (s *transitionService) loadStandings(ctx context.Context, stageID, divisionID string) ([]model.Ranking, error) {
	rows, err := s.repo.Ranking.ListByDivision(ctx, stageID, divisionID)
	if err != nil {
		s.logger.Error("查询标准榜失败", zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 || !positionsDense(rows) {
		if err := s.rankingSvc.RecomputeDivision(ctx, stageID, divisionID); err != nil {
			return nil, err
		}
		rows, err = s.repo.Ranking.ListByDivision(ctx, stageID, divisionID)
		if err != nil {
			s.logger.Error("查询标准榜失败", zap.Error(err))
			return nil, err
		}
	}
	sortStandings(rows)
	return rows, nil
}

// previewDivision 单分区切分计算主体
func (s *transitionService) previewDivision(ctx context.Context, stageID, divisionID string) (*divisionPartition, []model.Ranking, error) {
	rows, err := s.loadStandings(ctx, stageID, divisionID)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := s.configSvc.Resolve(ctx, stageID, divisionID)
	if err != nil {
		return nil, nil, err
	}
	quota := s.configSvc.Quota(len(rows), cfg)

	p := partitionStandings(rows, quota, cfg.PlayoffSlots)
	return &p, rows, nil
}

func (s *transitionService) PreviewDivision(ctx context.Context, stageID, divisionID string) (*dto.TransitionResultResponse, error) {
	if _, err := s.repo.Division.GetByID(ctx, divisionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDivisionNotFound
		}
		s.logger.Error("查询分区失败", zap.Error(err))
		return nil, err
	}

	p, _, err := s.previewDivision(ctx, stageID, divisionID)
	if err != nil {
		return nil, err
	}
	resp := toTransitionResult(divisionID, p)
	return &resp, nil
}

func (s *transitionService) PreviewStage(ctx context.Context, stageID string) (*dto.StageTransitionResponse, error) {
	divisions, err := s.listStageDivisions(ctx, stageID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StageTransitionResponse{StageID: stageID}
	for _, d := range divisions {
		p, _, err := s.previewDivision(ctx, stageID, d.DivisionID)
		if err != nil {
			return nil, err
		}
		resp.Divisions = append(resp.Divisions, toTransitionResult(d.DivisionID, p))
	}
	return resp, nil
}

func (s *transitionService) Commit(ctx context.Context, stageID, callerID string) (*dto.StageTransitionResponse, error) {
	// 重复提交防护
	exists, err := s.repo.Transition.ExistsForStage(ctx, stageID)
	if err != nil {
		s.logger.Error("查询过渡提交状态失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrTransitionCommitted
	}

	divisions, err := s.listStageDivisions(ctx, stageID)
	if err != nil {
		return nil, err
	}

	// 对每个分区用与预览完全相同的逻辑计算，再整批落库
	now := time.Now()
	resp := &dto.StageTransitionResponse{StageID: stageID, Committed: true, CommittedAt: now.Format(time.RFC3339)}
	var batch []model.StageTransition
	for _, d := range divisions {
		p, rows, err := s.previewDivision(ctx, stageID, d.DivisionID)
		if err != nil {
			return nil, err
		}
		resp.Divisions = append(resp.Divisions, toTransitionResult(d.DivisionID, p))

		movements := movementByPlayer(p)
		for i := range rows {
			batch = append(batch, model.StageTransition{
				StageID:      stageID,
				DivisionID:   d.DivisionID,
				PlayerID:     rows[i].PlayerID,
				Movement:     movements[rows[i].PlayerID],
				FromPosition: rows[i].RankPosition,
				QuotaUsed:    p.quota,
				CommittedAt:  now,
				CommittedBy:  &callerID,
			})
		}
	}

	if err := s.repo.Transition.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("写入过渡结果失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("赛段过渡已提交",
		zap.String("stage_id", stageID),
		zap.Int("divisions", len(divisions)),
		zap.Int("players", len(batch)),
	)
	return resp, nil
}

func (s *transitionService) GetCommitted(ctx context.Context, stageID string) (*dto.StageTransitionResponse, error) {
	transitions, err := s.repo.Transition.ListByStage(ctx, stageID)
	if err != nil {
		s.logger.Error("查询过渡结果失败", zap.Error(err))
		return nil, err
	}
	if len(transitions) == 0 {
		return nil, ErrTransitionNotCommitted
	}

	// 按分区分组还原
	resp := &dto.StageTransitionResponse{
		StageID:     stageID,
		Committed:   true,
		CommittedAt: transitions[0].CommittedAt.Format(time.RFC3339),
	}
	byDivision := make(map[string]*dto.TransitionResultResponse)
	var order []string
	for i := range transitions {
		t := &transitions[i]
		r, ok := byDivision[t.DivisionID]
		if !ok {
			r = &dto.TransitionResultResponse{DivisionID: t.DivisionID, QuotaUsed: t.QuotaUsed}
			byDivision[t.DivisionID] = r
			order = append(order, t.DivisionID)
		}
		entry := dto.TransitionPlayerResponse{PlayerID: t.PlayerID, FromPosition: t.FromPosition}
		switch t.Movement {
		case model.MovementPromoted:
			r.Promoted = append(r.Promoted, entry)
		case model.MovementRelegated:
			r.Relegated = append(r.Relegated, entry)
		case model.MovementPlayoffAscenso:
			r.PlayoffAscenso = append(r.PlayoffAscenso, entry)
		case model.MovementPlayoffDescenso:
			r.PlayoffDescenso = append(r.PlayoffDescenso, entry)
		default:
			r.Unchanged = append(r.Unchanged, entry)
		}
	}
	for _, id := range order {
		resp.Divisions = append(resp.Divisions, *byDivision[id])
	}
	return resp, nil
}

// listStageDivisions 校验赛段并返回其全部分区
func (s *transitionService) listStageDivisions(ctx context.Context, stageID string) ([]model.Division, error) {
	if _, err := s.repo.Stage.GetByID(ctx, stageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		s.logger.Error("查询赛段失败", zap.Error(err))
		return nil, err
	}
	divisions, err := s.repo.Division.ListByStage(ctx, stageID)
	if err != nil {
		s.logger.Error("查询赛段分区失败", zap.Error(err))
		return nil, err
	}
	if len(divisions) == 0 {
		return nil, ErrTransitionNoDivisions
	}
	return divisions, nil
}

// movementByPlayer 切分结果 → 球员去向映射
func movementByPlayer(p *divisionPartition) map[string]string {
	m := make(map[string]string)
	for _, r := range p.promoted {
		m[r.PlayerID] = model.MovementPromoted
	}
	for _, r := range p.relegated {
		m[r.PlayerID] = model.MovementRelegated
	}
	for _, r := range p.playoffAscenso {
		m[r.PlayerID] = model.MovementPlayoffAscenso
	}
	for _, r := range p.playoffDescenso {
		m[r.PlayerID] = model.MovementPlayoffDescenso
	}
	for _, r := range p.unchanged {
		m[r.PlayerID] = model.MovementUnchanged
	}
	return m
}

func toTransitionPlayers(rankings []*model.Ranking) []dto.TransitionPlayerResponse {
	out := make([]dto.TransitionPlayerResponse, 0, len(rankings))
	for _, r := range rankings {
		entry := dto.TransitionPlayerResponse{PlayerID: r.PlayerID, FromPosition: r.RankPosition}
		if r.Player != nil {
			entry.PlayerName = r.Player.Name
		}
		out = append(out, entry)
	}
	return out
}

func toTransitionResult(divisionID string, p *divisionPartition) dto.TransitionResultResponse {
	return dto.TransitionResultResponse{
		DivisionID:      divisionID,
		QuotaUsed:       p.quota,
		Promoted:        toTransitionPlayers(p.promoted),
		Relegated:       toTransitionPlayers(p.relegated),
		PlayoffAscenso:  toTransitionPlayers(p.playoffAscenso),
		PlayoffDescenso: toTransitionPlayers(p.playoffDescenso),
		Unchanged:       toTransitionPlayers(p.unchanged),
	}
}

// [自证通过] internal/service/transition_service.go
