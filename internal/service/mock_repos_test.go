package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"3genpadel/backend/internal/model"
)

// ── Mock PlayerRepository ──

type mockPlayerRepo struct {
	players map[string]*model.Player
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{players: make(map[string]*model.Player)}
}

func (m *mockPlayerRepo) Create(_ context.Context, player *model.Player) error {
	if player.PlayerID == "" {
		player.PlayerID = "player-" + player.Email
	}
	m.players[player.PlayerID] = player
	return nil
}

func (m *mockPlayerRepo) GetByID(_ context.Context, id string) (*model.Player, error) {
	if p, ok := m.players[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlayerRepo) GetByEmail(_ context.Context, email string) (*model.Player, error) {
	for _, p := range m.players {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlayerRepo) List(_ context.Context, _, _ int) ([]model.Player, int64, error) {
	var result []model.Player
	for _, p := range m.players {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockPlayerRepo) Update(_ context.Context, player *model.Player) error {
	m.players[player.PlayerID] = player
	return nil
}

func (m *mockPlayerRepo) UpdateGlobalForm(_ context.Context, playerID string, fields map[string]interface{}) error {
	p, ok := m.players[playerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["global_score"].(float64); ok {
		p.GlobalScore = v
	}
	if v, ok := fields["total_matches_played"].(int); ok {
		p.TotalMatchesPlayed = v
	}
	if v, ok := fields["total_matches_won"].(int); ok {
		p.TotalMatchesWon = v
	}
	if v, ok := fields["global_recomputed_at"].(time.Time); ok {
		p.GlobalRecomputedAt = &v
	}
	return nil
}

func (m *mockPlayerRepo) Delete(_ context.Context, id string) error {
	delete(m.players, id)
	return nil
}

// ── Mock StageRepository ──

type mockStageRepo struct {
	stages map[string]*model.Stage
}

func newMockStageRepo() *mockStageRepo {
	return &mockStageRepo{stages: make(map[string]*model.Stage)}
}

func (m *mockStageRepo) Create(_ context.Context, stage *model.Stage) error {
	if stage.StageID == "" {
		stage.StageID = "stage-" + stage.Name
	}
	m.stages[stage.StageID] = stage
	return nil
}

func (m *mockStageRepo) GetByID(_ context.Context, id string) (*model.Stage, error) {
	if s, ok := m.stages[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) GetActive(_ context.Context) (*model.Stage, error) {
	for _, s := range m.stages {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) List(_ context.Context) ([]model.Stage, error) {
	var result []model.Stage
	for _, s := range m.stages {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStageRepo) Update(_ context.Context, stage *model.Stage) error {
	m.stages[stage.StageID] = stage
	return nil
}

func (m *mockStageRepo) ClearActive(_ context.Context) error {
	for _, s := range m.stages {
		s.IsActive = false
	}
	return nil
}

// ── Mock DivisionRepository ──

type mockDivisionRepo struct {
	divisions map[string]*model.Division
	order     []string
}

func newMockDivisionRepo() *mockDivisionRepo {
	return &mockDivisionRepo{divisions: make(map[string]*model.Division)}
}

func (m *mockDivisionRepo) Create(_ context.Context, division *model.Division) error {
	if division.DivisionID == "" {
		division.DivisionID = fmt.Sprintf("div-%s-%d", division.StageID, division.Level)
	}
	m.divisions[division.DivisionID] = division
	m.order = append(m.order, division.DivisionID)
	return nil
}

func (m *mockDivisionRepo) GetByID(_ context.Context, id string) (*model.Division, error) {
	if d, ok := m.divisions[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDivisionRepo) ListByStage(_ context.Context, stageID string) ([]model.Division, error) {
	var result []model.Division
	for _, id := range m.order {
		d := m.divisions[id]
		if d != nil && d.StageID == stageID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDivisionRepo) Update(_ context.Context, division *model.Division) error {
	m.divisions[division.DivisionID] = division
	return nil
}

func (m *mockDivisionRepo) Delete(_ context.Context, id string) error {
	delete(m.divisions, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
	order       []string
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	if e.EnrollmentID == "" {
		e.EnrollmentID = fmt.Sprintf("enr-%s-%s", e.PlayerID, e.StageID)
	}
	m.enrollments[e.EnrollmentID] = e
	m.order = append(m.order, e.EnrollmentID)
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByPlayerStage(_ context.Context, playerID, stageID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.PlayerID == playerID && e.StageID == stageID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListActive(_ context.Context, stageID, divisionID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, id := range m.order {
		e := m.enrollments[id]
		if e != nil && e.StageID == stageID && e.DivisionID == divisionID && e.Status == model.EnrollmentActive {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByStage(_ context.Context, stageID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, id := range m.order {
		e := m.enrollments[id]
		if e != nil && e.StageID == stageID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, e *model.Enrollment) error {
	m.enrollments[e.EnrollmentID] = e
	return nil
}

// ── Mock MatchRepository ──

type mockMatchRepo struct {
	matches map[string]*model.Match
	order   []string
	seq     int
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{matches: make(map[string]*model.Match)}
}

func (m *mockMatchRepo) Create(_ context.Context, match *model.Match) error {
	if match.MatchID == "" {
		m.seq++
		match.MatchID = fmt.Sprintf("match-%03d", m.seq)
	}
	m.matches[match.MatchID] = match
	m.order = append(m.order, match.MatchID)
	return nil
}

func (m *mockMatchRepo) GetByID(_ context.Context, id string) (*model.Match, error) {
	if mt, ok := m.matches[id]; ok {
		return mt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMatchRepo) List(_ context.Context, stageID, divisionID, status string, _, _ int) ([]model.Match, int64, error) {
	var result []model.Match
	for _, id := range m.order {
		mt := m.matches[id]
		if mt == nil {
			continue
		}
		if stageID != "" && mt.StageID != stageID {
			continue
		}
		if divisionID != "" && mt.DivisionID != divisionID {
			continue
		}
		if status != "" && mt.Status != status {
			continue
		}
		result = append(result, *mt)
	}
	return result, int64(len(result)), nil
}

func (m *mockMatchRepo) ListPlayed(_ context.Context, stageID, divisionID string) ([]model.Match, error) {
	var result []model.Match
	for _, id := range m.order {
		mt := m.matches[id]
		if mt != nil && mt.StageID == stageID && mt.DivisionID == divisionID && mt.Counted() {
			result = append(result, *mt)
		}
	}
	return result, nil
}

func (m *mockMatchRepo) ListPlayedByPlayer(_ context.Context, playerID string) ([]model.Match, error) {
	var result []model.Match
	for _, id := range m.order {
		mt := m.matches[id]
		if mt != nil && mt.Counted() && mt.TeamOf(playerID) != 0 {
			result = append(result, *mt)
		}
	}
	return result, nil
}

func (m *mockMatchRepo) CountPlayed(_ context.Context) (int64, error) {
	var n int64
	for _, mt := range m.matches {
		if mt.Counted() {
			n++
		}
	}
	return n, nil
}

func (m *mockMatchRepo) Update(_ context.Context, match *model.Match) error {
	m.matches[match.MatchID] = match
	return nil
}

func (m *mockMatchRepo) Delete(_ context.Context, id string) error {
	delete(m.matches, id)
	return nil
}

// ── Mock RankingRepository ──

type mockRankingRepo struct {
	rankings map[string]*model.Ranking // key: player:stage:division
}

func newMockRankingRepo() *mockRankingRepo {
	return &mockRankingRepo{rankings: make(map[string]*model.Ranking)}
}

func rankingKey(playerID, stageID, divisionID string) string {
	return playerID + ":" + stageID + ":" + divisionID
}

func (m *mockRankingRepo) UpsertAll(_ context.Context, rankings []model.Ranking) error {
	for i := range rankings {
		r := rankings[i]
		m.rankings[rankingKey(r.PlayerID, r.StageID, r.DivisionID)] = &r
	}
	return nil
}

func (m *mockRankingRepo) GetByPlayer(_ context.Context, playerID, stageID, divisionID string) (*model.Ranking, error) {
	if r, ok := m.rankings[rankingKey(playerID, stageID, divisionID)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRankingRepo) ListByDivision(_ context.Context, stageID, divisionID string) ([]model.Ranking, error) {
	var result []model.Ranking
	for _, r := range m.rankings {
		if r.StageID == stageID && r.DivisionID == divisionID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRankingRepo) DeleteStale(_ context.Context, stageID, divisionID string, keepPlayerIDs []string) error {
	keep := make(map[string]bool, len(keepPlayerIDs))
	for _, id := range keepPlayerIDs {
		keep[id] = true
	}
	for key, r := range m.rankings {
		if r.StageID == stageID && r.DivisionID == divisionID && !keep[r.PlayerID] {
			delete(m.rankings, key)
		}
	}
	return nil
}

// ── Mock PromotionConfigRepository ──

type mockPromotionConfigRepo struct {
	configs map[string]*model.PromotionConfig
	seq     int
}

func newMockPromotionConfigRepo() *mockPromotionConfigRepo {
	return &mockPromotionConfigRepo{configs: make(map[string]*model.PromotionConfig)}
}

func (m *mockPromotionConfigRepo) GetByDivision(_ context.Context, stageID, divisionID string) (*model.PromotionConfig, error) {
	for _, cfg := range m.configs {
		if cfg.StageID == stageID && cfg.DivisionID != nil && *cfg.DivisionID == divisionID {
			return cfg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPromotionConfigRepo) GetStageDefault(_ context.Context, stageID string) (*model.PromotionConfig, error) {
	for _, cfg := range m.configs {
		if cfg.StageID == stageID && cfg.DivisionID == nil {
			return cfg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPromotionConfigRepo) ListByStage(_ context.Context, stageID string) ([]model.PromotionConfig, error) {
	var result []model.PromotionConfig
	for _, cfg := range m.configs {
		if cfg.StageID == stageID {
			result = append(result, *cfg)
		}
	}
	return result, nil
}

func (m *mockPromotionConfigRepo) Create(_ context.Context, cfg *model.PromotionConfig) error {
	if cfg.ConfigID == "" {
		m.seq++
		cfg.ConfigID = fmt.Sprintf("cfg-%03d", m.seq)
	}
	m.configs[cfg.ConfigID] = cfg
	return nil
}

func (m *mockPromotionConfigRepo) Update(_ context.Context, cfg *model.PromotionConfig) error {
	m.configs[cfg.ConfigID] = cfg
	return nil
}

func (m *mockPromotionConfigRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.configs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.configs, id)
	return nil
}

// ── Mock TransitionRepository ──

type mockTransitionRepo struct {
	transitions []model.StageTransition
}

func newMockTransitionRepo() *mockTransitionRepo {
	return &mockTransitionRepo{}
}

func (m *mockTransitionRepo) CreateBatch(_ context.Context, transitions []model.StageTransition) error {
	m.transitions = append(m.transitions, transitions...)
	return nil
}

func (m *mockTransitionRepo) ListByStage(_ context.Context, stageID string) ([]model.StageTransition, error) {
	var result []model.StageTransition
	for _, t := range m.transitions {
		if t.StageID == stageID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTransitionRepo) ExistsForStage(_ context.Context, stageID string) (bool, error) {
	for _, t := range m.transitions {
		if t.StageID == stageID {
			return true, nil
		}
	}
	return false, nil
}
