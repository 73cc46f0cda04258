package repository

import (
	"context"

	"gorm.io/gorm"

	"3genpadel/backend/internal/model"
)

// PromotionConfigRepository 升降级配置数据访问接口
type PromotionConfigRepository interface {
	// GetByDivision 取分区专属配置行
	GetByDivision(ctx context.Context, stageID, divisionID string) (*model.PromotionConfig, error)
	// GetStageDefault 取赛段级默认行（division_id IS NULL）
	GetStageDefault(ctx context.Context, stageID string) (*model.PromotionConfig, error)
	ListByStage(ctx context.Context, stageID string) ([]model.PromotionConfig, error)
	Create(ctx context.Context, cfg *model.PromotionConfig) error
	Update(ctx context.Context, cfg *model.PromotionConfig) error
	Delete(ctx context.Context, id string) error
}

type promotionConfigRepo struct {
	db *gorm.DB
}

// NewPromotionConfigRepo 创建 PromotionConfigRepository 实例
func NewPromotionConfigRepo(db *gorm.DB) PromotionConfigRepository {
	return &promotionConfigRepo{db: db}
}

func (r *promotionConfigRepo) GetByDivision(ctx context.Context, stageID, divisionID string) (*model.PromotionConfig, error) {
	var cfg model.PromotionConfig
	err := r.db.WithContext(ctx).
		Where("stage_id = ? AND division_id = ?", stageID, divisionID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *promotionConfigRepo) GetStageDefault(ctx context.Context, stageID string) (*model.PromotionConfig, error) {
	var cfg model.PromotionConfig
	err := r.db.WithContext(ctx).
		Where("stage_id = ? AND division_id IS NULL", stageID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *promotionConfigRepo) ListByStage(ctx context.Context, stageID string) ([]model.PromotionConfig, error) {
	var cfgs []model.PromotionConfig
	err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("division_id ASC NULLS FIRST").
		Find(&cfgs).Error
	return cfgs, err
}

func (r *promotionConfigRepo) Create(ctx context.Context, cfg *model.PromotionConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *promotionConfigRepo) Update(ctx context.Context, cfg *model.PromotionConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

func (r *promotionConfigRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("config_id = ?", id).
		Delete(&model.PromotionConfig{}).Error
}
