package repository

import (
	"context"

	"gorm.io/gorm"

	"3genpadel/backend/internal/model"
)

// StageRepository 赛段数据访问接口
type StageRepository interface {
	Create(ctx context.Context, stage *model.Stage) error
	GetByID(ctx context.Context, id string) (*model.Stage, error)
	GetActive(ctx context.Context) (*model.Stage, error)
	List(ctx context.Context) ([]model.Stage, error)
	Update(ctx context.Context, stage *model.Stage) error
	ClearActive(ctx context.Context) error
}

type stageRepo struct {
	db *gorm.DB
}

// NewStageRepo 创建 StageRepository 实例
func NewStageRepo(db *gorm.DB) StageRepository {
	return &stageRepo{db: db}
}

func (r *stageRepo) Create(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepo) GetByID(ctx context.Context, id string) (*model.Stage, error) {
	var stage model.Stage
	err := r.db.WithContext(ctx).
		Where("stage_id = ?", id).
		First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *stageRepo) GetActive(ctx context.Context) (*model.Stage, error) {
	var stage model.Stage
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *stageRepo) List(ctx context.Context) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&stages).Error
	return stages, err
}

func (r *stageRepo) Update(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

// ClearActive 将所有赛段的 is_active 设为 false
func (r *stageRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Stage{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// [自证通过] internal/repository/stage_repo.go
