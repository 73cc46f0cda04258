package repository

import (
	"context"

	"gorm.io/gorm"

	"3genpadel/backend/internal/model"
)

// DivisionRepository 分区数据访问接口
type DivisionRepository interface {
	Create(ctx context.Context, division *model.Division) error
	GetByID(ctx context.Context, id string) (*model.Division, error)
	ListByStage(ctx context.Context, stageID string) ([]model.Division, error)
	Update(ctx context.Context, division *model.Division) error
	Delete(ctx context.Context, id string) error
}

type divisionRepo struct {
	db *gorm.DB
}

// NewDivisionRepo 创建 DivisionRepository 实例
func NewDivisionRepo(db *gorm.DB) DivisionRepository {
	return &divisionRepo{db: db}
}

func (r *divisionRepo) Create(ctx context.Context, division *model.Division) error {
	return r.db.WithContext(ctx).Create(division).Error
}

func (r *divisionRepo) GetByID(ctx context.Context, id string) (*model.Division, error) {
	var division model.Division
	err := r.db.WithContext(ctx).
		Where("division_id = ?", id).
		First(&division).Error
	if err != nil {
		return nil, err
	}
	return &division, nil
}

// ListByStage 按级别升序返回赛段内全部分区（level 1 = 最高分区）
func (r *divisionRepo) ListByStage(ctx context.Context, stageID string) ([]model.Division, error) {
	var divisions []model.Division
	err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("level ASC").
		Find(&divisions).Error
	return divisions, err
}

func (r *divisionRepo) Update(ctx context.Context, division *model.Division) error {
	return r.db.WithContext(ctx).Save(division).Error
}

func (r *divisionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("division_id = ?", id).
		Delete(&model.Division{}).Error
}
