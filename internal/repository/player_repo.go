package repository

import (
	"context"

	"gorm.io/gorm"

	"3genpadel/backend/internal/model"
)

// PlayerRepository 球员数据访问接口
type PlayerRepository interface {
	Create(ctx context.Context, player *model.Player) error
	GetByID(ctx context.Context, id string) (*model.Player, error)
	GetByEmail(ctx context.Context, email string) (*model.Player, error)
	List(ctx context.Context, page, pageSize int) ([]model.Player, int64, error)
	Update(ctx context.Context, player *model.Player) error
	// UpdateGlobalForm 一次性写入全局状态派生字段（全有或全无）
	UpdateGlobalForm(ctx context.Context, playerID string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type playerRepo struct {
	db *gorm.DB
}

// NewPlayerRepo 创建 PlayerRepository 实例
func NewPlayerRepo(db *gorm.DB) PlayerRepository {
	return &playerRepo{db: db}
}

func (r *playerRepo) Create(ctx context.Context, player *model.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *playerRepo) GetByID(ctx context.Context, id string) (*model.Player, error) {
	var player model.Player
	err := r.db.WithContext(ctx).
		Where("player_id = ?", id).
		First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepo) GetByEmail(ctx context.Context, email string) (*model.Player, error) {
	var player model.Player
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepo) List(ctx context.Context, page, pageSize int) ([]model.Player, int64, error) {
	var players []model.Player
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Player{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&players).Error
	return players, total, err
}

func (r *playerRepo) Update(ctx context.Context, player *model.Player) error {
	return r.db.WithContext(ctx).Save(player).Error
}

func (r *playerRepo) UpdateGlobalForm(ctx context.Context, playerID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("player_id = ?", playerID).
		Updates(fields).Error
}

func (r *playerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("player_id = ?", id).
		Delete(&model.Player{}).Error
}
