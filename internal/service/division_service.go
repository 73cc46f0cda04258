package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/model"
	"3genpadel/backend/internal/repository"
)

// ── 分区模块业务错误 ──

var (
	ErrDivisionNotFound   = errors.New("分区不存在")
	ErrDivisionLevelTaken = errors.New("该赛段已存在同级别分区")
)

// DivisionService 分区管理服务
type DivisionService interface {
	Create(ctx context.Context, req *dto.CreateDivisionRequest) (*dto.DivisionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DivisionResponse, error)
	ListByStage(ctx context.Context, stageID string) ([]dto.DivisionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDivisionRequest) (*dto.DivisionResponse, error)
	Delete(ctx context.Context, id string) error
}

type divisionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDivisionService 创建 DivisionService 实例
func NewDivisionService(repo *repository.Repository, logger *zap.Logger) DivisionService {
	return &divisionService{repo: repo, logger: logger}
}

func (s *divisionService) Create(ctx context.Context, req *dto.CreateDivisionRequest) (*dto.DivisionResponse, error) {
	if _, err := s.repo.Stage.GetByID(ctx, req.StageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		s.logger.Error("查询赛段失败", zap.Error(err))
		return nil, err
	}

	// 同赛段内 level 唯一（数据库另有唯一约束兜底）
	existing, err := s.repo.Division.ListByStage(ctx, req.StageID)
	if err != nil {
		s.logger.Error("查询赛段分区失败", zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if existing[i].Level == req.Level {
			return nil, ErrDivisionLevelTaken
		}
	}

	division := &model.Division{
		StageID: req.StageID,
		Level:   req.Level,
		Name:    req.Name,
	}
	if err := s.repo.Division.Create(ctx, division); err != nil {
		s.logger.Error("创建分区失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("分区已创建",
		zap.String("division_id", division.DivisionID),
		zap.String("stage_id", division.StageID),
		zap.Int("level", division.Level),
	)
	resp := toDivisionResponse(division)
	return &resp, nil
}

func (s *divisionService) GetByID(ctx context.Context, id string) (*dto.DivisionResponse, error) {
	division, err := s.repo.Division.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDivisionNotFound
		}
		s.logger.Error("查询分区失败", zap.Error(err))
		return nil, err
	}
	resp := toDivisionResponse(division)
	return &resp, nil
}

func (s *divisionService) ListByStage(ctx context.Context, stageID string) ([]dto.DivisionResponse, error) {
	divisions, err := s.repo.Division.ListByStage(ctx, stageID)
	if err != nil {
		s.logger.Error("查询赛段分区失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.DivisionResponse, 0, len(divisions))
	for i := range divisions {
		out = append(out, toDivisionResponse(&divisions[i]))
	}
	return out, nil
}

func (s *divisionService) Update(ctx context.Context, id string, req *dto.UpdateDivisionRequest) (*dto.DivisionResponse, error) {
	division, err := s.repo.Division.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDivisionNotFound
		}
		s.logger.Error("查询分区失败", zap.Error(err))
		return nil, err
	}

	if req.Level != nil && *req.Level != division.Level {
		siblings, err := s.repo.Division.ListByStage(ctx, division.StageID)
		if err != nil {
			s.logger.Error("查询赛段分区失败", zap.Error(err))
			return nil, err
		}
		for i := range siblings {
			if siblings[i].DivisionID != division.DivisionID && siblings[i].Level == *req.Level {
				return nil, ErrDivisionLevelTaken
			}
		}
		division.Level = *req.Level
	}
	if req.Name != nil {
		division.Name = *req.Name
	}

	if err := s.repo.Division.Update(ctx, division); err != nil {
		s.logger.Error("更新分区失败", zap.Error(err))
		return nil, err
	}
	resp := toDivisionResponse(division)
	return &resp, nil
}

func (s *divisionService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Division.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDivisionNotFound
		}
		s.logger.Error("查询分区失败", zap.Error(err))
		return err
	}
	if err := s.repo.Division.Delete(ctx, id); err != nil {
		s.logger.Error("删除分区失败", zap.Error(err))
		return err
	}
	s.logger.Info("分区已删除", zap.String("division_id", id))
	return nil
}

func toDivisionResponse(d *model.Division) dto.DivisionResponse {
	return dto.DivisionResponse{
		ID:      d.DivisionID,
		StageID: d.StageID,
		Level:   d.Level,
		Name:    d.Name,
	}
}
