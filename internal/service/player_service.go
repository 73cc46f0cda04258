package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/model"
	"3genpadel/backend/internal/repository"
)

// ── 球员模块业务错误 ──

var (
	ErrPlayerNotFound = errors.New("球员不存在")
	ErrEmailTaken     = errors.New("该邮箱已被注册")
)

// PlayerService 球员管理服务
type PlayerService interface {
	Create(ctx context.Context, req *dto.CreatePlayerRequest) (*dto.PlayerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PlayerDetailResponse, error)
	List(ctx context.Context, page, pageSize int) ([]dto.PlayerResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdatePlayerRequest) (*dto.PlayerResponse, error)
	Delete(ctx context.Context, id string) error
}

type playerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlayerService 创建 PlayerService 实例
func NewPlayerService(repo *repository.Repository, logger *zap.Logger) PlayerService {
	return &playerService{repo: repo, logger: logger}
}

func (s *playerService) Create(ctx context.Context, req *dto.CreatePlayerRequest) (*dto.PlayerResponse, error) {
	if _, err := s.repo.Player.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询球员失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码加密失败", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "jugador"
	}
	player := &model.Player{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Player.Create(ctx, player); err != nil {
		s.logger.Error("创建球员失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("球员已创建", zap.String("player_id", player.PlayerID), zap.String("email", player.Email))
	resp := toPlayerResponse(player)
	return &resp, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*dto.PlayerDetailResponse, error) {
	player, err := s.repo.Player.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("查询球员失败", zap.Error(err))
		return nil, err
	}
	resp := toPlayerDetailResponse(player)
	return &resp, nil
}

func (s *playerService) List(ctx context.Context, page, pageSize int) ([]dto.PlayerResponse, int64, error) {
	players, total, err := s.repo.Player.List(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("查询球员列表失败", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.PlayerResponse, 0, len(players))
	for i := range players {
		out = append(out, toPlayerResponse(&players[i]))
	}
	return out, total, nil
}

func (s *playerService) Update(ctx context.Context, id string, req *dto.UpdatePlayerRequest) (*dto.PlayerResponse, error) {
	player, err := s.repo.Player.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("查询球员失败", zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != player.Email {
		if _, err := s.repo.Player.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询球员失败", zap.Error(err))
			return nil, err
		}
		player.Email = *req.Email
	}
	if req.Name != nil {
		player.Name = *req.Name
	}

	if err := s.repo.Player.Update(ctx, player); err != nil {
		s.logger.Error("更新球员失败", zap.Error(err))
		return nil, err
	}
	resp := toPlayerResponse(player)
	return &resp, nil
}

func (s *playerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Player.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlayerNotFound
		}
		s.logger.Error("查询球员失败", zap.Error(err))
		return err
	}
	if err := s.repo.Player.Delete(ctx, id); err != nil {
		s.logger.Error("删除球员失败", zap.Error(err))
		return err
	}
	s.logger.Info("球员已删除", zap.String("player_id", id))
	return nil
}

func toPlayerResponse(p *model.Player) dto.PlayerResponse {
	return dto.PlayerResponse{
		ID:    p.PlayerID,
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
}

func toPlayerDetailResponse(p *model.Player) dto.PlayerDetailResponse {
	resp := dto.PlayerDetailResponse{
		PlayerResponse:     toPlayerResponse(p),
		GlobalScore:        p.GlobalScore,
		TotalMatchesPlayed: p.TotalMatchesPlayed,
		TotalMatchesWon:    p.TotalMatchesWon,
	}
	if p.GlobalRecomputedAt != nil {
		resp.GlobalRecomputedAt = p.GlobalRecomputedAt.Format(time.RFC3339)
	}
	return resp
}
