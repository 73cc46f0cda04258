package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/service"
	"3genpadel/backend/pkg/response"
)

// EnrollmentHandler 报名模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// ListEnrollments 获取分区报名列表
// GET /api/v1/enrollments?stage_id=xxx&division_id=xxx
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	stageID := c.Query("stage_id")
	divisionID := c.Query("division_id")
	if stageID == "" || divisionID == "" {
		response.BadRequest(c, 10001, "stage_id 与 division_id 不能为空")
		return
	}

	enrollments, err := h.enrollmentSvc.ListByDivision(c.Request.Context(), stageID, divisionID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": enrollments})
}

// CreateEnrollment 球员报名
// POST /api/v1/enrollments
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	enrollment, err := h.enrollmentSvc.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.Created(c, enrollment)
}

// WithdrawEnrollment 退出报名
// PUT /api/v1/enrollments/:id/withdraw
func (h *EnrollmentHandler) WithdrawEnrollment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "报名ID不能为空")
		return
	}

	if err := h.enrollmentSvc.Withdraw(c.Request.Context(), id); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEnrollmentError 统一处理报名模块业务错误
func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 15001, "报名记录不存在")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 15002, "该球员在此赛段已有报名")
	case errors.Is(err, service.ErrEnrollmentWithdrawn):
		response.BadRequest(c, 15003, "报名已退出")
	case errors.Is(err, service.ErrDivisionMismatch):
		response.BadRequest(c, 15004, "分区不属于该赛段")
	case errors.Is(err, service.ErrPlayerNotFound):
		response.NotFound(c, 12001, "球员不存在")
	case errors.Is(err, service.ErrStageNotFound):
		response.NotFound(c, 13001, "赛段不存在")
	case errors.Is(err, service.ErrDivisionNotFound):
		response.NotFound(c, 14001, "分区不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/enrollment_handler.go
