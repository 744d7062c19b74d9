package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniactivity/internal/app/models/dto"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/middleware"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/helpers"
)

// InscriptionController handles enrollments
type InscriptionController struct {
	inscriptionService services.InscriptionService
	now                Clock
}

// NewInscriptionController creates a new InscriptionController
func NewInscriptionController(inscriptionService services.InscriptionService, now Clock) *InscriptionController {
	return &InscriptionController{
		inscriptionService: inscriptionService,
		now:                now,
	}
}

// Enroll enrolls a user in a class
// @Summary Enroll in a class
// @Description Creates the class-level enrollment and one record per class session.
// @Tags inscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Enrollment"
// @Success 201 {object} dto.APIResponse{data=[]dto.AssistanceResponse} "Enrollment created"
// @Failure 400 {object} dto.APIResponse "Already enrolled or class full"
// @Failure 404 {object} dto.APIResponse "User or class not found"
// @Router /inscriptions [post]
func (c *InscriptionController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	startTime, err := helpers.ParseOptionalDateTime(req.StartTime)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error()))
		return
	}

	records, err := c.inscriptionService.Enroll(ctx, req.UserID, req.ClassID, startTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewAssistanceListResponse(records), "Enrollment created successfully"))
}

// Cancel removes every enrollment record of a user in a class
// @Summary Cancel an enrollment
// @Tags inscriptions
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param classId query string true "Class ID"
// @Success 204 "Enrollment cancelled"
// @Failure 404 {object} dto.APIResponse "Enrollment not found"
// @Router /inscriptions [delete]
func (c *InscriptionController) Cancel(ctx *gin.Context) {
	var req dto.CancelEnrollmentRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.inscriptionService.Cancel(ctx, req.UserID, req.ClassID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// PendingForUser lists a user's upcoming unconfirmed enrollments
// @Summary Pending enrollments of a user
// @Tags inscriptions
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssistanceResponse}
// @Success 204 "Nothing pending"
// @Router /inscriptions/users/{userId} [get]
func (c *InscriptionController) PendingForUser(ctx *gin.Context) {
	records, err := c.inscriptionService.PendingForUser(ctx, ctx.Param("userId"), c.now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewAssistanceListResponse(records), "")
}

// PendingAll lists every upcoming unconfirmed enrollment
// @Summary Pending enrollments
// @Tags inscriptions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AssistanceResponse}
// @Success 204 "Nothing pending"
// @Router /inscriptions [get]
func (c *InscriptionController) PendingAll(ctx *gin.Context) {
	records, err := c.inscriptionService.PendingAll(ctx, c.now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewAssistanceListResponse(records), "")
}
