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

// AssistanceController handles attendance
type AssistanceController struct {
	assistanceService services.AssistanceService
	now               Clock
}

// NewAssistanceController creates a new AssistanceController
func NewAssistanceController(assistanceService services.AssistanceService, now Clock) *AssistanceController {
	return &AssistanceController{
		assistanceService: assistanceService,
		now:               now,
	}
}

// Confirm marks an enrollment as attended
// @Summary Confirm attendance
// @Description Confirms the class-level record, or the session record when sessionId is
// @Description given. The instructor defaults to the authenticated user.
// @Tags assistance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ConfirmAttendanceRequest true "Attendance"
// @Success 200 {object} dto.APIResponse{data=dto.AssistanceResponse}
// @Failure 400 {object} dto.APIResponse "Not enrolled or already confirmed"
// @Router /assistance/confirm [post]
func (c *AssistanceController) Confirm(ctx *gin.Context) {
	var req dto.ConfirmAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	instructorID := req.InstructorID
	if instructorID == "" {
		instructorID, _ = middleware.UserIDFromContext(ctx)
	}

	record, err := c.assistanceService.Confirm(ctx, req.UserID, req.ClassID, req.SessionID, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAssistanceResponse(record), "Attendance confirmed"))
}

// ConfirmedAll lists every confirmed record
// @Summary Confirmed attendance
// @Tags assistance
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AssistanceResponse}
// @Success 204 "Nothing confirmed"
// @Router /assistance/confirmed [get]
func (c *AssistanceController) ConfirmedAll(ctx *gin.Context) {
	records, err := c.assistanceService.ConfirmedAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewAssistanceListResponse(records), "")
}

// Absences lists unconfirmed records whose start time has passed
// @Summary Absences
// @Tags assistance
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AssistanceResponse}
// @Success 204 "No absences"
// @Router /assistance/absences [get]
func (c *AssistanceController) Absences(ctx *gin.Context) {
	records, err := c.assistanceService.AbsencesBefore(ctx, c.now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewAssistanceListResponse(records), "")
}

// CountInRange counts a user's confirmed records between two days, both inclusive
// @Summary Count attendance in a date range
// @Tags assistance
// @Produce json
// @Param userId path string true "User ID"
// @Param start query string true "First day (YYYY-MM-DD)"
// @Param end query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Failure 400 {object} dto.APIResponse "Invalid range or no attendance"
// @Router /assistance/users/{userId}/count [get]
func (c *AssistanceController) CountInRange(ctx *gin.Context) {
	var query dto.DateRangeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	start, err := helpers.ParseDate(query.Start)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error()))
		return
	}
	end, err := helpers.ParseDate(query.End)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error()))
		return
	}

	count, err := c.assistanceService.CountConfirmedInRange(ctx, ctx.Param("userId"), start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CountResponse{Count: count}, ""))
}

// CountForClass counts a user's confirmed records in one class
// @Summary Count attendance in a class
// @Tags assistance
// @Produce json
// @Param userId path string true "User ID"
// @Param classId path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Failure 400 {object} dto.APIResponse "No attendance"
// @Router /assistance/users/{userId}/classes/{classId}/count [get]
func (c *AssistanceController) CountForClass(ctx *gin.Context) {
	count, err := c.assistanceService.CountConfirmedForClass(ctx, ctx.Param("userId"), ctx.Param("classId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CountResponse{Count: count}, ""))
}

// History lists every record of a user
// @Summary Attendance history of a user
// @Tags assistance
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssistanceResponse}
// @Success 204 "No history"
// @Router /assistance/users/{userId}/history [get]
func (c *AssistanceController) History(ctx *gin.Context) {
	records, err := c.assistanceService.HistoryForUser(ctx, ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewAssistanceListResponse(records), "")
}
