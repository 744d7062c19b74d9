package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniactivity/internal/app/models/dto"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/middleware"
)

// ClassController handles class-related operations
type ClassController struct {
	classService services.ClassService
	now          Clock
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService, now Clock) *ClassController {
	return &ClassController{
		classService: classService,
		now:          now,
	}
}

// CreateClass handles class creation
// @Summary Create a class
// @Description Creates a class. With a repetition and an end date the class sessions are
// @Description expanded and one copy of the class is created per period.
// @Tags classes
// @Accept json
// @Produce json
// @Param request body dto.ClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=[]dto.ClassResponse} "Classes created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data or unsupported repetition"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	class, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.classService.CreateClass(ctx, class)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewClassListResponse(created), "Classes created successfully"))
}

// GetClassByID retrieves a class by ID
// @Summary Get class details
// @Tags classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 404 {object} dto.APIResponse "Class not found"
// @Router /classes/{id} [get]
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	class, err := c.classService.GetClassByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClassResponse(class), ""))
}

// GetAllClasses retrieves all classes
// @Summary Get all classes
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassResponse}
// @Success 204 "No classes"
// @Router /classes [get]
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	classes, err := c.classService.GetAllClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewClassListResponse(classes), "")
}

// UpdateClass replaces an existing class
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param request body dto.ClassRequest true "Class information"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 404 {object} dto.APIResponse "Class not found"
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	class, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.classService.UpdateClass(ctx, ctx.Param("id"), class)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClassResponse(updated), "Class updated successfully"))
}

// DeleteClass deletes a class and its enrollments
// @Summary Delete a class
// @Tags classes
// @Param id path string true "Class ID"
// @Success 204 "Class deleted"
// @Failure 404 {object} dto.APIResponse "Class not found"
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	if err := c.classService.DeleteClass(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetClassesByType lists classes of one type
// @Summary List classes by type
// @Tags classes
// @Produce json
// @Param type path string true "Class type"
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassResponse}
// @Success 204 "No classes"
// @Router /classes/type/{type} [get]
func (c *ClassController) GetClassesByType(ctx *gin.Context) {
	classes, err := c.classService.GetClassesByType(ctx, ctx.Param("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewClassListResponse(classes), "")
}

// GetActiveClasses lists classes that end today or later
// @Summary List active classes
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassResponse}
// @Success 204 "No active classes"
// @Router /classes/active [get]
func (c *ClassController) GetActiveClasses(ctx *gin.Context) {
	classes, err := c.classService.GetActiveClasses(ctx, c.now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewClassListResponse(classes), "")
}

// GetClassesBySchedule lists classes with a session on the given day inside the time window
// @Summary List classes by session window
// @Tags classes
// @Produce json
// @Param day query string true "Session day label"
// @Param startTime query string false "Earliest session start"
// @Param endTime query string false "Latest session end"
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassResponse}
// @Success 204 "No classes"
// @Router /classes/schedule [get]
func (c *ClassController) GetClassesBySchedule(ctx *gin.Context) {
	var query dto.SessionWindowQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	classes, err := c.classService.GetClassesBySessionWindow(ctx, query.Day, query.StartTime, query.EndTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewClassListResponse(classes), "")
}
