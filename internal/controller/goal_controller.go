package controller

import (
	"errors"
	"strconv"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/service"
	"goalapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GoalController 处理目标的API请求
type GoalController struct {
	GoalService       *service.GoalService
	ExpirationService *service.GoalExpirationService
}

func NewGoalController(goalService *service.GoalService, expirationService *service.GoalExpirationService) *GoalController {
	return &GoalController{
		GoalService:       goalService,
		ExpirationService: expirationService,
	}
}

func handleGoalError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrGoalNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidHierarchy), errors.Is(err, util.ErrMissingDueDate):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func parseGoalID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid goal id")
		return 0, false
	}
	return uint(id), true
}

// @Summary 创建目标
// @Description 创建新目标，挂在父目标下时校验类型层级
// @Tags 目标
// @Accept json
// @Produce json
// @Param goal body service.CreateGoalRequest true "目标信息"
// @Success 201 {object} util.Response
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(req)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// @Summary 获取所有目标
// @Tags 目标
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/goals [get]
func (c *GoalController) GetAllGoals(ctx *gin.Context) {
	goals, err := c.GoalService.GetAllGoals()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 获取单个目标
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [get]
func (c *GoalController) GetGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	goal, err := c.GoalService.GetGoal(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// @Summary 更新目标
// @Tags 目标
// @Accept json
// @Produce json
// @Param id path int true "目标ID"
// @Param goal body service.UpdateGoalRequest true "更新内容"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	var req service.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(id, req)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// @Summary 删除目标
// @Description 删除目标及其全部子目标
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 204
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	if err := c.GoalService.DeleteGoal(id); err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary 获取顶层目标
// @Tags 目标
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/goals/roots [get]
func (c *GoalController) GetRootGoals(ctx *gin.Context) {
	goals, err := c.GoalService.GetRootGoals()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 获取今日目标
// @Description 截止日期在今天的目标
// @Tags 目标
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/goals/today [get]
func (c *GoalController) GetTodayGoals(ctx *gin.Context) {
	goals, err := c.GoalService.GetTodayGoals(time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 按类型获取目标
// @Tags 目标
// @Produce json
// @Param type path string true "目标类型" Enums(LIFETIME, LIFETIME_SUB, YEARLY, MONTHLY, WEEKLY, DAILY)
// @Success 200 {object} util.Response
// @Router /api/goals/type/{type} [get]
func (c *GoalController) GetGoalsByType(ctx *gin.Context) {
	goals, err := c.GoalService.GetGoalsByType(model.GoalType(ctx.Param("type")))
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 按状态获取目标
// @Tags 目标
// @Produce json
// @Param status path string true "目标状态" Enums(ACTIVE, COMPLETED, EXPIRED, ARCHIVED)
// @Success 200 {object} util.Response
// @Router /api/goals/status/{status} [get]
func (c *GoalController) GetGoalsByStatus(ctx *gin.Context) {
	goals, err := c.GoalService.GetGoalsByStatus(model.GoalStatus(ctx.Param("status")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 获取已过期目标
// @Tags 目标
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/goals/expired [get]
func (c *GoalController) GetExpiredGoals(ctx *gin.Context) {
	goals, err := c.GoalService.GetGoalsByStatus(model.GoalStatusExpired)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 获取已归档目标
// @Tags 目标
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/goals/archived [get]
func (c *GoalController) GetArchivedGoals(ctx *gin.Context) {
	goals, err := c.GoalService.GetGoalsByStatus(model.GoalStatusArchived)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 获取即将到期目标
// @Tags 目标
// @Produce json
// @Param hours query int false "时间窗口（小时）" default(24)
// @Success 200 {object} util.Response
// @Router /api/goals/expiring-soon [get]
func (c *GoalController) GetExpiringSoonGoals(ctx *gin.Context) {
	hours, err := strconv.Atoi(ctx.DefaultQuery("hours", "24"))
	if err != nil || hours <= 0 {
		util.BadRequest(ctx, "invalid hours")
		return
	}

	goals, err := c.ExpirationService.GetExpiringSoonGoals(hours)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 获取子目标
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/children [get]
func (c *GoalController) GetChildGoals(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	goals, err := c.GoalService.GetChildGoals(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary 获取目标进度
// @Description 按直接子目标完成比例计算进度百分比
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/progress [get]
func (c *GoalController) GetProgress(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	progress, err := c.GoalService.GetProgress(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"progress": progress})
}

// @Summary 获取可创建的子目标类型
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/subtypes [get]
func (c *GoalController) GetAvailableSubTypes(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	types, err := c.GoalService.GetAvailableSubTypes(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, types)
}

// @Summary 完成目标
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/complete [post]
func (c *GoalController) CompleteGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	goal, err := c.GoalService.CompleteGoal(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// @Summary 取消完成目标
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/uncomplete [post]
func (c *GoalController) UncompleteGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	goal, err := c.GoalService.UncompleteGoal(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// @Summary 标记目标过期
// @Description 已完成的目标不会被标记
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/expire [post]
func (c *GoalController) ExpireGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	goal, err := c.GoalService.ExpireGoal(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// @Summary 归档目标
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/archive [post]
func (c *GoalController) ArchiveGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	goal, err := c.GoalService.ArchiveGoal(id)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// @Summary 延长目标截止日期
// @Description 延长后目标重新激活（EXPIRED也会回到ACTIVE）
// @Tags 目标
// @Produce json
// @Param id path int true "目标ID"
// @Param days query int false "延长天数" default(1)
// @Success 200 {object} util.Response
// @Router /api/goals/{id}/extend [post]
func (c *GoalController) ExtendGoal(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	days, err := strconv.Atoi(ctx.DefaultQuery("days", "1"))
	if err != nil || days <= 0 {
		util.BadRequest(ctx, "invalid days")
		return
	}

	goal, err := c.GoalService.ExtendGoal(id, days)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}
