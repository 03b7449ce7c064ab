package controller

import (
	"errors"
	"strconv"
	"time"

	"goalapp_backend/internal/service"
	"goalapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RoutineController 处理日常习惯的API请求
type RoutineController struct {
	RoutineService *service.RoutineService
}

func NewRoutineController(routineService *service.RoutineService) *RoutineController {
	return &RoutineController{RoutineService: routineService}
}

func handleRoutineError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrRoutineNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}

func parseRoutineID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid routine id")
		return 0, false
	}
	return uint(id), true
}

// @Summary 创建习惯
// @Tags 习惯
// @Accept json
// @Produce json
// @Param routine body service.CreateRoutineRequest true "习惯信息"
// @Success 201 {object} util.Response
// @Router /api/routines [post]
func (c *RoutineController) CreateRoutine(ctx *gin.Context) {
	var req service.CreateRoutineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	routine, err := c.RoutineService.CreateRoutine(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, routine)
}

// @Summary 获取习惯列表
// @Tags 习惯
// @Produce json
// @Param active query bool false "仅返回启用的习惯"
// @Success 200 {object} util.Response
// @Router /api/routines [get]
func (c *RoutineController) GetRoutines(ctx *gin.Context) {
	var err error
	var routines interface{}

	if ctx.Query("active") == "true" {
		routines, err = c.RoutineService.GetActiveRoutines()
	} else {
		routines, err = c.RoutineService.GetAllRoutines()
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, routines)
}

// @Summary 获取单个习惯
// @Tags 习惯
// @Produce json
// @Param id path int true "习惯ID"
// @Success 200 {object} util.Response
// @Router /api/routines/{id} [get]
func (c *RoutineController) GetRoutine(ctx *gin.Context) {
	id, ok := parseRoutineID(ctx)
	if !ok {
		return
	}

	routine, err := c.RoutineService.GetRoutine(id)
	if err != nil {
		handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, routine)
}

// @Summary 更新习惯
// @Tags 习惯
// @Accept json
// @Produce json
// @Param id path int true "习惯ID"
// @Param routine body service.UpdateRoutineRequest true "更新内容"
// @Success 200 {object} util.Response
// @Router /api/routines/{id} [put]
func (c *RoutineController) UpdateRoutine(ctx *gin.Context) {
	id, ok := parseRoutineID(ctx)
	if !ok {
		return
	}

	var req service.UpdateRoutineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	routine, err := c.RoutineService.UpdateRoutine(id, req)
	if err != nil {
		handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, routine)
}

// @Summary 删除习惯
// @Description 连同打卡记录一起删除
// @Tags 习惯
// @Produce json
// @Param id path int true "习惯ID"
// @Success 204
// @Router /api/routines/{id} [delete]
func (c *RoutineController) DeleteRoutine(ctx *gin.Context) {
	id, ok := parseRoutineID(ctx)
	if !ok {
		return
	}

	if err := c.RoutineService.DeleteRoutine(id); err != nil {
		handleRoutineError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary 启用/停用习惯
// @Tags 习惯
// @Produce json
// @Param id path int true "习惯ID"
// @Success 200 {object} util.Response
// @Router /api/routines/{id}/toggle [post]
func (c *RoutineController) ToggleActive(ctx *gin.Context) {
	id, ok := parseRoutineID(ctx)
	if !ok {
		return
	}

	routine, err := c.RoutineService.ToggleActive(id)
	if err != nil {
		handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, routine)
}

// @Summary 今日打卡
// @Description 当天已打卡时返回已有记录
// @Tags 习惯
// @Produce json
// @Param id path int true "习惯ID"
// @Success 200 {object} util.Response
// @Router /api/routines/{id}/complete [post]
func (c *RoutineController) CompleteToday(ctx *gin.Context) {
	id, ok := parseRoutineID(ctx)
	if !ok {
		return
	}

	completion, err := c.RoutineService.CompleteToday(id, time.Now())
	if err != nil {
		handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, completion)
}

// @Summary 撤销今日打卡
// @Tags 习惯
// @Produce json
// @Param id path int true "习惯ID"
// @Success 204
// @Router /api/routines/{id}/complete [delete]
func (c *RoutineController) UncompleteToday(ctx *gin.Context) {
	id, ok := parseRoutineID(ctx)
	if !ok {
		return
	}

	if err := c.RoutineService.UncompleteToday(id, time.Now()); err != nil {
		handleRoutineError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary 获取打卡记录
// @Tags 习惯
// @Produce json
// @Param id path int true "习惯ID"
// @Success 200 {object} util.Response
// @Router /api/routines/{id}/completions [get]
func (c *RoutineController) GetCompletions(ctx *gin.Context) {
	id, ok := parseRoutineID(ctx)
	if !ok {
		return
	}

	completions, err := c.RoutineService.GetCompletions(id)
	if err != nil {
		handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, completions)
}
