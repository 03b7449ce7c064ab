package controller

import (
	"strconv"
	"time"

	"goalapp_backend/internal/service"
	"goalapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SchedulerController 调度任务的手动触发入口，供运维与测试使用
type SchedulerController struct {
	ExpirationService *service.GoalExpirationService
}

func NewSchedulerController(expirationService *service.GoalExpirationService) *SchedulerController {
	return &SchedulerController{ExpirationService: expirationService}
}

// @Summary 立即执行过期检测
// @Description 扫描并过期所有已过截止日期的ACTIVE目标，返回转换数量
// @Tags 调度
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/scheduler/expire-check [post]
func (c *SchedulerController) RunExpireCheck(ctx *gin.Context) {
	count, err := c.ExpirationService.CheckAndExpireGoals(time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"expired": count})
}

// @Summary 立即执行归档检测
// @Description 归档EXPIRED超过保留期的目标，返回归档数量
// @Tags 调度
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/scheduler/archive-check [post]
func (c *SchedulerController) RunArchiveCheck(ctx *gin.Context) {
	count, err := c.ExpirationService.ArchiveExpiredGoals(time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"archived": count})
}

// @Summary 查询完成已久的目标
// @Description 完成时间早于指定小时数的目标，仅供运维查询
// @Tags 调度
// @Produce json
// @Param hours query int false "小时数" default(24)
// @Success 200 {object} util.Response
// @Router /api/admin/scheduler/stale-completed [get]
func (c *SchedulerController) GetStaleCompleted(ctx *gin.Context) {
	hours, err := strconv.Atoi(ctx.DefaultQuery("hours", "24"))
	if err != nil || hours <= 0 {
		util.BadRequest(ctx, "invalid hours")
		return
	}

	goals, err := c.ExpirationService.GetStaleCompletedGoals(hours)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}
