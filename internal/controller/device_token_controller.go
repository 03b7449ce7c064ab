package controller

import (
	"errors"

	"goalapp_backend/internal/service"
	"goalapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DeviceTokenController 处理设备令牌的API请求
type DeviceTokenController struct {
	TokenService          *service.DeviceTokenService
	NotificationScheduler *service.NotificationScheduler
}

func NewDeviceTokenController(tokenService *service.DeviceTokenService, scheduler *service.NotificationScheduler) *DeviceTokenController {
	return &DeviceTokenController{
		TokenService:          tokenService,
		NotificationScheduler: scheduler,
	}
}

func handleTokenError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrTokenNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}

// @Summary 注册设备令牌
// @Description 按fcmToken去重，已存在则更新设备信息并重新激活
// @Tags 设备
// @Accept json
// @Produce json
// @Param token body service.RegisterTokenRequest true "设备令牌信息"
// @Success 201 {object} util.Response
// @Router /api/device-tokens [post]
func (c *DeviceTokenController) RegisterToken(ctx *gin.Context) {
	var req service.RegisterTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.TokenService.Register(req)
	if err != nil {
		handleTokenError(ctx, err)
		return
	}
	util.Created(ctx, token)
}

// @Summary 获取活跃设备令牌
// @Tags 设备
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/device-tokens [get]
func (c *DeviceTokenController) GetActiveTokens(ctx *gin.Context) {
	tokens, err := c.TokenService.GetActiveTokens()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tokens)
}

// @Summary 获取单个设备令牌
// @Tags 设备
// @Produce json
// @Param id path string true "令牌ID"
// @Success 200 {object} util.Response
// @Router /api/device-tokens/{id} [get]
func (c *DeviceTokenController) GetToken(ctx *gin.Context) {
	token, err := c.TokenService.GetToken(ctx.Param("id"))
	if err != nil {
		handleTokenError(ctx, err)
		return
	}
	util.Success(ctx, token)
}

// @Summary 按FCM令牌查询
// @Tags 设备
// @Produce json
// @Param token query string true "FCM令牌"
// @Success 200 {object} util.Response
// @Router /api/device-tokens/by-token [get]
func (c *DeviceTokenController) GetByFcmToken(ctx *gin.Context) {
	fcmToken := ctx.Query("token")
	if fcmToken == "" {
		util.BadRequest(ctx, "token is required")
		return
	}

	token, err := c.TokenService.GetByFcmToken(fcmToken)
	if err != nil {
		handleTokenError(ctx, err)
		return
	}
	util.Success(ctx, token)
}

// @Summary 注销设备令牌
// @Description 仅停用，不删除记录
// @Tags 设备
// @Produce json
// @Param id path string true "令牌ID"
// @Success 200 {object} util.Response
// @Router /api/device-tokens/{id} [delete]
func (c *DeviceTokenController) DeactivateToken(ctx *gin.Context) {
	token, err := c.TokenService.Deactivate(ctx.Param("id"))
	if err != nil {
		handleTokenError(ctx, err)
		return
	}
	util.Success(ctx, token)
}

// @Summary 发送测试推送
// @Tags 设备
// @Produce json
// @Param id path string true "令牌ID"
// @Success 200 {object} util.Response
// @Router /api/device-tokens/{id}/test-notification [post]
func (c *DeviceTokenController) SendTestNotification(ctx *gin.Context) {
	ok, err := c.NotificationScheduler.SendTestNotification(ctx.Param("id"))
	if err != nil {
		handleTokenError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"delivered": ok})
}
