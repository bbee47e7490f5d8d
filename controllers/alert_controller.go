package controllers

import (
	"errors"
	"strconv"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/internal/error/code"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/internal/error/response"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceAlertController 定义告警控制器接口
type InterfaceAlertController interface {
	GetAlerts()
	GetAlert()
	ResolveAlert()
	GetReports()
}

// AlertController 处理告警相关的请求
type AlertController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAlertController 创建一个新的告警控制器
func NewAlertController(ctx *gin.Context, container *container.ServiceContainer) *AlertController {
	return &AlertController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAlertFunc 返回一个处理告警请求的Gin处理函数
func HandleAlertFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAlertController(ctx, container)

		switch method {
		case "getAlerts":
			controller.GetAlerts()
		case "getAlert":
			controller.GetAlert()
		case "resolveAlert":
			controller.ResolveAlert()
		case "getReports":
			controller.GetReports()
		default:
			response.Fail(ctx, code.ErrValidation, nil)
		}
	}
}

// 1. GetAlerts 获取告警列表
// @Summary 获取所有告警
// @Description 获取全部告警，附带房间与嫌疑设备详情，最新在前
// @Tags alert
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /alerts [get]
func (c *AlertController) GetAlerts() {
	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	alerts, err := alertService.GetAllAlerts()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, alerts)
}

// 2. GetAlert 获取单个告警详情
// @Summary 获取单个告警
// @Description 根据ID获取告警信息
// @Tags alert
// @Produce json
// @Security BearerAuth
// @Param id path int true "告警ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /alerts/{id} [get]
func (c *AlertController) GetAlert() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的告警ID")
		return
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	alert, err := alertService.GetAlertByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			response.Fail(c.Ctx, code.ErrAlertNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, alert)
}

// 3. ResolveAlert 将告警置为已处理
// @Summary 处理告警
// @Description 将告警状态置为resolved；重复处理是幂等的空操作
// @Tags alert
// @Produce json
// @Security BearerAuth
// @Param id path int true "告警ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /alerts/{id}/resolve [patch]
func (c *AlertController) ResolveAlert() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的告警ID")
		return
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	alert, err := alertService.ResolveAlert(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			response.Fail(c.Ctx, code.ErrAlertNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, alert)
}

// 4. GetReports 获取聚合浪费报表
// @Summary 获取浪费报表
// @Description 按房间聚合浪费电量、电费与碳排放，并给出总计
// @Tags alert
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /alerts/reports [get]
func (c *AlertController) GetReports() {
	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	summary, err := alertService.GetReportSummary()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, summary)
}
