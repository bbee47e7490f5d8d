package controllers

import (
	"errors"
	"strconv"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/internal/error/code"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/internal/error/response"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceDeviceController 定义设备控制器接口
type InterfaceDeviceController interface {
	GetDevices()
	GetDevice()
	CreateDevice()
	UpdateDevice()
	DeleteDevice()
}

// DeviceController 处理设备相关的请求
type DeviceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeviceController 创建一个新的设备控制器
func NewDeviceController(ctx *gin.Context, container *container.ServiceContainer) *DeviceController {
	return &DeviceController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeviceRequest 表示设备请求结构
type DeviceRequest struct {
	Name   string   `json:"name" binding:"required" example:"投影仪"`
	Watt   *float64 `json:"watt" binding:"required" example:"300"`
	RoomID uint     `json:"room_id" binding:"required" example:"1"`

	// 下班后被遗忘开启的长期概率，0 也是有效取值，缺省时取 0.5
	UsageProbability *float64 `json:"usage_probability" example:"0.5"`
}

// deviceFromRequest 把创建请求映射为设备模型，未提供的遗忘概率取缺省值
func deviceFromRequest(req DeviceRequest) *models.Device {
	device := &models.Device{
		Name:             req.Name,
		Watt:             *req.Watt,
		RoomID:           req.RoomID,
		UsageProbability: 0.5,
	}
	if req.UsageProbability != nil {
		device.UsageProbability = *req.UsageProbability
	}
	return device
}

// HandleDeviceFunc 返回一个处理设备请求的Gin处理函数
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeviceController(ctx, container)

		switch method {
		case "getDevices":
			controller.GetDevices()
		case "getDevice":
			controller.GetDevice()
		case "createDevice":
			controller.CreateDevice()
		case "updateDevice":
			controller.UpdateDevice()
		case "deleteDevice":
			controller.DeleteDevice()
		default:
			response.Fail(ctx, code.ErrValidation, nil)
		}
	}
}

// 1. GetDevices 获取设备列表
// @Summary 获取所有设备
// @Description 获取设备列表，可按房间过滤
// @Tags device
// @Produce json
// @Security BearerAuth
// @Param roomId query int false "房间ID"
// @Success 200 {object} response.Response
// @Router /device [get]
func (c *DeviceController) GetDevices() {
	var roomID uint
	if v := c.Ctx.Query("roomId"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "无效的房间ID")
			return
		}
		roomID = uint(parsed)
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	devices, err := deviceService.GetAllDevices(roomID)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, devices)
}

// 2. GetDevice 获取单个设备详情
// @Summary 获取单个设备
// @Description 根据ID获取设备信息
// @Tags device
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /device/{id} [get]
func (c *DeviceController) GetDevice() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	device, err := deviceService.GetDeviceByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, device)
}

// 3. CreateDevice 创建新设备
// @Summary 创建设备
// @Description 在指定房间下创建一个新设备
// @Tags device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param device body DeviceRequest true "设备内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /device [post]
func (c *DeviceController) CreateDevice() {
	var req DeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	device := deviceFromRequest(req)
	if err := deviceService.CreateDevice(device); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			response.Fail(c.Ctx, code.ErrRoomNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDeviceInvalid, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, device)
}

// 4. UpdateDevice 更新设备信息
// @Summary 更新设备
// @Description 更新设备名称、额定功率或遗忘概率
// @Tags device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Param updates body map[string]interface{} true "更新字段"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /device/{id} [put]
func (c *DeviceController) UpdateDevice() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	device, err := deviceService.UpdateDevice(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDeviceInvalid, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, device)
}

// 5. DeleteDevice 删除设备
// @Summary 删除设备
// @Description 根据ID删除设备
// @Tags device
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /device/{id} [delete]
func (c *DeviceController) DeleteDevice() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	if err := deviceService.DeleteDevice(uint(id)); err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "设备删除成功"})
}
