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

// InterfaceRoomController 定义房间控制器接口
type InterfaceRoomController interface {
	GetRooms()
	GetRoom()
	CreateRoom()
	UpdateRoom()
	DeleteRoom()
	GetRoomDevices()
}

// RoomController 处理房间相关的请求
type RoomController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRoomController 创建一个新的房间控制器
func NewRoomController(ctx *gin.Context, container *container.ServiceContainer) *RoomController {
	return &RoomController{
		Ctx:       ctx,
		Container: container,
	}
}

// RoomRequest 表示房间请求结构
type RoomRequest struct {
	Name                 string  `json:"name" binding:"required" example:"机房201"`
	BuildingID           uint    `json:"building_id" binding:"required" example:"1"`
	WorkingHoursStart    string  `json:"working_hours_start" example:"09:00"`
	WorkingHoursEnd      string  `json:"working_hours_end" example:"17:00"`
	StandbyThresholdWatt float64 `json:"standby_threshold_watt" example:"5"`
	MapX                 float64 `json:"map_x"`
	MapY                 float64 `json:"map_y"`
	MapWidth             float64 `json:"map_width"`
	MapHeight            float64 `json:"map_height"`
}

// HandleRoomFunc 返回一个处理房间请求的Gin处理函数
func HandleRoomFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRoomController(ctx, container)

		switch method {
		case "getRooms":
			controller.GetRooms()
		case "getRoom":
			controller.GetRoom()
		case "createRoom":
			controller.CreateRoom()
		case "updateRoom":
			controller.UpdateRoom()
		case "deleteRoom":
			controller.DeleteRoom()
		case "getRoomDevices":
			controller.GetRoomDevices()
		default:
			response.Fail(ctx, code.ErrValidation, nil)
		}
	}
}

// 1. GetRooms 获取房间列表
// @Summary 获取所有房间
// @Description 获取房间列表，可按楼栋过滤
// @Tags room
// @Produce json
// @Security BearerAuth
// @Param buildingId query int false "楼栋ID"
// @Success 200 {object} response.Response
// @Router /room [get]
func (c *RoomController) GetRooms() {
	var buildingID uint
	if v := c.Ctx.Query("buildingId"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "无效的楼栋ID")
			return
		}
		buildingID = uint(parsed)
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)

	rooms, err := roomService.GetAllRooms(buildingID)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, rooms)
}

// 2. GetRoom 获取单个房间详情
// @Summary 获取单个房间
// @Description 根据ID获取房间信息，附带楼栋与设备列表
// @Tags room
// @Produce json
// @Security BearerAuth
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /room/{id} [get]
func (c *RoomController) GetRoom() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)

	room, err := roomService.GetRoomByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			response.Fail(c.Ctx, code.ErrRoomNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, room)
}

// 3. CreateRoom 创建新房间
// @Summary 创建房间
// @Description 在指定楼栋下创建一个新房间
// @Tags room
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room body RoomRequest true "房间内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /room [post]
func (c *RoomController) CreateRoom() {
	var req RoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)

	room := &models.Room{
		Name:                 req.Name,
		BuildingID:           req.BuildingID,
		WorkingHoursStart:    req.WorkingHoursStart,
		WorkingHoursEnd:      req.WorkingHoursEnd,
		StandbyThresholdWatt: req.StandbyThresholdWatt,
		MapX:                 req.MapX,
		MapY:                 req.MapY,
		MapWidth:             req.MapWidth,
		MapHeight:            req.MapHeight,
	}
	if err := roomService.CreateRoom(room); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, room)
}

// 4. UpdateRoom 更新房间信息
// @Summary 更新房间
// @Description 更新房间名称、工作时段、待机阈值或地图坐标
// @Tags room
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "房间ID"
// @Param updates body map[string]interface{} true "更新字段"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /room/{id} [put]
func (c *RoomController) UpdateRoom() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)

	room, err := roomService.UpdateRoom(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			response.Fail(c.Ctx, code.ErrRoomNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, room)
}

// 5. DeleteRoom 删除房间
// @Summary 删除房间
// @Description 根据ID删除房间
// @Tags room
// @Produce json
// @Security BearerAuth
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /room/{id} [delete]
func (c *RoomController) DeleteRoom() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)

	if err := roomService.DeleteRoom(uint(id)); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			response.Fail(c.Ctx, code.ErrRoomNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "房间删除成功"})
}

// 6. GetRoomDevices 获取房间内的设备列表
// @Summary 获取房间设备
// @Description 获取房间内全部设备
// @Tags room
// @Produce json
// @Security BearerAuth
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /room/{id}/devices [get]
func (c *RoomController) GetRoomDevices() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)

	devices, err := roomService.GetRoomDevices(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			response.Fail(c.Ctx, code.ErrRoomNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, devices)
}
