package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/internal/error/code"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/internal/error/response"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceReadingController 定义读数控制器接口
type InterfaceReadingController interface {
	PostReading()
	GetReadings()
	GetRoomReadings()
}

// ReadingController 处理电表读数相关的请求
type ReadingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReadingController 创建一个新的读数控制器
func NewReadingController(ctx *gin.Context, container *container.ServiceContainer) *ReadingController {
	return &ReadingController{
		Ctx:       ctx,
		Container: container,
	}
}

// ReadingRequest 表示读数上报请求结构
type ReadingRequest struct {
	RoomID    uint       `json:"room_id" binding:"required" example:"1"`
	Watt      *float64   `json:"watt" binding:"required" example:"450"`
	Timestamp *time.Time `json:"timestamp,omitempty"` // 缺省为服务端接收时间
}

// HandleReadingFunc 返回一个处理读数请求的Gin处理函数
func HandleReadingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReadingController(ctx, container)

		switch method {
		case "postReading":
			controller.PostReading()
		case "getReadings":
			controller.GetReadings()
		case "getRoomReadings":
			controller.GetRoomReadings()
		default:
			response.Fail(ctx, code.ErrValidation, nil)
		}
	}
}

// 1. PostReading 上报一条电表读数并触发负载分析
// @Summary 上报电表读数
// @Description 接收房间功率读数，落库后运行下班时段异常分析，必要时生成告警
// @Tags reading
// @Accept json
// @Produce json
// @Param reading body ReadingRequest true "读数内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reading [post]
func (c *ReadingController) PostReading() {
	var req ReadingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "缺少room_id或watt: "+err.Error(), nil)
		return
	}

	readingService := c.Container.GetService("reading").(services.InterfaceReadingService)

	reading, result, err := readingService.IngestReading(c.Ctx.Request.Context(), req.RoomID, *req.Watt, req.Timestamp)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			response.Fail(c.Ctx, code.ErrRoomNotFound, nil)
			return
		}
		// 读数已入库但告警链路失败时，把已入库的读数一并带回
		if reading != nil {
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "告警写入失败: "+err.Error(), gin.H{"reading": reading})
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"reading":  reading,
		"analysis": result,
	})
}

// 2. GetReadings 获取最近的读数列表
// @Summary 获取最近读数
// @Description 获取全部房间最近的50条读数，最新在前
// @Tags reading
// @Produce json
// @Success 200 {object} response.Response
// @Router /reading [get]
func (c *ReadingController) GetReadings() {
	readingService := c.Container.GetService("reading").(services.InterfaceReadingService)

	readings, err := readingService.GetRecentReadings(50)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, readings)
}

// 3. GetRoomReadings 获取指定房间的读数列表
// @Summary 获取房间读数
// @Description 获取指定房间最近的100条读数，最新在前
// @Tags reading
// @Produce json
// @Param roomId path int true "房间ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reading/room/{roomId} [get]
func (c *ReadingController) GetRoomReadings() {
	roomID, err := strconv.ParseUint(c.Ctx.Param("roomId"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	readingService := c.Container.GetService("reading").(services.InterfaceReadingService)

	readings, err := readingService.GetRoomReadings(uint(roomID), 100)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, readings)
}
