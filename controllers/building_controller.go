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

// InterfaceBuildingController 定义楼栋控制器接口
type InterfaceBuildingController interface {
	GetBuildings()
	GetBuilding()
	CreateBuilding()
	UpdateBuilding()
	DeleteBuilding()
	GetBuildingRooms()
}

// BuildingController 处理楼栋相关的请求
type BuildingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBuildingController 创建一个新的楼栋控制器
func NewBuildingController(ctx *gin.Context, container *container.ServiceContainer) *BuildingController {
	return &BuildingController{
		Ctx:       ctx,
		Container: container,
	}
}

// BuildingRequest 表示楼栋请求结构
type BuildingRequest struct {
	Name              string `json:"name" binding:"required" example:"理科楼"`
	InstitutionID     uint   `json:"institution_id" binding:"required" example:"1"`
	WorkingHoursStart string `json:"working_hours_start" example:"09:00"`
	WorkingHoursEnd   string `json:"working_hours_end" example:"17:00"`
}

// HandleBuildingFunc 返回一个处理楼栋请求的Gin处理函数
func HandleBuildingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBuildingController(ctx, container)

		switch method {
		case "getBuildings":
			controller.GetBuildings()
		case "getBuilding":
			controller.GetBuilding()
		case "createBuilding":
			controller.CreateBuilding()
		case "updateBuilding":
			controller.UpdateBuilding()
		case "deleteBuilding":
			controller.DeleteBuilding()
		case "getBuildingRooms":
			controller.GetBuildingRooms()
		default:
			response.Fail(ctx, code.ErrValidation, nil)
		}
	}
}

// 1. GetBuildings 获取楼栋列表
// @Summary 获取所有楼栋
// @Description 获取楼栋列表，可按机构过滤
// @Tags building
// @Produce json
// @Security BearerAuth
// @Param institutionId query int false "机构ID"
// @Success 200 {object} response.Response
// @Router /building [get]
func (c *BuildingController) GetBuildings() {
	var institutionID uint
	if v := c.Ctx.Query("institutionId"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "无效的机构ID")
			return
		}
		institutionID = uint(parsed)
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)

	buildings, err := buildingService.GetAllBuildings(institutionID)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, buildings)
}

// 2. GetBuilding 获取单个楼栋详情
// @Summary 获取单个楼栋
// @Description 根据ID获取楼栋信息，附带房间列表
// @Tags building
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼栋ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /building/{id} [get]
func (c *BuildingController) GetBuilding() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的楼栋ID")
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)

	building, err := buildingService.GetBuildingByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, building)
}

// 3. CreateBuilding 创建新楼栋
// @Summary 创建楼栋
// @Description 在指定机构下创建一个新楼栋
// @Tags building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param building body BuildingRequest true "楼栋内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /building [post]
func (c *BuildingController) CreateBuilding() {
	var req BuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)

	building := &models.Building{
		Name:              req.Name,
		InstitutionID:     req.InstitutionID,
		WorkingHoursStart: req.WorkingHoursStart,
		WorkingHoursEnd:   req.WorkingHoursEnd,
	}
	if err := buildingService.CreateBuilding(building); err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			response.Fail(c.Ctx, code.ErrInstitutionNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, building)
}

// 4. UpdateBuilding 更新楼栋信息
// @Summary 更新楼栋
// @Description 更新楼栋名称或工作时段
// @Tags building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼栋ID"
// @Param updates body map[string]interface{} true "更新字段"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /building/{id} [put]
func (c *BuildingController) UpdateBuilding() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的楼栋ID")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)

	building, err := buildingService.UpdateBuilding(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, building)
}

// 5. DeleteBuilding 删除楼栋
// @Summary 删除楼栋
// @Description 根据ID删除楼栋
// @Tags building
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼栋ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /building/{id} [delete]
func (c *BuildingController) DeleteBuilding() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的楼栋ID")
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)

	if err := buildingService.DeleteBuilding(uint(id)); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "楼栋删除成功"})
}

// 6. GetBuildingRooms 获取楼栋下的房间列表
// @Summary 获取楼栋房间
// @Description 获取楼栋下全部房间
// @Tags building
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼栋ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /building/{id}/rooms [get]
func (c *BuildingController) GetBuildingRooms() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的楼栋ID")
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)

	rooms, err := buildingService.GetBuildingRooms(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, rooms)
}
