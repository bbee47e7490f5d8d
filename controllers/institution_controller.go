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

// InterfaceInstitutionController 定义机构控制器接口
type InterfaceInstitutionController interface {
	GetInstitutions()
	GetInstitution()
	CreateInstitution()
	UpdateInstitution()
	DeleteInstitution()
}

// InstitutionController 处理机构相关的请求
type InstitutionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewInstitutionController 创建一个新的机构控制器
func NewInstitutionController(ctx *gin.Context, container *container.ServiceContainer) *InstitutionController {
	return &InstitutionController{
		Ctx:       ctx,
		Container: container,
	}
}

// InstitutionRequest 表示机构请求结构
type InstitutionRequest struct {
	Name string `json:"name" binding:"required" example:"市立理工学院"`
}

// HandleInstitutionFunc 返回一个处理机构请求的Gin处理函数
func HandleInstitutionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewInstitutionController(ctx, container)

		switch method {
		case "getInstitutions":
			controller.GetInstitutions()
		case "getInstitution":
			controller.GetInstitution()
		case "createInstitution":
			controller.CreateInstitution()
		case "updateInstitution":
			controller.UpdateInstitution()
		case "deleteInstitution":
			controller.DeleteInstitution()
		default:
			response.Fail(ctx, code.ErrValidation, nil)
		}
	}
}

// 1. GetInstitutions 获取所有机构列表
// @Summary 获取所有机构
// @Description 获取全部机构的列表
// @Tags institution
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /institution [get]
func (c *InstitutionController) GetInstitutions() {
	institutionService := c.Container.GetService("institution").(services.InterfaceInstitutionService)

	institutions, err := institutionService.GetAllInstitutions()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, institutions)
}

// 2. GetInstitution 获取单个机构详情
// @Summary 获取单个机构
// @Description 根据ID获取机构信息，附带楼栋列表
// @Tags institution
// @Produce json
// @Security BearerAuth
// @Param id path int true "机构ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /institution/{id} [get]
func (c *InstitutionController) GetInstitution() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的机构ID")
		return
	}

	institutionService := c.Container.GetService("institution").(services.InterfaceInstitutionService)

	institution, err := institutionService.GetInstitutionByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			response.Fail(c.Ctx, code.ErrInstitutionNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, institution)
}

// 3. CreateInstitution 创建新机构
// @Summary 创建机构
// @Description 创建一个新机构
// @Tags institution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param institution body InstitutionRequest true "机构内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /institution [post]
func (c *InstitutionController) CreateInstitution() {
	var req InstitutionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	institutionService := c.Container.GetService("institution").(services.InterfaceInstitutionService)

	institution := &models.Institution{Name: req.Name}
	if err := institutionService.CreateInstitution(institution); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, institution)
}

// 4. UpdateInstitution 更新机构信息
// @Summary 更新机构
// @Description 更新机构名称等信息
// @Tags institution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "机构ID"
// @Param updates body map[string]interface{} true "更新字段"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /institution/{id} [put]
func (c *InstitutionController) UpdateInstitution() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的机构ID")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
		return
	}

	institutionService := c.Container.GetService("institution").(services.InterfaceInstitutionService)

	institution, err := institutionService.UpdateInstitution(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			response.Fail(c.Ctx, code.ErrInstitutionNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, institution)
}

// 5. DeleteInstitution 删除机构
// @Summary 删除机构
// @Description 根据ID删除机构
// @Tags institution
// @Produce json
// @Security BearerAuth
// @Param id path int true "机构ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /institution/{id} [delete]
func (c *InstitutionController) DeleteInstitution() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的机构ID")
		return
	}

	institutionService := c.Container.GetService("institution").(services.InterfaceInstitutionService)

	if err := institutionService.DeleteInstitution(uint(id)); err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			response.Fail(c.Ctx, code.ErrInstitutionNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "机构删除成功"})
}
