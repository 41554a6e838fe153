package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// UserHandler 读者管理HTTP处理器(仅管理员)
type UserHandler struct {
	manageUseCase *appuser.ManageUserUseCase
}

// NewUserHandler 创建读者处理器
func NewUserHandler(manageUseCase *appuser.ManageUserUseCase) *UserHandler {
	return &UserHandler{manageUseCase: manageUseCase}
}

// ListUsers 读者列表
// @Summary      读者列表
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appuser.UserDTO}
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	list, err := h.manageUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUser 读者详情
// @Summary      读者详情
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateUser 新增读者
// @Summary      新增读者
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UserRequest true "读者资料"
// @Success      201 {object} response.Response{data=appuser.UserDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.manageUseCase.Create(c.Request.Context(), req.ToProfileRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateUser 更新读者资料
// @Summary      更新读者资料
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "读者ID"
// @Param        request body dto.UserRequest true "读者资料"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.manageUseCase.Update(c.Request.Context(), id, req.ToProfileRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteUser 删除读者
// @Summary      删除读者
// @Description  不删除关联账号,也不级联删除借阅和发票
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
