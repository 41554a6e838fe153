package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/validator"
)

// UsersPage 读者列表(管理员)
func (h *Handler) UsersPage(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		h.render(c, statusOf(err), "users.html", gin.H{"Title": "Quản lý độc giả", "Error": errorText(err)})
		return
	}
	h.render(c, http.StatusOK, "users.html", gin.H{
		"Title": "Quản lý độc giả",
		"Users": list,
	})
}

// NewUserPage 新增读者表单
func (h *Handler) NewUserPage(c *gin.Context) {
	h.renderUserForm(c, http.StatusOK, 0, &dto.UserRequest{}, "")
}

// CreateUser 提交新增读者
func (h *Handler) CreateUser(c *gin.Context) {
	var form dto.UserRequest
	if err := c.ShouldBind(&form); err != nil {
		h.renderUserForm(c, http.StatusBadRequest, 0, &form, validator.Message(err))
		return
	}

	if _, err := h.users.Create(c.Request.Context(), form.ToProfileRequest()); err != nil {
		h.renderUserForm(c, statusOf(err), 0, &form, errorText(err))
		return
	}
	redirectMsg(c, usersPath, "Thêm độc giả thành công")
}

// EditUserPage 编辑读者表单
func (h *Handler) EditUserPage(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		redirectErr(c, usersPath, user.ErrUserNotFound)
		return
	}

	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		redirectErr(c, usersPath, err)
		return
	}
	h.renderUserForm(c, http.StatusOK, id, formFromUser(u), "")
}

// UpdateUser 提交编辑读者
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		redirectErr(c, usersPath, user.ErrUserNotFound)
		return
	}

	var form dto.UserRequest
	if err := c.ShouldBind(&form); err != nil {
		h.renderUserForm(c, http.StatusBadRequest, id, &form, validator.Message(err))
		return
	}

	if _, err := h.users.Update(c.Request.Context(), id, form.ToProfileRequest()); err != nil {
		h.renderUserForm(c, statusOf(err), id, &form, errorText(err))
		return
	}
	redirectMsg(c, usersPath, "Cập nhật độc giả thành công")
}

// DeleteUser 删除读者
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		redirectErr(c, usersPath, user.ErrUserNotFound)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		redirectErr(c, usersPath, err)
		return
	}
	redirectMsg(c, usersPath, "Đã xóa độc giả")
}

func formFromUser(u *appuser.UserDTO) *dto.UserRequest {
	return &dto.UserRequest{
		FullName: u.FullName,
		Age:      u.Age,
		Email:    u.Email,
		Phone:    u.Phone,
		Gender:   u.Gender,
		Address:  u.Address,
	}
}

func (h *Handler) renderUserForm(c *gin.Context, status int, id uint, form *dto.UserRequest, errMsg string) {
	title := "Thêm độc giả"
	action := usersPath
	if id != 0 {
		title = "Sửa độc giả"
		action = usersPath + "/" + strconv.FormatUint(uint64(id), 10)
	}
	h.render(c, status, "user_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"IsEdit": id != 0,
		"User":   form,
		"Error":  errMsg,
	})
}
