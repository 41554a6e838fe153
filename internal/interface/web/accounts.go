package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appaccount "github.com/xiebiao/library/internal/application/account"
	"github.com/xiebiao/library/internal/domain/account"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/validator"
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type registerForm struct {
	Username string `form:"username" binding:"required,min=3,max=50"`
	Password string `form:"password" binding:"required,min=6,max=64"`
	FullName string `form:"full_name" binding:"max=100"`
	Email    string `form:"email" binding:"omitempty,email"`
}

// LoginPage 登录页面,已登录直接进入图书列表
func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.GetAccountID(c) != 0 {
		c.Redirect(http.StatusFound, booksPath)
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{
		"Title":    "Đăng nhập",
		"Next":     c.Query("next"),
		"Username": "",
	})
}

// Login 提交登录,成功后写入HttpOnly Cookie
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{
			"Title":    "Đăng nhập",
			"Next":     form.Next,
			"Username": form.Username,
			"Error":    validator.Message(err),
		})
		return
	}

	result, err := h.accounts.Login.Execute(c.Request.Context(), appaccount.LoginRequest{
		Username: form.Username,
		Password: form.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		h.render(c, statusOf(err), "login.html", gin.H{
			"Title":    "Đăng nhập",
			"Next":     form.Next,
			"Username": form.Username,
			"Error":    errorText(err),
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, result.AccessToken, int(result.ExpiresIn), "/", "", h.secure, true)
	redirectMsg(c, safeNext(form.Next), "Đăng nhập thành công!")
}

// safeNext 只允许跳转到站内页面
func safeNext(next string) string {
	if strings.HasPrefix(next, "/web") && !strings.HasPrefix(next, "//") {
		return next
	}
	return booksPath
}

// RegisterPage 注册页面
func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"Title": "Đăng ký"})
}

// RegisterAccount 提交注册,页面注册的账号固定为普通角色
func (h *Handler) RegisterAccount(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "register.html", gin.H{
			"Title": "Đăng ký",
			"Form":  form,
			"Error": validator.Message(err),
		})
		return
	}

	_, err := h.accounts.Register.Execute(c.Request.Context(), appaccount.RegisterRequest{
		Username: form.Username,
		Password: form.Password,
		Role:     account.RoleUser,
		FullName: form.FullName,
		Email:    form.Email,
	})
	if err != nil {
		h.render(c, statusOf(err), "register.html", gin.H{
			"Title": "Đăng ký",
			"Form":  form,
			"Error": errorText(err),
		})
		return
	}
	redirectMsg(c, loginPath, "Đăng ký thành công! Hãy đăng nhập.")
}

// Logout 登出: Token加入黑名单并清除Cookie
func (h *Handler) Logout(c *gin.Context) {
	if claims := middleware.GetClaims(c); claims != nil {
		if err := h.accounts.Logout.Execute(c.Request.Context(), claims); err != nil {
			logger.FromContext(c.Request.Context()).Warn("页面登出失败", zap.Error(err))
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secure, true)
	redirectMsg(c, loginPath, "Đã đăng xuất!")
}
