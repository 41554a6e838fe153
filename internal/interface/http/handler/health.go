package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger 依赖健康检查
type Pinger func() error

// HealthHandler 健康检查
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping 健康检查
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	if h.db != nil {
		if err := h.db(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "pong", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong", "database": "up"})
}
