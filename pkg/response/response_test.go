package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) { Success(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "success", body.Message)
}

func TestCreated(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) { Created(c, nil) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, body.Code)
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"参数错误", apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数"), http.StatusBadRequest, apperrors.ErrCodeInvalidParams},
		{"未登录", apperrors.ErrUnauthorized, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"无权限", apperrors.ErrForbidden, http.StatusForbidden, apperrors.ErrCodeForbidden},
		{"不存在", apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在"), http.StatusNotFound, apperrors.ErrCodeBookNotFound},
		{"重复", apperrors.New(apperrors.ErrCodeBookCodeDuplicate, "图书编码已存在"), http.StatusConflict, apperrors.ErrCodeBookCodeDuplicate},
		{"普通错误", errors.New("boom"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := perform(t, func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Nil(t, body.Data)
		})
	}
}

func TestError_HidesInternalError(t *testing.T) {
	_, body := perform(t, func(c *gin.Context) {
		Error(c, apperrors.Wrap(errors.New("dial tcp 10.0.0.1:3306"), "查询图书失败"))
	})
	assert.Equal(t, "查询图书失败", body.Message)
}
