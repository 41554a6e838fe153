package handler

import (
	"github.com/gin-gonic/gin"

	appborrow "github.com/xiebiao/library/internal/application/borrow"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// BorrowHandler 借阅HTTP处理器
// 普通账号只能为自己登记借阅,管理员可以指定读者
type BorrowHandler struct {
	borrowUseCase *appborrow.BorrowUseCase
}

// NewBorrowHandler 创建借阅处理器
func NewBorrowHandler(borrowUseCase *appborrow.BorrowUseCase) *BorrowHandler {
	return &BorrowHandler{borrowUseCase: borrowUseCase}
}

// CreateBorrow 登记借阅
// @Summary      登记借阅
// @Description  借阅只登记,不改动库存;借阅日期为空时取当天
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BorrowRequest true "借阅信息"
// @Success      201 {object} response.Response{data=appborrow.RecordDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书或读者不存在"
// @Router       /api/v1/borrows [post]
func (h *BorrowHandler) CreateBorrow(c *gin.Context) {
	var req dto.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	borrowReq := req.ToBorrowRequest()
	borrowReq.AccountID = middleware.MustGetAccountID(c)
	borrowReq.IsAdmin = middleware.IsAdmin(c)

	result, err := h.borrowUseCase.Record(c.Request.Context(), borrowReq)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListBorrows 借阅记录
// @Summary      借阅记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appborrow.RecordDTO}
// @Router       /api/v1/borrows [get]
func (h *BorrowHandler) ListBorrows(c *gin.Context) {
	list, err := h.borrowUseCase.List(c.Request.Context(), middleware.MustGetAccountID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
