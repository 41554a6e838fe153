package handler

import (
	"github.com/gin-gonic/gin"

	appinvoice "github.com/xiebiao/library/internal/application/invoice"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// InvoiceHandler 发票HTTP处理器
// 普通账号只能为自己开票,管理员可以指定读者
type InvoiceHandler struct {
	createInvoiceUseCase *appinvoice.CreateInvoiceUseCase
	listInvoicesUseCase  *appinvoice.ListInvoicesUseCase
}

// NewInvoiceHandler 创建发票处理器
func NewInvoiceHandler(
	createInvoiceUseCase *appinvoice.CreateInvoiceUseCase,
	listInvoicesUseCase *appinvoice.ListInvoicesUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{
		createInvoiceUseCase: createInvoiceUseCase,
		listInvoicesUseCase:  listInvoicesUseCase,
	}
}

// CreateInvoice 开具发票
// @Summary      开具发票
// @Description  明细单价为空时使用图书当前单价,合计金额由服务端计算
// @Tags         发票
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateInvoiceRequest true "发票信息"
// @Success      201 {object} response.Response{data=appinvoice.InvoiceDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书或读者不存在"
// @Router       /api/v1/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createInvoiceUseCase.Execute(c.Request.Context(), appinvoice.CreateInvoiceRequest{
		AccountID: middleware.MustGetAccountID(c),
		IsAdmin:   middleware.IsAdmin(c),
		UserID:    req.UserID,
		Code:      req.InvoiceCode,
		Details:   req.ToDetails(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListInvoices 发票列表
// @Summary      发票列表
// @Description  管理员返回全部发票,普通账号只返回自己的发票
// @Tags         发票
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appinvoice.InvoiceDTO}
// @Router       /api/v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	list, err := h.listInvoicesUseCase.Execute(c.Request.Context(), middleware.MustGetAccountID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetInvoice 发票详情
// @Summary      发票详情
// @Tags         发票
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "发票ID"
// @Success      200 {object} response.Response{data=appinvoice.InvoiceDTO}
// @Failure      404 {object} response.Response "发票不存在"
// @Router       /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.listInvoicesUseCase.Get(c.Request.Context(), id, middleware.MustGetAccountID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
