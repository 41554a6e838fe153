package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/presenter"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createUseCase     *appbook.CreateBookUseCase
	updateUseCase     *appbook.UpdateBookUseCase
	deleteUseCase     *appbook.DeleteBookUseCase
	validateUseCase   *appbook.ValidateBookUseCase
	listUseCase       *appbook.ListBooksUseCase
	getUseCase        *appbook.GetBookUseCase
	statisticsUseCase *appbook.StatisticsUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createUseCase *appbook.CreateBookUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	validateUseCase *appbook.ValidateBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	getUseCase *appbook.GetBookUseCase,
	statisticsUseCase *appbook.StatisticsUseCase,
) *BookHandler {
	return &BookHandler{
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		validateUseCase:   validateUseCase,
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		statisticsUseCase: statisticsUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询,支持书名/编码/出版社关键词、类型、出版社过滤与排序
// @Tags         图书
// @Produce      json
// @Param        q          query string false "关键词"
// @Param        type       query string false "类型" Enums(textbook, reference)
// @Param        publisher  query string false "出版社"
// @Param        page       query int    false "页码" default(1)
// @Param        page_size  query int    false "每页数量" default(20)
// @Param        sort_by    query string false "排序" Enums(price_asc, price_desc, name_asc, created_at_desc, id_desc)
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:      req.Page,
		PageSize:  req.PageSize,
		Keyword:   req.Keyword,
		Type:      req.Type,
		Publisher: req.Publisher,
		SortBy:    req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BooksByPublisher 按出版社查询
// @Summary      按出版社查询
// @Description  type=textbook时只返回该出版社的教科书
// @Tags         图书
// @Produce      json
// @Param        publisher path  string true  "出版社"
// @Param        type      query string false "类型" Enums(textbook, reference)
// @Success      200 {object} response.Response{data=[]appbook.BookDTO}
// @Router       /api/v1/books/publisher/{publisher} [get]
func (h *BookHandler) BooksByPublisher(c *gin.Context) {
	result, err := h.listUseCase.ByPublisher(c.Request.Context(), c.Param("publisher"), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Statistics 图书统计
// @Summary      图书统计
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.BookStatisticsResponse}
// @Router       /api/v1/books/statistics [get]
func (h *BookHandler) Statistics(c *gin.Context) {
	s, err := h.statisticsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookStatisticsResponse{
		TotalBooks:                     s.TotalBooks,
		TotalTextbooks:                 s.TotalTextbooks,
		TotalReferenceBooks:            s.TotalReferenceBooks,
		TotalAmountTextbooks:           s.TotalAmountTextbooks,
		TotalAmountReferenceBooks:      s.TotalAmountReference,
		AveragePriceReferenceBooks:     s.AveragePriceReference,
		TotalAmountAll:                 s.TotalAmountAll,
		TotalAmountAllFormatted:        presenter.FormatVND(s.TotalAmountAll),
		AveragePriceReferenceFormatted: presenter.FormatVND(s.AveragePriceReference),
	})
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  教科书需要condition(new/used),参考书可填写tax
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      409 {object} response.Response "图书编码已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), req.ToBookRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ValidateBook 校验图书数据(不保存)
// @Summary      校验图书数据
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/validate [post]
func (h *BookHandler) ValidateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.validateUseCase.Execute(req.ToBookRequest()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  编码和类型不可修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true "图书ID"
// @Param        request body dto.UpdateBookRequest  true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), id, req.ToBookRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
