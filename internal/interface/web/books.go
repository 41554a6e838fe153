package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/presenter"
	"github.com/xiebiao/library/pkg/validator"
)

// bookForm 图书表单
// 数字字段为空时按0处理,由领域校验给出具体错误
type bookForm struct {
	ID          uint   `form:"-"`
	Type        string `form:"type"`
	Code        string `form:"code"`
	Name        string `form:"name"`
	ImportDate  string `form:"import_date"`
	Price       int64  `form:"price"`
	Quantity    int    `form:"quantity"`
	Publisher   string `form:"publisher"`
	Image       string `form:"image"`
	Description string `form:"description"`
	Condition   string `form:"condition"`
	Tax         int64  `form:"tax"`
}

// toRequest 入库日期为空表示未填写,非空时必须是yyyy-mm-dd
func (f *bookForm) toRequest() (appbook.BookRequest, error) {
	var importDate time.Time
	if f.ImportDate != "" {
		t, err := time.ParseInLocation("2006-01-02", f.ImportDate, time.Local)
		if err != nil {
			return appbook.BookRequest{}, book.ErrInvalidImportDate
		}
		importDate = t
	}
	return appbook.BookRequest{
		Type:        f.Type,
		Code:        f.Code,
		Name:        f.Name,
		ImportDate:  importDate,
		Price:       f.Price,
		Quantity:    f.Quantity,
		Publisher:   f.Publisher,
		Image:       f.Image,
		Description: f.Description,
		Condition:   f.Condition,
		Tax:         f.Tax,
	}, nil
}

// IsTextbook 模板中切换品相/税额字段
func (f *bookForm) IsTextbook() bool {
	t, _ := book.ParseType(f.Type)
	return t == book.TypeTextbook
}

func formFromDTO(b *appbook.BookDTO) *bookForm {
	f := &bookForm{
		ID:          b.ID,
		Type:        b.Type,
		Code:        b.Code,
		Name:        b.Name,
		ImportDate:  b.ImportDate,
		Price:       b.Price,
		Quantity:    b.Quantity,
		Publisher:   b.Publisher,
		Image:       b.Image,
		Description: b.Description,
		Condition:   b.Condition,
	}
	if b.Tax != nil {
		f.Tax = *b.Tax
	}
	return f
}

// BooksPage 图书列表,支持按书名搜索
func (h *Handler) BooksPage(c *gin.Context) {
	query := c.Query("q")
	list, err := h.books.List.Search(c.Request.Context(), query)
	if err != nil {
		h.render(c, statusOf(err), "books.html", gin.H{"Title": "Danh sách sách", "Query": query, "Error": errorText(err)})
		return
	}

	h.render(c, http.StatusOK, "books.html", gin.H{
		"Title": "Danh sách sách",
		"Books": presenter.Books(list),
		"Query": query,
		"Count": len(list),
	})
}

// BooksByTypePage 按类型列出图书及金额合计
func (h *Handler) BooksByTypePage(c *gin.Context) {
	ctx := c.Request.Context()
	rawType := c.Param("type")

	list, err := h.books.List.ByType(ctx, rawType)
	if err != nil {
		redirectErr(c, booksPath, err)
		return
	}
	total, err := h.books.Statistics.TotalAmountByType(ctx, rawType)
	if err != nil {
		redirectErr(c, booksPath, err)
		return
	}

	t, _ := book.ParseType(rawType)
	h.render(c, http.StatusOK, "books.html", gin.H{
		"Title":     t.DisplayName(),
		"Query":     "",
		"Books":     presenter.Books(list),
		"Count":     len(list),
		"TotalText": presenter.FormatVND(total),
	})
}

// BooksByPublisherPage 按出版社列出图书,type可选
func (h *Handler) BooksByPublisherPage(c *gin.Context) {
	publisher := c.Param("publisher")
	list, err := h.books.List.ByPublisher(c.Request.Context(), publisher, c.Query("type"))
	if err != nil {
		redirectErr(c, booksPath, err)
		return
	}

	title := "Nhà xuất bản " + publisher
	if t, ok := book.ParseType(c.Query("type")); ok {
		title = t.DisplayName() + " - " + title
	}
	h.render(c, http.StatusOK, "books.html", gin.H{
		"Title": title,
		"Query": "",
		"Books": presenter.Books(list),
		"Count": len(list),
	})
}

// StatisticsPage 统计页面
func (h *Handler) StatisticsPage(c *gin.Context) {
	s, err := h.books.Statistics.Execute(c.Request.Context())
	if err != nil {
		redirectErr(c, booksPath, err)
		return
	}
	h.render(c, http.StatusOK, "statistics.html", gin.H{
		"Title": "Thống kê",
		"Stats": s,
	})
}

// NewBookPage 新增图书表单,?type=预选类型
func (h *Handler) NewBookPage(c *gin.Context) {
	form := &bookForm{
		Type:       c.DefaultQuery("type", string(book.TypeTextbook)),
		ImportDate: time.Now().Format("2006-01-02"),
		Condition:  string(book.ConditionNew),
	}
	h.renderBookForm(c, http.StatusOK, form, "")
}

// CreateBook 提交新增图书
func (h *Handler) CreateBook(c *gin.Context) {
	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBookForm(c, http.StatusBadRequest, &form, validator.Message(err))
		return
	}

	req, err := form.toRequest()
	if err != nil {
		h.renderBookForm(c, statusOf(err), &form, errorText(err))
		return
	}
	if _, err := h.books.Create.Execute(c.Request.Context(), req); err != nil {
		h.renderBookForm(c, statusOf(err), &form, errorText(err))
		return
	}
	redirectMsg(c, booksPath, "Thêm sách thành công")
}

// EditBookPage 编辑图书表单
func (h *Handler) EditBookPage(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		redirectErr(c, booksPath, book.ErrBookNotFound)
		return
	}

	b, err := h.books.Get.Execute(c.Request.Context(), id)
	if err != nil {
		redirectErr(c, booksPath, err)
		return
	}
	h.renderBookForm(c, http.StatusOK, formFromDTO(b), "")
}

// UpdateBook 提交编辑图书
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		redirectErr(c, booksPath, book.ErrBookNotFound)
		return
	}

	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		form.ID = id
		h.renderBookForm(c, http.StatusBadRequest, &form, validator.Message(err))
		return
	}
	form.ID = id

	req, err := form.toRequest()
	if err != nil {
		h.renderBookForm(c, statusOf(err), &form, errorText(err))
		return
	}
	if _, err := h.books.Update.Execute(c.Request.Context(), id, req); err != nil {
		h.renderBookForm(c, statusOf(err), &form, errorText(err))
		return
	}
	redirectMsg(c, booksPath, "Cập nhật sách thành công")
}

// DeleteBook 删除图书
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		redirectErr(c, booksPath, book.ErrBookNotFound)
		return
	}

	if err := h.books.Delete.Execute(c.Request.Context(), id); err != nil {
		redirectErr(c, booksPath, err)
		return
	}
	redirectMsg(c, booksPath, "Đã xóa sách #"+strconv.FormatUint(uint64(id), 10))
}

func (h *Handler) renderBookForm(c *gin.Context, status int, form *bookForm, errMsg string) {
	title := "Thêm sách"
	action := booksPath
	if form.ID != 0 {
		title = "Sửa sách"
		action = booksPath + "/" + strconv.FormatUint(uint64(form.ID), 10)
	}
	h.render(c, status, "book_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"IsEdit": form.ID != 0,
		"Book":   form,
		"Types":  bookTypeOptions(),
		"Error":  errMsg,
	})
}
