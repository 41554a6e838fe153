// Package presenter 页面与API共用的展示格式
// 金额使用越南盾格式(1.234.567 VND),日期使用dd/mm/yyyy
package presenter

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbook "github.com/xiebiao/library/internal/application/book"
)

const dateLayout = "02/01/2006"

var printer = message.NewPrinter(language.Vietnamese)

// FormatVND 格式化金额,如 1234567 → "1.234.567 VND"
func FormatVND(amount int64) string {
	return printer.Sprintf("%d VND", amount)
}

// FormatNumber 千分位格式化数量
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatDate 格式化日期,零值返回空字符串
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatISODate 把yyyy-mm-dd转换为dd/mm/yyyy,无法解析时原样返回
func FormatISODate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return FormatDate(t)
}

// BookView 列表/详情页面使用的图书展示模型
type BookView struct {
	*appbook.BookDTO
	PriceText       string
	TotalAmountText string
	TaxText         string
	ImportDateText  string
	QuantityText    string
}

// Book 单本图书展示模型
func Book(b *appbook.BookDTO) *BookView {
	v := &BookView{
		BookDTO:         b,
		PriceText:       FormatVND(b.Price),
		TotalAmountText: FormatVND(b.TotalAmount),
		ImportDateText:  FormatISODate(b.ImportDate),
		QuantityText:    FormatNumber(b.Quantity),
	}
	if b.Tax != nil {
		v.TaxText = FormatVND(*b.Tax)
	}
	return v
}

// Books 批量转换
func Books(list []*appbook.BookDTO) []*BookView {
	views := make([]*BookView, len(list))
	for i, b := range list {
		views[i] = Book(b)
	}
	return views
}
