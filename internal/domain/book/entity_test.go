package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalAmount(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want int64
	}{
		{"新教科书", Book{Type: TypeTextbook, Condition: ConditionNew, Quantity: 3, Price: 20000}, 60000},
		{"旧教科书减半", Book{Type: TypeTextbook, Condition: ConditionUsed, Quantity: 3, Price: 20000}, 30000},
		{"旧教科书奇数金额向上取整", Book{Type: TypeTextbook, Condition: ConditionUsed, Quantity: 3, Price: 5}, 8},
		{"参考书加税", Book{Type: TypeReference, Quantity: 2, Price: 15000, Tax: 3000}, 33000},
		{"参考书零数量只含税", Book{Type: TypeReference, Quantity: 0, Price: 15000, Tax: 500}, 500},
		{"数量为零", Book{Type: TypeTextbook, Condition: ConditionUsed, Quantity: 0, Price: 9999}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.book.TotalAmount())
		})
	}
}

func TestParseType(t *testing.T) {
	for _, raw := range []string{"textbook", "TEXTBOOK", " Sách giáo khoa "} {
		got, ok := ParseType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, TypeTextbook, got)
	}
	for _, raw := range []string{"reference", "Sách tham khảo"} {
		got, ok := ParseType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, TypeReference, got)
	}
	_, ok := ParseType("comic")
	assert.False(t, ok)
}

func TestParseCondition(t *testing.T) {
	c, ok := ParseCondition("cũ")
	assert.True(t, ok)
	assert.Equal(t, ConditionUsed, c)

	c, ok = ParseCondition("Mới")
	assert.True(t, ok)
	assert.Equal(t, ConditionNew, c)

	_, ok = ParseCondition("broken")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Sách giáo khoa", TypeTextbook.DisplayName())
	assert.Equal(t, "Sách tham khảo", TypeReference.DisplayName())
	assert.Equal(t, "cũ", ConditionUsed.DisplayName())
}

func TestNewBook_VariantFields(t *testing.T) {
	in := Input{Code: " TB01 ", Name: "Toán 10", Publisher: "NXB Giáo dục", Price: 12000, Quantity: 5, Condition: "cũ", Tax: 700}

	tb := NewBook(TypeTextbook, in)
	assert.Equal(t, "TB01", tb.Code)
	assert.Equal(t, ConditionUsed, tb.Condition)
	assert.Zero(t, tb.Tax, "教科书不保存税额")

	rb := NewBook(TypeReference, in)
	assert.Empty(t, rb.Condition, "参考书不保存品相")
	assert.Equal(t, int64(700), rb.Tax)
}

func TestUpdateFrom_KeepsCodeAndType(t *testing.T) {
	b := NewBook(TypeReference, Input{Code: "RB01", Name: "Từ điển", Publisher: "NXB Trẻ", Price: 1000, Quantity: 1, Tax: 100})

	b.UpdateFrom(Input{Code: "HACKED", Name: "Từ điển mới", Publisher: "NXB Trẻ", Price: 2000, Quantity: 2, Condition: "cũ", Tax: 50})

	assert.Equal(t, "RB01", b.Code)
	assert.Equal(t, TypeReference, b.Type)
	assert.Equal(t, "Từ điển mới", b.Name)
	assert.Empty(t, b.Condition)
	assert.Equal(t, int64(4050), b.TotalAmount())
}
