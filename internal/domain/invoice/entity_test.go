package invoice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice_Total(t *testing.T) {
	inv := NewInvoice(1, "", []Detail{
		{BookID: 1, Quantity: 2, UnitPrice: 15000},
		{BookID: 2, Quantity: 1, UnitPrice: 7000},
	})

	assert.Equal(t, int64(37000), inv.TotalAmount)
	assert.True(t, strings.HasPrefix(inv.InvoiceCode, "INV"), "编号应自动生成")
}

func TestNewInvoice_KeepsGivenCode(t *testing.T) {
	inv := NewInvoice(1, " HD-001 ", []Detail{{BookID: 1, Quantity: 1}})
	assert.Equal(t, "HD-001", inv.InvoiceCode)
	assert.Zero(t, inv.TotalAmount)
}

func TestGenerateInvoiceCode(t *testing.T) {
	code := GenerateInvoiceCode()
	// INV + 10位秒级时间戳 + 6位随机数
	assert.Len(t, code, 19)
}

func TestValidateDetails(t *testing.T) {
	assert.ErrorIs(t, ValidateDetails(nil), ErrEmptyDetails)
	assert.ErrorIs(t, ValidateDetails([]Detail{{Quantity: 1}}), ErrInvalidBook)
	assert.ErrorIs(t, ValidateDetails([]Detail{{BookID: 1, Quantity: 0}}), ErrInvalidQuantity)
	assert.ErrorIs(t, ValidateDetails([]Detail{{BookID: 1, Quantity: 1, UnitPrice: -1}}), ErrInvalidUnitPrice)
	assert.NoError(t, ValidateDetails([]Detail{{BookID: 1, Quantity: 1, UnitPrice: 0}}))
}

func TestValidateDetails_Limits(t *testing.T) {
	maxLine := Detail{BookID: 1, Quantity: MaxQuantity, UnitPrice: MaxUnitPrice}

	assert.ErrorIs(t, ValidateDetails([]Detail{{BookID: 1, Quantity: MaxQuantity + 1, UnitPrice: 1}}), ErrQuantityTooLarge)
	assert.ErrorIs(t, ValidateDetails([]Detail{{BookID: 1, Quantity: 1, UnitPrice: MaxUnitPrice + 1}}), ErrUnitPriceTooLarge)

	// 单行达到上限合法,合计不溢出
	require.NoError(t, ValidateDetails([]Detail{maxLine}))
	inv := NewInvoice(1, "INV-MAX", []Detail{maxLine})
	assert.Equal(t, MaxTotal, inv.TotalAmount)

	// 第二行会让合计超限
	assert.ErrorIs(t, ValidateDetails([]Detail{maxLine, {BookID: 2, Quantity: 1, UnitPrice: 1}}), ErrTotalTooLarge)
}
