package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/invoice"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookLookup 只实现GetBook,其余方法未使用
type bookLookup struct {
	book.Service
	books map[uint]*book.Book
}

func (s bookLookup) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	if b, ok := s.books[id]; ok {
		return b, nil
	}
	return nil, book.ErrBookNotFound
}

type userLookup struct {
	user.Service
	users map[uint]*user.User
}

func (s userLookup) GetUser(ctx context.Context, id uint) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (s userLookup) GetByAccount(ctx context.Context, accountID uint) (*user.User, error) {
	for _, u := range s.users {
		if u.AccountID == accountID {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

type memInvoices struct {
	items     []*invoice.Invoice
	createErr error
}

func (r *memInvoices) Create(ctx context.Context, inv *invoice.Invoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	inv.ID = uint(len(r.items) + 1)
	r.items = append(r.items, inv)
	return nil
}

func (r *memInvoices) FindByID(ctx context.Context, id uint) (*invoice.Invoice, error) {
	for _, inv := range r.items {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, invoice.ErrInvoiceNotFound
}

func (r *memInvoices) List(ctx context.Context) ([]*invoice.Invoice, error) { return r.items, nil }

func (r *memInvoices) ListByUserID(ctx context.Context, userID uint) ([]*invoice.Invoice, error) {
	var out []*invoice.Invoice
	for _, inv := range r.items {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type passTx struct{}

func (passTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct{ keys []string }

func (p *recordingPublisher) Publish(ctx context.Context, key string, payload interface{}) error {
	p.keys = append(p.keys, key)
	return nil
}

func newUseCases() (*CreateInvoiceUseCase, *ListInvoicesUseCase, *memInvoices, *recordingPublisher) {
	books := bookLookup{books: map[uint]*book.Book{
		1: {ID: 1, Code: "GK-01", Price: 25000},
		2: {ID: 2, Code: "TK-01", Price: 120000},
	}}
	users := userLookup{users: map[uint]*user.User{
		10: {ID: 10, AccountID: 100, FullName: "Lan"},
		11: {ID: 11, AccountID: 101, FullName: "Minh"},
		12: {ID: 12, FullName: "Khách lẻ"},
	}}
	repo := &memInvoices{}
	pub := &recordingPublisher{}
	return NewCreateInvoiceUseCase(repo, books, users, passTx{}, pub), NewListInvoicesUseCase(repo, users), repo, pub
}

func price(v int64) *int64 { return &v }

func TestCreateInvoice_FillsPriceAndTotals(t *testing.T) {
	create, _, repo, pub := newUseCases()

	dto, err := create.Execute(context.Background(), CreateInvoiceRequest{
		AccountID: 100,
		Details: []DetailRequest{
			{BookID: 1, Quantity: 3},
			{BookID: 2, Quantity: 1, UnitPrice: price(100000)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(10), dto.UserID, "未指定读者时使用当前账号的读者")
	assert.Equal(t, int64(3*25000+100000), dto.TotalAmount)
	assert.Equal(t, int64(25000), dto.Details[0].UnitPrice)
	assert.Equal(t, int64(75000), dto.Details[0].Amount)
	assert.Regexp(t, `^INV\d+$`, dto.InvoiceCode)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, []string{event.InvoiceCreated}, pub.keys)
}

func TestCreateInvoice_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  CreateInvoiceRequest
		want error
	}{
		{"明细为空", CreateInvoiceRequest{AccountID: 100}, invoice.ErrEmptyDetails},
		{"数量为0", CreateInvoiceRequest{AccountID: 100, Details: []DetailRequest{{BookID: 1}}}, invoice.ErrInvalidQuantity},
		{"单价为负", CreateInvoiceRequest{AccountID: 100, Details: []DetailRequest{{BookID: 1, Quantity: 1, UnitPrice: price(-1)}}}, invoice.ErrInvalidUnitPrice},
		{"数量超限", CreateInvoiceRequest{AccountID: 100, Details: []DetailRequest{{BookID: 1, Quantity: invoice.MaxQuantity + 1}}}, invoice.ErrQuantityTooLarge},
		{"合计超限", CreateInvoiceRequest{AccountID: 100, Details: []DetailRequest{
			{BookID: 1, Quantity: invoice.MaxQuantity, UnitPrice: price(invoice.MaxUnitPrice)},
			{BookID: 2, Quantity: invoice.MaxQuantity, UnitPrice: price(invoice.MaxUnitPrice)},
		}}, invoice.ErrTotalTooLarge},
		{"图书不存在", CreateInvoiceRequest{AccountID: 100, Details: []DetailRequest{{BookID: 99, Quantity: 1}}}, book.ErrBookNotFound},
		{"账号没有读者资料", CreateInvoiceRequest{AccountID: 555, Details: []DetailRequest{{BookID: 1, Quantity: 1}}}, user.ErrUserNotFound},
		{"为他人开票", CreateInvoiceRequest{AccountID: 100, UserID: 11, Details: []DetailRequest{{BookID: 1, Quantity: 1}}}, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create, _, repo, pub := newUseCases()
			_, err := create.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.items)
			assert.Empty(t, pub.keys)
		})
	}
}

func TestCreateInvoice_AdminMayChooseUser(t *testing.T) {
	create, _, _, _ := newUseCases()

	dto, err := create.Execute(context.Background(), CreateInvoiceRequest{
		AccountID: 1, IsAdmin: true, UserID: 12, Code: "INV-MANUAL-1",
		Details: []DetailRequest{{BookID: 2, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(12), dto.UserID)
	assert.Equal(t, "INV-MANUAL-1", dto.InvoiceCode)
	assert.Equal(t, int64(240000), dto.TotalAmount)
}

func TestCreateInvoice_RepositoryError(t *testing.T) {
	create, _, repo, pub := newUseCases()
	repo.createErr = errors.New("connection reset")

	_, err := create.Execute(context.Background(), CreateInvoiceRequest{
		AccountID: 100, Details: []DetailRequest{{BookID: 1, Quantity: 1}},
	})
	assert.Error(t, err)
	assert.Empty(t, pub.keys)
}

func TestListInvoices_Visibility(t *testing.T) {
	create, list, _, _ := newUseCases()
	ctx := context.Background()
	for _, accountID := range []uint{100, 101, 100} {
		_, err := create.Execute(ctx, CreateInvoiceRequest{
			AccountID: accountID, Details: []DetailRequest{{BookID: 1, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	all, err := list.Execute(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := list.Execute(ctx, 100, false)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	none, err := list.Execute(ctx, 555, false)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = list.Get(ctx, 2, 100, false)
	assert.ErrorIs(t, err, invoice.ErrInvoiceNotFound, "不能查看他人的发票")
	got, err := list.Get(ctx, 2, 101, false)
	require.NoError(t, err)
	assert.Equal(t, uint(11), got.UserID)
}
