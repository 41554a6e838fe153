package book

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/domain/book"
)

// memRepo 内存图书仓储
type memRepo struct {
	mu     sync.Mutex
	books  map[uint]*book.Book
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{books: map[uint]*book.Book{}}
}

func (r *memRepo) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.books {
		if existing.Code == b.Code {
			return book.ErrCodeDuplicate
		}
	}
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.books[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, book.ErrBookNotFound
}

func (r *memRepo) FindByCode(ctx context.Context, code string) (*book.Book, error) {
	for _, b := range r.all() {
		if b.Code == code {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *memRepo) all() []*book.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		cp := *b
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list
}

func (r *memRepo) filter(keep func(*book.Book) bool) []*book.Book {
	var out []*book.Book
	for _, b := range r.all() {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *memRepo) FindAll(ctx context.Context) ([]*book.Book, error) { return r.all(), nil }

func (r *memRepo) SearchByName(ctx context.Context, q string) ([]*book.Book, error) {
	q = strings.ToLower(q)
	return r.filter(func(b *book.Book) bool { return strings.Contains(strings.ToLower(b.Name), q) }), nil
}

func (r *memRepo) FindByType(ctx context.Context, t book.Type) ([]*book.Book, error) {
	return r.filter(func(b *book.Book) bool { return b.Type == t }), nil
}

func (r *memRepo) FindByPublisher(ctx context.Context, publisher string, t book.Type) ([]*book.Book, error) {
	return r.filter(func(b *book.Book) bool {
		return b.Publisher == publisher && (t == "" || b.Type == t)
	}), nil
}

func (r *memRepo) List(ctx context.Context, p book.ListParams) ([]*book.Book, int64, error) {
	all := r.filter(func(b *book.Book) bool { return p.Type == "" || b.Type == p.Type })
	total := int64(len(all))
	start := (p.Page - 1) * p.PageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + p.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memRepo) Update(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

// memCache 记录调用的内存缓存
type memCache struct {
	books       map[uint]*book.Book
	stats       *book.Statistics
	invalidated []uint
}

func newMemCache() *memCache { return &memCache{books: map[uint]*book.Book{}} }

func (c *memCache) GetBook(ctx context.Context, id uint) (*book.Book, bool) {
	b, ok := c.books[id]
	return b, ok
}
func (c *memCache) SetBook(ctx context.Context, b *book.Book) { c.books[b.ID] = b }
func (c *memCache) GetStatistics(ctx context.Context) (*book.Statistics, bool) {
	return c.stats, c.stats != nil
}
func (c *memCache) SetStatistics(ctx context.Context, s *book.Statistics) { c.stats = s }
func (c *memCache) InvalidateBook(ctx context.Context, id uint) {
	delete(c.books, id)
	c.stats = nil
	c.invalidated = append(c.invalidated, id)
}

type recordingPublisher struct{ keys []string }

func (p *recordingPublisher) Publish(ctx context.Context, key string, payload interface{}) error {
	p.keys = append(p.keys, key)
	return nil
}

type fixture struct {
	repo   *memRepo
	cache  *memCache
	events *recordingPublisher
	svc    book.Service
}

func newFixture() *fixture {
	repo := newMemRepo()
	return &fixture{repo: repo, cache: newMemCache(), events: &recordingPublisher{}, svc: book.NewService(repo)}
}

func textbookReq(code string) BookRequest {
	return BookRequest{Type: "textbook", Code: code, Name: "Toán 10", Price: 15000, Quantity: 3, Publisher: "NXB Giáo Dục", Condition: "used"}
}

func TestCreateBookUseCase(t *testing.T) {
	f := newFixture()
	f.cache.stats = &book.Statistics{TotalBooks: 99}
	uc := NewCreateBookUseCase(f.svc, f.cache, f.events)

	dto, err := uc.Execute(context.Background(), textbookReq("GK01"))
	require.NoError(t, err)
	assert.Equal(t, "textbook", dto.Type)
	assert.Equal(t, "Sách giáo khoa", dto.TypeName)
	assert.Equal(t, "used", dto.Condition)
	assert.Equal(t, "cũ", dto.ConditionName)
	assert.Nil(t, dto.Tax)
	assert.Equal(t, int64(22500), dto.TotalAmount, "旧教科书金额减半")
	assert.Nil(t, f.cache.stats, "新增图书使统计缓存失效")
	assert.Equal(t, []string{event.BookCreated}, f.events.keys)

	_, err = uc.Execute(context.Background(), textbookReq("GK01"))
	assert.ErrorIs(t, err, book.ErrCodeDuplicate)
	assert.Len(t, f.events.keys, 1, "失败不发布事件")
}

func TestCreateBookUseCase_InvalidType(t *testing.T) {
	f := newFixture()
	req := textbookReq("X")
	req.Type = "magazine"
	_, err := NewCreateBookUseCase(f.svc, f.cache, f.events).Execute(context.Background(), req)
	assert.ErrorIs(t, err, book.ErrInvalidType)
}

func TestUpdateBookUseCase_KeepsTypeAndCode(t *testing.T) {
	f := newFixture()
	created, err := NewCreateBookUseCase(f.svc, f.cache, f.events).Execute(context.Background(), textbookReq("GK01"))
	require.NoError(t, err)

	req := BookRequest{Type: "reference", Code: "CHANGED", Name: "Toán 10 (mới)", Price: 20000, Quantity: 1, Publisher: "NXB Giáo Dục", Condition: "new", Tax: 500}
	updated, err := NewUpdateBookUseCase(f.svc, f.cache, f.events).Execute(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "GK01", updated.Code)
	assert.Equal(t, "textbook", updated.Type)
	assert.Nil(t, updated.Tax, "教科书忽略税额")
	assert.Equal(t, int64(20000), updated.TotalAmount)
	assert.Contains(t, f.cache.invalidated, created.ID)

	_, err = NewUpdateBookUseCase(f.svc, f.cache, f.events).Execute(context.Background(), 999, req)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestDeleteBookUseCase(t *testing.T) {
	f := newFixture()
	created, err := NewCreateBookUseCase(f.svc, f.cache, f.events).Execute(context.Background(), textbookReq("GK01"))
	require.NoError(t, err)

	uc := NewDeleteBookUseCase(f.svc, f.cache, f.events)
	require.NoError(t, uc.Execute(context.Background(), created.ID))
	assert.ErrorIs(t, uc.Execute(context.Background(), created.ID), book.ErrBookNotFound)
	assert.Equal(t, []string{event.BookCreated, event.BookDeleted}, f.events.keys)
}

func TestGetBookUseCase_CacheAside(t *testing.T) {
	f := newFixture()
	created, err := NewCreateBookUseCase(f.svc, NopCache{}, event.NopPublisher{}).Execute(context.Background(), textbookReq("GK01"))
	require.NoError(t, err)

	uc := NewGetBookUseCase(f.svc, f.cache)
	dto, err := uc.Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "GK01", dto.Code)
	require.Contains(t, f.cache.books, created.ID, "未命中时回填缓存")

	// 缓存命中时不查库
	require.NoError(t, f.repo.Delete(context.Background(), created.ID))
	dto, err = uc.Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "GK01", dto.Code)

	_, err = uc.Execute(context.Background(), 404)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestListBooksUseCase(t *testing.T) {
	f := newFixture()
	create := NewCreateBookUseCase(f.svc, NopCache{}, event.NopPublisher{})
	ctx := context.Background()
	for _, code := range []string{"GK01", "GK02", "GK03"} {
		_, err := create.Execute(ctx, textbookReq(code))
		require.NoError(t, err)
	}
	_, err := create.Execute(ctx, BookRequest{Type: "Sách tham khảo", Code: "TK01", Name: "Từ điển Anh Việt", Price: 100000, Quantity: 1, Publisher: "NXB Trẻ", Tax: 1000})
	require.NoError(t, err)

	uc := NewListBooksUseCase(f.svc)

	resp, err := uc.Execute(ctx, ListBooksRequest{Page: 1, PageSize: 2, Type: "textbook"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.List, 2)

	resp, err = uc.Execute(ctx, ListBooksRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.PageSize, "默认每页20条")

	_, err = uc.Execute(ctx, ListBooksRequest{Type: "comic"})
	assert.ErrorIs(t, err, book.ErrInvalidType)

	found, err := uc.Search(ctx, "từ điển")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "TK01", found[0].Code)

	all, err := uc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 4, "空关键词返回全部")

	refs, err := uc.ByType(ctx, "reference")
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	textbooks, err := uc.ByPublisher(ctx, "NXB Giáo Dục", "textbook")
	require.NoError(t, err)
	assert.Len(t, textbooks, 3)

	none, err := uc.ByPublisher(ctx, "NXB Giáo Dục", "reference")
	require.NoError(t, err)
	assert.Empty(t, none)

	any3, err := uc.ByPublisher(ctx, "NXB Trẻ", "")
	require.NoError(t, err)
	assert.Len(t, any3, 1)
}

func TestStatisticsUseCase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	create := NewCreateBookUseCase(f.svc, f.cache, event.NopPublisher{})
	_, err := create.Execute(ctx, textbookReq("GK01")) // 3 × 15000 / 2 = 22500
	require.NoError(t, err)
	_, err = create.Execute(ctx, BookRequest{Type: "reference", Code: "TK01", Name: "A", Price: 10001, Quantity: 2, Publisher: "P", Tax: 100})
	require.NoError(t, err)
	_, err = create.Execute(ctx, BookRequest{Type: "reference", Code: "TK02", Name: "B", Price: 10002, Quantity: 1, Publisher: "P"})
	require.NoError(t, err)

	uc := NewStatisticsUseCase(f.svc, f.cache)
	s, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalBooks)
	assert.Equal(t, 1, s.TotalTextbooks)
	assert.Equal(t, 2, s.TotalReferenceBooks)
	assert.Equal(t, int64(22500), s.TotalAmountTextbooks)
	assert.Equal(t, int64(20002+100+10002), s.TotalAmountReference)
	assert.Equal(t, int64(10002), s.AveragePriceReference, "(10001+10002)/2 四舍五入")
	assert.Equal(t, s.TotalAmountTextbooks+s.TotalAmountReference, s.TotalAmountAll)
	assert.Same(t, s, f.cache.stats, "结果写入缓存")

	total, err := uc.TotalAmountByType(ctx, "reference")
	require.NoError(t, err)
	assert.Equal(t, s.TotalAmountReference, total)

	avg, err := uc.AveragePriceReference(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10002), avg)

	_, err = uc.TotalAmountByType(ctx, "")
	assert.ErrorIs(t, err, book.ErrInvalidType)
}

func TestValidateBookUseCase(t *testing.T) {
	uc := NewValidateBookUseCase(newFixture().svc)
	assert.NoError(t, uc.Execute(textbookReq("GK01")))

	req := textbookReq("GK01")
	req.Price = -1
	assert.ErrorIs(t, uc.Execute(req), book.ErrInvalidPrice)
}
