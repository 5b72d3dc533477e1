package bot

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/florzoye/shop/internal/dialog"
	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/domain/users"
	"github.com/florzoye/shop/internal/infra/logger"
	"github.com/florzoye/shop/internal/ingest"
	"github.com/florzoye/shop/internal/pagination"
	"github.com/florzoye/shop/internal/service"
)

const (
	adminID = int64(100)
	userID  = int64(200)
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	fileURL  string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: 1000 + f.nextID}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) GetFileDirectURL(string) (string, error) { return f.fileURL, nil }

// texts returns the text of every sent message or edit, in order.
func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeSender) lastText() string {
	t := f.texts()
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

func (f *fakeSender) lastCallback() tgbotapi.CallbackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if cb, ok := f.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb
		}
	}
	return tgbotapi.CallbackConfig{}
}

func (f *fakeSender) documents() []tgbotapi.DocumentConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.DocumentConfig
	for _, c := range f.sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			out = append(out, d)
		}
	}
	return out
}

type fakeUsers struct {
	upserts []users.Telegram
	roles   []users.Role
	stored  map[int64]*users.User
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, tgID int64) (*users.User, error) {
	return f.stored[tgID], nil
}

func (f *fakeUsers) UpsertFromTelegram(_ context.Context, tg users.Telegram, role users.Role) (*users.User, error) {
	f.upserts = append(f.upserts, tg)
	f.roles = append(f.roles, role)
	return &users.User{TelegramID: tg.ID, Role: role}, nil
}

type mockShop struct{ mock.Mock }

func (m *mockShop) BatchHelp() string { return "help" }

func (m *mockShop) ParseBatch(text string) ([]ingest.Item, []string) {
	return ingest.Parse(text)
}

func (m *mockShop) ParseWorkbook(r io.Reader) ([]ingest.Item, []string, error) {
	return ingest.NewParser(false).ParseWorkbook(r)
}

func (m *mockShop) Ingest(ctx context.Context, admin int64, items []ingest.Item) service.IngestReport {
	args := m.Called(ctx, admin, items)
	return args.Get(0).(service.IngestReport)
}

func (m *mockShop) Sell(ctx context.Context, req service.SaleRequest) (*service.SaleReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SaleReceipt), args.Error(1)
}

func (m *mockShop) CategoryBrands(ctx context.Context, c catalog.Category) ([]brands.Brand, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]brands.Brand), args.Error(1)
}

func (m *mockShop) BrandProducts(ctx context.Context, brandID int64) (*brands.Brand, []products.Product, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*brands.Brand), args.Get(1).([]products.Product), args.Error(2)
}

func (m *mockShop) Product(ctx context.Context, id int64) (*products.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*products.Product), args.Error(1)
}

func (m *mockShop) CatalogPage(ctx context.Context, view service.CatalogView, page int) (pagination.Result[products.Product], error) {
	args := m.Called(ctx, view, page)
	return args.Get(0).(pagination.Result[products.Product]), args.Error(1)
}

func (m *mockShop) CategoryStats(ctx context.Context) ([]catalog.Stat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Stat), args.Error(1)
}

func (m *mockShop) AllBrands(ctx context.Context) ([]brands.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]brands.Brand), args.Error(1)
}

func (m *mockShop) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockShop) AdminSalesReport(ctx context.Context, admin int64, from, to time.Time) ([]sales.Sale, sales.Totals, error) {
	args := m.Called(ctx, admin, from, to)
	if args.Get(0) == nil {
		return nil, sales.Totals{}, args.Error(2)
	}
	return args.Get(0).([]sales.Sale), args.Get(1).(sales.Totals), args.Error(2)
}

func (m *mockShop) SalesReport(ctx context.Context, from, to time.Time) ([]sales.Sale, sales.Totals, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, sales.Totals{}, args.Error(2)
	}
	return args.Get(0).([]sales.Sale), args.Get(1).(sales.Totals), args.Error(2)
}

type harness struct {
	t      *testing.T
	ctx    context.Context
	api    *fakeSender
	shop   *mockShop
	states *dialog.MemoryStore
	users  *fakeUsers
	bot    *Bot
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		t:      t,
		ctx:    context.Background(),
		api:    &fakeSender{},
		shop:   new(mockShop),
		states: dialog.NewMemoryStore(0),
		users:  &fakeUsers{},
	}
	h.bot = New(h.api, logger.Discard(), h.shop, h.states, h.users, users.NewAdminList([]int64{adminID}))
	return h
}

func (h *harness) command(from int64, text string) {
	n := len(text)
	for i, r := range text {
		if r == ' ' {
			n = i
			break
		}
	}
	h.bot.handleUpdate(h.ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: from, FirstName: "Test"},
		Chat:      &tgbotapi.Chat{ID: from},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: n}},
	}})
}

func (h *harness) text(from int64, text string) {
	h.bot.handleUpdate(h.ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      &tgbotapi.User{ID: from, FirstName: "Test"},
		Chat:      &tgbotapi.Chat{ID: from},
		Text:      text,
	}})
}

func (h *harness) press(from int64, data string) {
	h.bot.handleUpdate(h.ctx, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: from},
		Message: &tgbotapi.Message{MessageID: 55, Chat: &tgbotapi.Chat{ID: from}},
		Data:    data,
	}})
}

func (h *harness) state(chatID int64) *dialog.Item {
	st, err := h.states.Get(h.ctx, chatID)
	require.NoError(h.t, err)
	return st
}
