package bot

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/dialog"
	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/domain/users"
	"github.com/florzoye/shop/internal/infra/metrics"
	"github.com/florzoye/shop/internal/ingest"
	"github.com/florzoye/shop/internal/pagination"
	"github.com/florzoye/shop/internal/service"
)

// Sender is the part of *tgbotapi.BotAPI the bot talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Shop is implemented by *service.Shop.
type Shop interface {
	BatchHelp() string
	ParseBatch(text string) ([]ingest.Item, []string)
	ParseWorkbook(r io.Reader) ([]ingest.Item, []string, error)
	Ingest(ctx context.Context, adminID int64, items []ingest.Item) service.IngestReport

	Sell(ctx context.Context, req service.SaleRequest) (*service.SaleReceipt, error)

	CategoryBrands(ctx context.Context, c catalog.Category) ([]brands.Brand, error)
	BrandProducts(ctx context.Context, brandID int64) (*brands.Brand, []products.Product, error)
	Product(ctx context.Context, id int64) (*products.Product, error)
	CatalogPage(ctx context.Context, view service.CatalogView, page int) (pagination.Result[products.Product], error)
	CategoryStats(ctx context.Context) ([]catalog.Stat, error)
	AllBrands(ctx context.Context) ([]brands.Brand, error)
	DeleteProduct(ctx context.Context, id int64) error

	SalesReport(ctx context.Context, from, to time.Time) ([]sales.Sale, sales.Totals, error)
	AdminSalesReport(ctx context.Context, adminID int64, from, to time.Time) ([]sales.Sale, sales.Totals, error)
}

type UserStore interface {
	UpsertFromTelegram(ctx context.Context, tg users.Telegram, role users.Role) (*users.User, error)
	GetByTelegramID(ctx context.Context, tgID int64) (*users.User, error)
}

type Bot struct {
	api    Sender
	log    *slog.Logger
	shop   Shop
	states dialog.Store
	users  UserStore
	admins users.AdminList
	loc    *time.Location
	client *http.Client
}

type Option func(*Bot)

func WithLocation(loc *time.Location) Option {
	return func(b *Bot) {
		if loc != nil {
			b.loc = loc
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(b *Bot) { b.client = c }
}

func New(api Sender, log *slog.Logger, shop Shop, states dialog.Store, usersRepo UserStore, admins users.AdminList, opts ...Option) *Bot {
	b := &Bot{
		api:    api,
		log:    log,
		shop:   shop,
		states: states,
		users:  usersRepo,
		admins: admins,
		loc:    time.UTC,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run handles updates one at a time until ctx is done or the channel closes.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("update handler panicked", "update_id", upd.UpdateID, "panic", r)
		}
	}()

	switch {
	case upd.Message != nil:
		metrics.BotUpdates.WithLabelValues("message").Inc()
		b.onMessage(ctx, upd)
	case upd.CallbackQuery != nil:
		metrics.BotUpdates.WithLabelValues("callback").Inc()
		b.onCallback(ctx, upd)
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	if cb.Message == nil || cb.From == nil {
		_ = b.answerCallback(cb, "", false)
		return
	}
	b.handleCallback(ctx, cb)
}

func (b *Bot) isAdmin(tgID int64) bool { return b.admins.IsAdmin(tgID) }
