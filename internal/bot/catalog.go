package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/pagination"
	"github.com/florzoye/shop/internal/service"
)

// Режимы каталога в callback data; иначе это код категории
const (
	pageAll   = "all"
	pageStock = "stock"
)

const catalogMenuText = "🛍 Каталог товаров\n\nВыберите способ просмотра:"

// showCatalogMenu отправляет меню или, если msgID != 0, редактирует сообщение
func (b *Bot) showCatalogMenu(chatID int64, msgID int) {
	if msgID != 0 {
		b.editTextWithMarkup(chatID, msgID, catalogMenuText, catalogMenuKeyboard())
		return
	}
	m := tgbotapi.NewMessage(chatID, catalogMenuText)
	m.ReplyMarkup = catalogMenuKeyboard()
	b.send(m)
}

func (b *Bot) handleCatalogCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	switch {
	case cb.Data == cbCatalogMenu:
		b.showCatalogMenu(chatID, msgID)
		_ = b.answerCallback(cb, "", false)

	case cb.Data == cbCatalogCategories:
		stats := map[catalog.Category]catalog.Stat{}
		if list, err := b.shop.CategoryStats(ctx); err != nil {
			b.log.Warn("category stats failed", "err", err)
		} else {
			for _, s := range list {
				stats[s.Category] = s
			}
		}
		b.editTextWithMarkup(chatID, msgID, "📂 Выберите категорию:", catalogCategoriesKeyboard(stats))
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(cb.Data, cbCatalogPage):
		mode, page, ok := parseCatalogPage(cb.Data)
		if !ok {
			_ = b.answerCallback(cb, "Кнопка устарела", false)
			return
		}
		b.showCatalogPage(ctx, cb, mode, page)

	default:
		_ = b.answerCallback(cb, "Кнопка устарела", false)
	}
}

// parseCatalogPage разбирает "cat:page:<mode>:<page>"
func parseCatalogPage(data string) (string, int, bool) {
	rest := strings.TrimPrefix(data, cbCatalogPage)
	i := strings.LastIndex(rest, ":")
	if i <= 0 {
		return "", 0, false
	}
	page, err := strconv.Atoi(rest[i+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:i], page, true
}

func catalogView(mode string) (service.CatalogView, string, bool) {
	switch mode {
	case pageAll:
		return service.CatalogView{Mode: service.ModeAll}, "Все товары", true
	case pageStock:
		return service.CatalogView{Mode: service.ModeInStock}, "Товары в наличии", true
	}
	c, ok := catalog.ParseCode(mode)
	if !ok {
		return service.CatalogView{}, "", false
	}
	return service.CatalogView{Mode: service.ModeCategory, Category: c}, "Категория: " + c.Title(), true
}

func (b *Bot) showCatalogPage(ctx context.Context, cb *tgbotapi.CallbackQuery, mode string, page int) {
	chatID := cb.Message.Chat.ID

	view, title, ok := catalogView(mode)
	if !ok {
		_ = b.answerCallback(cb, "Неизвестная категория", true)
		return
	}

	res, err := b.shop.CatalogPage(ctx, view, page)
	if err != nil {
		b.log.Error("catalog page failed", "mode", mode, "page", page, "err", err)
		_ = b.answerCallback(cb, "❌ Не удалось загрузить каталог", true)
		return
	}
	if res.TotalCount == 0 {
		_ = b.answerCallback(cb, emptyCatalogAlert(view), true)
		return
	}

	b.editTextWithMarkup(chatID, cb.Message.MessageID,
		formatCatalogPage(title, res, b.isAdmin(cb.From.ID)),
		catalogPagerKeyboard(mode, res.Page, res.TotalPages))
	_ = b.answerCallback(cb, "", false)
}

func emptyCatalogAlert(view service.CatalogView) string {
	switch view.Mode {
	case service.ModeInStock:
		return "📭 Нет товаров в наличии"
	case service.ModeCategory:
		return fmt.Sprintf("📭 В категории '%s' нет товаров", view.Category.Label())
	}
	return "📭 Каталог пуст"
}

// withIDs добавляет id товара, он нужен админу для /delete_product
func formatCatalogPage(title string, res pagination.Result[products.Product], withIDs bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🛍 %s\nВсего товаров: %d\n", title, res.TotalCount)

	offset := (res.Page - 1) * res.PerPage
	for i, p := range res.Data {
		fmt.Fprintf(&sb, "\n%d. %s", offset+i+1, formatProductLine(p))
		if withIDs {
			fmt.Fprintf(&sb, " [id %d]", p.ID)
		}
	}
	return sb.String()
}

func formatProductLine(p products.Product) string {
	mark, stock := "❌", "нет в наличии"
	if p.InStock() {
		mark, stock = "✅", fmt.Sprintf("%d шт", p.Quantity)
	}
	return fmt.Sprintf("%s %s %s — %s₽ (%s)", mark, p.BrandName, p.Flavor, formatMoney(p.Price), stock)
}
