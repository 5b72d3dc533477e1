package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
)

// Кнопки нижней панели
const (
	btnCatalog     = "🛍 Каталог"
	btnAddProducts = "📦 Добавить товары"
	btnSell        = "💰 Продать"
	btnSales       = "📊 Продажи"
)

// Callback data
const (
	cbNavCancel = "nav:cancel"
	cbNoop      = "noop"

	cbSellCategory   = "sell:cat:"
	cbSellBrand      = "sell:brand:"
	cbSellProduct    = "sell:prod:"
	cbSellBackCats   = "sell:back:cats"
	cbSellBackBrands = "sell:back:brands"
	cbSellCancel     = "sell:cancel"

	cbCatalogMenu       = "cat:menu"
	cbCatalogCategories = "cat:cats"
	cbCatalogPage       = "cat:page:"
)

func navKeyboard(cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbNavCancel))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// adminReplyKeyboard Нижняя панель (ReplyKeyboard) для админа
func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard:        true,
		InputFieldPlaceholder: "Выберите действие...",
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnCatalog)},
			{tgbotapi.NewKeyboardButton(btnAddProducts), tgbotapi.NewKeyboardButton(btnSell)},
			{tgbotapi.NewKeyboardButton(btnSales)},
		},
	}
}

func userReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard:        true,
		InputFieldPlaceholder: "Выберите действие...",
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnCatalog)},
		},
	}
}

func (b *Bot) replyKeyboard(tgID int64) tgbotapi.ReplyKeyboardMarkup {
	if b.isAdmin(tgID) {
		return adminReplyKeyboard()
	}
	return userReplyKeyboard()
}

/*** ПРОДАЖА ***/

func sellCategoriesKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(catalog.All())+1)
	for _, c := range catalog.All() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Title(), cbSellCategory+string(c)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbSellCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sellBrandsKeyboard(list []brands.Brand) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list)+2)
	for _, br := range list {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏷 "+br.Name, fmt.Sprintf("%s%d", cbSellBrand, br.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", cbSellBackCats)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbSellCancel)),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Все вкусы бренда, включая закончившиеся: выбор такого даёт alert
func sellProductsKeyboard(list []products.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list)+2)
	for _, p := range list {
		stock := "(нет)"
		if p.InStock() {
			stock = fmt.Sprintf("(%d шт)", p.Quantity)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Flavor+" "+stock, fmt.Sprintf("%s%d", cbSellProduct, p.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", cbSellBackBrands)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbSellCancel)),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sellCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbSellCancel),
	))
}

/*** КАТАЛОГ ***/

func catalogMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📦 Все товары", catalogPageData(pageAll, 1))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📂 По категориям", cbCatalogCategories)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔍 Только в наличии", catalogPageData(pageStock, 1))),
	)
}

// catalogCategoriesKeyboard подписывает кнопки числом товаров, если статистика есть
func catalogCategoriesKeyboard(stats map[catalog.Category]catalog.Stat) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(catalog.All())+1)
	for _, c := range catalog.All() {
		text := c.Title()
		if st, ok := stats[c]; ok {
			text = fmt.Sprintf("%s (%d)", text, st.Products)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, catalogPageData(string(c), 1)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", cbCatalogMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func catalogPageData(mode string, page int) string {
	return fmt.Sprintf("%s%s:%d", cbCatalogPage, mode, page)
}

func catalogPagerKeyboard(mode string, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	nav := []tgbotapi.InlineKeyboardButton{}
	if page > 1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", catalogPageData(mode, page-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📄 %d/%d", page, totalPages), cbNoop))
	if page < totalPages {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", catalogPageData(mode, page+1)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		nav,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("◀️ В меню", cbCatalogMenu)),
	)
}
