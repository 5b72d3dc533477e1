package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/dialog"
	"github.com/florzoye/shop/internal/domain/users"
)

const helpText = "Команды:\n" +
	"/catalog — каталог товаров\n" +
	"/menu — главное меню\n" +
	"/cancel — отменить текущую операцию"

const adminHelpText = "\n\nДля администратора:\n" +
	"/add_products — добавить товары\n" +
	"/sell — продать товар\n" +
	"/sales ДД.ММ.ГГГГ-ДД.ММ.ГГГГ — продажи за период\n" +
	"/brands — список брендов\n" +
	"/delete_product <id> — удалить товар"

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)

	case "menu":
		m := tgbotapi.NewMessage(chatID, "📱 Главное меню\n\nВыберите действие:")
		m.ReplyMarkup = b.replyKeyboard(tgID)
		b.send(m)

	case "help":
		text := helpText
		if b.isAdmin(tgID) {
			text += adminHelpText
		}
		b.sendText(chatID, text)

	case "cancel":
		b.handleCancel(ctx, msg)

	case "catalog":
		b.showCatalogMenu(chatID, 0)

	case "add_products":
		b.startAddProducts(ctx, msg)

	case "sell":
		b.startSell(ctx, msg)

	case "sales":
		b.handleSalesCommand(ctx, msg)

	case "brands":
		b.handleBrands(ctx, msg)

	case "delete_product":
		b.handleDeleteProduct(ctx, msg)

	default:
		b.sendText(chatID, "Не знаю такую команду. Наберите /help")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	from := msg.From
	role := b.admins.RoleOf(from.ID)

	if _, err := b.users.UpsertFromTelegram(ctx, users.Telegram{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}, role); err != nil {
		// профиль не обязателен для работы
		b.log.Error("upsert user failed", "tg_id", from.ID, "err", err)
	}
	b.log.Info("user started bot", "tg_id", from.ID, "admin", role == users.RoleAdmin)

	name := from.FirstName
	if name == "" {
		name = "Пользователь"
	}

	var text string
	if role == users.RoleAdmin {
		text = fmt.Sprintf("👋 Привет, %s!\n\n"+
			"🔑 Вы вошли как администратор.\n\n"+
			"Доступные функции:\n"+
			"📦 Управление товарами\n"+
			"💰 Продажи\n"+
			"🛍 Просмотр каталога", name)
	} else {
		text = fmt.Sprintf("👋 Привет, %s!\n\n"+
			"Используйте кнопку ниже для просмотра каталога товаров.", name)
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = b.replyKeyboard(from.ID)
	b.send(m)
}

func (b *Bot) handleCancel(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st := b.getState(ctx, chatID)
	if st.State == dialog.StateIdle {
		b.sendText(chatID, "ℹ️ Нет активных операций для отмены")
		return
	}

	b.clearPrevStep(chatID, st.Payload)
	b.resetState(ctx, chatID)
	b.log.Info("operation cancelled", "tg_id", msg.From.ID, "state", st.State)

	b.sendText(chatID, "❌ Операция отменена\n\n"+
		"Доступные команды:\n"+
		"• /add_products - добавить товары\n"+
		"• /sell - продать товар")
}

// denyNonAdmin отвечает «нет доступа» и возвращает true, если пользователь не админ
func (b *Bot) denyNonAdmin(chatID, tgID int64) bool {
	if b.isAdmin(tgID) {
		return false
	}
	b.log.Warn("access denied", "tg_id", tgID)
	b.sendText(chatID, "⛔ Нет доступа")
	return true
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// Нижняя панель
	switch strings.TrimSpace(msg.Text) {
	case btnCatalog:
		b.showCatalogMenu(chatID, 0)
		return
	case btnAddProducts:
		b.startAddProducts(ctx, msg)
		return
	case btnSell:
		b.startSell(ctx, msg)
		return
	case btnSales:
		b.askSalesRange(ctx, msg)
		return
	}

	// Диалоги (текстовые вводы)
	st := b.getState(ctx, chatID)
	switch st.State {
	case dialog.StateAddAwaitBatch:
		if !b.isAdmin(msg.From.ID) {
			b.resetState(ctx, chatID)
			return
		}
		if msg.Document != nil {
			b.handleBatchDocument(ctx, msg)
			return
		}
		b.handleBatchText(ctx, msg, msg.Text)

	case dialog.StateSellQty:
		b.handleSellQuantity(ctx, msg, st)

	case dialog.StateSellPrice:
		b.handleSellPrice(ctx, msg, st)

	case dialog.StateSellCategory, dialog.StateSellBrand, dialog.StateSellProduct:
		b.sendText(chatID, "Выберите вариант кнопкой выше или нажмите /cancel")

	case dialog.StateSalesAwaitRange:
		if !b.isAdmin(msg.From.ID) {
			b.resetState(ctx, chatID)
			return
		}
		b.handleSalesRange(ctx, msg, msg.Text)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID

	switch {
	case data == cbNoop:
		_ = b.answerCallback(cb, "", false)

	case data == cbNavCancel:
		b.resetState(ctx, chatID)
		b.editTextAndClear(chatID, cb.Message.MessageID, "❌ Операция отменена")
		_ = b.answerCallback(cb, "Отменено", false)

	case strings.HasPrefix(data, "sell:"):
		b.handleSellCallback(ctx, cb)

	case strings.HasPrefix(data, "cat:"):
		b.handleCatalogCallback(ctx, cb)

	default:
		_ = b.answerCallback(cb, "Кнопка устарела", false)
	}
}
