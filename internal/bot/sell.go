package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/dialog"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/ingest"
	"github.com/florzoye/shop/internal/service"
)

const sellCategoriesText = "🛒 Продажа товара\n\nВыберите категорию товара:"

func (b *Bot) startSell(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.denyNonAdmin(chatID, msg.From.ID) {
		return
	}
	b.log.Info("admin started selling", "admin_id", msg.From.ID)

	prev := b.getState(ctx, chatID)
	b.clearPrevStep(chatID, prev.Payload)

	mid := b.sendWithMarkup(chatID, sellCategoriesText, sellCategoriesKeyboard())
	b.setState(ctx, chatID, dialog.StateSellCategory, dialog.Payload{dialog.KeyLastMsgID: mid})
}

func (b *Bot) handleSellCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	if !b.isAdmin(cb.From.ID) {
		_ = b.answerCallback(cb, "⛔ Нет доступа", true)
		return
	}

	if cb.Data == cbSellCancel {
		b.resetState(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "❌ Продажа отменена")
		_ = b.answerCallback(cb, "", false)
		return
	}

	st := b.getState(ctx, chatID)
	if !st.State.InSale() {
		_ = b.answerCallback(cb, "Эта продажа уже завершена. Начните заново: /sell", true)
		return
	}

	switch {
	case cb.Data == cbSellBackCats:
		b.sellShowCategories(ctx, cb, st)

	case cb.Data == cbSellBackBrands:
		c, _ := dialog.GetString(st.Payload, dialog.KeyCategory)
		category, ok := catalog.ParseCode(c)
		if !ok {
			b.sellShowCategories(ctx, cb, st)
			return
		}
		b.sellShowBrands(ctx, cb, st, category)

	case strings.HasPrefix(cb.Data, cbSellCategory):
		category, ok := catalog.ParseCode(strings.TrimPrefix(cb.Data, cbSellCategory))
		if !ok {
			_ = b.answerCallback(cb, "Неизвестная категория", true)
			return
		}
		b.sellShowBrands(ctx, cb, st, category)

	case strings.HasPrefix(cb.Data, cbSellBrand):
		id, ok := callbackID(cb.Data, cbSellBrand)
		if !ok {
			_ = b.answerCallback(cb, "Кнопка устарела", true)
			return
		}
		b.sellShowProducts(ctx, cb, st, id)

	case strings.HasPrefix(cb.Data, cbSellProduct):
		id, ok := callbackID(cb.Data, cbSellProduct)
		if !ok {
			_ = b.answerCallback(cb, "Кнопка устарела", true)
			return
		}
		b.sellPickProduct(ctx, cb, st, id)

	default:
		_ = b.answerCallback(cb, "Кнопка устарела", false)
	}
}

func (b *Bot) sellShowCategories(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	b.setState(ctx, chatID, dialog.StateSellCategory, dialog.Payload{dialog.KeyLastMsgID: cb.Message.MessageID})
	b.editTextWithMarkup(chatID, cb.Message.MessageID, sellCategoriesText, sellCategoriesKeyboard())
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) sellShowBrands(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, category catalog.Category) {
	chatID := cb.Message.Chat.ID

	list, err := b.shop.CategoryBrands(ctx, category)
	if err != nil {
		b.log.Error("list brands failed", "category", category, "err", err)
		b.failSale(ctx, cb, "❌ Не удалось загрузить бренды. Начните заново: /sell")
		return
	}
	if len(list) == 0 {
		// остаёмся на выборе категории
		if st.State != dialog.StateSellCategory {
			b.setState(ctx, chatID, dialog.StateSellCategory, dialog.Payload{dialog.KeyLastMsgID: cb.Message.MessageID})
			b.editTextWithMarkup(chatID, cb.Message.MessageID, sellCategoriesText, sellCategoriesKeyboard())
		}
		_ = b.answerCallback(cb, "⚠️ В этой категории нет брендов", true)
		return
	}

	b.setState(ctx, chatID, dialog.StateSellBrand, dialog.Payload{
		dialog.KeyCategory:  string(category),
		dialog.KeyLastMsgID: cb.Message.MessageID,
	})
	b.editTextWithMarkup(chatID, cb.Message.MessageID,
		fmt.Sprintf("📦 Категория: %s\n\nВыберите бренд:", category.Title()),
		sellBrandsKeyboard(list))
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) sellShowProducts(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, brandID int64) {
	chatID := cb.Message.Chat.ID

	brand, list, err := b.shop.BrandProducts(ctx, brandID)
	if errors.Is(err, service.ErrNotFound) {
		_ = b.answerCallback(cb, "⚠️ Бренд не найден", true)
		return
	}
	if err != nil {
		b.log.Error("list brand products failed", "brand_id", brandID, "err", err)
		b.failSale(ctx, cb, "❌ Не удалось загрузить товары. Начните заново: /sell")
		return
	}
	if len(list) == 0 {
		_ = b.answerCallback(cb, "⚠️ У этого бренда нет товаров", true)
		return
	}

	p := dialog.Payload{
		dialog.KeyCategory:  string(brand.Category),
		dialog.KeyBrandID:   brand.ID,
		dialog.KeyBrandName: brand.Name,
		dialog.KeyLastMsgID: cb.Message.MessageID,
	}
	b.setState(ctx, chatID, dialog.StateSellProduct, p)
	b.editTextWithMarkup(chatID, cb.Message.MessageID,
		fmt.Sprintf("🏷 Бренд: %s\n\nВыберите вкус:", brand.Name),
		sellProductsKeyboard(list))
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) sellPickProduct(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, productID int64) {
	chatID := cb.Message.Chat.ID

	prod, err := b.shop.Product(ctx, productID)
	if errors.Is(err, service.ErrNotFound) {
		_ = b.answerCallback(cb, "❌ Товар не найден", true)
		return
	}
	if err != nil {
		b.log.Error("get product failed", "product_id", productID, "err", err)
		b.failSale(ctx, cb, "❌ Не удалось загрузить товар. Начните заново: /sell")
		return
	}
	if !prod.InStock() {
		_ = b.answerCallback(cb, "⚠️ Товар отсутствует на складе", true)
		return
	}

	brandName, ok := dialog.GetString(st.Payload, dialog.KeyBrandName)
	if !ok || brandName == "" {
		brandName = prod.BrandName
	}

	p := st.Payload.Clone()
	p[dialog.KeyCategory] = string(prod.Category)
	p[dialog.KeyBrandID] = prod.BrandID
	p[dialog.KeyBrandName] = brandName
	p[dialog.KeyProductID] = prod.ID
	p[dialog.KeyFlavor] = prod.Flavor
	p[dialog.KeyStock] = prod.Quantity
	p[dialog.KeyListPrice] = prod.Price
	p[dialog.KeyLastMsgID] = cb.Message.MessageID
	b.setState(ctx, chatID, dialog.StateSellQty, p)

	b.editTextWithMarkup(chatID, cb.Message.MessageID,
		fmt.Sprintf("📦 %s - %s\n\n💰 Цена: %s₽\n📊 Остаток: %d шт\n\nВведите количество для продажи (1-%d):",
			brandName, prod.Flavor, formatMoney(prod.Price), prod.Quantity, prod.Quantity),
		sellCancelKeyboard())
	_ = b.answerCallback(cb, "", false)
}

// failSale сбрасывает продажу после ошибки хранилища
func (b *Bot) failSale(ctx context.Context, cb *tgbotapi.CallbackQuery, text string) {
	chatID := cb.Message.Chat.ID
	b.resetState(ctx, chatID)
	b.editTextAndClear(chatID, cb.Message.MessageID, text)
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) handleSellQuantity(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	if !b.isAdmin(msg.From.ID) {
		b.resetState(ctx, chatID)
		return
	}

	stock, _ := dialog.GetInt(st.Payload, dialog.KeyStock)
	listPrice, _ := dialog.GetFloat64(st.Payload, dialog.KeyListPrice)

	qty, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil {
		b.sendText(chatID, "⚠️ Введите корректное число")
		return
	}
	if qty <= 0 {
		b.sendText(chatID, "⚠️ Количество должно быть больше 0")
		return
	}
	if err := service.ValidateQuantity(qty, stock); err != nil {
		b.sendText(chatID, fmt.Sprintf("⚠️ На складе только %d шт.\nВведите количество от 1 до %d:", stock, stock))
		return
	}

	b.clearPrevStep(chatID, st.Payload)

	suggested := listPrice * float64(qty)
	mid := b.sendWithMarkup(chatID,
		fmt.Sprintf("💰 Введите цену продажи (₽)\n\nРекомендованная: %s₽\n(%d шт × %s₽)",
			formatMoney(suggested), qty, formatMoney(listPrice)),
		sellCancelKeyboard())

	p := st.Payload.Clone()
	p[dialog.KeySellQty] = qty
	p[dialog.KeyLastMsgID] = mid
	b.setState(ctx, chatID, dialog.StateSellPrice, p)
}

func (b *Bot) handleSellPrice(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	adminID := msg.From.ID
	if !b.isAdmin(adminID) {
		b.resetState(ctx, chatID)
		return
	}

	price, err := ingest.ParsePrice(msg.Text)
	if errors.Is(err, ingest.ErrPriceScale) {
		b.sendText(chatID, "⚠️ Не больше двух знаков после запятой (например: 99.99)")
		return
	}
	if err != nil {
		b.sendText(chatID, "⚠️ Введите корректное число (например: 100 или 99.99)")
		return
	}
	if price <= 0 {
		b.sendText(chatID, "⚠️ Цена должна быть больше 0")
		return
	}

	productID, _ := dialog.GetInt64(st.Payload, dialog.KeyProductID)
	stock, _ := dialog.GetInt(st.Payload, dialog.KeyStock)
	qty, _ := dialog.GetInt(st.Payload, dialog.KeySellQty)
	brandName, _ := dialog.GetString(st.Payload, dialog.KeyBrandName)
	flavor, _ := dialog.GetString(st.Payload, dialog.KeyFlavor)

	b.clearPrevStep(chatID, st.Payload)
	// любой исход продажи завершает диалог
	defer b.resetState(ctx, chatID)

	rec, err := b.shop.Sell(ctx, service.SaleRequest{
		ProductID: productID,
		AdminID:   adminID,
		Stock:     stock,
		Quantity:  qty,
		Price:     price,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrStockUpdate):
		b.sendText(chatID, "❌ Ошибка при обновлении остатка товара.\nПродажа не сохранена. Начните заново: /sell")
		return
	case errors.Is(err, service.ErrCompensationFailed):
		b.sendText(chatID, "❌ Ошибка при сохранении продажи.\n"+
			"⚠️ Остаток товара не удалось вернуть, проверьте его вручную.")
		return
	case errors.Is(err, service.ErrSaleNotRecorded):
		b.sendText(chatID, "❌ Ошибка при сохранении продажи.\nОстаток восстановлен. Начните заново: /sell")
		return
	default:
		b.log.Error("unexpected sale error", "admin_id", adminID, "product_id", productID, "err", err)
		b.sendText(chatID, "❌ Произошла непредвиденная ошибка.\nПопробуйте начать сначала с команды /sell")
		return
	}

	b.sendText(chatID, fmt.Sprintf("✅ Продажа завершена!\n\n"+
		"🏷 Бренд: %s\n"+
		"📦 Вкус: %s\n"+
		"📊 Количество: %d шт\n"+
		"💰 Сумма: %s₽\n"+
		"📉 Остаток на складе: %d шт",
		brandName, flavor, qty, formatMoney(price), rec.Remaining))
}
