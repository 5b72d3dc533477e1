package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/service"
)

// handleBrands печатает бренды по категориям со статистикой
func (b *Bot) handleBrands(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.denyNonAdmin(chatID, msg.From.ID) {
		return
	}

	list, err := b.shop.AllBrands(ctx)
	if err != nil {
		b.log.Error("list brands failed", "err", err)
		b.sendText(chatID, "❌ Не удалось загрузить бренды.")
		return
	}
	if len(list) == 0 {
		b.sendText(chatID, "📭 Брендов пока нет. Добавьте товары: /add_products")
		return
	}

	stats := map[catalog.Category]catalog.Stat{}
	if ss, err := b.shop.CategoryStats(ctx); err == nil {
		for _, s := range ss {
			stats[s.Category] = s
		}
	} else {
		b.log.Warn("category stats failed", "err", err)
	}

	var sb strings.Builder
	sb.WriteString("🏷 Бренды\n")
	var current catalog.Category
	for _, br := range list {
		if br.Category != current {
			current = br.Category
			sb.WriteString("\n" + current.Title())
			if s, ok := stats[current]; ok {
				fmt.Fprintf(&sb, " — %d товаров, %d шт", s.Products, s.Units)
			}
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "• %s (id %d)\n", br.Name, br.ID)
	}
	b.sendLong(chatID, strings.TrimRight(sb.String(), "\n"))
}

func (b *Bot) handleDeleteProduct(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.denyNonAdmin(chatID, msg.From.ID) {
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
	if err != nil || id <= 0 {
		b.sendText(chatID, "Использование: /delete_product <id>")
		return
	}

	prod, err := b.shop.Product(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		b.sendText(chatID, "❌ Товар не найден")
		return
	}
	if err != nil {
		b.log.Error("get product failed", "product_id", id, "err", err)
		b.sendText(chatID, "❌ Не удалось удалить товар.")
		return
	}

	if err := b.shop.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			b.sendText(chatID, "❌ Товар не найден")
			return
		}
		b.log.Error("delete product failed", "product_id", id, "err", err)
		b.sendText(chatID, "❌ Не удалось удалить товар.")
		return
	}
	b.log.Info("product deleted by admin", "admin_id", msg.From.ID, "product_id", id)
	b.sendText(chatID, fmt.Sprintf("🗑 Удалён: %s %s (id %d)", prod.BrandName, prod.Flavor, id))
}
