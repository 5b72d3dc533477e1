package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/dialog"
	"github.com/florzoye/shop/internal/ingest"
	"github.com/florzoye/shop/internal/service"
)

const (
	maxParseErrors   = 10
	maxPreviewItems  = 5
	maxPreviewErrors = 3
	maxDocumentSize  = 5 << 20
)

func (b *Bot) startAddProducts(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.denyNonAdmin(chatID, msg.From.ID) {
		return
	}
	b.log.Info("admin started adding products", "admin_id", msg.From.ID)

	b.setState(ctx, chatID, dialog.StateAddAwaitBatch, dialog.Payload{})
	b.sendText(chatID, b.shop.BatchHelp()+"\n\nМожно прислать и файл .xlsx с теми же колонками.")
}

func (b *Bot) handleBatchText(ctx context.Context, msg *tgbotapi.Message, text string) {
	items, errs := b.shop.ParseBatch(text)
	b.log.Info("batch parsed", "admin_id", msg.From.ID, "items", len(items), "errors", len(errs))
	b.finishBatch(ctx, msg, items, errs)
}

func (b *Bot) handleBatchDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	doc := msg.Document
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		b.sendText(chatID, "⚠️ Поддерживаются только файлы .xlsx\n\nОтменить: /cancel")
		return
	}
	if doc.FileSize > maxDocumentSize {
		b.sendText(chatID, "⚠️ Файл слишком большой\n\nОтменить: /cancel")
		return
	}

	data, err := b.downloadTelegramFile(ctx, doc.FileID)
	if err != nil {
		b.log.Error("download batch file failed", "admin_id", msg.From.ID, "err", err)
		b.sendText(chatID, "❌ Не удалось скачать файл. Попробуйте ещё раз.")
		return
	}

	items, errs, err := b.shop.ParseWorkbook(bytes.NewReader(data))
	if errors.Is(err, ingest.ErrEmptyWorkbook) {
		b.sendText(chatID, "⚠️ В файле нет строк с товарами.\n\nОтменить: /cancel")
		return
	}
	if err != nil {
		b.log.Warn("read batch workbook failed", "admin_id", msg.From.ID, "err", err)
		b.sendText(chatID, "Не удалось прочитать Excel-файл (повреждён или не .xlsx).")
		return
	}
	b.log.Info("batch workbook parsed", "admin_id", msg.From.ID, "items", len(items), "errors", len(errs))
	b.finishBatch(ctx, msg, items, errs)
}

func (b *Bot) finishBatch(ctx context.Context, msg *tgbotapi.Message, items []ingest.Item, errs []string) {
	chatID := msg.Chat.ID

	// Если ничего не распознали
	if len(items) == 0 && len(errs) == 0 {
		b.sendText(chatID, "⚠️ Не удалось распознать товары.\n\n"+b.shop.BatchHelp())
		return
	}

	// Если только ошибки: состояние сохраняется, админ присылает исправленный список
	if len(items) == 0 {
		b.sendText(chatID, "❌ Ошибки при парсинге:\n\n"+limitLines(errs, maxParseErrors, "ошибок")+"\n\nОтменить: /cancel")
		return
	}

	rep := b.ingestSafely(ctx, msg.From.ID, items)
	defer b.resetState(ctx, chatID)

	if rep == nil {
		b.sendText(chatID, "❌ Произошла непредвиденная ошибка.\n"+
			"Попробуйте ещё раз или обратитесь к разработчику.")
		return
	}
	if rep.Added() == 0 {
		b.log.Error("batch added nothing", "admin_id", msg.From.ID, "items", len(items))
		b.sendText(chatID, "❌ Не удалось добавить товары в базу данных.\n"+
			"Попробуйте ещё раз или обратитесь к разработчику.")
		return
	}
	b.sendText(chatID, formatIngestReport(rep, errs))
}

// ingestSafely возвращает nil, если обработка пакета упала с panic
func (b *Bot) ingestSafely(ctx context.Context, adminID int64, items []ingest.Item) (rep *service.IngestReport) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("unexpected error while ingesting batch", "admin_id", adminID, "panic", r)
			rep = nil
		}
	}()
	r := b.shop.Ingest(ctx, adminID, items)
	return &r
}

func formatIngestReport(rep *service.IngestReport, errs []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Обработано: %d товаров\n\n", rep.Added())

	sb.WriteString("📦 Товары:\n")
	shown := 0
	for _, it := range rep.Result.Items {
		if it.Err != nil {
			continue
		}
		if shown == maxPreviewItems {
			break
		}
		p := it.Product
		fmt.Fprintf(&sb, "• %s — %s\n", p.BrandName, p.Flavor)
		if it.Merged {
			fmt.Fprintf(&sb, "  └ %s | Пополнено на %d шт | %s₽\n", p.Category.Label(), p.Quantity, formatMoney(p.Price))
		} else {
			fmt.Fprintf(&sb, "  └ %s | %d шт | %s₽\n", p.Category.Label(), p.Quantity, formatMoney(p.Price))
		}
		shown++
	}
	if rest := rep.Added() - shown; rest > 0 {
		fmt.Fprintf(&sb, "\n... и ещё %d товаров\n", rest)
	}

	if failed := rep.Result.Failed + rep.BrandFailures; failed > 0 {
		fmt.Fprintf(&sb, "\n❌ Не сохранено: %d\n", failed)
	}

	if len(errs) > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Предупреждения: %d\n", len(errs))
		sb.WriteString(limitLines(errs, maxPreviewErrors, ""))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// limitLines склеивает первые n строк и добавляет «... и ещё K»
func limitLines(lines []string, n int, noun string) string {
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	tail := fmt.Sprintf("\n\n... и ещё %d", len(lines)-n)
	if noun != "" {
		tail += " " + noun
	}
	return strings.Join(lines[:n], "\n") + tail
}
