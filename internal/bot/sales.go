package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/dialog"
	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/domain/users"
	"github.com/florzoye/shop/internal/report"
)

const maxSalesLines = 20

const salesRangePrompt = "📊 Продажи за период\n\n" +
	"Введите даты в формате ДД.ММ.ГГГГ-ДД.ММ.ГГГГ\n" +
	"Например: 01.03.2024-31.03.2024\n" +
	"Или одну дату для отчёта за день.\n" +
	"Добавьте «мои», чтобы увидеть только свои продажи."

func (b *Bot) handleSalesCommand(ctx context.Context, msg *tgbotapi.Message) {
	if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
		if b.denyNonAdmin(msg.Chat.ID, msg.From.ID) {
			return
		}
		b.handleSalesRange(ctx, msg, args)
		return
	}
	b.askSalesRange(ctx, msg)
}

func (b *Bot) askSalesRange(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.denyNonAdmin(chatID, msg.From.ID) {
		return
	}
	mid := b.sendWithMarkup(chatID, salesRangePrompt, navKeyboard(true))
	b.setState(ctx, chatID, dialog.StateSalesAwaitRange, dialog.Payload{dialog.KeyLastMsgID: mid})
}

// splitOwnFilter strips a trailing "мои" (or "me") that limits the report to
// the caller's own sales.
func splitOwnFilter(text string) (string, bool) {
	fields := strings.Fields(text)
	if n := len(fields); n > 1 {
		switch strings.ToLower(fields[n-1]) {
		case "мои", "me":
			return strings.Join(fields[:n-1], " "), true
		}
	}
	return text, false
}

func (b *Bot) handleSalesRange(ctx context.Context, msg *tgbotapi.Message, text string) {
	chatID := msg.Chat.ID

	text, own := splitOwnFilter(text)
	period, err := report.ParsePeriod(text, b.loc)
	if err != nil {
		b.sendText(chatID, "⚠️ Неверный период.\n\n"+salesRangePrompt+"\n\nОтменить: /cancel")
		return
	}

	st := b.getState(ctx, chatID)
	if st.State == dialog.StateSalesAwaitRange {
		b.clearPrevStep(chatID, st.Payload)
		b.resetState(ctx, chatID)
	}

	var (
		list   []sales.Sale
		totals sales.Totals
		seller string
	)
	if own {
		list, totals, err = b.shop.AdminSalesReport(ctx, msg.From.ID, period.From, period.To)
		seller = b.sellerName(ctx, msg.From)
	} else {
		list, totals, err = b.shop.SalesReport(ctx, period.From, period.To)
	}
	if err != nil {
		b.log.Error("sales report failed", "admin_id", msg.From.ID, "period", period.String(), "err", err)
		b.sendText(chatID, "❌ Не удалось загрузить продажи.")
		return
	}
	b.log.Info("sales report", "admin_id", msg.From.ID, "period", period.String(), "own", own, "count", totals.Count)

	b.sendText(chatID, b.formatSales(period, seller, list, totals))
	if len(list) == 0 {
		return
	}

	buf := &bytes.Buffer{}
	if err := report.WriteSales(buf, list, totals, b.loc); err != nil {
		b.log.Error("build sales workbook failed", "err", err)
		b.sendText(chatID, "Ошибка формирования файла")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  report.FileName(period.From, period.To),
		Bytes: buf.Bytes(),
	})
	doc.Caption = "Продажи за " + period.String()
	b.send(doc)
}

// sellerName uses the stored profile, falling back to the Telegram one.
func (b *Bot) sellerName(ctx context.Context, from *tgbotapi.User) string {
	u, err := b.users.GetByTelegramID(ctx, from.ID)
	if err != nil {
		b.log.Warn("get user failed", "user_id", from.ID, "err", err)
	}
	if u == nil {
		u = &users.User{Username: from.UserName, FirstName: from.FirstName, LastName: from.LastName}
	}
	if name := u.DisplayName(); name != "" {
		return name
	}
	return fmt.Sprintf("id %d", from.ID)
}

func (b *Bot) formatSales(period report.Period, seller string, list []sales.Sale, totals sales.Totals) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Продажи %s\n", period.String())
	if seller != "" {
		fmt.Fprintf(&sb, "👤 Продавец: %s\n", seller)
	}
	sb.WriteString("\n")
	if len(list) == 0 {
		sb.WriteString("Продаж за этот период нет.")
		return sb.String()
	}

	for i, s := range list {
		if i == maxSalesLines {
			fmt.Fprintf(&sb, "... и ещё %d (полный список в файле)\n", len(list)-maxSalesLines)
			break
		}
		name := strings.TrimSpace(s.BrandName + " " + s.Flavor)
		if name == "" {
			name = fmt.Sprintf("товар #%d (удалён)", s.ProductID)
		}
		fmt.Fprintf(&sb, "• %s %s — %d шт — %s₽\n",
			s.SaleDate.In(b.loc).Format("02.01 15:04"), name, s.Quantity, formatMoney(s.Price))
	}
	fmt.Fprintf(&sb, "\nИтого: %d продаж, %d шт, %s₽", totals.Count, totals.Quantity, formatMoney(totals.Revenue))
	return sb.String()
}
