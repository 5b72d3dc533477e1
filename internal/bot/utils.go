package bot

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/florzoye/shop/internal/dialog"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// Telegram rejects texts over 4096 characters.
const maxMessageRunes = 4000

// sendLong splits text at line breaks into messages under maxMessageRunes.
func (b *Bot) sendLong(chatID int64, text string) {
	for _, chunk := range splitMessage(text, maxMessageRunes) {
		b.sendText(chatID, chunk)
	}
}

func splitMessage(text string, limit int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if chunk := strings.TrimRight(cur.String(), "\n"); chunk != "" {
			chunks = append(chunks, chunk)
		}
		cur.Reset()
		curLen = 0
	}
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		if curLen+len(runes)+1 > limit {
			flush()
		}
		cur.WriteString(string(runes))
		cur.WriteByte('\n')
		curLen += len(runes) + 1
	}
	flush()
	return chunks
}

// sendWithMarkup отправляет сообщение и возвращает его id (0 при ошибке)
func (b *Bot) sendWithMarkup(chatID int64, text string, markup any) int {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = markup
	sent, err := b.api.Send(m)
	if err != nil {
		b.log.Error("send failed", "chat_id", chatID, "err", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

func (b *Bot) editTextWithMarkup(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb))
}

// clearPrevStep убрать inline-кнопки у прошлого шага, если он был
func (b *Bot) clearPrevStep(chatID int64, p dialog.Payload) {
	mid, ok := dialog.GetInt(p, dialog.KeyLastMsgID)
	if !ok || mid == 0 {
		return
	}
	rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, mid, rm))
}

// setState пишет состояние; ошибка хранилища только логируется
func (b *Bot) setState(ctx context.Context, chatID int64, st dialog.State, p dialog.Payload) {
	if err := b.states.Set(ctx, chatID, st, p); err != nil {
		b.log.Error("set dialog state failed", "chat_id", chatID, "state", st, "err", err)
	}
}

func (b *Bot) resetState(ctx context.Context, chatID int64) {
	if err := b.states.Reset(ctx, chatID); err != nil {
		b.log.Error("reset dialog state failed", "chat_id", chatID, "err", err)
	}
}

// getState never returns nil: a storage error reads as idle.
func (b *Bot) getState(ctx context.Context, chatID int64) *dialog.Item {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st == nil {
		if err != nil {
			b.log.Error("get dialog state failed", "chat_id", chatID, "err", err)
		}
		return &dialog.Item{ChatID: chatID, State: dialog.StateIdle, Payload: dialog.Payload{}}
	}
	if st.Payload == nil {
		st.Payload = dialog.Payload{}
	}
	return st
}

// downloadTelegramFile скачивает файл по FileID через Telegram API.
func (b *Bot) downloadTelegramFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// formatMoney печатает сумму с точностью до копеек без лишних нулей: 450, 890.5
func formatMoney(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// callbackID разбирает числовой хвост callback data после prefix
func callbackID(data, prefix string) (int64, bool) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
