package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/florzoye/shop/internal/infra/db"
)

// Repo persists states in dialog_states so flows survive a restart.
type Repo struct {
	db db.DBTX
}

func NewRepo(db db.DBTX) *Repo { return &Repo{db: db} }

func (r *Repo) Get(ctx context.Context, chatID int64) (*Item, error) {
	row := r.db.QueryRow(ctx, `SELECT state, payload FROM dialog_states WHERE chat_id = $1`, chatID)
	var state string
	var raw []byte
	if err := row.Scan(&state, &raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return idle(chatID), nil
		}
		return nil, fmt.Errorf("get dialog state %d: %w", chatID, err)
	}
	p := Payload{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode dialog payload %d: %w", chatID, err)
		}
	}
	return &Item{ChatID: chatID, State: State(state), Payload: p}, nil
}

func (r *Repo) Set(ctx context.Context, chatID int64, state State, payload Payload) error {
	if payload == nil {
		payload = Payload{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode dialog payload %d: %w", chatID, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO dialog_states (chat_id, state, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (chat_id) DO UPDATE SET
		  state = $2, payload = $3, updated_at = now()
	`, chatID, string(state), raw)
	if err != nil {
		return fmt.Errorf("set dialog state %d: %w", chatID, err)
	}
	return nil
}

func (r *Repo) Reset(ctx context.Context, chatID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM dialog_states WHERE chat_id = $1`, chatID); err != nil {
		return fmt.Errorf("reset dialog state %d: %w", chatID, err)
	}
	return nil
}
