package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/florzoye/shop/internal/infra/db"
)

const (
	columns = `id, telegram_id, username, first_name, last_name, role, created_at, updated_at`

	queryGetByTelegramID = `SELECT ` + columns + ` FROM users WHERE telegram_id = $1`

	queryUpsert = `
		INSERT INTO users (telegram_id, username, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			role       = EXCLUDED.role,
			updated_at = now()
		RETURNING ` + columns
)

type Repo struct {
	db db.DBTX
}

func NewRepo(db db.DBTX) *Repo { return &Repo{db: db} }

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var role string
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = Role(role)
	return &u, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, queryGetByTelegramID, tgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", tgID, err)
	}
	return u, nil
}

// UpsertFromTelegram records the profile; role mirrors the configured admin list.
func (r *Repo) UpsertFromTelegram(ctx context.Context, tg Telegram, role Role) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, queryUpsert, tg.ID, tg.Username, tg.FirstName, tg.LastName, string(role)))
	if err != nil {
		return nil, fmt.Errorf("upsert user %d: %w", tg.ID, err)
	}
	return u, nil
}
