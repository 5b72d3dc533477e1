package users

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName prefers @username, then the full name.
func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// AdminList is the configured set of administrator Telegram ids.
type AdminList map[int64]struct{}

func NewAdminList(ids []int64) AdminList {
	l := make(AdminList, len(ids))
	for _, id := range ids {
		l[id] = struct{}{}
	}
	return l
}

func (l AdminList) IsAdmin(telegramID int64) bool {
	_, ok := l[telegramID]
	return ok
}

func (l AdminList) RoleOf(telegramID int64) Role {
	if l.IsAdmin(telegramID) {
		return RoleAdmin
	}
	return RoleUser
}
