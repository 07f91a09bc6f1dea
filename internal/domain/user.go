package domain

import (
	"time"

	"telegram_initdata/internal/initdata"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	TgID         int64     `db:"tg_id" json:"tg_id"`
	Username     string    `db:"username" json:"username,omitempty"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name,omitempty"`
	LanguageCode string    `db:"language_code" json:"language_code,omitempty"`
	IsPremium    bool      `db:"is_premium" json:"is_premium"`
	PhotoURL     string    `db:"photo_url" json:"photo_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	LastAuthAt   time.Time `db:"last_auth_at" json:"last_auth_at"`
}

// UserFromInitData maps the verified Telegram user onto a stored user row.
func UserFromInitData(u *initdata.User, authDate time.Time) *User {
	return &User{
		TgID:         u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		LanguageCode: u.LanguageCode,
		IsPremium:    u.IsPremium,
		PhotoURL:     u.PhotoURL,
		LastAuthAt:   authDate,
	}
}
