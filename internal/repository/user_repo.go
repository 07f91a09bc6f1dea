package repository

import (
	"context"

	"telegram_initdata/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates the user on first login and refreshes the profile fields
// on later ones. u.ID and u.CreatedAt are filled from the stored row.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (tg_id, username, first_name, last_name, language_code, is_premium, photo_url, last_auth_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (tg_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			language_code = EXCLUDED.language_code,
			is_premium = EXCLUDED.is_premium,
			photo_url = EXCLUDED.photo_url,
			last_auth_at = GREATEST(users.last_auth_at, EXCLUDED.last_auth_at)
		 RETURNING id, created_at, last_auth_at`,
		u.TgID,
		u.Username,
		u.FirstName,
		u.LastName,
		u.LanguageCode,
		u.IsPremium,
		u.PhotoURL,
		u.LastAuthAt,
	).Scan(&u.ID, &u.CreatedAt, &u.LastAuthAt)
}

func (r *UserRepository) GetByTgID(ctx context.Context, tgID int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, tg_id, COALESCE(username, ''), first_name, COALESCE(last_name, ''),
		        COALESCE(language_code, ''), is_premium, COALESCE(photo_url, ''), created_at, last_auth_at
		 FROM users
		 WHERE tg_id = $1`,
		tgID,
	)

	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.TgID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.LanguageCode,
		&u.IsPremium,
		&u.PhotoURL,
		&u.CreatedAt,
		&u.LastAuthAt,
	); err != nil {
		return nil, err
	}

	return &u, nil
}
