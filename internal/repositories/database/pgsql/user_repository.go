package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
)

// PgxUserRepository is the system of record for user identities. Uniqueness
// of email and of (provider, provider_user_id) is enforced by database
// unique indexes, not by application-level checks, so concurrent creates
// resolve to exactly one success.
type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const userColumns = `user_id, email, password_hash, role, first_name, last_name, phone, created_at, last_login`

// scanUser scans a single user row; nullable columns map to zero values.
func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user         domain.User
		email        *string
		passwordHash *string
		firstName    *string
		lastName     *string
		phone        *string
	)
	err := row.Scan(
		&user.UserID,
		&email,
		&passwordHash,
		&user.Role,
		&firstName,
		&lastName,
		&phone,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	if email != nil {
		user.Email = *email
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	if firstName != nil {
		user.Profile.FirstName = *firstName
	}
	if lastName != nil {
		user.Profile.LastName = *lastName
	}
	if phone != nil {
		user.Profile.Phone = *phone
	}
	return &user, nil
}

// loadProviderLinks attaches the user's OAuth links.
func (r *PgxUserRepository) loadProviderLinks(ctx context.Context, user *domain.User) error {
	rows, err := r.db.Query(ctx, `
		SELECT provider, provider_user_id
		FROM user_oauth_accounts
		WHERE user_id = $1
		ORDER BY provider;
	`, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to query provider links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var link domain.ProviderLink
		if err := rows.Scan(&link.Provider, &link.ProviderUserID); err != nil {
			return fmt.Errorf("failed to scan provider link: %w", err)
		}
		user.Providers = append(user.Providers, link)
	}
	return rows.Err()
}

func (r *PgxUserRepository) findUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if err := r.loadProviderLinks(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE user_id = $1;
	`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1);
	`, email)
}

func (r *PgxUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		SELECT u.user_id, u.email, u.password_hash, u.role, u.first_name, u.last_name, u.phone, u.created_at, u.last_login
		FROM users u
		JOIN user_oauth_accounts oa ON oa.user_id = u.user_id
		WHERE oa.provider = $1 AND oa.provider_user_id = $2;
	`, provider, providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by provider: %w", err)
	}
	if err := r.loadProviderLinks(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts the user and any provider links in one transaction.
func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id, email, password_hash, role, first_name, last_name, phone, created_at, last_login)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9);
	`,
		user.UserID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Profile.FirstName,
		user.Profile.LastName,
		user.Profile.Phone,
		user.CreatedAt,
		user.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	for _, link := range user.Providers {
		_, err = tx.Exec(ctx, `
			INSERT INTO user_oauth_accounts (user_id, provider, provider_user_id)
			VALUES ($1, $2, $3);
		`, user.UserID, link.Provider, link.ProviderUserID)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return fmt.Errorf("failed to insert provider link: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}
	return nil
}

// UpdateUser persists mutable fields of an existing user. Provider links are
// managed through AddProviderLink, not here.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = NULLIF($1, ''),
		    first_name = NULLIF($2, ''),
		    last_name = NULLIF($3, ''),
		    phone = NULLIF($4, ''),
		    last_login = $5
		WHERE user_id = $6;
	`,
		user.PasswordHash,
		user.Profile.FirstName,
		user.Profile.LastName,
		user.Profile.Phone,
		user.LastLogin,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) AddProviderLink(ctx context.Context, userID string, link domain.ProviderLink) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_oauth_accounts (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3);
	`, userID, link.Provider, link.ProviderUserID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to add provider link: %w", err)
	}
	return nil
}
