package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"procureBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User, passwordHash string) (models.User, error) {
	query := `
		INSERT INTO users (main_account_id, role, type, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var mainAccount interface{}
	if user.MainAccountID != 0 {
		mainAccount = user.MainAccountID
	}

	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query, mainAccount, user.Role, user.Type, user.Name, user.Email, passwordHash, now)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	user.ID = int(insertedID)
	user.CreatedAt = now
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query := `
		SELECT id, COALESCE(main_account_id, 0), role, type, name, email, created_at
		FROM users WHERE id = ?
	`
	var user models.User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.MainAccountID, &user.Role, &user.Type, &user.Name, &user.Email, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrNoRecord
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail also returns the stored password hash for credential checks.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, string, error) {
	query := `
		SELECT id, COALESCE(main_account_id, 0), role, type, name, email, password_hash, created_at
		FROM users WHERE email = ?
	`
	var user models.User
	var hash string
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.MainAccountID, &user.Role, &user.Type, &user.Name, &user.Email, &hash, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", models.ErrNoRecord
	}
	if err != nil {
		return models.User{}, "", err
	}
	return user, hash, nil
}

// AccountEmails lists every email address under a main account: the owner
// itself plus all of its sub-users. Invitations are addressed per-email, so
// this roster is how an authenticated seller is matched to its invitations.
func (r *UserRepository) AccountEmails(ctx context.Context, accountID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT email FROM users WHERE id = ? OR main_account_id = ?`, accountID, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
