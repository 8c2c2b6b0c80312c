// Package postgres содержит реализацию репозитория пользователей поверх Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"userpanel/internal/panel/domain/entities"
	"userpanel/internal/panel/domain/services"
	"userpanel/internal/panel/ports/repositories"
	"userpanel/pkg/logger"
)

// Код SQLSTATE для нарушения уникального ограничения.
const uniqueViolationCode = "23505"

const userColumns = "id, name, email, password_hash, status, last_login, registered_at, is_deleted"

// PgxPoolInterface описывает операции пула соединений, используемые репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID находит неудаленного пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1 AND NOT is_deleted
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail находит неудаленного пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1 AND NOT is_deleted
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// Create создает нового активного пользователя. Конкурентные регистрации с
// одинаковым email разрешаются частичным уникальным индексом по неудаленным
// строкам, а не предварительной проверкой.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns + `
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, name, email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate email on create", zap.String("email", email))
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// ListAllVisible возвращает всех неудаленных пользователей, отсортированных
// по last_login по убыванию; никогда не входившие идут последними.
func (r *UserRepository) ListAllVisible(ctx context.Context) ([]entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "ListAllVisible"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE NOT is_deleted
        ORDER BY last_login DESC NULLS LAST, id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Status,
			&user.LastLogin,
			&user.RegisteredAt,
			&user.IsDeleted,
		); err != nil {
			log.Error(ctx, "error scanning user row", zap.Error(err))
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating user rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// BulkSetStatus устанавливает статус всем неудаленным пользователям из списка
// одним запросом; id без совпадений молча пропускаются.
func (r *UserRepository) BulkSetStatus(ctx context.Context, ids []int64, status entities.Status) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "BulkSetStatus"))

	query := `
        UPDATE users
        SET status = $1
        WHERE id = ANY($2) AND NOT is_deleted
    `

	tag, err := r.pool.Exec(ctx, query, status, ids)
	if err != nil {
		log.Error(ctx, "error updating user status", zap.Error(err))
		return fmt.Errorf("error updating user status: %w", err)
	}

	log.Debug(ctx, "user status updated",
		zap.String("status", string(status)),
		zap.Int("requested", len(ids)),
		zap.Int64("matched", tag.RowsAffected()))
	return nil
}

// BulkSoftDelete помечает пользователей удаленными одним запросом независимо
// от текущего статуса; уже удаленные строки остаются удаленными.
func (r *UserRepository) BulkSoftDelete(ctx context.Context, ids []int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "BulkSoftDelete"))

	query := `
        UPDATE users
        SET is_deleted = TRUE
        WHERE id = ANY($1)
    `

	tag, err := r.pool.Exec(ctx, query, ids)
	if err != nil {
		log.Error(ctx, "error soft-deleting users", zap.Error(err))
		return fmt.Errorf("error soft-deleting users: %w", err)
	}

	log.Debug(ctx, "users soft-deleted",
		zap.Int("requested", len(ids)),
		zap.Int64("matched", tag.RowsAffected()))
	return nil
}

// TouchLastLogin устанавливает last_login текущим моментом.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "TouchLastLogin"))

	query := `
        UPDATE users
        SET last_login = now()
        WHERE id = $1
    `

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		log.Error(ctx, "error updating last login", zap.Error(err))
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Status,
		&user.LastLogin,
		&user.RegisteredAt,
		&user.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
