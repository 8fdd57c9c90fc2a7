package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, full_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Username, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT id, username, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.getOne(`SELECT id, username, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users WHERE username = $1`, username)
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET password_hash = $2, full_name = $3, role = $4, is_active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.PasswordHash, user.FullName, user.Role, user.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios con paginación, los más recientes primero.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
