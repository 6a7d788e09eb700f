package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

const userColumns = `id, email, email_lower, name, password_hash, bio, skills_offering, skills_seeking, availability, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var id uuid.UUID
	if err := row.Scan(&id, &u.Email, &u.EmailLower, &u.Name, &u.PasswordHash,
		&u.Profile.Bio, &u.Profile.SkillsOffering, &u.Profile.SkillsSeeking, &u.Profile.Availability,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.ID = id.String()
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	const op = "storage/postgres/users.Create"

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, email_lower, name, password_hash, bio, skills_offering, skills_seeking, availability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, u.Email, u.EmailLower, u.Name, u.PasswordHash,
		u.Profile.Bio, u.Profile.SkillsOffering, u.Profile.SkillsSeeking, u.Profile.Availability,
		u.CreatedAt, u.UpdatedAt).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	u.ID = id.String()
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	const op = "storage/postgres/users.GetByID"

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrInvalidID)
	}

	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, emailLower string) (*entity.User, error) {
	const op = "storage/postgres/users.GetByEmail"

	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email_lower = $1`, emailLower))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	const op = "storage/postgres/users.GetByIDs"

	uids := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if uid, err := uuid.Parse(id); err == nil {
			uids = append(uids, uid)
		}
	}
	if len(uids) == 0 {
		return []entity.User{}, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, uids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectUsers(op, rows)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	const op = "storage/postgres/users.Update"

	uid, err := uuid.Parse(u.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, repository.ErrInvalidID)
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, email_lower = $2, name = $3, password_hash = $4,
		    bio = $5, skills_offering = $6, skills_seeking = $7, availability = $8,
		    updated_at = $9
		WHERE id = $10
	`, u.Email, u.EmailLower, u.Name, u.PasswordHash,
		u.Profile.Bio, u.Profile.SkillsOffering, u.Profile.SkillsSeeking, u.Profile.Availability,
		u.UpdatedAt, uid)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *UserRepository) ListExcept(ctx context.Context, id string) ([]entity.User, error) {
	const op = "storage/postgres/users.ListExcept"

	var (
		rows pgx.Rows
		err  error
	)
	if uid, perr := uuid.Parse(id); perr == nil {
		rows, err = r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id <> $1 ORDER BY created_at DESC, seq DESC`, uid)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, seq DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectUsers(op, rows)
}

func collectUsers(op string, rows pgx.Rows) ([]entity.User, error) {
	defer rows.Close()

	out := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
