// Package repositories is the record store of the community service. Every
// repository is a thin gorm accessor; business rules live in services.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository
	Likes() LikeRepository
	RefreshTokens() RefreshTokenRepository

	// WithinTransaction runs fn against a Store bound to a single database
	// transaction. The transaction commits when fn returns nil and rolls
	// back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository                 { return &userRepository{db: s.db} }
func (s *store) Posts() PostRepository                 { return &postRepository{db: s.db} }
func (s *store) Comments() CommentRepository           { return &commentRepository{db: s.db} }
func (s *store) Likes() LikeRepository                 { return &likeRepository{db: s.db} }
func (s *store) RefreshTokens() RefreshTokenRepository { return &refreshTokenRepository{db: s.db} }

func (s *store) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}

// translate maps driver errors onto ErrNotFound and ErrDuplicate, keeping
// the original error in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
