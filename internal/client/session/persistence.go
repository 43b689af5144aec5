package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/grain/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/grain/internal/dbx"
)

// Keys of the persisted session entries.
const (
	TokenKey = "auth_token"
	UserKey  = "user_data"
)

// Persistence stores the token and the serialized session record. Save and
// Clear must write both entries or neither.
type Persistence interface {
	Load(ctx context.Context) (token string, record []byte, err error)
	Save(ctx context.Context, token string, record []byte) error
	Clear(ctx context.Context) error
}

// SQLPersistence keeps the two entries in the metadata table.
type SQLPersistence struct {
	db   dbx.Beginner
	repo metadata.Repository
}

func NewSQLPersistence(db dbx.Beginner, repo metadata.Repository) *SQLPersistence {
	return &SQLPersistence{db: db, repo: repo}
}

func (p *SQLPersistence) Load(ctx context.Context) (string, []byte, error) {
	token, err := p.repo.Get(ctx, TokenKey)
	if err != nil {
		return "", nil, err
	}
	record, err := p.repo.Get(ctx, UserKey)
	if err != nil {
		return "", nil, err
	}
	return string(token), record, nil
}

func (p *SQLPersistence) Save(ctx context.Context, token string, record []byte) error {
	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := p.repo.WithDB(tx)
		if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, UserKey, record)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *SQLPersistence) Clear(ctx context.Context) error {
	if err := p.repo.DeleteMany(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
