package parametros

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=parametros_repo.go -destination=mock/parametros_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Get(ctx context.Context) (*ParametrosLaborales, error)
	Save(ctx context.Context, p *ParametrosLaborales) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Get returns the singleton row, materializing the default on first
// read so callers never deal with a missing record.
func (r *repository) Get(ctx context.Context) (*ParametrosLaborales, error) {
	var p ParametrosLaborales
	err := r.db.WithContext(ctx).First(&p, "id = ?", SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = ParametrosLaborales{
			ID:                          SingletonID,
			LimiteAusenciaInjustificada: LimiteAusenciaDefault,
		}
		if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Save(ctx context.Context, p *ParametrosLaborales) error {
	p.ID = SingletonID
	return r.db.WithContext(ctx).Save(p).Error
}
