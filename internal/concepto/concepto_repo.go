package concepto

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=concepto_repo.go -destination=mock/concepto_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Concepto) error
	FindAll(ctx context.Context, incluirInactivos bool) ([]Concepto, error)
	FindActivos(ctx context.Context) ([]Concepto, error)
	FindByID(ctx context.Context, id string) (*Concepto, error)
	ExistsNombreActivo(ctx context.Context, nombre string, excludeID *string) (bool, error)
	Update(ctx context.Context, c *Concepto) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, c *Concepto) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, incluirInactivos bool) ([]Concepto, error) {
	var conceptos []Concepto
	db := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		db = db.Where("activo = ?", true)
	}
	err := db.Find(&conceptos).Error
	return conceptos, err
}

func (r *repository) FindActivos(ctx context.Context) ([]Concepto, error) {
	return r.FindAll(ctx, false)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Concepto, error) {
	var c Concepto
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) ExistsNombreActivo(ctx context.Context, nombre string, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Concepto{}).
		Where("nombre = ?", nombre).
		Where("activo = ?", true)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, c *Concepto) error {
	return r.db.WithContext(ctx).Save(c).Error
}
