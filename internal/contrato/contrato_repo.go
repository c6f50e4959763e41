package contrato

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=contrato_repo.go -destination=mock/contrato_repo_mock.go -package=mock
type Repository interface {
	// ListActiveInPeriod returns the contracts eligible for settlement:
	// estado en curso and vigencia overlapping the given period.
	ListActiveInPeriod(ctx context.Context, desde, hasta time.Time) ([]Contrato, error)
	FindByID(ctx context.Context, id string) (*Contrato, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveInPeriod(ctx context.Context, desde, hasta time.Time) ([]Contrato, error) {
	var contratos []Contrato
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Where("estado = ?", EstadoEnCurso).
		Where("fecha_inicio <= ?", hasta).
		Where("fecha_fin IS NULL OR fecha_fin >= ?", desde).
		Order("fecha_inicio ASC").
		Find(&contratos).Error
	return contratos, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Contrato, error) {
	var c Contrato
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		First(&c, "id = ?", id).Error
	return &c, err
}
