package liquidacion

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type QueryFilter struct {
	EspacioTrabajoID *string
	EmpleadoID       *string
	EstaPagada       *bool
	FechaDesde       *time.Time
	FechaHasta       *time.Time
	Page             int
	Limit            int
}

//go:generate mockgen -source=liquidacion_repo.go -destination=mock/liquidacion_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, liq *Liquidacion) error
	FindAll(ctx context.Context, filter QueryFilter) ([]Liquidacion, int64, error)
	FindByID(ctx context.Context, id string) (*Liquidacion, error)
	ExistsForPeriodo(ctx context.Context, contratoID string, desde, hasta time.Time) (bool, error)
	// UpdateEditable persists line items and totals guarded by
	// esta_pagada = false; returns the affected row count so callers
	// can detect a lost race against the payment transition.
	UpdateEditable(ctx context.Context, liq *Liquidacion) (int64, error)
	// MarcarPagada flips the paid flag with the same guard; zero rows
	// means the record was already paid.
	MarcarPagada(ctx context.Context, id string, fechaPago time.Time) (int64, error)
	SetRecibo(ctx context.Context, id string, url string, generadoEn time.Time) error
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

func (r *repository) Create(ctx context.Context, liq *Liquidacion) error {
	return r.db.WithContext(ctx).Create(liq).Error
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Liquidacion, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Liquidacion{}).
		Joins("JOIN contratos ON contratos.id = liquidaciones.contrato_id")

	if filter.EspacioTrabajoID != nil {
		db = db.Where("contratos.espacio_trabajo_id = ?", *filter.EspacioTrabajoID)
	}
	if filter.EmpleadoID != nil {
		db = db.Where("contratos.empleado_id = ?", *filter.EmpleadoID)
	}
	if filter.EstaPagada != nil {
		db = db.Where("liquidaciones.esta_pagada = ?", *filter.EstaPagada)
	}
	if filter.FechaDesde != nil {
		db = db.Where("liquidaciones.fecha_inicio >= ?", *filter.FechaDesde)
	}
	if filter.FechaHasta != nil {
		db = db.Where("liquidaciones.fecha_fin <= ?", *filter.FechaHasta)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var liquidaciones []Liquidacion
	err := db.
		Preload("Contrato").
		Preload("Contrato.Empleado").
		Order("liquidaciones.fecha_inicio DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&liquidaciones).Error
	return liquidaciones, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Liquidacion, error) {
	var liq Liquidacion
	err := r.db.WithContext(ctx).
		Preload("Contrato").
		Preload("Contrato.Empleado").
		First(&liq, "id = ?", id).Error
	return &liq, err
}

func (r *repository) ExistsForPeriodo(ctx context.Context, contratoID string, desde, hasta time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Liquidacion{}).
		Where("contrato_id = ?", contratoID).
		Where("fecha_inicio = ?", desde).
		Where("fecha_fin = ?", hasta).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateEditable(ctx context.Context, liq *Liquidacion) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Liquidacion{}).
		Where("id = ?", liq.ID).
		Where("esta_pagada = ?", false).
		Updates(map[string]interface{}{
			"basico":                liq.Basico,
			"antiguedad":            liq.Antiguedad,
			"presentismo":           liq.Presentismo,
			"horas_extras":          liq.HorasExtras,
			"vacaciones":            liq.Vacaciones,
			"sac":                   liq.SAC,
			"inasistencias":         liq.Inasistencias,
			"vacaciones_no_gozadas": liq.VacacionesNoGozadas,
			"total_bruto":           liq.TotalBruto,
			"total_retenciones":     liq.TotalRetenciones,
			"neto":                  liq.Neto,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) MarcarPagada(ctx context.Context, id string, fechaPago time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Liquidacion{}).
		Where("id = ?", id).
		Where("esta_pagada = ?", false).
		Updates(map[string]interface{}{
			"esta_pagada": true,
			"fecha_pago":  fechaPago,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) SetRecibo(ctx context.Context, id string, url string, generadoEn time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Liquidacion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"recibo_url":         url,
			"recibo_generado_en": generadoEn,
		}).Error
}
