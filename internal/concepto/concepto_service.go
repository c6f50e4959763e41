package concepto

import (
	"context"
	"database/sql"

	conceptoerrors "github.com/joaquinkuster/rrhh-sub001/internal/concepto/errors"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=concepto_service.go -destination=mock/concepto_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateConceptoRequest) (ConceptoResponse, error)
	GetAll(ctx context.Context, filter GetConceptosFilterRequest) ([]ConceptoResponse, error)
	GetByID(ctx context.Context, id string) (ConceptoResponse, error)
	Update(ctx context.Context, id string, req UpdateConceptoRequest) (ConceptoResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateConceptoRequest,
) (ConceptoResponse, error) {
	tipo, formula, err := validarDefinicion(req.Tipo, req.Formula, req.EsPorcentaje, req.Valor)
	if err != nil {
		return ConceptoResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ConceptoResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Pre-check for a friendly error; the partial unique index on
	// (nombre) WHERE activo is the backstop for concurrent writers.
	exists, err := qtx.ExistsNombreActivo(ctx, req.Nombre, nil)
	if err != nil {
		return ConceptoResponse{}, err
	}
	if exists {
		return ConceptoResponse{}, conceptoerrors.ErrNombreDuplicado
	}

	c := &Concepto{
		Nombre:       req.Nombre,
		Tipo:         tipo,
		EsPorcentaje: req.EsPorcentaje,
		Valor:        req.Valor,
		Formula:      formula,
		Activo:       true,
	}

	if err := qtx.Create(ctx, c); err != nil {
		return ConceptoResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ConceptoResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) GetAll(
	ctx context.Context,
	filter GetConceptosFilterRequest,
) ([]ConceptoResponse, error) {
	conceptos, err := s.repo.FindAll(ctx, filter.IncluirInactivos)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(conceptos), nil
}

func (s *service) GetByID(
	ctx context.Context,
	id string,
) (ConceptoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ConceptoResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*c), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateConceptoRequest,
) (ConceptoResponse, error) {
	tipo, formula, err := validarDefinicion(req.Tipo, req.Formula, req.EsPorcentaje, req.Valor)
	if err != nil {
		return ConceptoResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ConceptoResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ConceptoResponse{}, mapRepositoryError(err)
	}

	exists, err := qtx.ExistsNombreActivo(ctx, req.Nombre, &id)
	if err != nil {
		return ConceptoResponse{}, err
	}
	if exists {
		return ConceptoResponse{}, conceptoerrors.ErrNombreDuplicado
	}

	c.Nombre = req.Nombre
	c.Tipo = tipo
	c.EsPorcentaje = req.EsPorcentaje
	c.Valor = req.Valor
	c.Formula = formula

	if err := qtx.Update(ctx, c); err != nil {
		return ConceptoResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ConceptoResponse{}, err
	}

	return mapToResponse(*c), nil
}

// Delete desactiva el concepto. Historical liquidaciones keep pointing
// at the row, so rows are never hard-deleted.
func (s *service) Delete(
	ctx context.Context,
	id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if c.EsObligatorio {
		return conceptoerrors.ErrConceptoObligatorio
	}
	if !c.Activo {
		return conceptoerrors.ErrConceptoInactivo
	}

	c.Activo = false
	if err := qtx.Update(ctx, c); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func validarDefinicion(
	tipoRaw string,
	formulaRaw *string,
	esPorcentaje bool,
	valor decimal.Decimal,
) (TipoConcepto, *Formula, error) {
	tipo := TipoConcepto(tipoRaw)
	if !tipo.EsValido() {
		return "", nil, conceptoerrors.ErrTipoInvalido
	}

	if valor.IsNegative() {
		return "", nil, conceptoerrors.ErrValorNegativo
	}
	if esPorcentaje && valor.GreaterThan(decimal.NewFromInt(100)) {
		return "", nil, conceptoerrors.ErrPorcentajeFueraDeRango
	}

	if formulaRaw == nil || *formulaRaw == "" {
		return tipo, nil, nil
	}

	formula := Formula(*formulaRaw)
	if !formula.EsValida() {
		return "", nil, conceptoerrors.ErrFormulaInvalida
	}
	if !formula.CompatibleCon(tipo) {
		return "", nil, conceptoerrors.ErrFormulaIncompatible
	}

	return tipo, &formula, nil
}

func mapToResponse(c Concepto) ConceptoResponse {
	resp := ConceptoResponse{
		ID:            c.ID.String(),
		Nombre:        c.Nombre,
		Tipo:          string(c.Tipo),
		EsPorcentaje:  c.EsPorcentaje,
		Valor:         c.Valor,
		EsObligatorio: c.EsObligatorio,
		Activo:        c.Activo,
	}

	if c.Formula != nil {
		v := string(*c.Formula)
		resp.Formula = &v
	}

	return resp
}

func mapToListResponse(conceptos []Concepto) []ConceptoResponse {
	resp := make([]ConceptoResponse, len(conceptos))
	for i, c := range conceptos {
		resp[i] = mapToResponse(c)
	}
	return resp
}
