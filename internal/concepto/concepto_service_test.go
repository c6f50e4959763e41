package concepto_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	conceptoerrors "github.com/joaquinkuster/rrhh-sub001/internal/concepto/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn             func(tx *sql.Tx) concepto.Repository
	createFn             func(ctx context.Context, c *concepto.Concepto) error
	findAllFn            func(ctx context.Context, incluirInactivos bool) ([]concepto.Concepto, error)
	findByIDFn           func(ctx context.Context, id string) (*concepto.Concepto, error)
	existsNombreActivoFn func(ctx context.Context, nombre string, excludeID *string) (bool, error)
	updateFn             func(ctx context.Context, c *concepto.Concepto) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) concepto.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepo) Create(ctx context.Context, c *concepto.Concepto) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context, incluirInactivos bool) ([]concepto.Concepto, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, incluirInactivos)
	}
	return nil, nil
}

func (f *fakeRepo) FindActivos(ctx context.Context) ([]concepto.Concepto, error) {
	return f.FindAll(ctx, false)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*concepto.Concepto, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepo) ExistsNombreActivo(ctx context.Context, nombre string, excludeID *string) (bool, error) {
	if f.existsNombreActivoFn != nil {
		return f.existsNombreActivoFn(ctx, nombre, excludeID)
	}
	return false, nil
}

func (f *fakeRepo) Update(ctx context.Context, c *concepto.Concepto) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func TestConceptoService_Create(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	var creado *concepto.Concepto
	repo := &fakeRepo{
		createFn: func(ctx context.Context, c *concepto.Concepto) error {
			c.ID = uuid.New()
			creado = c
			return nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := concepto.NewService(db, repo)

	resp, err := svc.Create(ctx, concepto.CreateConceptoRequest{
		Nombre:       "Presentismo",
		Tipo:         "remunerativo",
		EsPorcentaje: true,
		Valor:        decimal.RequireFromString("8.33"),
		Formula:      strPtr("PRESENTISMO"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, creado)
	assert.True(t, resp.Activo)
	assert.Equal(t, "PRESENTISMO", *resp.Formula)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestConceptoService_Create_NombreDuplicado(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		existsNombreActivoFn: func(ctx context.Context, nombre string, excludeID *string) (bool, error) {
			return true, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := concepto.NewService(db, repo)

	_, err = svc.Create(ctx, concepto.CreateConceptoRequest{
		Nombre: "Presentismo",
		Tipo:   "remunerativo",
		Valor:  decimal.RequireFromString("8.33"),
	})

	assert.ErrorIs(t, err, conceptoerrors.ErrNombreDuplicado)
}

func TestConceptoService_Create_ValidacionesDeDefinicion(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := concepto.NewService(db, &fakeRepo{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  concepto.CreateConceptoRequest
		want error
	}{
		{
			name: "tipo inválido",
			req: concepto.CreateConceptoRequest{
				Nombre: "X", Tipo: "premio", Valor: decimal.NewFromInt(1),
			},
			want: conceptoerrors.ErrTipoInvalido,
		},
		{
			name: "valor negativo",
			req: concepto.CreateConceptoRequest{
				Nombre: "X", Tipo: "deduccion", Valor: decimal.NewFromInt(-5),
			},
			want: conceptoerrors.ErrValorNegativo,
		},
		{
			name: "porcentaje fuera de rango",
			req: concepto.CreateConceptoRequest{
				Nombre: "X", Tipo: "deduccion", EsPorcentaje: true, Valor: decimal.NewFromInt(150),
			},
			want: conceptoerrors.ErrPorcentajeFueraDeRango,
		},
		{
			name: "fórmula desconocida",
			req: concepto.CreateConceptoRequest{
				Nombre: "X", Tipo: "deduccion", Valor: decimal.NewFromInt(1), Formula: strPtr("GANANCIAS"),
			},
			want: conceptoerrors.ErrFormulaInvalida,
		},
		{
			name: "deducción sobre básico",
			req: concepto.CreateConceptoRequest{
				Nombre: "X", Tipo: "deduccion", Valor: decimal.NewFromInt(1), Formula: strPtr("PRESENTISMO"),
			},
			want: conceptoerrors.ErrFormulaIncompatible,
		},
		{
			name: "remunerativo sobre bruto",
			req: concepto.CreateConceptoRequest{
				Nombre: "X", Tipo: "remunerativo", Valor: decimal.NewFromInt(1), Formula: strPtr("JUBILACION"),
			},
			want: conceptoerrors.ErrFormulaIncompatible,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestConceptoService_Delete_SoftDelete(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	existente := &concepto.Concepto{
		ID:     uuid.New(),
		Nombre: "Plus por título",
		Tipo:   concepto.TipoRemunerativo,
		Activo: true,
	}

	var actualizado *concepto.Concepto
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*concepto.Concepto, error) {
			return existente, nil
		},
		updateFn: func(ctx context.Context, c *concepto.Concepto) error {
			actualizado = c
			return nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := concepto.NewService(db, repo)

	err = svc.Delete(ctx, existente.ID.String())

	assert.NoError(t, err)
	assert.NotNil(t, actualizado)
	assert.False(t, actualizado.Activo)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestConceptoService_Delete_ObligatorioSeRechaza(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*concepto.Concepto, error) {
			return &concepto.Concepto{
				ID:            uuid.New(),
				Nombre:        "Jubilación",
				Tipo:          concepto.TipoDeduccion,
				EsObligatorio: true,
				Activo:        true,
			}, nil
		},
		updateFn: func(ctx context.Context, c *concepto.Concepto) error {
			t.Fatal("no debería desactivar un concepto obligatorio")
			return nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := concepto.NewService(db, repo)

	err = svc.Delete(ctx, uuid.New().String())

	assert.ErrorIs(t, err, conceptoerrors.ErrConceptoObligatorio)
}

func TestConceptoService_Delete_YaInactivo(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*concepto.Concepto, error) {
			return &concepto.Concepto{ID: uuid.New(), Nombre: "Viejo", Activo: false}, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := concepto.NewService(db, repo)

	err = svc.Delete(ctx, uuid.New().String())

	assert.ErrorIs(t, err, conceptoerrors.ErrConceptoInactivo)
}

func TestConceptoService_Update_ExcluyeElPropioID(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	var exclusion *string
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, fid string) (*concepto.Concepto, error) {
			return &concepto.Concepto{ID: id, Nombre: "Presentismo", Tipo: concepto.TipoRemunerativo, Activo: true}, nil
		},
		existsNombreActivoFn: func(ctx context.Context, nombre string, excludeID *string) (bool, error) {
			exclusion = excludeID
			return false, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := concepto.NewService(db, repo)

	_, err = svc.Update(ctx, id.String(), concepto.UpdateConceptoRequest{
		Nombre:       "Presentismo",
		Tipo:         "remunerativo",
		EsPorcentaje: true,
		Valor:        decimal.RequireFromString("10"),
		Formula:      strPtr("PRESENTISMO"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, exclusion)
	assert.Equal(t, id.String(), *exclusion)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
