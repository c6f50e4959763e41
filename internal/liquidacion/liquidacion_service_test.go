package liquidacion_test

import (
	"context"
	"testing"
	"time"

	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	"github.com/joaquinkuster/rrhh-sub001/internal/liquidacion"
	liquidacionerrors "github.com/joaquinkuster/rrhh-sub001/internal/liquidacion/errors"
	"github.com/joaquinkuster/rrhh-sub001/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func liquidacionGenerada() *liquidacion.Liquidacion {
	c := contratoActivo("100000")
	return &liquidacion.Liquidacion{
		ID:          uuid.New(),
		ContratoID:  c.ID,
		Contrato:    &c,
		FechaInicio: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		FechaFin:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Basico:      decimal.RequireFromString("100000"),
		Presentismo: decimal.RequireFromString("8330"),
		TotalBruto:  decimal.RequireFromString("108330"),
		Neto:        decimal.RequireFromString("108330"),
	}
}

func TestLiquidacionService_Update_RecalculaTotales(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	liq := liquidacionGenerada()

	var guardada *liquidacion.Liquidacion
	repo := &fakeLiquidacionRepository{
		findByIDFn: func(ctx context.Context, id string) (*liquidacion.Liquidacion, error) {
			return liq, nil
		},
		updateEditableFn: func(ctx context.Context, l *liquidacion.Liquidacion) (int64, error) {
			guardada = l
			return 1, nil
		},
	}
	conceptoRepo := &fakeConceptoRepository{
		findActivosFn: func(ctx context.Context) ([]concepto.Concepto, error) {
			return []concepto.Concepto{
				pct("Jubilación", concepto.TipoDeduccion, "11", formulaPtr(concepto.FormulaJubilacion)),
			}, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := liquidacion.NewService(db, repo, conceptoRepo, nil)

	horasExtras := decimal.RequireFromString("10000")
	resp, err := svc.Update(ctx, liq.ID.String(), liquidacion.UpdateLiquidacionRequest{
		HorasExtras: &horasExtras,
	})

	assert.NoError(t, err)
	assert.NotNil(t, guardada)
	assert.Equal(t, "118330", resp.TotalBruto.String())
	assert.Equal(t, "13016.3", resp.TotalRetenciones.String())
	assert.Equal(t, "105313.7", resp.Neto.String())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLiquidacionService_Update_PagadaSeRechaza(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	liq := liquidacionGenerada()
	liq.EstaPagada = true

	repo := &fakeLiquidacionRepository{
		findByIDFn: func(ctx context.Context, id string) (*liquidacion.Liquidacion, error) {
			return liq, nil
		},
		updateEditableFn: func(ctx context.Context, l *liquidacion.Liquidacion) (int64, error) {
			t.Fatal("no debería tocar una liquidación pagada")
			return 0, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := liquidacion.NewService(db, repo, &fakeConceptoRepository{}, nil)

	monto := decimal.RequireFromString("1")
	_, err = svc.Update(ctx, liq.ID.String(), liquidacion.UpdateLiquidacionRequest{Basico: &monto})

	assert.ErrorIs(t, err, liquidacionerrors.ErrLiquidacionPagada)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLiquidacionService_Update_MontoNegativoSeRechaza(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeLiquidacionRepository{
		findByIDFn: func(ctx context.Context, id string) (*liquidacion.Liquidacion, error) {
			return liquidacionGenerada(), nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := liquidacion.NewService(db, repo, &fakeConceptoRepository{}, nil)

	negativo := decimal.RequireFromString("-100")
	_, err = svc.Update(ctx, uuid.New().String(), liquidacion.UpdateLiquidacionRequest{SAC: &negativo})

	assert.ErrorIs(t, err, liquidacionerrors.ErrMontoNegativo)
}

func TestLiquidacionService_Update_CarreraConPagoPierde(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeLiquidacionRepository{
		findByIDFn: func(ctx context.Context, id string) (*liquidacion.Liquidacion, error) {
			return liquidacionGenerada(), nil
		},
		updateEditableFn: func(ctx context.Context, l *liquidacion.Liquidacion) (int64, error) {
			// El pago ganó la carrera: cero filas afectadas.
			return 0, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := liquidacion.NewService(db, repo, &fakeConceptoRepository{}, nil)

	monto := decimal.RequireFromString("5000")
	_, err = svc.Update(ctx, uuid.New().String(), liquidacion.UpdateLiquidacionRequest{HorasExtras: &monto})

	assert.ErrorIs(t, err, liquidacionerrors.ErrLiquidacionPagada)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLiquidacionService_Pagar(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	liq := liquidacionGenerada()

	var evento *kafka.OutboxEvent
	repo := &fakeLiquidacionRepository{
		findByIDFn: func(ctx context.Context, id string) (*liquidacion.Liquidacion, error) {
			return liq, nil
		},
	}
	outbox := &fakeOutboxRepository{
		createFn: func(ctx context.Context, e kafka.OutboxEvent) error {
			evento = &e
			return nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := liquidacion.NewServiceWithOutbox(db, repo, &fakeConceptoRepository{}, nil, outbox, "")

	resp, err := svc.Pagar(ctx, liq.ID.String())

	assert.NoError(t, err)
	assert.True(t, resp.EstaPagada)
	assert.NotNil(t, resp.FechaPago)
	assert.NotNil(t, evento)
	assert.Equal(t, "liquidacion.pagada", evento.EventType)
	assert.Equal(t, liq.ID.String(), evento.AggregateID)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLiquidacionService_Pagar_YaPagada(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	liq := liquidacionGenerada()
	liq.EstaPagada = true

	repo := &fakeLiquidacionRepository{
		findByIDFn: func(ctx context.Context, id string) (*liquidacion.Liquidacion, error) {
			return liq, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := liquidacion.NewService(db, repo, &fakeConceptoRepository{}, nil)

	_, err = svc.Pagar(ctx, liq.ID.String())

	assert.ErrorIs(t, err, liquidacionerrors.ErrYaPagada)
}

func TestLiquidacionService_Pagar_CarreraPierde(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeLiquidacionRepository{
		findByIDFn: func(ctx context.Context, id string) (*liquidacion.Liquidacion, error) {
			return liquidacionGenerada(), nil
		},
		marcarPagadaFn: func(ctx context.Context, id string, fechaPago time.Time) (int64, error) {
			return 0, nil
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := liquidacion.NewService(db, repo, &fakeConceptoRepository{}, nil)

	_, err = svc.Pagar(ctx, uuid.New().String())

	assert.ErrorIs(t, err, liquidacionerrors.ErrYaPagada)
}

func TestLiquidacionService_GetAll_FiltroInvalido(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := liquidacion.NewService(db, &fakeLiquidacionRepository{}, &fakeConceptoRepository{}, nil)

	_, _, err = svc.GetAll(context.Background(), liquidacion.GetLiquidacionesFilterRequest{
		EstaPagada: "quizás",
	})
	assert.ErrorIs(t, err, liquidacionerrors.ErrFiltroPagadaInvalido)

	_, _, err = svc.GetAll(context.Background(), liquidacion.GetLiquidacionesFilterRequest{
		FechaDesde: "01/08/2026",
	})
	assert.ErrorIs(t, err, liquidacionerrors.ErrFechaInvalida)
}

func TestLiquidacionService_Ejecutar_PeriodoInvalido(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := liquidacion.NewService(db, &fakeLiquidacionRepository{}, &fakeConceptoRepository{}, nil)

	_, err = svc.Ejecutar(context.Background(), liquidacion.EjecutarLiquidacionesRequest{
		Periodo: "agosto-2026",
	})
	assert.ErrorIs(t, err, liquidacionerrors.ErrPeriodoInvalido)
}
