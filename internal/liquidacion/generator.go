package liquidacion

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/joaquinkuster/rrhh-sub001/internal/asistencia"
	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	"github.com/joaquinkuster/rrhh-sub001/internal/contrato"
	"github.com/joaquinkuster/rrhh-sub001/internal/events"
	liquidacionerrors "github.com/joaquinkuster/rrhh-sub001/internal/liquidacion/errors"
	"github.com/joaquinkuster/rrhh-sub001/internal/messaging/kafka"
	"github.com/joaquinkuster/rrhh-sub001/internal/parametros"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockTTL = 10 * time.Minute

// Generator produce exactamente una liquidación por contrato activo y
// período. Es el único componente que crea liquidaciones.
type Generator struct {
	db             *sql.DB
	repo           Repository
	conceptoRepo   concepto.Repository
	contratoRepo   contrato.Repository
	asistenciaRepo asistencia.Repository
	parametrosSvc  parametros.Service
	outbox         kafka.OutboxRepository
	rdb            *redis.Client
	logger         *zap.Logger
}

func NewGenerator(
	db *sql.DB,
	repo Repository,
	conceptoRepo concepto.Repository,
	contratoRepo contrato.Repository,
	asistenciaRepo asistencia.Repository,
	parametrosSvc parametros.Service,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) *Generator {
	l := zap.L().Named("liquidacion.generator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("liquidacion.generator")
	}
	return &Generator{
		db:             db,
		repo:           repo,
		conceptoRepo:   conceptoRepo,
		contratoRepo:   contratoRepo,
		asistenciaRepo: asistenciaRepo,
		parametrosSvc:  parametrosSvc,
		outbox:         outbox,
		rdb:            rdb,
		logger:         l,
	}
}

// Run liquida el período completo. Es idempotente: los contratos ya
// liquidados se omiten, y una segunda ejecución concurrente pierde el
// lock o, en el peor caso, choca contra el índice único y también
// omite. Las fallas de un contrato no frenan al resto.
func (g *Generator) Run(ctx context.Context, periodo Periodo) (ResumenEjecucion, error) {
	resumen := ResumenEjecucion{Periodo: periodo.String()}

	if g.rdb != nil {
		lockKey := "liquidaciones:ejecutar:" + periodo.String()
		acquired, err := g.rdb.SetNX(ctx, lockKey, "locked", lockTTL).Result()
		if err != nil {
			return resumen, err
		}
		if !acquired {
			return resumen, liquidacionerrors.ErrEjecucionEnCurso
		}
		defer g.rdb.Del(context.WithoutCancel(ctx), lockKey)
	}

	// Catálogo y parámetros se leen una sola vez: toda la corrida
	// liquida contra el mismo snapshot de configuración.
	conceptos, err := g.conceptoRepo.FindActivos(ctx)
	if err != nil {
		return resumen, err
	}

	params, err := g.parametrosSvc.Get(ctx)
	if err != nil {
		return resumen, err
	}

	contratos, err := g.contratoRepo.ListActiveInPeriod(ctx, periodo.Inicio, periodo.Fin)
	if err != nil {
		return resumen, err
	}

	g.logger.Info("ejecución de liquidaciones iniciada",
		zap.String("periodo", resumen.Periodo),
		zap.Int("contratos", len(contratos)),
	)

	for _, c := range contratos {
		created, err := g.settleContrato(ctx, c, periodo, conceptos, params.LimiteAusenciaInjustificada)
		switch {
		case err != nil:
			resumen.Fallidas++
			resumen.Fallas = append(resumen.Fallas, FallaContrato{
				ContratoID: c.ID.String(),
				Motivo:     err.Error(),
			})
			g.logger.Warn("liquidación de contrato fallida",
				zap.String("contrato_id", c.ID.String()),
				zap.String("periodo", resumen.Periodo),
				zap.Error(err),
			)
		case created:
			resumen.Generadas++
		default:
			resumen.Omitidas++
		}
	}

	g.logger.Info("ejecución de liquidaciones finalizada",
		zap.String("periodo", resumen.Periodo),
		zap.Int("generadas", resumen.Generadas),
		zap.Int("omitidas", resumen.Omitidas),
		zap.Int("fallidas", resumen.Fallidas),
	)

	return resumen, nil
}

func (g *Generator) settleContrato(
	ctx context.Context,
	c contrato.Contrato,
	periodo Periodo,
	conceptos []concepto.Concepto,
	limiteAusencias int,
) (bool, error) {
	exists, err := g.repo.ExistsForPeriodo(ctx, c.ID.String(), periodo.Inicio, periodo.Fin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	ausencias, err := g.asistenciaRepo.CountAusenciasInjustificadas(ctx, c.ID.String(), periodo.Inicio, periodo.Fin)
	if err != nil {
		return false, err
	}

	detalle, err := Evaluar(EntradaEvaluacion{
		Salario:                 c.Salario,
		AusenciasInjustificadas: ausencias,
		LimiteAusencias:         limiteAusencias,
		Conceptos:               conceptos,
	})
	if err != nil {
		return false, err
	}

	liq := &Liquidacion{
		ID:                  uuid.New(),
		ContratoID:          c.ID,
		FechaInicio:         periodo.Inicio,
		FechaFin:            periodo.Fin,
		Basico:              detalle.Basico,
		Antiguedad:          detalle.Antiguedad,
		Presentismo:         detalle.Presentismo,
		HorasExtras:         detalle.HorasExtras,
		Vacaciones:          detalle.Vacaciones,
		SAC:                 detalle.SAC,
		Inasistencias:       detalle.Inasistencias,
		VacacionesNoGozadas: detalle.VacacionesNoGozadas,
		TotalBruto:          detalle.TotalBruto,
		TotalRetenciones:    detalle.TotalRetenciones,
		Neto:                detalle.Neto,
		EstaPagada:          false,
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := g.repo.WithTx(tx)

	if err := qtx.Create(ctx, liq); err != nil {
		// El índice único es el backstop de la carrera: si otro
		// proceso ganó, acá se trata como "ya generada".
		if esDuplicadoDePeriodo(err) {
			return false, nil
		}
		return false, err
	}

	if g.outbox != nil {
		if err := g.queueGeneradaEvent(ctx, tx, liq); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

func (g *Generator) queueGeneradaEvent(ctx context.Context, tx *sql.Tx, liq *Liquidacion) error {
	payload, err := json.Marshal(events.LiquidacionGeneradaEvent{
		EventType:     "liquidacion.generada",
		LiquidacionID: liq.ID.String(),
		ContratoID:    liq.ContratoID.String(),
		Periodo:       PeriodoDelMes(liq.FechaInicio).String(),
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return g.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "liquidacion",
		AggregateID:   liq.ID.String(),
		EventType:     "liquidacion.generada",
		Topic:         events.LiquidacionGeneradaTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func esDuplicadoDePeriodo(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_liquidaciones_contrato_periodo"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_liquidaciones_contrato_periodo")
}
