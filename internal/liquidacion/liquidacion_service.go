package liquidacion

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joaquinkuster/rrhh-sub001/internal/concepto"
	"github.com/joaquinkuster/rrhh-sub001/internal/events"
	liquidacionerrors "github.com/joaquinkuster/rrhh-sub001/internal/liquidacion/errors"
	"github.com/joaquinkuster/rrhh-sub001/internal/messaging/kafka"
	"github.com/joaquinkuster/rrhh-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=liquidacion_service.go -destination=mock/liquidacion_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, req GetLiquidacionesFilterRequest) ([]LiquidacionResponse, int64, error)
	GetByID(ctx context.Context, id string) (LiquidacionResponse, error)
	Update(ctx context.Context, id string, req UpdateLiquidacionRequest) (LiquidacionResponse, error)
	Pagar(ctx context.Context, id string) (LiquidacionResponse, error)
	Ejecutar(ctx context.Context, req EjecutarLiquidacionesRequest) (ResumenEjecucion, error)
	GenerarRecibo(ctx context.Context, id string) (string, error)
	RutaRecibo(ctx context.Context, id string) (string, error)
	ExportarExcel(ctx context.Context, req GetLiquidacionesFilterRequest) ([]byte, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	conceptoRepo concepto.Repository
	generator    *Generator
	outbox       kafka.OutboxRepository
	reciboDir    string
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	conceptoRepo concepto.Repository,
	generator *Generator,
	logger ...*zap.Logger,
) Service {
	return newService(db, repo, conceptoRepo, generator, nil, "", logger...)
}

// NewServiceWithOutbox wires the transactional outbox so the paid event
// commits atomically with the state change.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	conceptoRepo concepto.Repository,
	generator *Generator,
	outbox kafka.OutboxRepository,
	reciboDir string,
	logger ...*zap.Logger,
) Service {
	return newService(db, repo, conceptoRepo, generator, outbox, reciboDir, logger...)
}

func newService(
	db *sql.DB,
	repo Repository,
	conceptoRepo concepto.Repository,
	generator *Generator,
	outbox kafka.OutboxRepository,
	reciboDir string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("liquidacion.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("liquidacion.service")
	}
	if reciboDir == "" {
		reciboDir = "recibos"
	}
	return &service{
		db:           db,
		repo:         repo,
		conceptoRepo: conceptoRepo,
		generator:    generator,
		outbox:       outbox,
		reciboDir:    reciboDir,
		logger:       l,
	}
}

func (s *service) GetAll(ctx context.Context, req GetLiquidacionesFilterRequest) ([]LiquidacionResponse, int64, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, 0, err
	}

	liquidaciones, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LiquidacionResponse, 0, len(liquidaciones))
	for _, liq := range liquidaciones {
		responses = append(responses, mapToResponse(liq))
	}
	return responses, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LiquidacionResponse, error) {
	liq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LiquidacionResponse{}, mapRepoError(err)
	}
	return mapToResponse(*liq), nil
}

// Update aplica los ítems editables y recalcula los totales contra el
// catálogo de deducciones vigente. La edición de una liquidación pagada
// se rechaza dos veces: al leer y en el UPDATE condicionado.
func (s *service) Update(ctx context.Context, id string, req UpdateLiquidacionRequest) (LiquidacionResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LiquidacionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	liq, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LiquidacionResponse{}, mapRepoError(err)
	}

	if liq.EstaPagada {
		return LiquidacionResponse{}, liquidacionerrors.ErrLiquidacionPagada
	}

	if err := applyItems(liq, req); err != nil {
		return LiquidacionResponse{}, err
	}

	conceptos, err := s.conceptoRepo.FindActivos(ctx)
	if err != nil {
		return LiquidacionResponse{}, err
	}

	if err := RecalcularTotales(liq, conceptos); err != nil {
		return LiquidacionResponse{}, err
	}

	rows, err := qtx.UpdateEditable(ctx, liq)
	if err != nil {
		return LiquidacionResponse{}, err
	}
	if rows == 0 {
		// Otro proceso la pagó entre la lectura y el UPDATE.
		return LiquidacionResponse{}, liquidacionerrors.ErrLiquidacionPagada
	}

	if err := tx.Commit(); err != nil {
		return LiquidacionResponse{}, err
	}

	s.logger.Info("liquidación actualizada",
		zap.String("request_id", rid),
		zap.String("liquidacion_id", id),
		zap.String("neto", liq.Neto.StringFixed(2)),
	)

	return mapToResponse(*liq), nil
}

// Pagar marca la liquidación como pagada. La transición es irreversible
// y el UPDATE condicionado cierra la carrera entre lecturas paralelas.
func (s *service) Pagar(ctx context.Context, id string) (LiquidacionResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LiquidacionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	liq, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LiquidacionResponse{}, mapRepoError(err)
	}

	if liq.EstaPagada {
		return LiquidacionResponse{}, liquidacionerrors.ErrYaPagada
	}

	fechaPago := time.Now().UTC()
	rows, err := qtx.MarcarPagada(ctx, id, fechaPago)
	if err != nil {
		return LiquidacionResponse{}, err
	}
	if rows == 0 {
		return LiquidacionResponse{}, liquidacionerrors.ErrYaPagada
	}

	if s.outbox != nil {
		if err := s.queuePagadaEvent(ctx, tx, liq, fechaPago, rid); err != nil {
			return LiquidacionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LiquidacionResponse{}, err
	}

	liq.EstaPagada = true
	liq.FechaPago = &fechaPago

	s.logger.Info("liquidación pagada",
		zap.String("request_id", rid),
		zap.String("liquidacion_id", id),
		zap.String("neto", liq.Neto.StringFixed(2)),
	)

	return mapToResponse(*liq), nil
}

func (s *service) Ejecutar(ctx context.Context, req EjecutarLiquidacionesRequest) (ResumenEjecucion, error) {
	periodo, err := ParsePeriodo(req.Periodo)
	if err != nil {
		return ResumenEjecucion{}, liquidacionerrors.ErrPeriodoInvalido
	}
	return s.generator.Run(ctx, periodo)
}

// GenerarRecibo renderiza el PDF del recibo, lo persiste en disco y
// registra la URL de descarga. Lo dispara el consumer del evento de
// generación, pero también puede invocarse a demanda.
func (s *service) GenerarRecibo(ctx context.Context, id string) (string, error) {
	liq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", mapRepoError(err)
	}

	pdf, err := renderReciboPDF(*liq)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reciboDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.reciboDir, liq.ID.String()+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", err
	}

	url := "/api/v1/liquidaciones/" + liq.ID.String() + "/recibo"
	if err := s.repo.SetRecibo(ctx, id, url, time.Now().UTC()); err != nil {
		return "", err
	}

	s.logger.Info("recibo generado",
		zap.String("liquidacion_id", id),
		zap.String("path", path),
	)

	return path, nil
}

func (s *service) RutaRecibo(ctx context.Context, id string) (string, error) {
	liq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", mapRepoError(err)
	}

	if liq.ReciboURL == nil {
		return "", liquidacionerrors.ErrReciboNoGenerado
	}

	path := filepath.Join(s.reciboDir, liq.ID.String()+".pdf")
	if _, err := os.Stat(path); err != nil {
		return "", liquidacionerrors.ErrReciboNoGenerado
	}
	return path, nil
}

func (s *service) ExportarExcel(ctx context.Context, req GetLiquidacionesFilterRequest) ([]byte, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	// Sin paginar: el export es el período completo filtrado.
	filter.Page = 1
	filter.Limit = 10000

	liquidaciones, _, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return renderExcel(liquidaciones)
}

func (s *service) queuePagadaEvent(ctx context.Context, tx *sql.Tx, liq *Liquidacion, fechaPago time.Time, rid string) error {
	payload, err := json.Marshal(events.LiquidacionPagadaEvent{
		EventType:     "liquidacion.pagada",
		LiquidacionID: liq.ID.String(),
		ContratoID:    liq.ContratoID.String(),
		FechaPago:     fechaPago,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "liquidacion",
		AggregateID:   liq.ID.String(),
		EventType:     "liquidacion.pagada",
		Topic:         events.LiquidacionPagadaTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func applyItems(liq *Liquidacion, req UpdateLiquidacionRequest) error {
	if req.Basico != nil {
		liq.Basico = *req.Basico
	}
	if req.Antiguedad != nil {
		liq.Antiguedad = *req.Antiguedad
	}
	if req.Presentismo != nil {
		liq.Presentismo = *req.Presentismo
	}
	if req.HorasExtras != nil {
		liq.HorasExtras = *req.HorasExtras
	}
	if req.Vacaciones != nil {
		liq.Vacaciones = *req.Vacaciones
	}
	if req.SAC != nil {
		liq.SAC = *req.SAC
	}
	if req.Inasistencias != nil {
		liq.Inasistencias = *req.Inasistencias
	}
	if req.VacacionesNoGozadas != nil {
		liq.VacacionesNoGozadas = *req.VacacionesNoGozadas
	}

	if liq.Basico.IsNegative() ||
		liq.Antiguedad.IsNegative() ||
		liq.Presentismo.IsNegative() ||
		liq.HorasExtras.IsNegative() ||
		liq.Vacaciones.IsNegative() ||
		liq.SAC.IsNegative() ||
		liq.Inasistencias.IsNegative() ||
		liq.VacacionesNoGozadas.IsNegative() {
		return liquidacionerrors.ErrMontoNegativo
	}

	return nil
}

func buildFilter(req GetLiquidacionesFilterRequest) (QueryFilter, error) {
	filter := QueryFilter{
		Page:  req.Page,
		Limit: req.Limit,
	}

	if req.EspacioTrabajoID != "" {
		filter.EspacioTrabajoID = &req.EspacioTrabajoID
	}
	if req.EmpleadoID != "" {
		filter.EmpleadoID = &req.EmpleadoID
	}

	switch req.EstaPagada {
	case "":
	case "true":
		v := true
		filter.EstaPagada = &v
	case "false":
		v := false
		filter.EstaPagada = &v
	default:
		return QueryFilter{}, liquidacionerrors.ErrFiltroPagadaInvalido
	}

	if req.FechaDesde != "" {
		t, err := time.Parse("2006-01-02", req.FechaDesde)
		if err != nil {
			return QueryFilter{}, liquidacionerrors.ErrFechaInvalida
		}
		filter.FechaDesde = &t
	}
	if req.FechaHasta != "" {
		t, err := time.Parse("2006-01-02", req.FechaHasta)
		if err != nil {
			return QueryFilter{}, liquidacionerrors.ErrFechaInvalida
		}
		filter.FechaHasta = &t
	}

	return filter, nil
}

func mapToResponse(liq Liquidacion) LiquidacionResponse {
	resp := LiquidacionResponse{
		ID:          liq.ID.String(),
		ContratoID:  liq.ContratoID.String(),
		FechaInicio: liq.FechaInicio.Format("2006-01-02"),
		FechaFin:    liq.FechaFin.Format("2006-01-02"),

		Basico:              liq.Basico,
		Antiguedad:          liq.Antiguedad,
		Presentismo:         liq.Presentismo,
		HorasExtras:         liq.HorasExtras,
		Vacaciones:          liq.Vacaciones,
		SAC:                 liq.SAC,
		Inasistencias:       liq.Inasistencias,
		VacacionesNoGozadas: liq.VacacionesNoGozadas,

		TotalBruto:       liq.TotalBruto,
		TotalRetenciones: liq.TotalRetenciones,
		Neto:             liq.Neto,

		EstaPagada: liq.EstaPagada,
		ReciboURL:  liq.ReciboURL,
	}

	if liq.FechaPago != nil {
		fp := liq.FechaPago.Format(time.RFC3339)
		resp.FechaPago = &fp
	}

	if liq.Contrato != nil {
		resumen := &ContratoResumen{
			ID:               liq.Contrato.ID.String(),
			EspacioTrabajoID: liq.Contrato.EspacioTrabajoID.String(),
			EmpleadoID:       liq.Contrato.EmpleadoID.String(),
			Salario:          liq.Contrato.Salario,
		}
		if liq.Contrato.Empleado != nil {
			resumen.EmpleadoNombre = liq.Contrato.Empleado.NombreCompleto()
		}
		resp.Contrato = resumen
	}

	return resp
}
