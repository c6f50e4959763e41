package parametros

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	parametroserrors "github.com/joaquinkuster/rrhh-sub001/internal/parametros/errors"
	"github.com/joaquinkuster/rrhh-sub001/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheKey = "parametros:laborales"
const cacheTTL = 5 * time.Minute

//go:generate mockgen -source=parametros_service.go -destination=mock/parametros_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (ParametrosResponse, error)
	Update(ctx context.Context, req UpdateParametrosRequest) (ParametrosResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("parametros.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("parametros.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Get reads the singleton through a redis cache; every evaluation run
// goes through here, so concurrent misses collapse via singleflight.
func (s *service) Get(ctx context.Context) (ParametrosResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp ParametrosResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		p, err := s.repo.Get(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToResponse(*p)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
					s.logger.Warn("cache parametros laborales failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return ParametrosResponse{}, err
	}

	return v.(ParametrosResponse), nil
}

func (s *service) Update(
	ctx context.Context,
	req UpdateParametrosRequest,
) (ParametrosResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.LimiteAusenciaInjustificada == nil ||
		*req.LimiteAusenciaInjustificada < 0 ||
		*req.LimiteAusenciaInjustificada > 10 {
		return ParametrosResponse{}, parametroserrors.ErrLimiteFueraDeRango
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ParametrosResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.Get(ctx)
	if err != nil {
		return ParametrosResponse{}, err
	}

	p.LimiteAusenciaInjustificada = *req.LimiteAusenciaInjustificada

	if err := qtx.Save(ctx, p); err != nil {
		return ParametrosResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ParametrosResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("invalidate parametros cache failed",
				zap.String("request_id", rid),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("parametros laborales actualizados",
		zap.String("request_id", rid),
		zap.Int("limite_ausencia_injustificada", p.LimiteAusenciaInjustificada),
	)

	return mapToResponse(*p), nil
}

func mapToResponse(p ParametrosLaborales) ParametrosResponse {
	return ParametrosResponse{
		LimiteAusenciaInjustificada: p.LimiteAusenciaInjustificada,
	}
}
