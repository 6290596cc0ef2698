package service

import (
	"context"
	"errors"
	"fmt"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/metrics"
)

// PriceService выполняет одну загрузку цен и превращает результат в FetchStatus.
type PriceService struct {
	oracle   port.PriceOracle
	provider string
	logger   port.Logger
}

// NewPriceService wraps oracle. provider is only used for logs and metrics.
func NewPriceService(oracle port.PriceOracle, provider string, l port.Logger) *PriceService {
	return &PriceService{oracle: oracle, provider: provider, logger: l}
}

// Fetch вызывает оракул один раз. Успех всегда дает полную копию таблицы,
// иначе возвращается статус ошибки, оборачивающий entity.ErrPriceFetch.
func (s *PriceService) Fetch(ctx context.Context) entity.FetchStatus[entity.PriceTable] {
	prices, err := s.oracle.FetchPrices(ctx)
	if err == nil && !prices.Complete() {
		err = fmt.Errorf("%w: incomplete price table from %s", entity.ErrPriceFetch, s.provider)
	}
	if err != nil {
		if !errors.Is(err, entity.ErrPriceFetch) {
			err = fmt.Errorf("%w: %v", entity.ErrPriceFetch, err)
		}
		metrics.PriceFetchResults.WithLabelValues(s.provider, "error").Inc()
		s.logger.Error("Error fetching crypto prices", "provider", s.provider, "error", err)
		return entity.Failed[entity.PriceTable](err)
	}

	metrics.PriceFetchResults.WithLabelValues(s.provider, "success").Inc()
	s.logger.Debug("Crypto prices fetched", "provider", s.provider, "prices", prices)
	return entity.Ready(prices.Clone(), true)
}
