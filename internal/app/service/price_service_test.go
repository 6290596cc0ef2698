package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"lendboard/internal/app/service"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/logger"
)

func TestPriceServiceFetch(t *testing.T) {
	cases := []struct {
		name      string
		oracle    *fakeOracle
		wantState entity.FetchState
	}{
		{"complete table", &fakeOracle{prices: defaultPrices()}, entity.FetchReady},
		{"oracle error", &fakeOracle{err: errors.New("boom")}, entity.FetchFailed},
		{"missing symbol", &fakeOracle{prices: entity.PriceTable{entity.SymbolETH: 1}}, entity.FetchFailed},
		{"negative price", &fakeOracle{prices: entity.PriceTable{entity.SymbolETH: 1, entity.SymbolSTRK: -1}}, entity.FetchFailed},
		{"NaN price", &fakeOracle{prices: entity.PriceTable{entity.SymbolETH: math.NaN(), entity.SymbolSTRK: 1}}, entity.FetchFailed},
		{"infinite price", &fakeOracle{prices: entity.PriceTable{entity.SymbolETH: 1, entity.SymbolSTRK: math.Inf(1)}}, entity.FetchFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := service.NewPriceService(tc.oracle, "fake", logger.Discard()).Fetch(context.Background())
			if status.State != tc.wantState {
				t.Fatalf("state = %s, want %s", status.State, tc.wantState)
			}
			if tc.wantState == entity.FetchFailed {
				if !errors.Is(status.Err, entity.ErrPriceFetch) {
					t.Errorf("err = %v, want ErrPriceFetch", status.Err)
				}
				if status.Value != nil {
					t.Errorf("failed fetch must leave the table empty, got %v", status.Value)
				}
			}
		})
	}
}

func TestPriceServiceReturnsCopy(t *testing.T) {
	prices := defaultPrices()
	status := service.NewPriceService(&fakeOracle{prices: prices}, "fake", logger.Discard()).Fetch(context.Background())
	prices[entity.SymbolETH] = 1
	if status.Value[entity.SymbolETH] != 3000 {
		t.Fatal("ready table shares memory with the oracle result")
	}
}
