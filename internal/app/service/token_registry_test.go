package service_test

import (
	"errors"
	"testing"

	"lendboard/internal/app/provider"
	"lendboard/internal/app/service"
	"lendboard/internal/config"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/logger"
)

func TestRegistryResolveFormats(t *testing.T) {
	reg := newRegistry(t)
	inputs := []string{
		strkAddr,
		"0x4718F5A0FC34CC1AF16A1CDEE98FFB20C31F5CD61D6AB07201858F4287C938D",
		"0x00004718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d",
		"2009894490435840142178314390393166646092438090257831307886760648929397478285",
	}
	for _, in := range inputs {
		tok, ok, err := reg.Resolve(in)
		if err != nil || !ok {
			t.Fatalf("Resolve(%s) = ok %v, err %v", in, ok, err)
		}
		if tok.Symbol != "STRK" || tok.Address != strkAddr || tok.Decimals != 18 {
			t.Errorf("Resolve(%s) = %+v", in, tok)
		}
	}
}

func TestRegistryUnknownAndMalformed(t *testing.T) {
	reg := newRegistry(t)

	if _, ok, err := reg.Resolve("0x1"); ok || err != nil {
		t.Errorf("unknown token: ok %v err %v", ok, err)
	}
	for _, in := range []string{"", "0x", "xyz", "-5", "0x800000000000011000000000000000000000000000000000000000000000001"} {
		if _, _, err := reg.Resolve(in); !errors.Is(err, entity.ErrMalformedIdentifier) {
			t.Errorf("Resolve(%q) err = %v, want ErrMalformedIdentifier", in, err)
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	tokens := []config.TokenConfig{
		{Symbol: "A", Address: "0x10", Decimals: 6},
		{Symbol: "B", Address: "16", Decimals: 6},
	}
	_, err := service.NewTokenRegistry(provider.NewTokenProvider(tokens, logger.Discard()), logger.Discard())
	if !errors.Is(err, entity.ErrDuplicateToken) {
		t.Fatalf("expected ErrDuplicateToken, got %v", err)
	}
}

func TestRegistryList(t *testing.T) {
	list := newRegistry(t).List()
	if len(list) != 2 || list[0].Symbol != "STRK" || list[1].Symbol != "ETH" {
		t.Fatalf("List() = %+v", list)
	}
	list[0].Symbol = "changed"
	if newRegistry(t).List()[0].Symbol != "STRK" {
		t.Fatal("List must return a copy")
	}
}
