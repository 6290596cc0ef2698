package utils_test

import (
	"errors"
	"math/big"
	"testing"

	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/utils"
)

func TestNormalizeAddress(t *testing.T) {
	const want = "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"
	inputs := []string{
		want,
		"0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7",
		"0X49D36570D4E46F48E99674BD3FCC84644DDD6B96F7C741B1562B82F9E004DC7",
		"2087021424722619777119509474943472645767659996348769578120564519014510906823",
		"  " + want + " ",
	}
	for _, in := range inputs {
		got, err := utils.NormalizeAddress(in)
		if err != nil {
			t.Fatalf("NormalizeAddress(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("NormalizeAddress(%q) = %s", in, got)
		}
	}

	zero, err := utils.NormalizeAddress("0x000")
	if err != nil || zero != "0x0000000000000000000000000000000000000000000000000000000000000000" {
		t.Errorf("zero = %s, %v", zero, err)
	}
}

func TestParseFeltRejects(t *testing.T) {
	for _, in := range []string{
		"", "0x", "0xg1", "12a", "-1",
		"0x800000000000011000000000000000000000000000000000000000000000001",
		"0x1000000000000000000000000000000000000000000000000000000000000000000",
	} {
		if _, err := utils.ParseFelt(in); !errors.Is(err, entity.ErrMalformedIdentifier) {
			t.Errorf("ParseFelt(%q) err = %v", in, err)
		}
	}
	if _, err := utils.ParseFelt("0x800000000000011000000000000000000000000000000000000000000000000"); err != nil {
		t.Errorf("largest felt rejected: %v", err)
	}
}

func TestFeltToDecimal(t *testing.T) {
	got, err := utils.FeltToDecimal("0x4445504f534954")
	if err != nil || got != "19216509646883156" {
		t.Fatalf("FeltToDecimal = %s, %v", got, err)
	}
}

func TestU256FromFelts(t *testing.T) {
	v, err := utils.U256FromFelts("0x1", "0x1")
	if err != nil {
		t.Fatalf("U256FromFelts: %v", err)
	}
	want, _ := new(big.Int).SetString("340282366920938463463374607431768211457", 10)
	if v.Cmp(want) != 0 {
		t.Errorf("value = %s", v)
	}
	if _, err := utils.U256FromFelts("0x100000000000000000000000000000000", "0x0"); err == nil {
		t.Error("expected an error for a low half wider than 128 bits")
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		amount   string
		decimals uint8
		want     string
	}{
		{"1234500000000000000", 18, "1.235"},
		{"0", 18, "0.000"},
		{"1", 18, "0.000"},
		{"1500000", 6, "1.500"},
		{"42", 0, "42.000"},
	}
	for _, tc := range cases {
		amount, _ := new(big.Int).SetString(tc.amount, 10)
		if got := utils.FormatQuantity(amount, tc.decimals); got != tc.want {
			t.Errorf("FormatQuantity(%s, %d) = %s, want %s", tc.amount, tc.decimals, got, tc.want)
		}
	}
	if got := utils.FormatQuantity(nil, 18); got != "0.000" {
		t.Errorf("nil amount = %s", got)
	}
}

func TestFormatUSDValue(t *testing.T) {
	q := utils.ToQuantity(big.NewInt(2500000), 6)
	if got := utils.FormatUSDValue(q, 0.4); got != "1.000" {
		t.Errorf("usd = %s", got)
	}
}

func TestBatchStrings(t *testing.T) {
	batches := utils.BatchStrings([]string{"a", "b", "c", "d", "e"}, 2)
	if len(batches) != 3 || len(batches[2]) != 1 {
		t.Fatalf("batches = %v", batches)
	}
}
