package tradesim

import (
	"errors"
	"testing"
)

func TestValidateTicker(t *testing.T) {
	testCases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "AAPL", want: "AAPL"},
		{raw: "aapl", want: "AAPL"},
		{raw: "  msft  ", want: "MSFT"},
		{raw: "", wantErr: true},
		{raw: "   ", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ValidateTicker(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidTicker) {
				t.Fatalf("ValidateTicker(%q) error = %v, want ErrInvalidTicker", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ValidateTicker(%q) unexpected error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ValidateTicker(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	testCases := []struct {
		raw     string
		want    Quantity
		wantErr bool
	}{
		{raw: "10", want: Q(10)},
		{raw: "2.5", want: Q(2.5)},
		{raw: " 7 ", want: Q(7)},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "ten", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseQuantity(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidQuantity) {
				t.Fatalf("ParseQuantity(%q) error = %v, want ErrInvalidQuantity", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseQuantity(%q) unexpected error: %v", tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseQuantity(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestParseSide(t *testing.T) {
	for raw, want := range map[string]Side{"buy": SideBuy, " SELL ": SideSell, "Buy": SideBuy} {
		got, err := ParseSide(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSide(%q) = %v, %v, want %v", raw, got, err, want)
		}
	}
	if _, err := ParseSide("hold"); err == nil {
		t.Fatal("ParseSide(hold) accepted an unknown side")
	}
}
