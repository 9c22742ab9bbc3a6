package tradesim

import (
	"encoding/json"
	"testing"
)

func TestMoney_WeakCurrencyMerge(t *testing.T) {
	// a value decoded from a record carries no currency; arithmetic against a
	// strong value adopts the strong currency
	got := NO(100).Add(USD(50))
	if got.Currency() != "USD" || !got.Equal(USD(150)) {
		t.Fatalf("Add() = %s %s", got.Amount(), got.Currency())
	}

	got = USD(100).Sub(NO(30))
	if got.Currency() != "USD" || !got.Equal(USD(70)) {
		t.Fatalf("Sub() = %s %s", got.Amount(), got.Currency())
	}
}

func TestMoney_MismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("adding USD to EUR did not panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}

func TestMoney_MulDiv(t *testing.T) {
	if got := USD(105).Mul(Q(15)); !got.Equal(USD(1575)) {
		t.Fatalf("Mul() = %s, want 1575", got.Amount())
	}
	if got := USD(2100).Div(Q(20)); !got.Equal(USD(105)) {
		t.Fatalf("Div() = %s, want 105", got.Amount())
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(USD(123.45))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "123.45" {
		t.Fatalf("Marshal() = %s, want a bare number", data)
	}

	var m Money
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(USD(123.45)) || m.Currency() != "" {
		t.Fatalf("Unmarshal() = %s %q, want a weak 123.45", m.Amount(), m.Currency())
	}
}

func TestMoney_Round(t *testing.T) {
	third := USD(1).Div(Q(3))
	if got := third.Round(4); got.Amount().String() != "0.3333" {
		t.Fatalf("Round(4) = %s", got.Amount())
	}
}
