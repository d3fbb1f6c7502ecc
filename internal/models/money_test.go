package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyRoundsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"0.995", "1.00"},
		{"2.675", "2.68"},
		{"100", "100.00"},
	}
	for _, c := range cases {
		m := NewMoneyFromDecimal(decimal.RequireFromString(c.in))
		if m.String() != c.want {
			t.Fatalf("round %s: expected %s, got %s", c.in, c.want, m.String())
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := MustMoney("19.99")
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(data) != `"19.99"` {
		t.Fatalf("unexpected marshal output: %s", data)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"7.505"`), &fromString); err != nil {
		t.Fatalf("unmarshal string money failed: %v", err)
	}
	if fromString.String() != "7.51" {
		t.Fatalf("expected 7.51, got %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`12.3`), &fromNumber); err != nil {
		t.Fatalf("unmarshal numeric money failed: %v", err)
	}
	if fromNumber.String() != "12.30" {
		t.Fatalf("expected 12.30, got %s", fromNumber.String())
	}
}
