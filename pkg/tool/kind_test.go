package tool

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
		want any
	}{
		{"42", KindInteger, int64(42)},
		{" 7 ", KindInteger, int64(7)},
		{42.0, KindInteger, int64(42)},
		{7, KindInteger, int64(7)},
		{json.Number("12"), KindInteger, int64(12)},
		{true, KindInteger, int64(1)},
		{"2.5", KindFloat, 2.5},
		{3, KindFloat, 3.0},
		{false, KindFloat, 0.0},
		{"hello", KindString, "hello"},
		{12, KindString, "12"},
		{2.5, KindString, "2.5"},
		{true, KindString, "true"},
		{"true", KindBoolean, true},
		{"0", KindBoolean, false},
		{1.0, KindBoolean, true},
		{0, KindBoolean, false},
		{false, KindBoolean, false},
	}
	for _, tt := range tests {
		got, err := Coerce(tt.in, tt.kind)
		if err != nil {
			t.Errorf("Coerce(%#v, %s) error: %v", tt.in, tt.kind, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Coerce(%#v, %s) = %#v, want %#v", tt.in, tt.kind, got, tt.want)
		}
	}
}

func TestCoerce_Invalid(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
	}{
		{"abc", KindInteger},
		{2.5, KindInteger},
		{"2.5", KindInteger},
		{"abc", KindFloat},
		{"maybe", KindBoolean},
		{nil, KindString},
		{nil, KindInteger},
		{nil, KindFloat},
		{nil, KindBoolean},
		{[]any{1}, KindString},
		{map[string]any{}, KindInteger},
	}
	for _, tt := range tests {
		if _, err := Coerce(tt.in, tt.kind); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Coerce(%#v, %s) err=%v, want ErrInvalidArgument", tt.in, tt.kind, err)
		}
	}
}
