package log

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{" WARN ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"fatal", LevelFatal, false},
		{"verbose", LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseLevel(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelRoundtrip(t *testing.T) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal} {
		if got := fromZapLevel(toZapLevel(l)); got != l {
			t.Fatalf("level %v did not roundtrip: %v", l, got)
		}
	}
}

func TestSetLevelSharedWithChildren(t *testing.T) {
	parent := NewNop()
	child := parent.With(String("component", "test"))

	parent.SetLevel(LevelDebug)
	if got := child.GetLevel(); got != LevelDebug {
		t.Fatalf("child level after parent SetLevel: %v", got)
	}
	child.SetLevel(LevelError)
	if got := parent.GetLevel(); got != LevelError {
		t.Fatalf("parent level after child SetLevel: %v", got)
	}
}

func TestFieldConversion(t *testing.T) {
	errVal := errors.New("broken")
	cases := []struct {
		give Field
		want zap.Field
	}{
		{String("s", "v"), zap.String("s", "v")},
		{Int("i", 42), zap.Int("i", 42)},
		{Int64("i64", -7), zap.Int64("i64", -7)},
		{Bool("b", true), zap.Bool("b", true)},
		{Duration("d", time.Second), zap.Duration("d", time.Second)},
		{Float64("f", 1.5), zap.Float64("f", 1.5)},
		{Uint8("u8", 200), zap.Uint8("u8", 200)},
		{Uint32("u32", 9), zap.Uint32("u32", 9)},
		{Uint64("u64", 11), zap.Uint64("u64", 11)},
		{Uintptr("up", 16), zap.Uintptr("up", 16)},
		{Error(errVal), zap.NamedError("error", errVal)},
		{ErrorWithKey("cause", errVal), zap.NamedError("cause", errVal)},
		{Any("any", "x"), zap.Any("any", "x")},
	}
	for _, tc := range cases {
		got := toZapFields(tc.give)
		if len(got) != 1 || !got[0].Equals(tc.want) {
			t.Fatalf("field %q converted to %+v, want %+v", tc.give.Key, got, tc.want)
		}
	}
}
