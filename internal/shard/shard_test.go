package shard

import (
	"fmt"
	"strings"
	"testing"
)

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

func TestUniqueConstraintPK(t *testing.T) {
	tests := []struct {
		entityType string
		field      string
		value      string
	}{
		{"category", "name", "Resistors"},
		{"category", "name", "SMD 0805"},
		{"part", "serial_number", "SN-0001"},
		{"part", "serial_number", ""},
	}

	for _, tt := range tests {
		result := UniqueConstraintPK(tt.entityType, tt.field, tt.value)

		// 128-bit hash as hex
		if len(result) != 32 {
			t.Errorf("UniqueConstraintPK(%q, %q, %q) = %q (len=%d), want 32 chars",
				tt.entityType, tt.field, tt.value, result, len(result))
		}
		if !isHex(result) {
			t.Errorf("expected hex string, got %q", result)
		}
	}
}

func TestUniqueConstraintPK_Deterministic(t *testing.T) {
	first := UniqueConstraintPK("category", "name", "Capacitors")
	for i := 0; i < 100; i++ {
		if result := UniqueConstraintPK("category", "name", "Capacitors"); result != first {
			t.Errorf("expected deterministic result %q, got %q on iteration %d", first, result, i)
		}
	}
}

func TestUniqueConstraintPK_ScopedByEntityTypeAndField(t *testing.T) {
	// The same value under another type or field must not collide
	pks := make(map[string]string)

	inputs := []struct {
		entityType string
		field      string
		value      string
	}{
		{"category", "name", "X1"},
		{"category", "name", "X2"},
		{"part", "serial_number", "X1"},
		{"part", "name", "X1"},
		{"category", "slug", "X1"},
	}

	for _, input := range inputs {
		pk := UniqueConstraintPK(input.entityType, input.field, input.value)
		key := input.entityType + "|" + input.field + "|" + input.value

		if existing, ok := pks[pk]; ok {
			t.Errorf("collision: %q and %q both produce %q", existing, key, pk)
		}
		pks[pk] = key
	}
}

func TestUniqueConstraintPK_CaseAndWhitespaceSensitive(t *testing.T) {
	values := []string{"Fuses", "fuses", "FUSES", " Fuses", "Fuses "}
	seen := make(map[string]string)

	for _, v := range values {
		pk := UniqueConstraintPK("category", "name", v)
		if existing, ok := seen[pk]; ok {
			t.Errorf("%q and %q should produce different hashes", existing, v)
		}
		seen[pk] = v
	}
}

func TestUniqueConstraintPK_EdgeValues(t *testing.T) {
	values := []string{
		"",
		strings.Repeat("a", 10000),
		"電子部品",
		"line1\nline2",
		"before\x00after",
		"value with spaces and !@#$%^&*()",
	}

	for _, v := range values {
		result := UniqueConstraintPK("part", "serial_number", v)
		if len(result) != 32 || !isHex(result) {
			t.Errorf("expected 32 char hex hash for %q, got %q", v, result)
		}
	}
}

func TestUniqueConstraintPK_Collisions(t *testing.T) {
	pks := make(map[string]string)
	collisions := 0

	for i := 0; i < 10000; i++ {
		serial := fmt.Sprintf("SN-%05d", i)
		pk := UniqueConstraintPK("part", "serial_number", serial)

		if existing, ok := pks[pk]; ok && existing != serial {
			collisions++
		}
		pks[pk] = serial
	}

	if collisions > 0 {
		t.Errorf("found %d collisions in 10000 unique constraint PKs", collisions)
	}
}

func BenchmarkUniqueConstraintPK(b *testing.B) {
	for i := 0; i < b.N; i++ {
		UniqueConstraintPK("part", "serial_number", "SN-550e8400-e29b-41d4-a716-446655440000")
	}
}
