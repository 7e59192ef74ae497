package utils

import "testing"

func TestGetPassPhraseWithList(t *testing.T) {
	passwords := []string{"vault", "ledger", "registry"}
	tests := []struct {
		index        int
		confirmation bool
		want         string
	}{
		{0, false, "vault"},
		{1, true, "ledger"},
		{2, false, "registry"},
		// Indexes past the list reuse the last entry.
		{7, false, "registry"},
	}
	for _, tt := range tests {
		if got := GetPassPhraseWithList("unlock", tt.confirmation, tt.index, passwords); got != tt.want {
			t.Errorf("index %d: have %q, want %q", tt.index, got, tt.want)
		}
	}
}
