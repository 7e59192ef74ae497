package flags

import (
	"testing"

	"github.com/tos-network/nftvault/params"
)

func TestVersionWithCommit(t *testing.T) {
	tests := []struct {
		commit, date string
		want         string
	}{
		{"", "", params.VersionWithMeta},
		{"abc", "20240101", params.VersionWithMeta},
		{"0123456789abcdef", "", params.VersionWithMeta + "-01234567"},
	}
	for _, tt := range tests {
		if got := VersionWithCommit(tt.commit, tt.date); got != tt.want {
			t.Errorf("VersionWithCommit(%q, %q) = %q, want %q", tt.commit, tt.date, got, tt.want)
		}
	}
}

func TestNewApp(t *testing.T) {
	app := NewApp("0123456789abcdef", "", "test tool")
	if app.Usage != "test tool" {
		t.Fatalf("usage = %q", app.Usage)
	}
	if app.Before == nil {
		t.Fatal("missing global flag migration")
	}
}
