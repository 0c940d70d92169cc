package discord

import (
	"strings"
	"testing"
)

// TestFlagNickname verifies flag marker placement and truncation
func TestFlagNickname(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		want        string
		wantChanged bool
	}{
		{
			name:        "plain nickname gets the prefix",
			current:     "Pancho",
			want:        "[Flag] Pancho",
			wantChanged: true,
		},
		{
			name:        "already prefixed is left alone",
			current:     "[Flag] Pancho",
			want:        "[Flag] Pancho",
			wantChanged: false,
		},
		{
			name:        "stray marker is not stacked",
			current:     "Pancho [Flag]",
			want:        "[Flag] Pancho",
			wantChanged: true,
		},
		{
			name:        "empty name still gets the prefix",
			current:     "",
			want:        "[Flag] ",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := FlagNickname(tt.current)
			if got != tt.want || changed != tt.wantChanged {
				t.Errorf("FlagNickname(%q) = (%q, %v), want (%q, %v)",
					tt.current, got, changed, tt.want, tt.wantChanged)
			}
		})
	}
}

// TestFlagNicknameTruncates verifies the Discord nickname length cap
func TestFlagNicknameTruncates(t *testing.T) {
	long := strings.Repeat("a", 40)

	got, changed := FlagNickname(long)
	if !changed {
		t.Fatal("a long unprefixed nickname must be changed")
	}
	if len([]rune(got)) != maxNicknameLen {
		t.Errorf("len = %d, want %d", len([]rune(got)), maxNicknameLen)
	}
	if !strings.HasPrefix(got, FlagIndicator) {
		t.Errorf("truncated nickname %q must keep the prefix", got)
	}
}
