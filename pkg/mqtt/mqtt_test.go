package mqtt

import "testing"

// TestTopicMatch verifies MQTT wildcard matching for '+' and '#'
func TestTopicMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		topic   string
		want    bool
	}{
		{"exact match", "sdhs/request/stats", "sdhs/request/stats", true},
		{"exact mismatch", "sdhs/request/stats", "sdhs/request/guilds", false},
		{"plus matches one level", "sdhs/request/+", "sdhs/request/stats", true},
		{"plus does not span levels", "sdhs/+", "sdhs/request/stats", false},
		{"plus in the middle", "sdhs/+/stats", "sdhs/request/stats", true},
		{"hash matches remainder", "sdhs/#", "sdhs/request/stats", true},
		{"hash matches zero levels", "sdhs/request/#", "sdhs/request", true},
		{"hash at root", "#", "sdhs/events/moderation", true},
		{"pattern longer than topic", "sdhs/request/stats/extra", "sdhs/request/stats", false},
		{"topic longer than pattern", "sdhs/request", "sdhs/request/stats", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topicMatch(tt.pattern, tt.topic); got != tt.want {
				t.Errorf("topicMatch(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
			}
		})
	}
}
