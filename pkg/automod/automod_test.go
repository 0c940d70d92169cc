package automod

import (
	"testing"
	"time"
)

func TestWordFilterMatch(t *testing.T) {
	filter := NewWordFilter([]string{"badword", "slur", "  Mixed  "})

	tests := []struct {
		name    string
		content string
		want    string
		wantHit bool
	}{
		{"clean message", "hello everyone", "", false},
		{"direct hit", "you badword", "badword", true},
		{"case insensitive", "BADWORD!!!", "badword", true},
		{"punctuation boundary", "what a slur, really", "slur", true},
		{"embedded fragment does not match", "scunthorpe badwording", "", false},
		{"trimmed list entry", "that was mixed up", "mixed", true},
		{"empty content", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := filter.Match(tt.content)
			if hit != tt.wantHit || got != tt.want {
				t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.content, got, hit, tt.want, tt.wantHit)
			}
		})
	}
}

func TestWordFilterEmpty(t *testing.T) {
	filter := NewWordFilter(nil)
	if _, hit := filter.Match("anything at all"); hit {
		t.Error("empty filter must never match")
	}
}

func TestInvitePattern(t *testing.T) {
	checker := NewChecker(NewWordFilter(nil), "")

	tests := []struct {
		name    string
		content string
		wantHit bool
	}{
		{"gg invite", "join discord.gg/abc123", true},
		{"full invite", "https://discord.com/invite/xyz", true},
		{"legacy app invite", "discordapp.com/invite/qqq", true},
		{"uppercase", "DISCORD.GG/LOUD", true},
		{"plain mention of discord", "we use discord for voice", false},
		{"clean", "hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := checker.Check(Message{GuildID: "g", UserID: "u" + tt.name, Content: tt.content, At: time.Now()}, Config{})
			hit := v != nil && v.Kind == ViolationInvite
			if hit != tt.wantHit {
				t.Errorf("invite check on %q = %v, want %v", tt.content, hit, tt.wantHit)
			}
		})
	}
}

func TestGroupAdPattern(t *testing.T) {
	checker := NewChecker(NewWordFilter(nil), "4433322")

	tests := []struct {
		name    string
		content string
		wantHit bool
	}{
		{"foreign group", "join www.roblox.com/groups/999/cool-group", true},
		{"home group allowed", "our group: roblox.com/groups/4433322", false},
		{"no link", "we play roblox", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := checker.Check(Message{GuildID: "g", UserID: "u" + tt.name, Content: tt.content, At: time.Now()}, Config{})
			hit := v != nil && v.Kind == ViolationGroupAd
			if hit != tt.wantHit {
				t.Errorf("group ad check on %q = %v, want %v", tt.content, hit, tt.wantHit)
			}
		})
	}
}

func TestSpamTracker(t *testing.T) {
	tracker := NewSpamTracker()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Four quick messages under a limit of 5 stay clean.
	for i := 0; i < 4; i++ {
		if tracker.Record("g", "u", base.Add(time.Duration(i)*time.Second), 5, 10*time.Second) {
			t.Fatalf("message %d flagged below the limit", i)
		}
	}
	// The fifth within the window trips it.
	if !tracker.Record("g", "u", base.Add(4*time.Second), 5, 10*time.Second) {
		t.Fatal("fifth message within the window must trip the limit")
	}
}

func TestSpamTrackerWindowSlides(t *testing.T) {
	tracker := NewSpamTracker()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		tracker.Record("g", "u", base.Add(time.Duration(i)*time.Second), 5, 10*time.Second)
	}
	// Far enough in the future that the earlier messages expired.
	if tracker.Record("g", "u", base.Add(30*time.Second), 5, 10*time.Second) {
		t.Error("messages outside the window must not count")
	}
}

func TestSpamTrackerIsolatesUsers(t *testing.T) {
	tracker := NewSpamTracker()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		tracker.Record("g", "spammer", base, 3, 10*time.Second)
	}
	if tracker.Record("g", "innocent", base, 3, 10*time.Second) {
		t.Error("another user's messages must not count against this one")
	}
	if tracker.Record("g2", "spammer", base, 3, 10*time.Second) {
		t.Error("messages in another guild must not count")
	}
}

func TestSpamTrackerDisabled(t *testing.T) {
	tracker := NewSpamTracker()
	now := time.Now()
	for i := 0; i < 50; i++ {
		if tracker.Record("g", "u", now, 0, 10*time.Second) {
			t.Fatal("limit 0 must disable the spam rule")
		}
	}
}

func TestCheckOrderAndReset(t *testing.T) {
	checker := NewChecker(NewWordFilter([]string{"badword"}), "")
	cfg := Config{SpamLimit: 2, SpamWindow: 10 * time.Second}
	now := time.Now()

	// Profanity wins over spam counting.
	v := checker.Check(Message{GuildID: "g", UserID: "u", Content: "badword", At: now}, cfg)
	if v == nil || v.Kind != ViolationProfanity {
		t.Fatalf("violation = %+v, want profanity", v)
	}

	// Two clean messages trip spam, and the window resets after.
	if v := checker.Check(Message{GuildID: "g", UserID: "u2", Content: "hola", At: now}, cfg); v != nil {
		t.Fatalf("first clean message flagged: %+v", v)
	}
	v = checker.Check(Message{GuildID: "g", UserID: "u2", Content: "hola", At: now}, cfg)
	if v == nil || v.Kind != ViolationSpam {
		t.Fatalf("violation = %+v, want spam", v)
	}
	if v := checker.Check(Message{GuildID: "g", UserID: "u2", Content: "hola", At: now}, cfg); v != nil {
		t.Fatalf("window must reset after a spam violation, got %+v", v)
	}
}

func TestSweepDropsStaleBuckets(t *testing.T) {
	tracker := NewSpamTracker()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tracker.Record("g", "u", base, 5, 10*time.Second)
	tracker.Sweep(base.Add(time.Hour), 10*time.Minute)

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if len(tracker.buckets) != 0 {
		t.Errorf("buckets = %d, want 0 after sweep", len(tracker.buckets))
	}
}
