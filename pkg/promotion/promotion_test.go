package promotion

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/roblox"
)

func TestParsePassedList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"simple list", "Passed: alice, bob, carol", []string{"alice", "bob", "carol"}},
		{"single name", "Passed: alice", []string{"alice"}},
		{"lowercase prefix", "passed: alice", []string{"alice"}},
		{"uppercase prefix", "PASSED: alice", []string{"alice"}},
		{"extra spaces", "  Passed:   alice ,  bob  ", []string{"alice", "bob"}},
		{"at prefixes stripped", "Passed: @alice, @bob", []string{"alice", "bob"}},
		{"duplicates dropped", "Passed: alice, Alice, bob", []string{"alice", "bob"}},
		{"trailing comma", "Passed: alice, bob,", []string{"alice", "bob"}},
		{"no prefix", "alice and bob passed", nil},
		{"prefix mid message", "Everyone Passed: alice", nil},
		{"empty list", "Passed:", nil},
		{"empty message", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePassedList(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePassedList(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestNextRole(t *testing.T) {
	roles := []roblox.GroupRole{
		{ID: 1, Name: "Guest", Rank: 0},
		{ID: 2, Name: "Recruit", Rank: 1},
		{ID: 3, Name: "Member", Rank: 5},
		{ID: 4, Name: "Veteran", Rank: 10},
		{ID: 5, Name: "Owner", Rank: 255},
	}

	tests := []struct {
		name        string
		currentRank int
		wantName    string
		wantErr     bool
	}{
		{"guest to recruit", 0, "Recruit", false},
		{"recruit to member", 1, "Member", false},
		{"member to veteran", 5, "Veteran", false},
		{"veteran has no target", 10, "", true},
		{"owner has no target", 255, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRole(roles, tt.currentRank)
			if tt.wantErr {
				if !errors.Is(err, roblox.ErrNoHigherRank) {
					t.Errorf("err = %v, want ErrNoHigherRank", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextRole returned error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("NextRole = %q, want %q", got.Name, tt.wantName)
			}
		})
	}
}

func TestPendingApprovalFlow(t *testing.T) {
	m := NewManager()

	p := m.Register("msg1", "chan1", []string{"alice"})
	if !m.IsPending("msg1") {
		t.Fatal("batch must be pending after Register")
	}

	if ok := m.Approve("unknown", "mod1"); ok {
		t.Error("approving an unknown message must report false")
	}

	go func() {
		m.Approve("msg1", "mod1")
	}()

	moderatorID, ok := p.Wait(2 * time.Second)
	if !ok {
		t.Fatal("Wait must succeed after an approval")
	}
	if moderatorID != "mod1" {
		t.Errorf("moderatorID = %q, want mod1", moderatorID)
	}

	m.Remove("msg1")
	if m.IsPending("msg1") {
		t.Error("batch must be gone after Remove")
	}
}

func TestPendingApprovalTimeout(t *testing.T) {
	m := NewManager()
	p := m.Register("msg2", "chan1", []string{"bob"})

	if _, ok := p.Wait(20 * time.Millisecond); ok {
		t.Error("Wait must time out without an approval")
	}
	m.Remove("msg2")
}

func TestApproveOnlyOnce(t *testing.T) {
	m := NewManager()
	m.Register("msg3", "chan1", []string{"carol"})

	if !m.Approve("msg3", "mod1") {
		t.Fatal("first approval must be delivered")
	}
	if m.Approve("msg3", "mod2") {
		t.Error("second approval must be dropped")
	}
}
