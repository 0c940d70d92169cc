package moderation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
)

type fakeGateway struct {
	guilds  []GuildInfo
	members map[string]bool // "guildID:userID"
	banErr  map[string]error
	dmErr   error

	bans    []string // "guildID:userID"
	unbans  []string
	dmsSent []string
}

func newFakeGateway(guilds ...GuildInfo) *fakeGateway {
	return &fakeGateway{
		guilds:  guilds,
		members: make(map[string]bool),
		banErr:  make(map[string]error),
	}
}

func (g *fakeGateway) ListConnectedGuilds() []GuildInfo { return g.guilds }

func (g *fakeGateway) IsMember(guildID, userID string) bool {
	return g.members[guildID+":"+userID]
}

func (g *fakeGateway) BanUser(guildID, userID, reason string) error {
	if err := g.banErr[guildID]; err != nil {
		return err
	}
	g.bans = append(g.bans, guildID+":"+userID)
	return nil
}

func (g *fakeGateway) UnbanUser(guildID, userID string) error {
	if err := g.banErr[guildID]; err != nil {
		return err
	}
	g.unbans = append(g.unbans, guildID+":"+userID)
	return nil
}

func (g *fakeGateway) SendDirectMessage(userID, content string) error {
	if g.dmErr != nil {
		return g.dmErr
	}
	g.dmsSent = append(g.dmsSent, userID)
	return nil
}

// fakeRegistry mirrors the real store: Add always inserts, Remove
// deletes the first active match.
type fakeRegistry struct {
	addErr  error
	listErr error
	records []*models.GlobalBanRecord
	nextID  int
}

func (r *fakeRegistry) Add(targetUserID, robloxIdentity, reason, moderatorID string, expiresAt time.Time) (string, error) {
	if r.addErr != nil {
		return "", r.addErr
	}
	r.nextID++
	id := fmt.Sprintf("rec-%d", r.nextID)
	r.records = append(r.records, &models.GlobalBanRecord{
		ID:             id,
		TargetUserID:   targetUserID,
		RobloxIdentity: robloxIdentity,
		Reason:         reason,
		ModeratorID:    moderatorID,
		Active:         true,
		ExpiresAt:      expiresAt,
	})
	return id, nil
}

func (r *fakeRegistry) Remove(targetUserID string) (bool, error) {
	for i, rec := range r.records {
		if rec.TargetUserID == targetUserID && rec.Active {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegistry) ListActive() ([]*models.GlobalBanRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var active []*models.GlobalBanRecord
	for _, rec := range r.records {
		if rec.Active {
			active = append(active, rec)
		}
	}
	return active, nil
}

type recordedCase struct {
	guildID      string
	targetUserID string
	moderatorID  string
	action       models.ActionType
	reason       string
	extra        map[string]interface{}
}

type fakeLedger struct {
	err    error
	cases  []recordedCase
	nextID int
}

func (l *fakeLedger) AddCase(guildID, targetUserID, moderatorID string, action models.ActionType, reason string, extra map[string]interface{}) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	l.nextID++
	l.cases = append(l.cases, recordedCase{guildID, targetUserID, moderatorID, action, reason, extra})
	return fmt.Sprintf("CASE%02d", l.nextID), nil
}

type fakeSettings struct {
	enabled map[string]bool
}

func (s *fakeSettings) GlobalBansEnabled(guildID string) bool {
	return s.enabled[guildID]
}

type fakeResolver struct {
	identity string
	err      error
}

func (r *fakeResolver) ResolveRobloxIdentity(guildID, userID string) (string, error) {
	return r.identity, r.err
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"10m", 600, false},
		{"2h", 7200, false},
		{"1d", 86400, false},
		{"0m", 0, false},
		{"90m", 5400, false},
		{"10x", 0, true},
		{"m10", 0, true},
		{"10", 0, true},
		{"", 0, true},
		{"1h30m", 0, true},
		{"-5m", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDuration) {
					t.Errorf("ParseDuration(%q) err = %v, want ErrInvalidDuration", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDuration(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func newTestOrchestrator(gw *fakeGateway, reg *fakeRegistry, led *fakeLedger, set *fakeSettings, res IdentityResolver) *Orchestrator {
	return New(Options{
		Gateway:  gw,
		Registry: reg,
		Ledger:   led,
		Settings: set,
		Resolver: res,
		AdminIDs: []string{"admin1", "admin2"},
	})
}

func TestGlobalBanFanOut(t *testing.T) {
	gw := newFakeGateway(
		GuildInfo{ID: "g1", Name: "Alpha", CanBan: true},
		GuildInfo{ID: "g2", Name: "Beta", CanBan: false},
		GuildInfo{ID: "g3", Name: "Gamma", CanBan: true},
	)
	gw.members["g1:target"] = true

	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true, "g2": true, "g3": false}}

	o := newTestOrchestrator(gw, reg, led, set, &fakeResolver{identity: "RobloxUser#123"})

	result, err := o.GlobalBan(GlobalBanRequest{
		GuildID:      "g1",
		TargetUserID: "target",
		ModeratorID:  "admin1",
		Reason:       "spam",
	})
	if err != nil {
		t.Fatalf("GlobalBan returned error: %v", err)
	}

	if len(result.FanOut.Succeeded) != 1 {
		t.Fatalf("Succeeded = %d, want 1", len(result.FanOut.Succeeded))
	}
	if got := result.FanOut.Succeeded[0]; got.GuildID != "g1" || !got.WasMember {
		t.Errorf("Succeeded[0] = %+v, want guild g1 with WasMember", got)
	}

	if len(result.FanOut.Failed) != 1 {
		t.Fatalf("Failed = %d, want 1", len(result.FanOut.Failed))
	}
	if got := result.FanOut.Failed[0]; got.GuildID != "g2" || !errors.Is(got.Err, ErrMissingBanPermission) {
		t.Errorf("Failed[0] = %+v, want guild g2 with missing ban permission", got)
	}

	for _, out := range append(result.FanOut.Succeeded, result.FanOut.Failed...) {
		if out.GuildID == "g3" {
			t.Errorf("guild g3 has sync disabled and must not appear in the result")
		}
	}

	if len(reg.records) != 1 {
		t.Fatalf("registry records = %d, want 1", len(reg.records))
	}
	if len(led.cases) != 1 || led.cases[0].action != models.ActionGlobalBan {
		t.Fatalf("ledger cases = %+v, want one global_ban case", led.cases)
	}
	if led.cases[0].extra["roblox_identity"] != "RobloxUser#123" {
		t.Errorf("case extra identity = %v, want RobloxUser#123", led.cases[0].extra["roblox_identity"])
	}
	if !result.Notified {
		t.Error("Notified = false, want true")
	}
}

func TestGlobalBanUnauthorized(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	_, err := o.GlobalBan(GlobalBanRequest{
		GuildID:      "g1",
		TargetUserID: "target",
		ModeratorID:  "intruder",
		Reason:       "spam",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	if len(reg.records) != 0 {
		t.Error("registry must stay empty on unauthorized attempts")
	}
	if len(led.cases) != 0 {
		t.Error("ledger must stay empty on unauthorized attempts")
	}
	if len(gw.bans) != 0 {
		t.Error("no guild may be contacted on unauthorized attempts")
	}
	if len(gw.dmsSent) != 0 {
		t.Error("no DM may be sent on unauthorized attempts")
	}
}

func TestGlobalBanInvalidDuration(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	_, err := o.GlobalBan(GlobalBanRequest{
		GuildID:      "g1",
		TargetUserID: "target",
		ModeratorID:  "admin1",
		Reason:       "spam",
		Duration:     "10x",
	})
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("err = %v, want ErrInvalidDuration", err)
	}

	if len(reg.records) != 0 || len(led.cases) != 0 || len(gw.bans) != 0 || len(gw.dmsSent) != 0 {
		t.Error("invalid duration must abort before any side effect")
	}
}

func TestGlobalBanWithDuration(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	before := time.Now().UTC()
	result, err := o.GlobalBan(GlobalBanRequest{
		GuildID:      "g1",
		TargetUserID: "target",
		ModeratorID:  "admin1",
		Reason:       "spam",
		Duration:     "1d",
	})
	if err != nil {
		t.Fatalf("GlobalBan returned error: %v", err)
	}

	wantMin := before.Add(24 * time.Hour)
	wantMax := time.Now().UTC().Add(24*time.Hour + time.Minute)
	if result.ExpiresAt.Before(wantMin) || result.ExpiresAt.After(wantMax) {
		t.Errorf("ExpiresAt = %v, want about %v", result.ExpiresAt, wantMin)
	}
	if _, ok := led.cases[0].extra["expires_at"]; !ok {
		t.Error("case extra must carry expires_at for temporary bans")
	}
}

func TestGlobalBanCaseWriteFailure(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	reg := &fakeRegistry{}
	led := &fakeLedger{err: errors.New("store down")}
	set := &fakeSettings{enabled: map[string]bool{"g1": true}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	result, err := o.GlobalBan(GlobalBanRequest{
		GuildID:      "g1",
		TargetUserID: "target",
		ModeratorID:  "admin1",
		Reason:       "spam",
	})
	if err == nil {
		t.Fatal("GlobalBan must fail when the case cannot be written")
	}

	// The registry record stays in place, nothing is rolled back.
	if len(reg.records) != 1 {
		t.Errorf("registry records = %d, want 1", len(reg.records))
	}
	// Fan-out never ran.
	if len(gw.bans) != 0 {
		t.Errorf("guild bans = %d, want 0", len(gw.bans))
	}
	if result == nil || result.RecordID == "" {
		t.Error("partial result must report the persisted record")
	}
}

func TestGlobalBanNotificationFailureIsNonFatal(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	gw.dmErr = errors.New("DMs closed")
	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	result, err := o.GlobalBan(GlobalBanRequest{
		GuildID:      "g1",
		TargetUserID: "target",
		ModeratorID:  "admin1",
		Reason:       "spam",
	})
	if err != nil {
		t.Fatalf("GlobalBan returned error: %v", err)
	}
	if result.Notified {
		t.Error("Notified = true, want false when the DM fails")
	}
	if len(result.FanOut.Succeeded) != 1 {
		t.Errorf("fan-out must proceed despite the failed DM")
	}
}

func TestGlobalBanIdentityFallback(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true}}

	o := newTestOrchestrator(gw, reg, led, set, &fakeResolver{err: errors.New("api down")})

	result, err := o.GlobalBan(GlobalBanRequest{
		GuildID:      "g1",
		TargetUserID: "target",
		ModeratorID:  "admin1",
		Reason:       "spam",
	})
	if err != nil {
		t.Fatalf("GlobalBan returned error: %v", err)
	}
	if result.RobloxIdentity != "Unknown" {
		t.Errorf("RobloxIdentity = %q, want Unknown", result.RobloxIdentity)
	}
}

func TestGlobalUnban(t *testing.T) {
	gw := newFakeGateway(
		GuildInfo{ID: "g1", Name: "Alpha", CanBan: true},
		GuildInfo{ID: "g2", Name: "Beta", CanBan: true},
	)
	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true, "g2": false}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	if _, err := reg.Add("target", "", "spam", "admin1", time.Time{}); err != nil {
		t.Fatalf("seeding registry: %v", err)
	}

	result, err := o.GlobalUnban("g1", "target", "admin1", "appealed")
	if err != nil {
		t.Fatalf("GlobalUnban returned error: %v", err)
	}
	if len(result.FanOut.Succeeded) != 1 || result.FanOut.Succeeded[0].GuildID != "g1" {
		t.Errorf("Succeeded = %+v, want only g1", result.FanOut.Succeeded)
	}
	if len(led.cases) != 1 || led.cases[0].action != models.ActionGlobalUnban {
		t.Errorf("ledger cases = %+v, want one global_unban case", led.cases)
	}

	// A second unban finds no active record.
	if _, err := o.GlobalUnban("g1", "target", "admin1", "again"); !errors.Is(err, ErrNoActiveGlobalBan) {
		t.Errorf("second unban err = %v, want ErrNoActiveGlobalBan", err)
	}
}

func TestGlobalUnbanUnauthorized(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	reg := &fakeRegistry{}
	if _, err := reg.Add("target", "", "spam", "admin1", time.Time{}); err != nil {
		t.Fatalf("seeding registry: %v", err)
	}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{"g1": true}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	if _, err := o.GlobalUnban("g1", "target", "intruder", "because"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if len(reg.records) != 1 {
		t.Error("registry record must survive an unauthorized unban")
	}
}

func TestLocalBan(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	reg := &fakeRegistry{}
	led := &fakeLedger{}
	set := &fakeSettings{enabled: map[string]bool{}}

	o := newTestOrchestrator(gw, reg, led, set, nil)

	caseID, err := o.Ban("g1", "target", "mod1", "rule 3")
	if err != nil {
		t.Fatalf("Ban returned error: %v", err)
	}
	if caseID == "" {
		t.Error("Ban must return the case ID")
	}
	if len(led.cases) != 1 || led.cases[0].action != models.ActionBan {
		t.Errorf("ledger cases = %+v, want one ban case", led.cases)
	}
	if len(reg.records) != 0 {
		t.Error("local bans must not touch the global registry")
	}
}

func TestLocalBanPlatformFailure(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	gw.banErr["g1"] = &GuildBanError{GuildID: "g1", Kind: BanErrorForbidden, Err: errors.New("403")}
	led := &fakeLedger{}

	o := newTestOrchestrator(gw, &fakeRegistry{}, led, &fakeSettings{enabled: map[string]bool{}}, nil)

	_, err := o.Ban("g1", "target", "mod1", "rule 3")
	if err == nil {
		t.Fatal("Ban must propagate the platform failure")
	}
	var gbe *GuildBanError
	if !errors.As(err, &gbe) || gbe.Kind != BanErrorForbidden {
		t.Errorf("err = %v, want GuildBanError with kind forbidden", err)
	}
	if len(led.cases) != 0 {
		t.Error("no case may be written when the platform call fails")
	}
}

func TestLocalUnban(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g1", Name: "Alpha", CanBan: true})
	led := &fakeLedger{}

	o := newTestOrchestrator(gw, &fakeRegistry{}, led, &fakeSettings{enabled: map[string]bool{}}, nil)

	if _, err := o.Unban("g1", "target", "mod1", "appealed"); err != nil {
		t.Fatalf("Unban returned error: %v", err)
	}
	if len(led.cases) != 1 || led.cases[0].action != models.ActionUnban {
		t.Errorf("ledger cases = %+v, want one unban case", led.cases)
	}
	if len(gw.unbans) != 1 || gw.unbans[0] != "g1:target" {
		t.Errorf("unbans = %v, want [g1:target]", gw.unbans)
	}
}

func TestSyncGuild(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g9", Name: "Nuevo", CanBan: true})
	reg := &fakeRegistry{}
	if _, err := reg.Add("u1", "", "spam", "admin1", time.Time{}); err != nil {
		t.Fatalf("seeding registry: %v", err)
	}
	if _, err := reg.Add("u2", "", "raid", "admin1", time.Time{}); err != nil {
		t.Fatalf("seeding registry: %v", err)
	}

	o := newTestOrchestrator(gw, reg, &fakeLedger{}, &fakeSettings{enabled: map[string]bool{"g9": true}}, nil)

	result, err := o.SyncGuild("g9")
	if err != nil {
		t.Fatalf("SyncGuild returned error: %v", err)
	}
	if result.Total != 2 || result.Applied != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want total 2 applied 2", result)
	}
	if len(gw.bans) != 2 {
		t.Errorf("bans = %v, want both users banned", gw.bans)
	}
}

func TestSyncGuildPartialFailure(t *testing.T) {
	gw := newFakeGateway(GuildInfo{ID: "g9", Name: "Nuevo", CanBan: true})
	reg := &fakeRegistry{}
	if _, err := reg.Add("u1", "", "spam", "admin1", time.Time{}); err != nil {
		t.Fatalf("seeding registry: %v", err)
	}

	failing := &flakyGateway{fakeGateway: gw, failFirst: true}
	o := newTestOrchestrator(gw, reg, &fakeLedger{}, &fakeSettings{enabled: map[string]bool{"g9": true}}, nil)
	o.gateway = failing

	if _, err := reg.Add("u2", "", "raid", "admin1", time.Time{}); err != nil {
		t.Fatalf("seeding registry: %v", err)
	}

	result, err := o.SyncGuild("g9")
	if err != nil {
		t.Fatalf("SyncGuild returned error: %v", err)
	}
	if result.Total != 2 || result.Applied != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want 1 applied 1 failed of 2", result)
	}
}

// flakyGateway fails the first ban and delegates the rest.
type flakyGateway struct {
	*fakeGateway
	failFirst bool
}

func (g *flakyGateway) BanUser(guildID, userID, reason string) error {
	if g.failFirst {
		g.failFirst = false
		return &GuildBanError{GuildID: guildID, Kind: BanErrorTransient, Err: errors.New("timeout")}
	}
	return g.fakeGateway.BanUser(guildID, userID, reason)
}

func TestIsAdmin(t *testing.T) {
	o := New(Options{AdminIDs: []string{"a", "b"}})

	tests := []struct {
		userID string
		want   bool
	}{
		{"a", true},
		{"b", true},
		{"c", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := o.IsAdmin(tt.userID); got != tt.want {
			t.Errorf("IsAdmin(%q) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}
