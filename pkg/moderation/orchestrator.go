// Package moderation coordinates moderation actions across guilds.
//
// The orchestrator owns the global ban workflow: authorize, validate,
// notify, persist, record the case and fan the ban out to every guild
// that opted into sync. It holds no state of its own beyond a single
// advisory lock around the persist-then-fan-out critical section.
package moderation

import (
	"fmt"
	"sync"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
)

// GuildOutcome es el resultado de un servidor durante el fan-out
type GuildOutcome struct {
	GuildID   string
	GuildName string
	WasMember bool
	Err       error
}

// FanOutResult aggregates per guild outcomes. Guilds with sync
// disabled appear in neither list.
type FanOutResult struct {
	Succeeded []GuildOutcome
	Failed    []GuildOutcome
}

// SyncResult tallies a guild-join sync of the active global bans.
type SyncResult struct {
	Total   int
	Applied int
	Failed  int
}

// GlobalBanRequest carries the parameters of a global ban.
type GlobalBanRequest struct {
	GuildID      string // guild the command was issued from
	TargetUserID string
	ModeratorID  string
	Reason       string
	Duration     string // optional, "<n><m|h|d>"
}

// GlobalBanResult is the aggregate returned to the caller.
type GlobalBanResult struct {
	RecordID       string
	CaseID         string
	RobloxIdentity string
	ExpiresAt      time.Time // zero when permanent
	Notified       bool
	FanOut         FanOutResult
}

// GlobalUnbanResult is the aggregate of a lifted global ban.
type GlobalUnbanResult struct {
	CaseID string
	FanOut FanOutResult
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Gateway  Gateway
	Registry Registry
	Ledger   Ledger
	Settings SettingsProvider
	Resolver IdentityResolver // optional
	// AdminIDs is the allow-list of principals permitted to run
	// global moderation operations.
	AdminIDs []string
}

// Orchestrator runs the moderation workflows.
type Orchestrator struct {
	gateway  Gateway
	registry Registry
	ledger   Ledger
	settings SettingsProvider
	resolver IdentityResolver
	admins   map[string]struct{}

	// globalBanMu serializes the persist and fan-out section of
	// global bans process-wide. It is deliberately coarse, not per
	// user: two simultaneous global bans never interleave their
	// guild loops. Global unbans do not take it.
	globalBanMu sync.Mutex
}

var (
	instance *Orchestrator
	once     sync.Once
)

// New builds an orchestrator from explicit collaborators.
func New(opts Options) *Orchestrator {
	admins := make(map[string]struct{}, len(opts.AdminIDs))
	for _, id := range opts.AdminIDs {
		admins[id] = struct{}{}
	}

	return &Orchestrator{
		gateway:  opts.Gateway,
		registry: opts.Registry,
		ledger:   opts.Ledger,
		settings: opts.Settings,
		resolver: opts.Resolver,
		admins:   admins,
	}
}

// Init creates the process-wide orchestrator
func Init(opts Options) *Orchestrator {
	once.Do(func() {
		instance = New(opts)
	})
	return instance
}

// Get returns the process-wide orchestrator, or nil before Init
func Get() *Orchestrator {
	return instance
}

// IsAdmin reports whether the user may run global moderation operations
func (o *Orchestrator) IsAdmin(userID string) bool {
	_, ok := o.admins[userID]
	return ok
}

// GlobalBan bans a user across every guild that opted into sync.
//
// The workflow runs strictly in order: authorize, validate duration,
// notify the target (best effort), resolve the Roblox identity (best
// effort), persist the registry record, write the case and fan out.
// A case write failure aborts before fan-out and is reported to the
// caller even though the registry record already exists; nothing is
// rolled back.
func (o *Orchestrator) GlobalBan(req GlobalBanRequest) (*GlobalBanResult, error) {
	if !o.IsAdmin(req.ModeratorID) {
		return nil, ErrUnauthorized
	}

	var expiresAt time.Time
	if req.Duration != "" {
		seconds, err := ParseDuration(req.Duration)
		if err != nil {
			return nil, err
		}
		expiresAt = time.Now().UTC().Add(time.Duration(seconds) * time.Second)
	}

	result := &GlobalBanResult{ExpiresAt: expiresAt, Notified: true}

	dm := fmt.Sprintf("You have been globally banned from the SDHS network.\n**Reason:** %s", req.Reason)
	if err := o.gateway.SendDirectMessage(req.TargetUserID, dm); err != nil {
		result.Notified = false
		logger.Warn("No se pudo notificar al usuario "+req.TargetUserID+": "+err.Error(), "Moderation")
	}

	result.RobloxIdentity = o.resolveIdentity(req.GuildID, req.TargetUserID)

	o.globalBanMu.Lock()
	defer o.globalBanMu.Unlock()

	recordID, err := o.registry.Add(req.TargetUserID, result.RobloxIdentity, req.Reason, req.ModeratorID, expiresAt)
	if err != nil {
		return nil, err
	}
	result.RecordID = recordID

	extra := map[string]interface{}{
		"roblox_identity": result.RobloxIdentity,
		"duration":        req.Duration,
	}
	if req.Duration == "" {
		extra["duration"] = "permanent"
	}
	if !expiresAt.IsZero() {
		extra["expires_at"] = expiresAt
	}

	caseID, err := o.ledger.AddCase(req.GuildID, req.TargetUserID, req.ModeratorID, models.ActionGlobalBan, req.Reason, extra)
	if err != nil {
		logger.Error("Ban global aplicado pero sin caso registrado: "+err.Error(), "Moderation")
		return result, err
	}
	result.CaseID = caseID

	result.FanOut = o.fanOutBan(req.TargetUserID, req.Reason)
	return result, nil
}

// GlobalUnban lifts a global ban and unbans the user in every guild
// that opted into sync. Fan-out is global, not per guild: every sync
// enabled guild gets the unban attempt even if the user was never
// banned there.
func (o *Orchestrator) GlobalUnban(guildID, targetUserID, moderatorID, reason string) (*GlobalUnbanResult, error) {
	if !o.IsAdmin(moderatorID) {
		return nil, ErrUnauthorized
	}

	removed, err := o.registry.Remove(targetUserID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNoActiveGlobalBan
	}

	result := &GlobalUnbanResult{}

	caseID, err := o.ledger.AddCase(guildID, targetUserID, moderatorID, models.ActionGlobalUnban, reason, nil)
	if err != nil {
		logger.Error("Unban global aplicado pero sin caso registrado: "+err.Error(), "Moderation")
		return result, err
	}
	result.CaseID = caseID

	for _, g := range o.gateway.ListConnectedGuilds() {
		if !o.settings.GlobalBansEnabled(g.ID) {
			continue
		}
		outcome := GuildOutcome{GuildID: g.ID, GuildName: g.Name}
		if !g.CanBan {
			outcome.Err = ErrMissingBanPermission
			result.FanOut.Failed = append(result.FanOut.Failed, outcome)
			continue
		}
		if err := o.gateway.UnbanUser(g.ID, targetUserID); err != nil {
			outcome.Err = err
			result.FanOut.Failed = append(result.FanOut.Failed, outcome)
			continue
		}
		result.FanOut.Succeeded = append(result.FanOut.Succeeded, outcome)
	}

	return result, nil
}

// Ban applies a single-guild ban and records the case. No
// authorization check and no registry involvement. A platform failure
// aborts before the case write so the ledger only records completed
// actions.
func (o *Orchestrator) Ban(guildID, targetUserID, moderatorID, reason string) (string, error) {
	if err := o.gateway.BanUser(guildID, targetUserID, reason); err != nil {
		return "", err
	}
	return o.ledger.AddCase(guildID, targetUserID, moderatorID, models.ActionBan, reason, nil)
}

// Unban lifts a single-guild ban and records the case.
func (o *Orchestrator) Unban(guildID, targetUserID, moderatorID, reason string) (string, error) {
	if err := o.gateway.UnbanUser(guildID, targetUserID); err != nil {
		return "", err
	}
	return o.ledger.AddCase(guildID, targetUserID, moderatorID, models.ActionUnban, reason, nil)
}

// SyncGuild applies every active global ban as a local ban in one
// guild. Used when the bot joins a guild that has sync enabled.
func (o *Orchestrator) SyncGuild(guildID string) (*SyncResult, error) {
	records, err := o.registry.ListActive()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Total: len(records)}
	for _, rec := range records {
		reason := "Global ban sync: " + rec.Reason
		if err := o.gateway.BanUser(guildID, rec.TargetUserID, reason); err != nil {
			result.Failed++
			logger.Debug(fmt.Sprintf("Sync de ban global falló en %s para %s: %v", guildID, rec.TargetUserID, err), "Moderation")
			continue
		}
		result.Applied++
	}

	return result, nil
}

func (o *Orchestrator) resolveIdentity(guildID, userID string) string {
	if o.resolver == nil {
		return "Unknown"
	}
	identity, err := o.resolver.ResolveRobloxIdentity(guildID, userID)
	if err != nil || identity == "" {
		if err != nil {
			logger.Debug("Identidad de Roblox no resuelta para "+userID+": "+err.Error(), "Moderation")
		}
		return "Unknown"
	}
	return identity
}

// fanOutBan bans the target in every connected guild with sync
// enabled. Guilds with sync disabled are skipped silently; guilds
// where the bot cannot ban count as failures.
func (o *Orchestrator) fanOutBan(targetUserID, reason string) FanOutResult {
	var result FanOutResult

	for _, g := range o.gateway.ListConnectedGuilds() {
		if !o.settings.GlobalBansEnabled(g.ID) {
			continue
		}

		outcome := GuildOutcome{GuildID: g.ID, GuildName: g.Name}
		if !g.CanBan {
			outcome.Err = ErrMissingBanPermission
			result.Failed = append(result.Failed, outcome)
			continue
		}

		outcome.WasMember = o.gateway.IsMember(g.ID, targetUserID)
		if err := o.gateway.BanUser(g.ID, targetUserID, reason); err != nil {
			outcome.Err = err
			result.Failed = append(result.Failed, outcome)
			continue
		}
		result.Succeeded = append(result.Succeeded, outcome)
	}

	return result
}
