// Package automod inspects guild messages for rule violations:
// banned words, Discord invites, Roblox group advertising, message
// spam and, when configured, an AI moderation verdict.
package automod

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/ai"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
)

// ViolationKind identifies which rule a message broke
type ViolationKind string

const (
	ViolationProfanity ViolationKind = "profanity"
	ViolationInvite    ViolationKind = "invite"
	ViolationGroupAd   ViolationKind = "group_ad"
	ViolationSpam      ViolationKind = "spam"
	ViolationAIFlagged ViolationKind = "ai_flagged"
)

// Violation describes one detected infraction
type Violation struct {
	Kind   ViolationKind
	Detail string
}

var (
	inviteRe  = regexp.MustCompile(`(?i)(discord\.(gg|io|me|li)|discord(app)?\.com/invite)/[a-zA-Z0-9-]+`)
	groupAdRe = regexp.MustCompile(`(?i)roblox\.com/groups/(\d+)`)
)

// Message is the slice of a guild message automod inspects
type Message struct {
	GuildID string
	UserID  string
	Content string
	At      time.Time
}

// Config carries the per guild thresholds automod applies
type Config struct {
	SpamLimit  int
	SpamWindow time.Duration
}

// Checker runs every enabled rule against incoming messages
type Checker struct {
	filter       *WordFilter
	spam         *SpamTracker
	homeGroupID  string
	sweeperDone  chan bool
	sweeperOnce  sync.Once
	sweeperClose sync.Once
}

var (
	instance *Checker
	once     sync.Once
)

// Init loads the word list and creates the shared checker. A failed
// download leaves the word rule disabled instead of blocking startup.
func Init(wordListURL, homeGroupID string) *Checker {
	once.Do(func() {
		filter := NewWordFilter(nil)
		if wordListURL != "" {
			loaded, err := FetchWordFilter(wordListURL)
			if err != nil {
				logger.Warn("No se pudo descargar la lista de palabras: "+err.Error(), "AutoMod")
			} else {
				filter = loaded
				logger.System("Lista de palabras cargada: "+strconv.Itoa(loaded.Size())+" entradas", "AutoMod")
			}
		}

		instance = &Checker{
			filter:      filter,
			spam:        NewSpamTracker(),
			homeGroupID: homeGroupID,
			sweeperDone: make(chan bool),
		}
		instance.startSweeper()
	})
	return instance
}

// Get returns the shared checker, or nil before Init
func Get() *Checker {
	return instance
}

// NewChecker builds a standalone checker, used in tests
func NewChecker(filter *WordFilter, homeGroupID string) *Checker {
	return &Checker{
		filter:      filter,
		spam:        NewSpamTracker(),
		homeGroupID: homeGroupID,
		sweeperDone: make(chan bool),
	}
}

func (c *Checker) startSweeper() {
	c.sweeperOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-c.sweeperDone:
					return
				case now := <-ticker.C:
					c.spam.Sweep(now, 10*time.Minute)
				}
			}
		}()
	})
}

// Stop ends the background sweeper
func (c *Checker) Stop() {
	c.sweeperClose.Do(func() {
		close(c.sweeperDone)
	})
}

// Check runs the synchronous rules in order and returns the first
// violation. The AI verdict is separate because it costs a network
// round trip; see CheckAI.
func (c *Checker) Check(msg Message, cfg Config) *Violation {
	if word, hit := c.filter.Match(msg.Content); hit {
		return &Violation{Kind: ViolationProfanity, Detail: word}
	}

	if m := inviteRe.FindString(msg.Content); m != "" {
		return &Violation{Kind: ViolationInvite, Detail: m}
	}

	if m := groupAdRe.FindStringSubmatch(msg.Content); m != nil {
		// Links to the community's own group are fine.
		if c.homeGroupID == "" || m[1] != c.homeGroupID {
			return &Violation{Kind: ViolationGroupAd, Detail: m[0]}
		}
	}

	if c.spam.Record(msg.GuildID, msg.UserID, msg.At, cfg.SpamLimit, cfg.SpamWindow) {
		c.spam.Reset(msg.GuildID, msg.UserID)
		return &Violation{Kind: ViolationSpam, Detail: "message rate limit"}
	}

	return nil
}

// CheckAI asks the moderation endpoint for a verdict. Returns nil
// when no client is configured or the call fails.
func (c *Checker) CheckAI(content string) *Violation {
	client := ai.Get()
	if client == nil || strings.TrimSpace(content) == "" {
		return nil
	}

	verdict, err := client.Moderate(content)
	if err != nil {
		logger.Debug("Verificación de IA falló: "+err.Error(), "AutoMod")
		return nil
	}
	if !verdict.Flagged {
		return nil
	}
	return &Violation{Kind: ViolationAIFlagged, Detail: strings.Join(verdict.Categories, ", ")}
}
