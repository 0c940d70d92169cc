package moderation

import (
	"errors"
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/bloxlink"
	"github.com/SDHSDevs/SDHSBotGo/pkg/roblox"
)

// BloxlinkResolver resolves the Roblox account linked to a Discord
// user through Bloxlink, appending the username when the Roblox
// lookup also succeeds.
type BloxlinkResolver struct{}

func (BloxlinkResolver) ResolveRobloxIdentity(guildID, userID string) (string, error) {
	client := bloxlink.Get()
	if client == nil {
		return "", errors.New("bloxlink client not configured")
	}

	robloxID, err := client.ResolveRobloxID(guildID, userID)
	if err != nil {
		return "", err
	}

	if rc := roblox.Get(); rc != nil {
		if name, err := rc.Username(robloxID); err == nil && name != "" {
			return fmt.Sprintf("%s (%s)", name, robloxID), nil
		}
	}
	return robloxID, nil
}
