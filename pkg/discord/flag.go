package discord

import "strings"

// FlagIndicator is the nickname prefix kept on members carrying the flag role.
const FlagIndicator = "[Flag] "

// maxNicknameLen is Discord's nickname length limit.
const maxNicknameLen = 32

// FlagNickname returns the nickname a flagged member should carry and
// whether it differs from the current one. Stray indicator fragments are
// stripped before prefixing so repeated edits never stack markers.
func FlagNickname(current string) (string, bool) {
	if strings.HasPrefix(current, FlagIndicator) {
		return current, false
	}

	base := current
	if trimmed := strings.TrimSpace(FlagIndicator); strings.Contains(base, trimmed) {
		base = strings.TrimSpace(strings.ReplaceAll(base, trimmed, ""))
	}

	nick := FlagIndicator + base
	if runes := []rune(nick); len(runes) > maxNicknameLen {
		allowed := maxNicknameLen - len([]rune(FlagIndicator))
		nick = FlagIndicator + string([]rune(base)[:allowed])
	}

	return nick, true
}
