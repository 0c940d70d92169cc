// Package promotion automates Roblox group rank-ups announced in the
// auto promotion channel. A staff message listing who passed a tryout
// is parsed, held for approval and then applied against the group.
package promotion

import (
	"strings"

	"github.com/SDHSDevs/SDHSBotGo/pkg/roblox"
)

const passedPrefix = "passed:"

// ParsePassedList extracts the usernames from a "Passed: a, b, c"
// message. Returns nil when the message does not carry the prefix.
func ParsePassedList(content string) []string {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < len(passedPrefix) || !strings.EqualFold(trimmed[:len(passedPrefix)], passedPrefix) {
		return nil
	}

	rest := trimmed[len(passedPrefix):]
	parts := strings.Split(rest, ",")

	seen := make(map[string]struct{}, len(parts))
	var usernames []string
	for _, part := range parts {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "@"))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		usernames = append(usernames, name)
	}
	return usernames
}

// Outcome is the result of promoting one username
type Outcome struct {
	Username string
	OldRank  string
	NewRank  string
	Err      error
}

// NextRole picks the role directly above the current rank. Roles are
// expected in ascending rank order as the group API returns them; the
// Guest pseudo role (rank 0) is never a promotion target.
func NextRole(roles []roblox.GroupRole, currentRank int) (*roblox.GroupRole, error) {
	for _, role := range roles {
		if role.Rank > currentRank && role.Rank != 0 && role.Rank < 255 {
			r := role
			return &r, nil
		}
	}
	return nil, roblox.ErrNoHigherRank
}

// PromoteAll resolves each username and raises it one rank in the
// configured group. Failures are per user and never stop the batch.
func PromoteAll(client *roblox.Client, usernames []string) []Outcome {
	outcomes := make([]Outcome, 0, len(usernames))

	users, err := client.UsersByUsernames(usernames)
	if err != nil {
		for _, name := range usernames {
			outcomes = append(outcomes, Outcome{Username: name, Err: err})
		}
		return outcomes
	}

	roles, err := client.GroupRoles()
	if err != nil {
		for _, name := range usernames {
			outcomes = append(outcomes, Outcome{Username: name, Err: err})
		}
		return outcomes
	}

	for _, name := range usernames {
		outcome := Outcome{Username: name}

		user, found := users[name]
		if !found {
			outcome.Err = roblox.ErrUserNotFound
			outcomes = append(outcomes, outcome)
			continue
		}

		current, err := client.UserGroupRole(user.ID)
		if err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.OldRank = current.Name

		next, err := NextRole(roles, current.Rank)
		if err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}

		if err := client.SetUserRole(user.ID, next.ID); err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.NewRank = next.Name
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
