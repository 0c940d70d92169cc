package moderation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized se devuelve cuando el usuario no está en la lista de administradores globales
	ErrUnauthorized = errors.New("usuario no autorizado para moderación global")

	// ErrInvalidDuration indicates the duration string does not match <número><m|h|d>
	ErrInvalidDuration = errors.New("invalid duration format")

	// ErrNoActiveGlobalBan indicates the target has no active global ban record
	ErrNoActiveGlobalBan = errors.New("no active global ban found")

	// ErrMissingBanPermission indicates the bot cannot ban in that guild
	ErrMissingBanPermission = errors.New("missing ban permission")
)

// BanErrorKind classifies a failed platform call against one guild.
type BanErrorKind string

const (
	BanErrorForbidden BanErrorKind = "forbidden"
	BanErrorNotFound  BanErrorKind = "not_found"
	BanErrorTransient BanErrorKind = "transient"
)

// GuildBanError wraps the platform error of a single guild ban or unban.
// It is collected in the fan-out aggregate and never aborts the batch.
type GuildBanError struct {
	GuildID string
	Kind    BanErrorKind
	Err     error
}

func (e *GuildBanError) Error() string {
	return fmt.Sprintf("guild %s: %s (%v)", e.GuildID, e.Kind, e.Err)
}

func (e *GuildBanError) Unwrap() error {
	return e.Err
}
