package core

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// ErrCapabilityDenied is a sentinel error for actions the bot or the invoking
// user lacks permission to perform. It is user-facing behavior, never retried
// and never treated as a system fault.
var ErrCapabilityDenied = errors.New("capability denied")

// IsCapabilityDenied reports whether an error is a permission failure.
// This handles both the sentinel error and Discord REST errors returned by
// the gateway (missing permissions / missing access / plain 403s).
func IsCapabilityDenied(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCapabilityDenied) {
		return true
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
				return true
			}
		}
		if restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
			return true
		}
	}
	return false
}
