package core

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestIsCapabilityDenied(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.False(t, IsCapabilityDenied(nil))
	})

	t.Run("sentinel error", func(t *testing.T) {
		assert.True(t, IsCapabilityDenied(ErrCapabilityDenied))
	})

	t.Run("wrapped sentinel error", func(t *testing.T) {
		err := fmt.Errorf("failed to grant role: %w", ErrCapabilityDenied)
		assert.True(t, IsCapabilityDenied(err))
	})

	t.Run("rest error with missing permissions code", func(t *testing.T) {
		err := &discordgo.RESTError{
			Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions},
		}
		assert.True(t, IsCapabilityDenied(err))
	})

	t.Run("rest error with missing access code", func(t *testing.T) {
		err := &discordgo.RESTError{
			Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingAccess},
		}
		assert.True(t, IsCapabilityDenied(err))
	})

	t.Run("wrapped rest error", func(t *testing.T) {
		restErr := &discordgo.RESTError{
			Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions},
		}
		err := fmt.Errorf("failed to purge channel: %w", restErr)
		assert.True(t, IsCapabilityDenied(err))
	})

	t.Run("rest error with forbidden status", func(t *testing.T) {
		err := &discordgo.RESTError{
			Response: &http.Response{StatusCode: http.StatusForbidden},
		}
		assert.True(t, IsCapabilityDenied(err))
	})

	t.Run("rest error with unrelated code", func(t *testing.T) {
		err := &discordgo.RESTError{
			Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel},
		}
		assert.False(t, IsCapabilityDenied(err))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.False(t, IsCapabilityDenied(fmt.Errorf("network timeout")))
	})
}
