package services

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"
)

// GuildConfigService defines the interface for guild configuration operations
type GuildConfigService interface {
	// GetAIReplyChannel returns the configured AI-relay channel for the guild
	GetAIReplyChannel(ctx context.Context, guildID string) (mo.Option[string], error)
	// SetAIReplyChannel durably persists the mapping before returning
	SetAIReplyChannel(ctx context.Context, guildID, channelID string) error
}

// PermissionsService defines the interface for capability checks on
// inbound interactions
type PermissionsService interface {
	// Authorize reports whether the member holds the required permission at
	// invocation time
	Authorize(member *discordgo.Member, requiredPermission int64) bool
}
