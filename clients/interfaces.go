package clients

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// DiscordClient wraps the gateway operations the bot performs. Callers treat
// every call as a single external action whose outcome is classified by
// core.IsCapabilityDenied; transient failures are surfaced verbatim and never
// retried automatically.
type DiscordClient interface {
	// RespondToInteraction sends the immediate response to an interaction
	RespondToInteraction(interaction *discordgo.Interaction, response *discordgo.InteractionResponse) error
	// DeferInteraction acknowledges an interaction so a follow-up can be sent later
	DeferInteraction(interaction *discordgo.Interaction, ephemeral bool) error
	// FollowUpInteraction sends a follow-up message to a deferred interaction
	FollowUpInteraction(interaction *discordgo.Interaction, params *discordgo.WebhookParams) (*discordgo.Message, error)

	// PurgeChannelMessages deletes up to limit of the most recent messages in
	// a channel and returns the number actually deleted
	PurgeChannelMessages(channelID string, limit int) (int, error)
	SendChannelMessage(channelID, content string) (*discordgo.Message, error)
	ReplyToMessage(guildID, channelID, messageID, content string) (*discordgo.Message, error)

	GetGuildByID(guildID string) (*discordgo.Guild, error)
	GetGuildMember(guildID, userID string) (*discordgo.Member, error)
	GetUser(userID string) (*discordgo.User, error)

	GetGuildRoles(guildID string) ([]*discordgo.Role, error)
	CreateGuildRole(guildID, name, reason string) (*discordgo.Role, error)
	AddMemberRole(guildID, userID, roleID, reason string) error

	TimeoutMember(guildID, userID string, until time.Time, reason string) error
	KickMember(guildID, userID, reason string) error
	BanMember(guildID, userID, reason string) error
}

// CompletionClient is the external text-generation backend invoked by the AI
// relay. The call is synchronous from the caller's perspective; each request
// carries its own bounded timeout.
type CompletionClient interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}
