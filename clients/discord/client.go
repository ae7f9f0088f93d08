package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"warabibot/clients"
)

// DiscordClient implements the clients.DiscordClient interface on top of an
// open discordgo session.
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord client wrapping the given session
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

func (c *DiscordClient) RespondToInteraction(
	interaction *discordgo.Interaction,
	response *discordgo.InteractionResponse,
) error {
	if err := c.session.InteractionRespond(interaction, response); err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	return nil
}

func (c *DiscordClient) DeferInteraction(interaction *discordgo.Interaction, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}
	return nil
}

func (c *DiscordClient) FollowUpInteraction(
	interaction *discordgo.Interaction,
	params *discordgo.WebhookParams,
) (*discordgo.Message, error) {
	msg, err := c.session.FollowupMessageCreate(interaction, true, params)
	if err != nil {
		return nil, fmt.Errorf("failed to send interaction follow-up: %w", err)
	}
	return msg, nil
}

// PurgeChannelMessages fetches up to limit recent messages and bulk-deletes
// them. The returned count is the number of messages actually fetched, which
// can be lower than limit in a short channel.
func (c *DiscordClient) PurgeChannelMessages(channelID string, limit int) (int, error) {
	messages, err := c.session.ChannelMessages(channelID, limit, "", "", "")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch channel messages: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if len(messages) == 1 {
		if err := c.session.ChannelMessageDelete(channelID, messages[0].ID); err != nil {
			return 0, fmt.Errorf("failed to delete message: %w", err)
		}
		return 1, nil
	}

	messageIDs := make([]string, len(messages))
	for i, message := range messages {
		messageIDs[i] = message.ID
	}
	if err := c.session.ChannelMessagesBulkDelete(channelID, messageIDs); err != nil {
		return 0, fmt.Errorf("failed to bulk delete messages: %w", err)
	}
	return len(messageIDs), nil
}

func (c *DiscordClient) SendChannelMessage(channelID, content string) (*discordgo.Message, error) {
	msg, err := c.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to send channel message: %w", err)
	}
	return msg, nil
}

func (c *DiscordClient) ReplyToMessage(guildID, channelID, messageID, content string) (*discordgo.Message, error) {
	msg, err := c.session.ChannelMessageSendReply(channelID, content, &discordgo.MessageReference{
		GuildID:   guildID,
		ChannelID: channelID,
		MessageID: messageID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reply to message: %w", err)
	}
	return msg, nil
}

func (c *DiscordClient) GetGuildByID(guildID string) (*discordgo.Guild, error) {
	guild, err := c.session.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild: %w", err)
	}
	return guild, nil
}

func (c *DiscordClient) GetGuildMember(guildID, userID string) (*discordgo.Member, error) {
	member, err := c.session.GuildMember(guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild member: %w", err)
	}
	return member, nil
}

func (c *DiscordClient) GetUser(userID string) (*discordgo.User, error) {
	user, err := c.session.User(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (c *DiscordClient) GetGuildRoles(guildID string) ([]*discordgo.Role, error) {
	roles, err := c.session.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild roles: %w", err)
	}
	return roles, nil
}

func (c *DiscordClient) CreateGuildRole(guildID, name, reason string) (*discordgo.Role, error) {
	role, err := c.session.GuildRoleCreate(
		guildID,
		&discordgo.RoleParams{Name: name},
		discordgo.WithAuditLogReason(reason),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild role: %w", err)
	}
	return role, nil
}

func (c *DiscordClient) AddMemberRole(guildID, userID, roleID, reason string) error {
	err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithAuditLogReason(reason))
	if err != nil {
		return fmt.Errorf("failed to add member role: %w", err)
	}
	return nil
}

func (c *DiscordClient) TimeoutMember(guildID, userID string, until time.Time, reason string) error {
	err := c.session.GuildMemberTimeout(guildID, userID, &until, discordgo.WithAuditLogReason(reason))
	if err != nil {
		return fmt.Errorf("failed to timeout member: %w", err)
	}
	return nil
}

func (c *DiscordClient) KickMember(guildID, userID, reason string) error {
	err := c.session.GuildMemberDelete(guildID, userID, discordgo.WithAuditLogReason(reason))
	if err != nil {
		return fmt.Errorf("failed to kick member: %w", err)
	}
	return nil
}

func (c *DiscordClient) BanMember(guildID, userID, reason string) error {
	err := c.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
	if err != nil {
		return fmt.Errorf("failed to ban member: %w", err)
	}
	return nil
}
