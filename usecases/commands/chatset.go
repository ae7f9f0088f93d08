package commands

import (
	"context"
	"fmt"

	"warabibot/models"
)

// handleChatSet records the guild's AI-relay target channel. The mapping is
// persisted before the success response is sent.
func (u *CommandsUseCase) handleChatSet(ctx context.Context, event models.CommandEvent) error {
	channelID, ok := channelOptionID(event, "channel")
	if !ok {
		return fmt.Errorf("channel option is missing")
	}

	if err := u.guildConfigService.SetAIReplyChannel(ctx, event.GuildID, channelID); err != nil {
		return fmt.Errorf("failed to set AI reply channel: %w", err)
	}

	return u.respondEphemeral(
		event.Interaction,
		fmt.Sprintf("AI応答チャンネルを <#%s> に設定しました。", channelID),
	)
}
