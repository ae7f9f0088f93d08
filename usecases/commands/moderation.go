package commands

import (
	"context"
	"fmt"
	"time"

	"warabibot/models"
	"warabibot/utils"
)

const (
	minDeleteCount = 1
	maxDeleteCount = 100

	minTimeoutSeconds = 1
	maxTimeoutSeconds = 2419200 // 28 days

	defaultReason = "なし"
)

// handleClearMessages purges up to count recent messages from the invoking
// channel. The count is clamped into [1,100]; the response reports the number
// actually deleted, which can be lower in a short channel.
func (u *CommandsUseCase) handleClearMessages(ctx context.Context, event models.CommandEvent) error {
	count, ok := intOption(event, "count")
	if !ok {
		return fmt.Errorf("count option is missing")
	}

	if err := u.discordClient.DeferInteraction(event.Interaction, true); err != nil {
		return fmt.Errorf("failed to defer clearmessages: %w", err)
	}

	effective := utils.ClampInt(int(count), minDeleteCount, maxDeleteCount)
	deleted, err := u.discordClient.PurgeChannelMessages(event.ChannelID, effective)
	if err != nil {
		return fmt.Errorf("failed to purge channel %s: %w", event.ChannelID, err)
	}

	return u.followUpText(event.Interaction, fmt.Sprintf("%d件のメッセージを削除しました。", deleted))
}

func (u *CommandsUseCase) handleTimeout(ctx context.Context, event models.CommandEvent) error {
	targetID, ok := userOptionID(event, "member")
	if !ok {
		return fmt.Errorf("member option is missing")
	}
	seconds, ok := intOption(event, "seconds")
	if !ok {
		return fmt.Errorf("seconds option is missing")
	}
	reason := stringOptionWithDefault(event, "reason", defaultReason)

	if err := u.discordClient.DeferInteraction(event.Interaction, true); err != nil {
		return fmt.Errorf("failed to defer timeout: %w", err)
	}

	effective := utils.ClampInt(int(seconds), minTimeoutSeconds, maxTimeoutSeconds)
	until := time.Now().Add(time.Duration(effective) * time.Second)
	if err := u.discordClient.TimeoutMember(event.GuildID, targetID, until, reason); err != nil {
		return fmt.Errorf("failed to timeout member %s: %w", targetID, err)
	}

	return u.followUpText(
		event.Interaction,
		fmt.Sprintf("<@%s> を %d秒 タイムアウトしました。理由: %s", targetID, effective, reason),
	)
}

func (u *CommandsUseCase) handleKick(ctx context.Context, event models.CommandEvent) error {
	targetID, ok := userOptionID(event, "member")
	if !ok {
		return fmt.Errorf("member option is missing")
	}
	reason := stringOptionWithDefault(event, "reason", defaultReason)

	if err := u.discordClient.DeferInteraction(event.Interaction, true); err != nil {
		return fmt.Errorf("failed to defer kick: %w", err)
	}

	if err := u.discordClient.KickMember(event.GuildID, targetID, reason); err != nil {
		return fmt.Errorf("failed to kick member %s: %w", targetID, err)
	}

	return u.followUpText(
		event.Interaction,
		fmt.Sprintf("<@%s> をキックしました。理由: %s", targetID, reason),
	)
}

func (u *CommandsUseCase) handleBan(ctx context.Context, event models.CommandEvent) error {
	targetID, ok := userOptionID(event, "member")
	if !ok {
		return fmt.Errorf("member option is missing")
	}
	reason := stringOptionWithDefault(event, "reason", defaultReason)

	if err := u.discordClient.DeferInteraction(event.Interaction, true); err != nil {
		return fmt.Errorf("failed to defer ban: %w", err)
	}

	if err := u.discordClient.BanMember(event.GuildID, targetID, reason); err != nil {
		return fmt.Errorf("failed to ban member %s: %w", targetID, err)
	}

	return u.followUpText(
		event.Interaction,
		fmt.Sprintf("<@%s> をBANしました。理由: %s", targetID, reason),
	)
}
