package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"warabibot/core"
	"warabibot/models"
)

// VerifyButtonID is the custom id of the persistent verification button.
const VerifyButtonID = "verify_btn"

// handleVerify posts the verification panel with its button. The panel is a
// regular channel message so the button stays pressable indefinitely.
func (u *CommandsUseCase) handleVerify(ctx context.Context, event models.CommandEvent) error {
	return u.discordClient.RespondToInteraction(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "ボタンを押すと認証ロールが付与されます。",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "認証する",
							Style:    discordgo.SuccessButton,
							CustomID: VerifyButtonID,
						},
					},
				},
			},
		},
	})
}

// handleVerifyButton runs the role-grant flow for one button press. The flow
// is idempotent: a repeat press by an already-verified user re-grants the role
// the user already holds, which the platform treats as a no-op, and still
// acks success. Missing bot capabilities terminate the flow with an
// ephemeral instruction to contact an administrator; the user may retry by
// pressing again.
func (u *CommandsUseCase) handleVerifyButton(ctx context.Context, event models.ButtonEvent) error {
	if event.GuildID == "" {
		return u.respondEphemeral(event.Interaction, "サーバー内でのみ利用できます。")
	}

	role, err := u.ensureVerifyRole(event.GuildID)
	if err != nil {
		if core.IsCapabilityDenied(err) {
			return u.respondEphemeral(event.Interaction, "ロール作成権限がありません。管理者に連絡してください。")
		}
		return err
	}

	if err := u.discordClient.AddMemberRole(event.GuildID, event.UserID, role.ID, "Verified via button"); err != nil {
		if core.IsCapabilityDenied(err) {
			return u.respondEphemeral(event.Interaction, "ロール付与に失敗しました。権限を確認してください。")
		}
		return err
	}

	return u.respondEphemeral(event.Interaction, fmt.Sprintf("<@%s> さんを認証しました。", event.UserID))
}

// ensureVerifyRole returns the guild's verification role, creating it if
// absent. Two concurrent creators may race; a create failure is resolved by
// re-reading the role list, so exactly one role survives either way.
func (u *CommandsUseCase) ensureVerifyRole(guildID string) (*discordgo.Role, error) {
	roles, err := u.discordClient.GetGuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild roles: %w", err)
	}
	if role := findRoleByName(roles, u.verifyRoleName); role != nil {
		return role, nil
	}

	role, createErr := u.discordClient.CreateGuildRole(guildID, u.verifyRoleName, "Verify role auto-created")
	if createErr == nil {
		return role, nil
	}

	roles, err = u.discordClient.GetGuildRoles(guildID)
	if err == nil {
		if role := findRoleByName(roles, u.verifyRoleName); role != nil {
			return role, nil
		}
	}
	return nil, fmt.Errorf("failed to create verify role: %w", createErr)
}

func findRoleByName(roles []*discordgo.Role, name string) *discordgo.Role {
	for _, role := range roles {
		if role.Name == name {
			return role
		}
	}
	return nil
}
