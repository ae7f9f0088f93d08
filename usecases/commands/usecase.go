package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"warabibot/clients"
	"warabibot/core"
	"warabibot/models"
	"warabibot/services"
)

// commandHandler binds a registered command to its gateway definition, its
// required capability and its body. The registry is immutable after process
// start.
type commandHandler struct {
	definition         *discordgo.ApplicationCommand
	requiredPermission int64
	guildOnly          bool
	handle             func(ctx context.Context, event models.CommandEvent) error
}

// CommandsUseCase routes command and button interactions to their handlers.
// Every invocation produces exactly one externally visible response: either
// the handler responds (immediately or deferred-then-followed), or the
// dispatch boundary converts the handler's failure into a user-facing message.
type CommandsUseCase struct {
	discordClient      clients.DiscordClient
	guildConfigService services.GuildConfigService
	permissionsService services.PermissionsService
	verifyRoleName     string
	httpClient         *http.Client

	registry map[string]*commandHandler
}

// NewCommandsUseCase creates a new instance of CommandsUseCase and registers
// the command set
func NewCommandsUseCase(
	discordClient clients.DiscordClient,
	guildConfigService services.GuildConfigService,
	permissionsService services.PermissionsService,
	verifyRoleName string,
) *CommandsUseCase {
	u := &CommandsUseCase{
		discordClient:      discordClient,
		guildConfigService: guildConfigService,
		permissionsService: permissionsService,
		verifyRoleName:     verifyRoleName,
		httpClient:         &http.Client{Timeout: 10 * time.Second},
	}
	u.registry = u.buildRegistry()
	return u
}

func (u *CommandsUseCase) buildRegistry() map[string]*commandHandler {
	handlers := []*commandHandler{
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "clearmessages",
				Description: "指定数のメッセージを削除",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "count",
						Description: "削除するメッセージ数（最大100）",
						Required:    true,
					},
				},
			},
			requiredPermission: discordgo.PermissionManageMessages,
			guildOnly:          true,
			handle:             u.handleClearMessages,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "verify",
				Description: "認証ボタンを表示",
			},
			requiredPermission: discordgo.PermissionManageRoles,
			guildOnly:          true,
			handle:             u.handleVerify,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "chatset",
				Description: "AI応答チャンネルを設定",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "AIが返信するチャンネル",
						Required:    true,
					},
				},
			},
			requiredPermission: discordgo.PermissionManageChannels,
			guildOnly:          true,
			handle:             u.handleChatSet,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "timeout",
				Description: "ユーザーをタイムアウト",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "member",
						Description: "対象ユーザー",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "seconds",
						Description: "秒数（最大28日）",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "reason",
						Description: "理由",
					},
				},
			},
			requiredPermission: discordgo.PermissionModerateMembers,
			guildOnly:          true,
			handle:             u.handleTimeout,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "kick",
				Description: "ユーザーをキック",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "member",
						Description: "対象ユーザー",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "reason",
						Description: "理由",
					},
				},
			},
			requiredPermission: discordgo.PermissionKickMembers,
			guildOnly:          true,
			handle:             u.handleKick,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "ban",
				Description: "ユーザーをBAN",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "member",
						Description: "対象ユーザー",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "reason",
						Description: "理由",
					},
				},
			},
			requiredPermission: discordgo.PermissionBanMembers,
			guildOnly:          true,
			handle:             u.handleBan,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "qrcode",
				Description: "URLのQRコードを生成",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "url",
						Description: "QRコード化するURL",
						Required:    true,
					},
				},
			},
			handle: u.handleQRCode,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "ipinfo",
				Description: "IPアドレスの情報を表示",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "ip",
						Description: "例: 8.8.8.8",
						Required:    true,
					},
				},
			},
			handle: u.handleIPInfo,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "serverinfo",
				Description: "サーバー情報を表示",
			},
			guildOnly: true,
			handle:    u.handleServerInfo,
		},
		{
			definition: &discordgo.ApplicationCommand{
				Name:        "userinfo",
				Description: "ユーザー情報を表示",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "対象ユーザー",
						Required:    true,
					},
				},
			},
			handle: u.handleUserInfo,
		},
	}

	registry := make(map[string]*commandHandler, len(handlers))
	for _, handler := range handlers {
		registry[handler.definition.Name] = handler
	}
	return registry
}

// CommandDefinitions returns the gateway definitions of all registered
// commands, for bulk registration at startup.
func (u *CommandsUseCase) CommandDefinitions() []*discordgo.ApplicationCommand {
	definitions := make([]*discordgo.ApplicationCommand, 0, len(u.registry))
	for _, handler := range u.registry {
		definitions = append(definitions, handler.definition)
	}
	return definitions
}

// DispatchCommand resolves and runs the handler for a command invocation.
// Unknown commands are ignored. A capability denial responds to the actor and
// skips the handler body; it is expected user-facing behavior, not a fault.
func (u *CommandsUseCase) DispatchCommand(ctx context.Context, event models.CommandEvent) error {
	handler, ok := u.registry[event.CommandName]
	if !ok {
		log.Printf("⚠️ [%s] Unknown command /%s - ignoring", event.ID, event.CommandName)
		return nil
	}

	if handler.guildOnly && event.GuildID == "" {
		return u.respondEphemeral(event.Interaction, "サーバー内でのみ利用できます。")
	}

	if !u.permissionsService.Authorize(event.Member, handler.requiredPermission) {
		log.Printf("📋 [%s] Capability denied for user %s on /%s", event.ID, event.UserID, event.CommandName)
		return u.respondEphemeral(event.Interaction, "このコマンドを実行する権限がありません。")
	}

	log.Printf("📋 [%s] Dispatching /%s for user %s in guild %s", event.ID, event.CommandName, event.UserID, event.GuildID)
	if err := handler.handle(ctx, event); err != nil {
		log.Printf("❌ [%s] Command /%s failed: %v", event.ID, event.CommandName, err)
		u.reportFailure(event.Interaction, err)
	}
	return nil
}

// DispatchButton routes a component press to its handler. Unknown custom ids
// are ignored.
func (u *CommandsUseCase) DispatchButton(ctx context.Context, event models.ButtonEvent) error {
	switch event.CustomID {
	case VerifyButtonID:
		log.Printf("📋 [%s] Dispatching verify button press by user %s in guild %s", event.ID, event.UserID, event.GuildID)
		if err := u.handleVerifyButton(ctx, event); err != nil {
			log.Printf("❌ [%s] Verify button failed: %v", event.ID, err)
			u.reportFailure(event.Interaction, err)
		}
		return nil
	default:
		log.Printf("⚠️ [%s] Unknown component %q - ignoring", event.ID, event.CustomID)
		return nil
	}
}

// reportFailure delivers the failure-describing response for a handler that
// errored out. The interaction may or may not have been acknowledged already,
// so the immediate response is tried first and the follow-up is the fallback.
func (u *CommandsUseCase) reportFailure(interaction *discordgo.Interaction, err error) {
	content := fmt.Sprintf("エラーが発生しました: %v", err)
	if core.IsCapabilityDenied(err) {
		content = "権限不足で失敗しました。"
	}

	respondErr := u.discordClient.RespondToInteraction(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if respondErr == nil {
		return
	}
	_, followErr := u.discordClient.FollowUpInteraction(interaction, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if followErr != nil {
		log.Printf("❌ Failed to report command failure to actor: %v", followErr)
	}
}

func (u *CommandsUseCase) respondEphemeral(interaction *discordgo.Interaction, content string) error {
	return u.discordClient.RespondToInteraction(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (u *CommandsUseCase) followUpText(interaction *discordgo.Interaction, content string) error {
	_, err := u.discordClient.FollowUpInteraction(interaction, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

func intOption(event models.CommandEvent, name string) (int64, bool) {
	opt, ok := event.Options[name]
	if !ok {
		return 0, false
	}
	return opt.IntValue(), true
}

func stringOption(event models.CommandEvent, name string) (string, bool) {
	opt, ok := event.Options[name]
	if !ok {
		return "", false
	}
	return opt.StringValue(), true
}

func stringOptionWithDefault(event models.CommandEvent, name, defaultValue string) string {
	if value, ok := stringOption(event, name); ok && value != "" {
		return value
	}
	return defaultValue
}

func userOptionID(event models.CommandEvent, name string) (string, bool) {
	opt, ok := event.Options[name]
	if !ok {
		return "", false
	}
	user := opt.UserValue(nil)
	if user == nil {
		return "", false
	}
	return user.ID, true
}

func channelOptionID(event models.CommandEvent, name string) (string, bool) {
	opt, ok := event.Options[name]
	if !ok {
		return "", false
	}
	channel := opt.ChannelValue(nil)
	if channel == nil {
		return "", false
	}
	return channel.ID, true
}
