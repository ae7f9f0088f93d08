package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	qrcode "github.com/skip2/go-qrcode"

	"warabibot/models"
)

// ipAPIBaseURL is a var so tests can point the lookup at a local server.
var ipAPIBaseURL = "https://ipapi.co"

const (
	ipInfoEmbedColor     = 0x00AAFF
	serverInfoEmbedColor = 0x2ECC71
	userInfoEmbedColor   = 0x3498DB

	qrCodeSize = 256
)

func (u *CommandsUseCase) handleQRCode(ctx context.Context, event models.CommandEvent) error {
	url, ok := stringOption(event, "url")
	if !ok {
		return fmt.Errorf("url option is missing")
	}

	if err := u.discordClient.DeferInteraction(event.Interaction, false); err != nil {
		return fmt.Errorf("failed to defer qrcode: %w", err)
	}

	png, err := qrcode.Encode(url, qrcode.Medium, qrCodeSize)
	if err != nil {
		return fmt.Errorf("failed to encode QR code: %w", err)
	}

	_, err = u.discordClient.FollowUpInteraction(event.Interaction, &discordgo.WebhookParams{
		Content: "QRコードを生成しました。",
		Files: []*discordgo.File{
			{
				Name:        "qrcode.png",
				ContentType: "image/png",
				Reader:      bytes.NewReader(png),
			},
		},
	})
	return err
}

type ipInfoResponse struct {
	IP          string  `json:"ip"`
	CountryName string  `json:"country_name"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Postal      string  `json:"postal"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Org         string  `json:"org"`
	Timezone    string  `json:"timezone"`
	Error       bool    `json:"error"`
	Reason      string  `json:"reason"`
}

func (u *CommandsUseCase) handleIPInfo(ctx context.Context, event models.CommandEvent) error {
	ip, ok := stringOption(event, "ip")
	if !ok {
		return fmt.Errorf("ip option is missing")
	}

	if err := u.discordClient.DeferInteraction(event.Interaction, false); err != nil {
		return fmt.Errorf("failed to defer ipinfo: %w", err)
	}

	info, err := u.lookupIP(ctx, ip)
	if err != nil {
		return fmt.Errorf("failed to look up IP %s: %w", ip, err)
	}
	if info.Error {
		reason := info.Reason
		if reason == "" {
			reason = "unknown"
		}
		_, err = u.discordClient.FollowUpInteraction(event.Interaction, &discordgo.WebhookParams{
			Content: fmt.Sprintf("取得に失敗しました: %s", reason),
		})
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: "IP情報",
		Color: ipInfoEmbedColor,
	}
	addInlineField(embed, "IP", info.IP)
	addInlineField(embed, "国", info.CountryName)
	addInlineField(embed, "地域", info.Region)
	addInlineField(embed, "都市", info.City)
	addInlineField(embed, "郵便番号", info.Postal)
	addInlineField(embed, "緯度", formatCoordinate(info.Latitude))
	addInlineField(embed, "経度", formatCoordinate(info.Longitude))
	addInlineField(embed, "組織", info.Org)
	addInlineField(embed, "タイムゾーン", info.Timezone)

	_, err = u.discordClient.FollowUpInteraction(event.Interaction, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}

func (u *CommandsUseCase) lookupIP(ctx context.Context, ip string) (*ipInfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", ipAPIBaseURL, ip), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create IP lookup request: %w", err)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute IP lookup request: %w", err)
	}
	defer resp.Body.Close()

	var info ipInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode IP lookup response: %w", err)
	}
	return &info, nil
}

func (u *CommandsUseCase) handleServerInfo(ctx context.Context, event models.CommandEvent) error {
	guild, err := u.discordClient.GetGuildByID(event.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch guild %s: %w", event.GuildID, err)
	}

	embed := &discordgo.MessageEmbed{
		Title: "サーバー情報",
		Color: serverInfoEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "名前", Value: guild.Name, Inline: true},
			{Name: "ID", Value: guild.ID, Inline: true},
			{Name: "メンバー数", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
		},
	}
	if guild.OwnerID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "オーナー",
			Value: fmt.Sprintf("<@%s>", guild.OwnerID),
		})
	}
	if created, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "作成日",
			Value: created.UTC().Format("2006-01-02 15:04:05 UTC"),
		})
	}
	if len(guild.Features) > 0 {
		features := make([]string, len(guild.Features))
		for i, feature := range guild.Features {
			features[i] = string(feature)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "機能",
			Value: strings.Join(features, ", "),
		})
	}

	return u.discordClient.RespondToInteraction(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (u *CommandsUseCase) handleUserInfo(ctx context.Context, event models.CommandEvent) error {
	targetID, ok := userOptionID(event, "user")
	if !ok {
		return fmt.Errorf("user option is missing")
	}

	user, err := u.discordClient.GetUser(targetID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", targetID, err)
	}

	embed := &discordgo.MessageEmbed{
		Title: "ユーザー情報",
		Color: userInfoEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: user.ID, Inline: true},
			{Name: "Bot", Value: fmt.Sprintf("%t", user.Bot), Inline: true},
		},
	}
	if user.Username != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    user.Username,
			IconURL: user.AvatarURL(""),
		}
	}
	if created, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "作成日",
			Value: created.UTC().Format("2006-01-02 15:04:05 UTC"),
		})
	}

	// Guild membership details are best-effort: the target may not be a
	// member of the invoking guild.
	if event.GuildID != "" {
		if member, err := u.discordClient.GetGuildMember(event.GuildID, targetID); err == nil {
			appendMemberFields(embed, member)
		}
	}

	return u.discordClient.RespondToInteraction(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func appendMemberFields(embed *discordgo.MessageEmbed, member *discordgo.Member) {
	joined := "不明"
	if !member.JoinedAt.IsZero() {
		joined = member.JoinedAt.UTC().Format("2006-01-02 15:04:05 UTC")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "参加日",
		Value: joined,
	})

	if len(member.Roles) > 0 {
		mentions := make([]string, len(member.Roles))
		for i, roleID := range member.Roles {
			mentions[i] = fmt.Sprintf("<@&%s>", roleID)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "ロール",
			Value: strings.Join(mentions, ", "),
		})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "ロール",
			Value: "なし",
		})
	}
}

func addInlineField(embed *discordgo.MessageEmbed, name, value string) {
	if value == "" {
		return
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   name,
		Value:  value,
		Inline: true,
	})
}

func formatCoordinate(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%g", v)
}
