package models

import "github.com/bwmarrin/discordgo"

// CommandEvent is a slash command invocation mapped from the gateway.
// The embedded Interaction is the response handle: every command invocation
// must produce exactly one externally visible response through it.
type CommandEvent struct {
	// ID is a per-dispatch correlation id used in logs.
	ID          string
	CommandName string
	GuildID     string
	ChannelID   string
	UserID      string
	// Member carries the invoker's resolved permission bits at invocation
	// time. Nil for invocations outside a guild.
	Member      *discordgo.Member
	Options     map[string]*discordgo.ApplicationCommandInteractionDataOption
	Interaction *discordgo.Interaction
}

// ButtonEvent is a message component (button) press mapped from the gateway.
type ButtonEvent struct {
	ID          string
	CustomID    string
	GuildID     string
	UserID      string
	Member      *discordgo.Member
	Interaction *discordgo.Interaction
}

// MessageEvent is an inbound channel message mapped from the gateway.
type MessageEvent struct {
	ID        string
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
	// IsBotAuthored messages are never routed through the matchers.
	IsBotAuthored bool
}
