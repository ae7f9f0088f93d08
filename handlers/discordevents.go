package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"warabibot/core"
	"warabibot/models"
	"warabibot/usecases/commands"
	"warabibot/usecases/messages"
)

// DiscordEventsHandler owns the gateway session: it maps SDK events to domain
// models and hands them to the usecases. Each inbound event is processed on
// its own goroutine so one event's external I/O never blocks delivery of the
// next.
type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	commandsUseCase  *commands.CommandsUseCase
	routerUseCase    *messages.RouterUseCase
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	commandsUseCase *commands.CommandsUseCase,
	routerUseCase *messages.RouterUseCase,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		commandsUseCase:  commandsUseCase,
		routerUseCase:    routerUseCase,
	}

	// Register event handlers
	session.AddHandler(handler.handleInteractionCreatedEvent)
	session.AddHandler(handler.handleMessageCreatedEvent)

	// Set intents to receive guild, member and message events, including
	// messages in DM channels
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers

	return handler
}

// StartBot opens the Discord connection and registers the slash command set
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	appID := h.discordSDKClient.State.User.ID
	definitions := h.commandsUseCase.CommandDefinitions()
	if _, err := h.discordSDKClient.ApplicationCommandBulkOverwrite(appID, "", definitions); err != nil {
		return fmt.Errorf("failed to register application commands: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() {
	h.discordSDKClient.Close()
}

// handleInteractionCreatedEvent dispatches slash command invocations and
// component presses
func (h *DiscordEventsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		event := h.mapToCommandEvent(i)
		log.Printf("📨 [%s] Command /%s invoked by user %s in guild %s",
			event.ID, event.CommandName, event.UserID, event.GuildID)
		go func() {
			if err := h.commandsUseCase.DispatchCommand(context.Background(), event); err != nil {
				log.Printf("❌ [%s] Failed to dispatch command: %v", event.ID, err)
			}
		}()
	case discordgo.InteractionMessageComponent:
		event := h.mapToButtonEvent(i)
		log.Printf("📨 [%s] Component %s pressed by user %s in guild %s",
			event.ID, event.CustomID, event.UserID, event.GuildID)
		go func() {
			if err := h.commandsUseCase.DispatchButton(context.Background(), event); err != nil {
				log.Printf("❌ [%s] Failed to dispatch button press: %v", event.ID, err)
			}
		}()
	}
}

// handleMessageCreatedEvent routes ordinary channel messages through the
// matcher list
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	event := h.mapToMessageEvent(m)
	go h.routerUseCase.ProcessMessageEvent(context.Background(), event)
}

// mapToCommandEvent maps a Discord SDK command interaction to our domain model
func (h *DiscordEventsHandler) mapToCommandEvent(i *discordgo.InteractionCreate) models.CommandEvent {
	data := i.ApplicationCommandData()

	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, option := range data.Options {
		options[option.Name] = option
	}

	return models.CommandEvent{
		ID:          core.NewID("cmd"),
		CommandName: data.Name,
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		UserID:      interactionUserID(i),
		Member:      i.Member,
		Options:     options,
		Interaction: i.Interaction,
	}
}

// mapToButtonEvent maps a Discord SDK component interaction to our domain model
func (h *DiscordEventsHandler) mapToButtonEvent(i *discordgo.InteractionCreate) models.ButtonEvent {
	return models.ButtonEvent{
		ID:          core.NewID("btn"),
		CustomID:    i.MessageComponentData().CustomID,
		GuildID:     i.GuildID,
		UserID:      interactionUserID(i),
		Member:      i.Member,
		Interaction: i.Interaction,
	}
}

// mapToMessageEvent maps a Discord SDK message event to our domain model
func (h *DiscordEventsHandler) mapToMessageEvent(m *discordgo.MessageCreate) models.MessageEvent {
	return models.MessageEvent{
		ID:            core.NewID("msg"),
		GuildID:       m.GuildID,
		ChannelID:     m.ChannelID,
		MessageID:     m.ID,
		AuthorID:      m.Author.ID,
		Content:       m.Content,
		IsBotAuthored: m.Author.Bot,
	}
}

// interactionUserID resolves the acting user for both guild interactions
// (Member set) and DM interactions (User set)
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
