package messages

import (
	"context"
	"fmt"
	"log"
	"strings"

	"warabibot/clients"
	"warabibot/models"
	"warabibot/services"
	"warabibot/utils"
)

const (
	keywordTrigger = "わらび"
	keywordReply   = "なんやねん"

	// Discord caps messages at 2000 characters; AI replies are truncated a
	// little below that.
	maxReplyRunes = 1950
)

// Matcher is one independent reaction to an inbound message. Matchers run in
// registration order and in isolation: a failure is logged by the router and
// never suppresses the matchers after it.
type Matcher interface {
	Name() string
	Run(ctx context.Context, event models.MessageEvent) error
}

// RouterUseCase applies the ordered matcher list to every non-bot message.
type RouterUseCase struct {
	matchers []Matcher
}

// NewRouterUseCase creates a router over the given matchers
func NewRouterUseCase(matchers ...Matcher) *RouterUseCase {
	return &RouterUseCase{matchers: matchers}
}

// ProcessMessageEvent runs every matcher against the message. Matcher errors
// are contained here; one matcher failing never prevents the next from
// running, and nothing propagates to the caller.
func (u *RouterUseCase) ProcessMessageEvent(ctx context.Context, event models.MessageEvent) {
	if event.IsBotAuthored {
		return
	}
	for _, matcher := range u.matchers {
		if err := matcher.Run(ctx, event); err != nil {
			log.Printf("⚠️ [%s] Matcher %s failed: %v", event.ID, matcher.Name(), err)
		}
	}
}

// KeywordMatcher replies with a fixed message when the trigger substring
// appears anywhere in the body. The reply is best-effort: send failures are
// returned for logging only.
type KeywordMatcher struct {
	discordClient clients.DiscordClient
	trigger       string
	reply         string
}

// NewKeywordMatcher creates the keyword auto-reply matcher with the default
// trigger and reply
func NewKeywordMatcher(discordClient clients.DiscordClient) *KeywordMatcher {
	return &KeywordMatcher{
		discordClient: discordClient,
		trigger:       keywordTrigger,
		reply:         keywordReply,
	}
}

func (m *KeywordMatcher) Name() string { return "keyword" }

func (m *KeywordMatcher) Run(ctx context.Context, event models.MessageEvent) error {
	if !strings.Contains(event.Content, m.trigger) {
		return nil
	}
	_, err := m.discordClient.ReplyToMessage(event.GuildID, event.ChannelID, event.MessageID, m.reply)
	if err != nil {
		return fmt.Errorf("failed to send keyword reply: %w", err)
	}
	return nil
}

// AIRelayMatcher forwards the message body to the completion service when the
// message arrives in the guild's configured AI channel, and posts the result
// back to the same channel. A completion failure is surfaced as a visible
// error message in the channel, not propagated.
type AIRelayMatcher struct {
	discordClient      clients.DiscordClient
	completionClient   clients.CompletionClient
	guildConfigService services.GuildConfigService
}

// NewAIRelayMatcher creates the AI relay matcher. completionClient may be nil
// when no provider is configured; the matcher is then inert.
func NewAIRelayMatcher(
	discordClient clients.DiscordClient,
	completionClient clients.CompletionClient,
	guildConfigService services.GuildConfigService,
) *AIRelayMatcher {
	return &AIRelayMatcher{
		discordClient:      discordClient,
		completionClient:   completionClient,
		guildConfigService: guildConfigService,
	}
}

func (m *AIRelayMatcher) Name() string { return "ai-relay" }

func (m *AIRelayMatcher) Run(ctx context.Context, event models.MessageEvent) error {
	if m.completionClient == nil || event.GuildID == "" {
		return nil
	}

	maybeChannel, err := m.guildConfigService.GetAIReplyChannel(ctx, event.GuildID)
	if err != nil {
		return fmt.Errorf("failed to read guild config: %w", err)
	}
	if !maybeChannel.IsPresent() || maybeChannel.MustGet() != event.ChannelID {
		return nil
	}

	prompt := strings.TrimSpace(event.Content)
	if prompt == "" {
		return nil
	}

	log.Printf("📋 [%s] Relaying prompt to completion service for guild %s", event.ID, event.GuildID)
	completion, err := m.completionClient.GenerateCompletion(ctx, prompt)
	if err != nil {
		// Surface the failure in the channel; the send itself is best-effort
		_, sendErr := m.discordClient.SendChannelMessage(event.ChannelID, fmt.Sprintf("AIエラー: %v", err))
		if sendErr != nil {
			return fmt.Errorf("failed to report completion error: %w", sendErr)
		}
		return nil
	}

	_, err = m.discordClient.SendChannelMessage(event.ChannelID, utils.TruncateString(completion, maxReplyRunes))
	if err != nil {
		return fmt.Errorf("failed to send completion reply: %w", err)
	}
	return nil
}
