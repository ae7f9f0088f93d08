package messages

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warabibot/clients"
	discordclient "warabibot/clients/discord"
	"warabibot/models"
	"warabibot/services"
)

func messageEvent(guildID, channelID, content string) models.MessageEvent {
	return models.MessageEvent{
		ID:        "msg_test",
		GuildID:   guildID,
		ChannelID: channelID,
		MessageID: "message-1",
		AuthorID:  "author-1",
		Content:   content,
	}
}

func TestKeywordMatcher_RepliesOnTrigger(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	matcher := NewKeywordMatcher(mockDiscord)

	mockDiscord.On("ReplyToMessage", "guild-1", "channel-1", "message-1", "なんやねん").
		Return(&discordgo.Message{}, nil)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "わらび foo"))
	require.NoError(t, err)
	mockDiscord.AssertExpectations(t)
}

func TestKeywordMatcher_RepliesInDirectMessage(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	matcher := NewKeywordMatcher(mockDiscord)

	// DM messages carry no guild id; the reply still targets the message
	mockDiscord.On("ReplyToMessage", "", "dm-channel-1", "message-1", "なんやねん").
		Return(&discordgo.Message{}, nil)

	err := matcher.Run(context.Background(), messageEvent("", "dm-channel-1", "わらび"))
	require.NoError(t, err)
	mockDiscord.AssertExpectations(t)
}

func TestKeywordMatcher_NoTriggerNoReply(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	matcher := NewKeywordMatcher(mockDiscord)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "hello"))
	require.NoError(t, err)
	mockDiscord.AssertNotCalled(t, "ReplyToMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAIRelayMatcher_RelaysInConfiguredChannel(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockCompletion := new(clients.MockCompletionClient)
	mockGuildConfig := new(services.MockGuildConfigService)
	matcher := NewAIRelayMatcher(mockDiscord, mockCompletion, mockGuildConfig)

	mockGuildConfig.On("GetAIReplyChannel", mock.Anything, "guild-1").Return(mo.Some("channel-1"), nil)
	mockCompletion.On("GenerateCompletion", mock.Anything, "hello").Return("world", nil)
	mockDiscord.On("SendChannelMessage", "channel-1", "world").Return(&discordgo.Message{}, nil)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "hello"))
	require.NoError(t, err)
	mockDiscord.AssertExpectations(t)
	mockCompletion.AssertExpectations(t)
}

func TestAIRelayMatcher_InactiveOutsideConfiguredChannel(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockCompletion := new(clients.MockCompletionClient)
	mockGuildConfig := new(services.MockGuildConfigService)
	matcher := NewAIRelayMatcher(mockDiscord, mockCompletion, mockGuildConfig)

	mockGuildConfig.On("GetAIReplyChannel", mock.Anything, "guild-1").Return(mo.Some("channel-other"), nil)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "hello"))
	require.NoError(t, err)
	mockCompletion.AssertNotCalled(t, "GenerateCompletion", mock.Anything, mock.Anything)
}

func TestAIRelayMatcher_InactiveWithoutGuildConfig(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockCompletion := new(clients.MockCompletionClient)
	mockGuildConfig := new(services.MockGuildConfigService)
	matcher := NewAIRelayMatcher(mockDiscord, mockCompletion, mockGuildConfig)

	mockGuildConfig.On("GetAIReplyChannel", mock.Anything, "guild-1").Return(mo.None[string](), nil)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "hello"))
	require.NoError(t, err)
	mockCompletion.AssertNotCalled(t, "GenerateCompletion", mock.Anything, mock.Anything)
}

func TestAIRelayMatcher_InactiveWithoutCompletionClient(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockGuildConfig := new(services.MockGuildConfigService)
	matcher := NewAIRelayMatcher(mockDiscord, nil, mockGuildConfig)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "hello"))
	require.NoError(t, err)
	mockGuildConfig.AssertNotCalled(t, "GetAIReplyChannel", mock.Anything, mock.Anything)
}

func TestAIRelayMatcher_BlankPromptSkipped(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockCompletion := new(clients.MockCompletionClient)
	mockGuildConfig := new(services.MockGuildConfigService)
	matcher := NewAIRelayMatcher(mockDiscord, mockCompletion, mockGuildConfig)

	mockGuildConfig.On("GetAIReplyChannel", mock.Anything, "guild-1").Return(mo.Some("channel-1"), nil)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "   "))
	require.NoError(t, err)
	mockCompletion.AssertNotCalled(t, "GenerateCompletion", mock.Anything, mock.Anything)
}

func TestAIRelayMatcher_CompletionFailureSurfacedInChannel(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockCompletion := new(clients.MockCompletionClient)
	mockGuildConfig := new(services.MockGuildConfigService)
	matcher := NewAIRelayMatcher(mockDiscord, mockCompletion, mockGuildConfig)

	mockGuildConfig.On("GetAIReplyChannel", mock.Anything, "guild-1").Return(mo.Some("channel-1"), nil)
	mockCompletion.On("GenerateCompletion", mock.Anything, "hello").
		Return("", fmt.Errorf("completion backend unreachable"))
	mockDiscord.On("SendChannelMessage", "channel-1", mock.MatchedBy(func(content string) bool {
		return strings.Contains(content, "AIエラー")
	})).Return(&discordgo.Message{}, nil)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "hello"))
	require.NoError(t, err)
	mockDiscord.AssertExpectations(t)
}

func TestAIRelayMatcher_LongCompletionTruncated(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockCompletion := new(clients.MockCompletionClient)
	mockGuildConfig := new(services.MockGuildConfigService)
	matcher := NewAIRelayMatcher(mockDiscord, mockCompletion, mockGuildConfig)

	long := strings.Repeat("a", 3000)
	mockGuildConfig.On("GetAIReplyChannel", mock.Anything, "guild-1").Return(mo.Some("channel-1"), nil)
	mockCompletion.On("GenerateCompletion", mock.Anything, "hello").Return(long, nil)
	mockDiscord.On("SendChannelMessage", "channel-1", mock.MatchedBy(func(content string) bool {
		return len([]rune(content)) == maxReplyRunes
	})).Return(&discordgo.Message{}, nil)

	err := matcher.Run(context.Background(), messageEvent("guild-1", "channel-1", "hello"))
	require.NoError(t, err)
	mockDiscord.AssertExpectations(t)
}

// failingMatcher always errors; used to prove sibling isolation.
type failingMatcher struct{ ran *bool }

func (m *failingMatcher) Name() string { return "failing" }
func (m *failingMatcher) Run(ctx context.Context, event models.MessageEvent) error {
	*m.ran = true
	return fmt.Errorf("send failed")
}

type recordingMatcher struct{ ran *bool }

func (m *recordingMatcher) Name() string { return "recording" }
func (m *recordingMatcher) Run(ctx context.Context, event models.MessageEvent) error {
	*m.ran = true
	return nil
}

func TestRouter_MatcherFailureDoesNotStopSiblings(t *testing.T) {
	firstRan, secondRan := false, false
	router := NewRouterUseCase(
		&failingMatcher{ran: &firstRan},
		&recordingMatcher{ran: &secondRan},
	)

	router.ProcessMessageEvent(context.Background(), messageEvent("guild-1", "channel-1", "hello"))

	require.True(t, firstRan, "failing matcher should have run")
	require.True(t, secondRan, "second matcher should run despite first failing")
}

func TestRouter_KeywordFailureDoesNotStopAIRelay(t *testing.T) {
	mockDiscord := new(discordclient.MockDiscordClient)
	mockCompletion := new(clients.MockCompletionClient)
	mockGuildConfig := new(services.MockGuildConfigService)

	// Keyword reply send fails; AI relay must still run for the same message
	mockDiscord.On("ReplyToMessage", "guild-1", "channel-1", "message-1", "なんやねん").
		Return(nil, fmt.Errorf("send failed"))
	mockGuildConfig.On("GetAIReplyChannel", mock.Anything, "guild-1").Return(mo.Some("channel-1"), nil)
	mockCompletion.On("GenerateCompletion", mock.Anything, "わらび foo").Return("world", nil)
	mockDiscord.On("SendChannelMessage", "channel-1", "world").Return(&discordgo.Message{}, nil)

	router := NewRouterUseCase(
		NewKeywordMatcher(mockDiscord),
		NewAIRelayMatcher(mockDiscord, mockCompletion, mockGuildConfig),
	)
	router.ProcessMessageEvent(context.Background(), messageEvent("guild-1", "channel-1", "わらび foo"))

	mockDiscord.AssertExpectations(t)
	mockCompletion.AssertExpectations(t)
}

func TestRouter_BotAuthoredMessagesIgnored(t *testing.T) {
	ran := false
	router := NewRouterUseCase(&recordingMatcher{ran: &ran})

	event := messageEvent("guild-1", "channel-1", "わらび")
	event.IsBotAuthored = true
	router.ProcessMessageEvent(context.Background(), event)

	require.False(t, ran, "matchers should not run for bot-authored messages")
}
