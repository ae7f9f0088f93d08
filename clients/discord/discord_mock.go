package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// MockDiscordClient is a mock implementation of the clients.DiscordClient interface
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) RespondToInteraction(
	interaction *discordgo.Interaction,
	response *discordgo.InteractionResponse,
) error {
	args := m.Called(interaction, response)
	return args.Error(0)
}

func (m *MockDiscordClient) DeferInteraction(interaction *discordgo.Interaction, ephemeral bool) error {
	args := m.Called(interaction, ephemeral)
	return args.Error(0)
}

func (m *MockDiscordClient) FollowUpInteraction(
	interaction *discordgo.Interaction,
	params *discordgo.WebhookParams,
) (*discordgo.Message, error) {
	args := m.Called(interaction, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockDiscordClient) PurgeChannelMessages(channelID string, limit int) (int, error) {
	args := m.Called(channelID, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockDiscordClient) SendChannelMessage(channelID, content string) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockDiscordClient) ReplyToMessage(
	guildID, channelID, messageID, content string,
) (*discordgo.Message, error) {
	args := m.Called(guildID, channelID, messageID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockDiscordClient) GetGuildByID(guildID string) (*discordgo.Guild, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Guild), args.Error(1)
}

func (m *MockDiscordClient) GetGuildMember(guildID, userID string) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Member), args.Error(1)
}

func (m *MockDiscordClient) GetUser(userID string) (*discordgo.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.User), args.Error(1)
}

func (m *MockDiscordClient) GetGuildRoles(guildID string) ([]*discordgo.Role, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.Role), args.Error(1)
}

func (m *MockDiscordClient) CreateGuildRole(guildID, name, reason string) (*discordgo.Role, error) {
	args := m.Called(guildID, name, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Role), args.Error(1)
}

func (m *MockDiscordClient) AddMemberRole(guildID, userID, roleID, reason string) error {
	args := m.Called(guildID, userID, roleID, reason)
	return args.Error(0)
}

func (m *MockDiscordClient) TimeoutMember(guildID, userID string, until time.Time, reason string) error {
	args := m.Called(guildID, userID, until, reason)
	return args.Error(0)
}

func (m *MockDiscordClient) KickMember(guildID, userID, reason string) error {
	args := m.Called(guildID, userID, reason)
	return args.Error(0)
}

func (m *MockDiscordClient) BanMember(guildID, userID, reason string) error {
	args := m.Called(guildID, userID, reason)
	return args.Error(0)
}
