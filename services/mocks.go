package services

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
)

// MockGuildConfigService is a mock implementation of the GuildConfigService interface
type MockGuildConfigService struct {
	mock.Mock
}

func (m *MockGuildConfigService) GetAIReplyChannel(ctx context.Context, guildID string) (mo.Option[string], error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return mo.None[string](), args.Error(1)
	}
	return args.Get(0).(mo.Option[string]), args.Error(1)
}

func (m *MockGuildConfigService) SetAIReplyChannel(ctx context.Context, guildID, channelID string) error {
	args := m.Called(ctx, guildID, channelID)
	return args.Error(0)
}

// MockPermissionsService is a mock implementation of the PermissionsService interface
type MockPermissionsService struct {
	mock.Mock
}

func (m *MockPermissionsService) Authorize(member *discordgo.Member, requiredPermission int64) bool {
	args := m.Called(member, requiredPermission)
	return args.Bool(0)
}
