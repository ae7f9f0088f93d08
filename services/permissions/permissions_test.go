package permissions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestPermissionsService_Authorize(t *testing.T) {
	service := NewPermissionsService()

	tests := []struct {
		name     string
		member   *discordgo.Member
		required int64
		expected bool
	}{
		{
			name:     "member holds required permission",
			member:   &discordgo.Member{Permissions: discordgo.PermissionManageMessages},
			required: discordgo.PermissionManageMessages,
			expected: true,
		},
		{
			name:     "member lacks required permission",
			member:   &discordgo.Member{Permissions: discordgo.PermissionSendMessages},
			required: discordgo.PermissionManageMessages,
			expected: false,
		},
		{
			name:     "administrator passes any check",
			member:   &discordgo.Member{Permissions: discordgo.PermissionAdministrator},
			required: discordgo.PermissionBanMembers,
			expected: true,
		},
		{
			name:     "no permission required",
			member:   &discordgo.Member{Permissions: 0},
			required: 0,
			expected: true,
		},
		{
			name:     "nil member with permission required",
			member:   nil,
			required: discordgo.PermissionManageRoles,
			expected: false,
		},
		{
			name:     "nil member with no permission required",
			member:   nil,
			required: 0,
			expected: true,
		},
		{
			name: "member holds superset of required permission",
			member: &discordgo.Member{
				Permissions: discordgo.PermissionManageMessages | discordgo.PermissionKickMembers,
			},
			required: discordgo.PermissionKickMembers,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Authorize(tt.member, tt.required))
		})
	}
}
