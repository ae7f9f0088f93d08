package permissions

import (
	"github.com/bwmarrin/discordgo"
)

// PermissionsService evaluates whether the invoking member holds the
// capability a command requires. The permission bits are the ones resolved by
// the gateway at invocation time and delivered on the interaction, so a
// revoked grant is observed immediately.
type PermissionsService struct{}

// NewPermissionsService creates a new permissions service
func NewPermissionsService() *PermissionsService {
	return &PermissionsService{}
}

func (s *PermissionsService) Authorize(member *discordgo.Member, requiredPermission int64) bool {
	if requiredPermission == 0 {
		return true
	}
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return member.Permissions&requiredPermission == requiredPermission
}
