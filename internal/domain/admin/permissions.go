package admin

// Permission represents an admin permission
type Permission string

const (
	// User management
	PermViewUsers  Permission = "users.view"
	PermBlockUsers Permission = "users.block"

	// Listing moderation
	PermViewSpaces     Permission = "spaces.view"
	PermModerateSpaces Permission = "spaces.moderate"
	PermDeleteSpaces   Permission = "spaces.delete"

	// Bookings
	PermViewBookings Permission = "bookings.view"

	// System
	PermViewAnalytics Permission = "analytics.view"
	PermManageAdmins  Permission = "admins.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermViewUsers, PermBlockUsers,
		PermViewSpaces, PermModerateSpaces, PermDeleteSpaces,
		PermViewBookings,
		PermViewAnalytics, PermManageAdmins,
	},
	RoleAdmin: {
		PermViewUsers, PermBlockUsers,
		PermViewSpaces, PermModerateSpaces, PermDeleteSpaces,
		PermViewBookings,
		PermViewAnalytics,
	},
	RoleModerator: {
		PermViewUsers,
		PermViewSpaces, PermModerateSpaces,
		PermViewAnalytics,
	},
}
