package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile    Permission = "profile.view_own"
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionScheduleViewOwn   Permission = "schedule.view_own"
	PermissionLeaderboardView   Permission = "leaderboard.view"

	// Administration
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionUserManage        Permission = "user.manage"
	PermissionTasksAssign       Permission = "tasks.assign"
	PermissionReportsExport     Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionLeaderboardView,
		PermissionAttendanceViewAll,
		PermissionUserManage,
		PermissionTasksAssign,
		PermissionReportsExport,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionScheduleViewOwn,
		PermissionLeaderboardView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
