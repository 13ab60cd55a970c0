package models

// DashboardStats is the counter block at the top of the dashboard,
// recomputed from the full collections on every load.
type DashboardStats struct {
	TotalResidents  int `json:"totalResidents"`
	TodaysBookings  int `json:"todaysBookings"`
	PendingPackages int `json:"pendingPackages"`
	UnreadMessages  int `json:"unreadMessages"`
	MissedCalls     int `json:"missedCalls"`
	OpenIssues      int `json:"openIssues"`
	TodaysVisitors  int `json:"todaysVisitors"`
	ResponseTime    int `json:"responseTime"` // minutes
}
