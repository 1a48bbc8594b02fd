package dto

import "time"

// Leaderboard sort keys.
const (
	SortByEarned    = "earned"
	SortByName      = "name"
	SortByPct       = "pct"
	SortByRemaining = "remaining"
)

// LeaderboardRequest filters and orders the admin leaderboard.
type LeaderboardRequest struct {
	Filter      string `validate:"omitempty,oneof=all active"`
	SortBy      string `validate:"omitempty,oneof=earned name pct remaining"`
	PeriodStart string
	PeriodEnd   string
}

// LeaderboardGoal is the goal a leaderboard entry is measured against.
type LeaderboardGoal struct {
	ID          uint      `json:"id"`
	Amount      float64   `json:"amount"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
}

// LeaderboardEntry is one recruiter's standing.
type LeaderboardEntry struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Status         string           `json:"status"`
	CommissionRate *float64         `json:"commissionRate"`
	Goal           *LeaderboardGoal `json:"goal"`
	TotalEarned    float64          `json:"totalEarned"`
	Remaining      float64          `json:"remaining"`
	ProgressPct    float64          `json:"progressPct"`
}

// DashboardStats summarises progress against the selected goal.
type DashboardStats struct {
	GoalAmount  float64 `json:"goalAmount"`
	TotalEarned float64 `json:"totalEarned"`
	Remaining   float64 `json:"remaining"`
	ProgressPct float64 `json:"progressPct"`
	DaysLeft    int     `json:"daysLeft"`
}

// RecruiterDashboardResponse is the payload of the recruiter's own dashboard.
type RecruiterDashboardResponse struct {
	HasGoal        bool                 `json:"hasGoal"`
	Goals          []GoalResponse       `json:"goals"`
	ActiveGoal     *GoalResponse        `json:"activeGoal"`
	Stats          *DashboardStats      `json:"stats"`
	Commissions    []CommissionResponse `json:"commissions"`
	CommissionRate float64              `json:"commissionRate"`
}
