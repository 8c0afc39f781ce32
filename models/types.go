package models

import "time"

// Data point lifecycle status constants
const (
	StatusVoting   = "voting"
	StatusToLaunch = "to_launch"
	StatusLaunched = "launched"
)

// History change type constants
const (
	ChangeVote               = "vote"
	ChangeRedeem             = "redeem"
	ChangeSnapshotToLaunch   = "snapshot_to_launch"
	ChangeSnapshotToLaunched = "snapshot_to_launched"
)

// Catalog tab constants
const (
	TabVote    = "vote"
	TabMyVotes = "my_votes"
)

// Request types

type LoginRequest struct {
	Address string `json:"address"`
}

type CreateDataPointRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IssuerName  string `json:"issuer_name"`
	Pts         int64  `json:"pts"`
	ImageURL    string `json:"image_url"`
}

// votes is the absolute target allocation, not an increment
type VoteRequest struct {
	Votes int64 `json:"votes"`
}

// Response types

type LoginResponse struct {
	SessionToken string `json:"session_token"`
	User         User   `json:"user"`
}

type CreateDataPointResponse struct {
	DataPointID string `json:"data_point_id"`
}

type AdvanceStatusResponse struct {
	DataPointID string `json:"data_point_id"`
	Status      string `json:"status"`
	Snapshots   int64  `json:"snapshots"`
}

type VotingPowerResponse struct {
	User      User                 `json:"user"`
	Breakdown VotingPowerBreakdown `json:"breakdown"`
}

// Domain types

type User struct {
	FID              int64     `json:"fid"`
	Username         string    `json:"username"`
	DisplayName      string    `json:"display_name"`
	AvatarURL        string    `json:"avatar_url"`
	BuilderScore     float64   `json:"builder_score"`
	TalentHoldings   float64   `json:"talent_holdings"`
	TotalVotingPower int64     `json:"total_voting_power"`
	AvailableVotes   int64     `json:"available_votes"`
	LockedVotes      int64     `json:"locked_votes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type DataPoint struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IssuerName  string    `json:"issuer_name"`
	Pts         int64     `json:"pts"`
	ImageURL    string    `json:"image_url"`
	TotalVotes  int64     `json:"total_votes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Allocation struct {
	FID         int64     `json:"fid"`
	DataPointID string    `json:"data_point_id"`
	VotesCast   int64     `json:"votes_cast"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HistoryEvent struct {
	ID          string    `json:"id"`
	FID         int64     `json:"fid"`
	DataPointID string    `json:"data_point_id"`
	ChangeType  string    `json:"change_type"`
	Delta       int64     `json:"delta"`
	CreatedAt   time.Time `json:"created_at"`
}

// VotingPowerBreakdown shows how the total budget is derived and split
type VotingPowerBreakdown struct {
	BuilderScore     float64 `json:"builder_score"`
	TalentHoldings   float64 `json:"talent_holdings"`
	TotalVotingPower int64   `json:"total_voting_power"`
	AvailableVotes   int64   `json:"available_votes"`
	LockedVotes      int64   `json:"locked_votes"`
}

// DataPointView is a catalog row joined with the caller's own allocation
// and snapshot flag
type DataPointView struct {
	DataPoint
	MyVotes       int64 `json:"my_votes"`
	SnapshotTaken bool  `json:"snapshot_taken"`
}

// VoteResult is the authoritative post-commit state returned by a vote or
// redeem, so callers do not need to re-query
type VoteResult struct {
	User       User       `json:"user"`
	DataPoint  DataPoint  `json:"data_point"`
	Allocation Allocation `json:"allocation"`
	Delta      int64      `json:"delta"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
