package models

// ClaimStatus is the state of a claim request. Denied requests are deleted,
// so there is no denied status.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
)

// ClaimRequest asks a group's owner or admins to recognize RequesterID as the
// guest recorded under GuestName.
type ClaimRequest struct {
	// ID is the unique identifier for the request (UUID format).
	ID string

	GroupID string

	// GuestName is the guest's recorded player name, matched case-insensitively.
	GuestName string

	RequesterID string

	// RequesterEmail is optional contact info shown to approvers.
	RequesterEmail string

	Status ClaimStatus

	CreatedAt int64
}
