package entities

// PlatformStats is the admin dashboard summary
type PlatformStats struct {
	UsersByRole          map[string]int64 `json:"usersByRole"`
	TotalUsers           int64            `json:"totalUsers"`
	VerifiedMentors      int64            `json:"verifiedMentors"`
	PendingVerifications int64            `json:"pendingVerifications"`
	AppointmentsByStatus map[string]int64 `json:"appointmentsByStatus"`
	Organizations        int64            `json:"organizations"`
	Subscribers          int64            `json:"subscribers"`
}
