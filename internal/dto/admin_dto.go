package dto

type UpdateDoctorStatusRequest struct {
	Status string `json:"status"`
}

type UpdateDoctorTierRequest struct {
	Tier string `json:"tier"`
}

// AdminStats mirrors the get_admin_stats aggregate.
type AdminStats struct {
	TotalDoctors      int64 `json:"total_doctors"`
	PendingDoctors    int64 `json:"pending_doctors"`
	ApprovedDoctors   int64 `json:"approved_doctors"`
	RejectedDoctors   int64 `json:"rejected_doctors"`
	SuspendedDoctors  int64 `json:"suspended_doctors"`
	TotalPatients     int64 `json:"total_patients"`
	PublishedArticles int64 `json:"published_articles"`
	SignupsLast7Days  int64 `json:"signups_last_7_days"`
}
