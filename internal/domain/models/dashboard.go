package models

// Dashboard aggregates a user's workspace. TotalProjects excludes the
// new-ideas bucket; the video and document counts cover everything.
type Dashboard struct {
	TotalProjects     int       `json:"total_projects"`
	TotalVideos       int       `json:"total_videos"`
	TotalDocuments    int       `json:"total_documents"`
	TranscribedVideos int       `json:"transcribed_videos"`
	PendingVideos     int       `json:"pending_videos"`
	RecentProjects    []Project `json:"recent_projects"`
	RecentVideos      []Video   `json:"recent_videos"`
}
