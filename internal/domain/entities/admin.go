package entities

// AdminUserFilter narrows the admin users listing
type AdminUserFilter struct {
	Search string
	Role   UserRole
	Page   int
	Limit  int
}

// Stats is the admin dashboard summary
type Stats struct {
	TotalUsers     int64              `json:"totalUsers"`
	ActiveUsers    int64              `json:"activeUsers"`
	UsersByRole    map[UserRole]int64 `json:"usersByRole"`
	Professionals  int64              `json:"professionals"`
	Companies      int64              `json:"companies"`
	PortfolioItems int64              `json:"portfolioItems"`
	Indications    int64              `json:"indications"`
}

// UploadedImage is what the image host hands back
type UploadedImage struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}
