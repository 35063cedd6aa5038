package usecases

import "time"

// Password reset
const (
	ResetCodeDigits        = 6
	DefaultResetCodeTTL    = 15 * time.Minute
	DefaultResetMaxAttempt = 5
)

// Upload folders accepted by the image host
const (
	FolderProfiles  = "profiles"
	FolderPortfolio = "portfolio"
	FolderCompanies = "companies"
)

// DefaultMaxUploadBytes bounds a single image upload
const DefaultMaxUploadBytes int64 = 5 << 20

var uploadFolders = map[string]bool{
	FolderProfiles:  true,
	FolderPortfolio: true,
	FolderCompanies: true,
}
