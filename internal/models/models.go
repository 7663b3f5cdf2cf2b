// internal/models/models.go
package models

import "time"

// User statuses as the backend reports them.
const (
	UserStatusActive = "ACTIVE"
	UserStatusBanned = "BANNED"
)

// Content statuses shared by products and comments.
const (
	StatusPublished = "PUBLISHED"
	StatusPending   = "PENDING"
	StatusRejected  = "REJECTED"
)

type User struct {
	ID            int64    `json:"id"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Nickname      string   `json:"nickname"`
	Roles         []string `json:"roles"`
	Status        string   `json:"status"`
	AvatarURL     string   `json:"avatarUrl"`
	Bio           string   `json:"bio"`
	EmailVerified bool     `json:"emailVerified"`
	CreatedAt     string   `json:"createdAt"`
	LastLoginAt   string   `json:"lastLoginAt"`
	// ThemeConfig is the user's personal theme layer, persisted as a single
	// JSON encoding of a partial theme config. Empty when the user has never
	// customized the theme.
	ThemeConfig string `json:"themeConfig,omitempty"`
}

// PublicProfile is the subset of User exposed to other users.
type PublicProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"createdAt"`
}

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
}

type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	NameEn        string   `json:"nameEn"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	CategoryID    int64    `json:"categoryId"`
	CategoryName  string   `json:"categoryName"`
	DeveloperID   int64    `json:"developerId"`
	Status        string   `json:"status"`
	IconURL       string   `json:"iconUrl"`
	BannerURL     string   `json:"bannerUrl"`
	DownloadCount int64    `json:"downloadCount"`
	RatingAverage float64  `json:"ratingAverage"`
	RatingCount   int64    `json:"ratingCount"`
	ViewCount     int64    `json:"viewCount"`
	IsFeatured    bool     `json:"isFeatured"`
	License       string   `json:"license"`
	HomepageURL   string   `json:"homepageUrl"`
	SourceURL     string   `json:"sourceUrl"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"createdAt"`
	PublishedAt   *string  `json:"publishedAt"`
}

type Version struct {
	ID                int64  `json:"id"`
	ProductID         int64  `json:"productId"`
	VersionNumber     string `json:"versionNumber"`
	VersionCode       int    `json:"versionCode"`
	VersionType       string `json:"versionType"`
	Platform          string `json:"platform"`
	Architecture      string `json:"architecture"`
	FileName          string `json:"fileName"`
	FileSize          int64  `json:"fileSize"`
	ChecksumSHA256    string `json:"checksumSha256"`
	DownloadCount     int64  `json:"downloadCount"`
	IsMandatory       bool   `json:"isMandatory"`
	IsLatest          bool   `json:"isLatest"`
	ReleaseNotes      string `json:"releaseNotes"`
	Status            string `json:"status"`
	RolloutPercentage int    `json:"rolloutPercentage"`
	CreatedAt         string `json:"createdAt"`
	PublishedAt       string `json:"publishedAt"`
}

type Reply struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Nickname  string `json:"nickname"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type Comment struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	UserID    int64   `json:"userId"`
	Nickname  string  `json:"nickname"`
	Content   string  `json:"content"`
	Rating    int     `json:"rating"`
	Status    string  `json:"status"`
	LikeCount int64   `json:"likeCount"`
	Liked     bool    `json:"liked"`
	CreatedAt string  `json:"createdAt"`
	Replies   []Reply `json:"replies"`
}

type Notification struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Link      string `json:"link"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

type SystemConfig struct {
	ID          int64  `json:"id"`
	ConfigKey   string `json:"configKey"`
	ConfigValue string `json:"configValue"`
	Description string `json:"description"`
}

type AuditLog struct {
	ID         int64          `json:"id"`
	UserID     int64          `json:"userId"`
	Action     string         `json:"action"`
	TargetType string         `json:"targetType"`
	TargetID   int64          `json:"targetId"`
	Detail     map[string]any `json:"detail"`
	IPAddress  string         `json:"ipAddress"`
	CreatedAt  string         `json:"createdAt"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DashboardStats struct {
	TotalUsers           int64           `json:"totalUsers"`
	TotalProducts        int64           `json:"totalProducts"`
	TotalDownloads       int64           `json:"totalDownloads"`
	TotalComments        int64           `json:"totalComments"`
	NewUsersToday        int64           `json:"newUsersToday"`
	DownloadsToday       int64           `json:"downloadsToday"`
	RecentUsers          []User          `json:"recentUsers"`
	RecentProducts       []Product       `json:"recentProducts"`
	DownloadTrend        []TrendPoint    `json:"downloadTrend"`
	CategoryDistribution []CategoryCount `json:"categoryDistribution"`
}

type LoginResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UploadResult struct {
	ID   int64  `json:"id"`
	URL  string `json:"url"`
	Path string `json:"path"`
}

type UpdateCheck struct {
	HasUpdate bool     `json:"hasUpdate"`
	Latest    *Version `json:"latest,omitempty"`
}

// Timestamp formats a time the way the backend serializes timestamps.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
