// internal/mockapi/dataset.go
package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkstone-labs/qtstore/internal/models"
)

// DemoPassword is the password every seeded account accepts.
const DemoPassword = "qtstore-demo"

// Dataset is the in-memory state behind the mock gateway. All access goes
// through its methods; the mutex keeps concurrent requests consistent.
type Dataset struct {
	mu sync.Mutex

	users         []models.User
	passwords     map[int64][]byte // user id -> bcrypt hash
	categories    []models.Category
	products      []models.Product
	versions      map[int64][]models.Version // product id -> versions
	comments      []models.Comment
	notifications []models.Notification
	systemConfigs []models.SystemConfig
	auditLogs     []models.AuditLog
	stats         models.DashboardStats

	nextUserID     int64
	nextProductID  int64
	nextVersionID  int64
	nextCommentID  int64
	nextCategoryID int64
	nextConfigID   int64
}

// NewDataset seeds the demo storefront: six users (one banned), six
// categories, eight products (one pending review), versions, comments,
// notifications and admin fixtures.
func NewDataset() *Dataset {
	d := &Dataset{
		passwords: make(map[int64][]byte),
		versions:  make(map[int64][]models.Version),
	}
	d.seedUsers()
	d.seedCategories()
	d.seedProducts()
	d.seedVersions()
	d.seedComments()
	d.seedNotifications()
	d.seedAdmin()
	d.nextUserID = 7
	d.nextProductID = 9
	d.nextVersionID = 8
	d.nextCommentID = 100
	d.nextCategoryID = 7
	d.nextConfigID = 7
	return d
}

func (d *Dataset) seedUsers() {
	adminTheme := `{"background":{"type":"video","url":"/test-assets/ink-wash-4k.mp4","opacity":0.8}}`
	zhangsanTheme := `{"background":{"type":"image","url":"/test-assets/08caf9aec472.jpeg","opacity":0.5}}`

	d.users = []models.User{
		{ID: 1, Username: "admin", Email: "admin@qtplatform.com", Nickname: "Super Admin", Roles: []string{"SUPER_ADMIN"}, Status: models.UserStatusActive, Bio: "Platform super administrator", EmailVerified: true, CreatedAt: "2025-01-01T00:00:00Z", LastLoginAt: "2025-07-15T10:30:00Z", ThemeConfig: adminTheme},
		{ID: 2, Username: "zhangsan", Email: "zhangsan@example.com", Nickname: "Zhang San", Roles: []string{"USER"}, Status: models.UserStatusActive, Bio: "Qt enthusiast, cross-platform developer", EmailVerified: true, CreatedAt: "2025-02-15T08:00:00Z", LastLoginAt: "2025-07-14T16:20:00Z", ThemeConfig: zhangsanTheme},
		{ID: 3, Username: "lisi", Email: "lisi@example.com", Nickname: "Li Si", Roles: []string{"USER"}, Status: models.UserStatusActive, Bio: "Indie developer focused on desktop apps", EmailVerified: true, CreatedAt: "2025-03-01T12:00:00Z", LastLoginAt: "2025-07-13T09:45:00Z"},
		{ID: 4, Username: "wangwu", Email: "wangwu@example.com", Nickname: "Wang Wu", Roles: []string{"USER", "VIP"}, Status: models.UserStatusActive, Bio: "VIP user, veteran Qt developer", EmailVerified: true, CreatedAt: "2025-03-20T14:00:00Z", LastLoginAt: "2025-07-15T08:00:00Z"},
		{ID: 5, Username: "dev_chen", Email: "chen@example.com", Nickname: "Chen Dev", Roles: []string{"USER"}, Status: models.UserStatusActive, Bio: "Open source lover", EmailVerified: true, CreatedAt: "2025-04-10T09:00:00Z", LastLoginAt: "2025-07-10T14:30:00Z"},
		{ID: 6, Username: "test_banned", Email: "banned@example.com", Nickname: "Banned User", Roles: []string{"USER"}, Status: models.UserStatusBanned, EmailVerified: true, CreatedAt: "2025-05-01T10:00:00Z", LastLoginAt: "2025-06-01T10:00:00Z"},
	}
	for _, u := range d.users {
		// MinCost keeps seeding fast; these are demo credentials.
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("hashing demo password: %v", err))
		}
		d.passwords[u.ID] = hash
	}
}

func (d *Dataset) seedCategories() {
	d.categories = []models.Category{
		{ID: 1, Name: "Dev Tools", NameEn: "Dev Tools", Slug: "dev-tools", Icon: "🛠️", SortOrder: 1},
		{ID: 2, Name: "Graphics", NameEn: "Graphics", Slug: "graphics", Icon: "🎨", SortOrder: 2},
		{ID: 3, Name: "Network", NameEn: "Network", Slug: "network", Icon: "🌐", SortOrder: 3},
		{ID: 4, Name: "Multimedia", NameEn: "Multimedia", Slug: "multimedia", Icon: "🎵", SortOrder: 4},
		{ID: 5, Name: "System", NameEn: "System", Slug: "system", Icon: "⚙️", SortOrder: 5},
		{ID: 6, Name: "Education", NameEn: "Education", Slug: "education", Icon: "📚", SortOrder: 6},
	}
}

func (d *Dataset) seedProducts() {
	published := func(s string) *string { return &s }
	d.products = []models.Product{
		{ID: 1, Name: "QtCreator Pro", NameEn: "QtCreator Pro", Slug: "qtcreator-pro", Description: "An enhanced Qt development environment with smart completion, live preview, multi-project management and built-in version control.", CategoryID: 1, CategoryName: "Dev Tools", DeveloperID: 2, Status: models.StatusPublished, DownloadCount: 15680, RatingAverage: 4.7, RatingCount: 234, ViewCount: 45230, IsFeatured: true, License: "GPL-3.0", HomepageURL: "https://example.com/qtcreator-pro", SourceURL: "https://github.com/example/qtcreator-pro", Tags: []string{"IDE", "Qt", "tools"}, CreatedAt: "2025-01-15T10:00:00Z", PublishedAt: published("2025-02-01T08:00:00Z")},
		{ID: 2, Name: "InkDraw", NameEn: "InkDraw", Slug: "ink-draw", Description: "A Qt-based vector drawing tool with ink-wash brushes, layer management and SVG export, built for digital art and UI design.", CategoryID: 2, CategoryName: "Graphics", DeveloperID: 3, Status: models.StatusPublished, DownloadCount: 8920, RatingAverage: 4.5, RatingCount: 156, ViewCount: 28450, IsFeatured: true, License: "MIT", HomepageURL: "https://example.com/inkdraw", Tags: []string{"drawing", "vector", "ink"}, CreatedAt: "2025-02-10T14:00:00Z", PublishedAt: published("2025-03-01T10:00:00Z")},
		{ID: 3, Name: "NetMonitor", NameEn: "NetMonitor", Slug: "net-monitor", Description: "A lightweight network monitor showing live traffic, connection state and bandwidth usage with TCP/UDP/HTTP protocol analysis.", CategoryID: 3, CategoryName: "Network", DeveloperID: 4, Status: models.StatusPublished, DownloadCount: 6340, RatingAverage: 4.2, RatingCount: 89, ViewCount: 19800, IsFeatured: true, License: "Apache-2.0", SourceURL: "https://github.com/example/netmonitor", Tags: []string{"network", "monitoring", "traffic"}, CreatedAt: "2025-03-05T09:00:00Z", PublishedAt: published("2025-03-20T12:00:00Z")},
		{ID: 4, Name: "MusicBox", NameEn: "MusicBox", Slug: "music-box", Description: "A cross-platform music player with lossless formats, an equalizer, synced lyrics and playlist management.", CategoryID: 4, CategoryName: "Multimedia", DeveloperID: 5, Status: models.StatusPublished, DownloadCount: 12450, RatingAverage: 4.6, RatingCount: 198, ViewCount: 35600, IsFeatured: true, License: "LGPL-3.0", HomepageURL: "https://example.com/musicbox", Tags: []string{"music", "player", "lossless"}, CreatedAt: "2025-02-20T16:00:00Z", PublishedAt: published("2025-03-10T08:00:00Z")},
		{ID: 5, Name: "SysInfo", NameEn: "SysInfo", Slug: "sys-info", Description: "A system information viewer showing CPU, memory, disk and GPU details with live usage and report export.", CategoryID: 5, CategoryName: "System", DeveloperID: 2, Status: models.StatusPublished, DownloadCount: 4280, RatingAverage: 4.0, RatingCount: 67, ViewCount: 14500, License: "MIT", Tags: []string{"system", "hardware", "monitoring"}, CreatedAt: "2025-04-01T10:00:00Z", PublishedAt: published("2025-04-15T09:00:00Z")},
		{ID: 6, Name: "CodeTeach", NameEn: "CodeTeach", Slug: "code-teach", Description: "A programming teaching aid with an integrated editor, live execution and interactive exercises for C++/Qt beginners.", CategoryID: 6, CategoryName: "Education", DeveloperID: 3, Status: models.StatusPublished, DownloadCount: 3150, RatingAverage: 4.3, RatingCount: 45, ViewCount: 11200, License: "GPL-3.0", SourceURL: "https://github.com/example/codeteach", Tags: []string{"teaching", "programming", "C++"}, CreatedAt: "2025-04-20T14:00:00Z", PublishedAt: published("2025-05-01T10:00:00Z")},
		{ID: 7, Name: "FileSync Pro", NameEn: "FileSync Pro", Slug: "filesync-pro", Description: "An efficient file sync tool with incremental sync, conflict detection and multi-device collaboration, built on the Qt network stack.", CategoryID: 3, CategoryName: "Network", DeveloperID: 4, Status: models.StatusPublished, DownloadCount: 5670, RatingAverage: 4.4, RatingCount: 112, ViewCount: 20100, License: "MIT", Tags: []string{"sync", "files", "network"}, CreatedAt: "2025-05-10T08:00:00Z", PublishedAt: published("2025-05-20T10:00:00Z")},
		{ID: 8, Name: "PixelEditor", NameEn: "PixelEditor", Slug: "pixel-editor", Description: "A pixel art editor with multiple layers, animation frames and custom palettes for game art and pixel artwork.", CategoryID: 2, CategoryName: "Graphics", DeveloperID: 5, Status: models.StatusPending, ViewCount: 340, License: "MIT", Tags: []string{"pixel", "editor", "games"}, CreatedAt: "2025-06-01T10:00:00Z"},
	}
}

func (d *Dataset) seedVersions() {
	d.versions = map[int64][]models.Version{
		1: {
			{ID: 1, ProductID: 1, VersionNumber: "2.1.0", VersionCode: 210, VersionType: "RELEASE", Platform: "WINDOWS", Architecture: "x64", FileName: "qtcreator-pro-2.1.0-win-x64.exe", FileSize: 89456000, ChecksumSHA256: "abc123...", DownloadCount: 8900, IsLatest: true, ReleaseNotes: "New smart completion engine, assorted bug fixes", Status: models.StatusPublished, RolloutPercentage: 100, CreatedAt: "2025-06-15T10:00:00Z", PublishedAt: "2025-06-15T12:00:00Z"},
			{ID: 2, ProductID: 1, VersionNumber: "2.1.0", VersionCode: 210, VersionType: "RELEASE", Platform: "LINUX", Architecture: "x64", FileName: "qtcreator-pro-2.1.0-linux-x64.AppImage", FileSize: 76800000, ChecksumSHA256: "def456...", DownloadCount: 4200, IsLatest: true, ReleaseNotes: "New smart completion engine, assorted bug fixes", Status: models.StatusPublished, RolloutPercentage: 100, CreatedAt: "2025-06-15T10:00:00Z", PublishedAt: "2025-06-15T12:00:00Z"},
			{ID: 3, ProductID: 1, VersionNumber: "2.0.3", VersionCode: 203, VersionType: "RELEASE", Platform: "WINDOWS", Architecture: "x64", FileName: "qtcreator-pro-2.0.3-win-x64.exe", FileSize: 85200000, ChecksumSHA256: "ghi789...", DownloadCount: 2580, ReleaseNotes: "Hotfix: projects failing to load", Status: models.StatusPublished, RolloutPercentage: 100, CreatedAt: "2025-05-20T14:00:00Z", PublishedAt: "2025-05-20T16:00:00Z"},
		},
		2: {
			{ID: 4, ProductID: 2, VersionNumber: "1.3.0", VersionCode: 130, VersionType: "RELEASE", Platform: "WINDOWS", Architecture: "x64", FileName: "inkdraw-1.3.0-win-x64.exe", FileSize: 45600000, ChecksumSHA256: "jkl012...", DownloadCount: 5600, IsLatest: true, ReleaseNotes: "New ink-wash brush pack, faster layers", Status: models.StatusPublished, RolloutPercentage: 100, CreatedAt: "2025-06-01T08:00:00Z", PublishedAt: "2025-06-01T10:00:00Z"},
			{ID: 5, ProductID: 2, VersionNumber: "1.3.0", VersionCode: 130, VersionType: "RELEASE", Platform: "MACOS", Architecture: "arm64", FileName: "inkdraw-1.3.0-macos-arm64.dmg", FileSize: 52300000, ChecksumSHA256: "mno345...", DownloadCount: 3320, IsLatest: true, ReleaseNotes: "New ink-wash brush pack, faster layers", Status: models.StatusPublished, RolloutPercentage: 100, CreatedAt: "2025-06-01T08:00:00Z", PublishedAt: "2025-06-01T10:00:00Z"},
		},
		3: {
			{ID: 6, ProductID: 3, VersionNumber: "1.0.2", VersionCode: 102, VersionType: "RELEASE", Platform: "WINDOWS", Architecture: "x64", FileName: "netmonitor-1.0.2-win-x64.exe", FileSize: 23400000, ChecksumSHA256: "pqr678...", DownloadCount: 6340, IsLatest: true, ReleaseNotes: "Faster TCP connection tracking", Status: models.StatusPublished, RolloutPercentage: 100, CreatedAt: "2025-05-10T10:00:00Z", PublishedAt: "2025-05-10T12:00:00Z"},
		},
		4: {
			{ID: 7, ProductID: 4, VersionNumber: "3.2.1", VersionCode: 321, VersionType: "RELEASE", Platform: "WINDOWS", Architecture: "x64", FileName: "musicbox-3.2.1-win-x64.exe", FileSize: 34500000, ChecksumSHA256: "stu901...", DownloadCount: 12450, IsLatest: true, ReleaseNotes: "DSD audio support, fixed lyric sync lag", Status: models.StatusPublished, RolloutPercentage: 100, CreatedAt: "2025-06-20T08:00:00Z", PublishedAt: "2025-06-20T10:00:00Z"},
		},
	}
}

func (d *Dataset) seedComments() {
	d.comments = []models.Comment{
		{ID: 1, ProductID: 1, UserID: 2, Nickname: "Zhang San", Content: "Great development tool, the completion beats the stock IDE by a mile!", Rating: 5, Status: models.StatusPublished, LikeCount: 23, CreatedAt: "2025-06-16T14:30:00Z", Replies: []models.Reply{{ID: 10, UserID: 1, Nickname: "Super Admin", Content: "Thanks for the support! We will keep improving.", CreatedAt: "2025-06-16T16:00:00Z"}}},
		{ID: 2, ProductID: 1, UserID: 3, Nickname: "Li Si", Content: "Multi-project management saves me a ton of time, recommended.", Rating: 4, Status: models.StatusPublished, LikeCount: 15, CreatedAt: "2025-06-17T09:00:00Z", Replies: []models.Reply{}},
		{ID: 3, ProductID: 1, UserID: 4, Nickname: "Wang Wu", Content: "Version control integration is solid, would love more Git operations.", Rating: 4, Status: models.StatusPublished, LikeCount: 8, CreatedAt: "2025-06-18T11:20:00Z", Replies: []models.Reply{}},
		{ID: 4, ProductID: 1, UserID: 5, Nickname: "Chen Dev", Content: "Occasional stutter on large projects, hope the next version trims memory use.", Rating: 3, Status: models.StatusPublished, LikeCount: 5, CreatedAt: "2025-06-20T15:00:00Z", Replies: []models.Reply{}},
		{ID: 5, ProductID: 2, UserID: 4, Nickname: "Wang Wu", Content: "The ink-wash brushes are stunning, perfect for Chinese-style designs!", Rating: 5, Status: models.StatusPublished, LikeCount: 31, CreatedAt: "2025-06-02T10:00:00Z", Replies: []models.Reply{}},
		{ID: 6, ProductID: 2, UserID: 2, Nickname: "Zhang San", Content: "Layer management feels intuitive and SVG export quality is great.", Rating: 4, Status: models.StatusPublished, LikeCount: 12, CreatedAt: "2025-06-05T14:30:00Z", Replies: []models.Reply{}},
	}
}

func (d *Dataset) seedNotifications() {
	d.notifications = []models.Notification{
		{ID: 1, UserID: 2, Type: "COMMENT_REPLY", Title: "An admin replied to your comment", Content: "Thanks for the support! We will keep improving.", Link: "/products/qtcreator-pro", IsRead: false, CreatedAt: "2025-07-15T10:00:00Z"},
		{ID: 2, UserID: 2, Type: "VERSION_UPDATE", Title: "QtCreator Pro released version 2.1.0", Content: "New smart completion engine", Link: "/products/qtcreator-pro", IsRead: true, CreatedAt: "2025-06-15T12:00:00Z"},
		{ID: 3, UserID: 2, Type: "SYSTEM", Title: "Welcome to the Qt product platform", Content: "Thanks for registering, please complete your profile.", Link: "/profile", IsRead: true, CreatedAt: "2025-02-15T08:00:00Z"},
	}
}

func (d *Dataset) seedAdmin() {
	d.systemConfigs = []models.SystemConfig{
		{ID: 1, ConfigKey: "site.name", ConfigValue: "Qt Product Platform", Description: "Site name"},
		{ID: 2, ConfigKey: "site.name_en", ConfigValue: "Qt Product Platform", Description: "Site name (English)"},
		{ID: 3, ConfigKey: "site.description", ConfigValue: "Qt software publishing and distribution", Description: "Site description"},
		{ID: 4, ConfigKey: "upload.max_file_size", ConfigValue: "1073741824", Description: "Maximum upload size in bytes"},
		{ID: 5, ConfigKey: "comment.auto_approve", ConfigValue: "false", Description: "Whether comments skip review"},
		{ID: 6, ConfigKey: "register.enabled", ConfigValue: "true", Description: "Whether registration is open"},
	}
	d.auditLogs = []models.AuditLog{
		{ID: 1, UserID: 1, Action: "USER_LOGIN", TargetType: "USER", TargetID: 1, Detail: map[string]any{"ip": "127.0.0.1"}, IPAddress: "127.0.0.1", CreatedAt: "2025-07-15T10:30:00Z"},
		{ID: 2, UserID: 1, Action: "PRODUCT_AUDIT", TargetType: "PRODUCT", TargetID: 1, Detail: map[string]any{"status": "PUBLISHED"}, IPAddress: "127.0.0.1", CreatedAt: "2025-07-15T10:35:00Z"},
		{ID: 3, UserID: 1, Action: "COMMENT_AUDIT", TargetType: "COMMENT", TargetID: 1, Detail: map[string]any{"status": "PUBLISHED"}, IPAddress: "127.0.0.1", CreatedAt: "2025-07-15T10:40:00Z"},
	}
	d.stats = models.DashboardStats{
		TotalUsers:     1256,
		TotalProducts:  48,
		TotalDownloads: 156800,
		TotalComments:  2340,
		NewUsersToday:  12,
		DownloadsToday: 890,
		DownloadTrend: []models.TrendPoint{
			{Date: "07-09", Count: 720}, {Date: "07-10", Count: 850}, {Date: "07-11", Count: 680},
			{Date: "07-12", Count: 920}, {Date: "07-13", Count: 1100}, {Date: "07-14", Count: 780},
			{Date: "07-15", Count: 890},
		},
	}
}

// AuthResult classifies a login attempt.
type AuthResult int

const (
	AuthOK AuthResult = iota
	AuthUnknown
	AuthBadPassword
	AuthBanned
)

// Authenticate matches identifier against email or username and verifies the
// password. The banned check runs after the credential check so an attacker
// cannot probe which accounts exist.
func (d *Dataset) Authenticate(identifier, password string) (models.User, AuthResult) {
	d.mu.Lock()
	defer d.mu.Unlock()

	input := strings.ToLower(strings.TrimSpace(identifier))
	for _, u := range d.users {
		if strings.ToLower(u.Email) != input && strings.ToLower(u.Username) != input {
			continue
		}
		if bcrypt.CompareHashAndPassword(d.passwords[u.ID], []byte(password)) != nil {
			return models.User{}, AuthBadPassword
		}
		if u.Status == models.UserStatusBanned {
			return models.User{}, AuthBanned
		}
		return u, AuthOK
	}
	return models.User{}, AuthUnknown
}

// UserByID returns the user, falling back to the first seeded user the way
// the demo backend does for unrecognized tokens.
func (d *Dataset) UserByID(id int64) models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.ID == id {
			return u
		}
	}
	return d.users[0]
}

// UpdateUser applies non-empty profile fields and returns the result.
func (d *Dataset) UpdateUser(id int64, nickname, bio, avatarURL *string) models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID != id {
			continue
		}
		if nickname != nil {
			d.users[i].Nickname = *nickname
		}
		if bio != nil {
			d.users[i].Bio = *bio
		}
		if avatarURL != nil {
			d.users[i].AvatarURL = *avatarURL
		}
		return d.users[i]
	}
	return d.users[0]
}

// SetUserTheme stores the user's personal theme blob.
func (d *Dataset) SetUserTheme(id int64, blob string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID == id {
			d.users[i].ThemeConfig = blob
			return
		}
	}
}

// ProductFilter narrows the storefront product listing.
type ProductFilter struct {
	CategoryID  int64
	Keyword     string
	Sort        string
	Status      string // empty means PUBLISHED only (storefront view)
	AllStatuses bool   // admin view
	Page        int
	Size        int
}

// Products returns the filtered, sorted page plus the pre-paging total.
func (d *Dataset) Products(f ProductFilter) ([]models.Product, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var list []models.Product
	for _, p := range d.products {
		if !f.AllStatuses && p.Status != models.StatusPublished {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.CategoryID > 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Keyword != "" {
			kw := strings.ToLower(f.Keyword)
			if !strings.Contains(strings.ToLower(p.Name), kw) && !strings.Contains(strings.ToLower(p.Description), kw) {
				continue
			}
		}
		list = append(list, p)
	}

	switch f.Sort {
	case "downloads":
		sort.SliceStable(list, func(i, j int) bool { return list[i].DownloadCount > list[j].DownloadCount })
	case "rating":
		sort.SliceStable(list, func(i, j int) bool { return list[i].RatingAverage > list[j].RatingAverage })
	case "name":
		sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}

	total := len(list)
	page, size := f.Page, f.Size
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 12
	}
	start := (page - 1) * size
	if start >= total {
		return []models.Product{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return list[start:end], total
}

func (d *Dataset) FeaturedProducts() []models.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.Product
	for _, p := range d.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// ProductBySlug looks a product up by slug, accepting a numeric id too.
func (d *Dataset) ProductBySlug(slug string) (models.Product, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range d.products {
		if p.Slug == slug || fmt.Sprintf("%d", p.ID) == slug {
			return p, true
		}
	}
	return models.Product{}, false
}

func (d *Dataset) ProductByID(id int64) (models.Product, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range d.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (d *Dataset) Versions(productID int64) []models.Version {
	d.mu.Lock()
	defer d.mu.Unlock()
	versions := d.versions[productID]
	if versions == nil {
		return []models.Version{}
	}
	return append([]models.Version(nil), versions...)
}

// LatestVersion returns the version flagged latest, preferring the first one.
func (d *Dataset) LatestVersion(productID int64) (models.Version, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, v := range d.versions[productID] {
		if v.IsLatest {
			return v, true
		}
	}
	return models.Version{}, false
}

func (d *Dataset) Categories() []models.Category {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Category(nil), d.categories...)
}

func (d *Dataset) CategoryByID(id int64) (models.Category, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CommentsForProduct pages the published comments of a product.
func (d *Dataset) CommentsForProduct(productID int64, page, size int) ([]models.Comment, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var list []models.Comment
	for _, c := range d.comments {
		if c.ProductID == productID && c.Status == models.StatusPublished {
			list = append(list, c)
		}
	}
	total := len(list)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start >= total {
		return []models.Comment{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return list[start:end], total
}

// CreateComment adds a PENDING comment awaiting moderation.
func (d *Dataset) CreateComment(productID int64, user models.User, content string, rating int) models.Comment {
	d.mu.Lock()
	defer d.mu.Unlock()

	comment := models.Comment{
		ID:        d.nextCommentID,
		ProductID: productID,
		UserID:    user.ID,
		Nickname:  user.Nickname,
		Content:   content,
		Rating:    rating,
		Status:    models.StatusPending,
		CreatedAt: models.Timestamp(time.Now()),
		Replies:   []models.Reply{},
	}
	d.nextCommentID++
	d.comments = append(d.comments, comment)
	return comment
}

func (d *Dataset) UpdateComment(id int64, content string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.comments {
		if d.comments[i].ID == id {
			d.comments[i].Content = content
			return true
		}
	}
	return false
}

func (d *Dataset) DeleteComment(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.comments {
		if d.comments[i].ID == id {
			d.comments = append(d.comments[:i], d.comments[i+1:]...)
			return true
		}
	}
	return false
}

// SetCommentLiked toggles the like flag, adjusting the count.
func (d *Dataset) SetCommentLiked(id int64, liked bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.comments {
		if d.comments[i].ID != id {
			continue
		}
		if d.comments[i].Liked == liked {
			return true
		}
		d.comments[i].Liked = liked
		if liked {
			d.comments[i].LikeCount++
		} else if d.comments[i].LikeCount > 0 {
			d.comments[i].LikeCount--
		}
		return true
	}
	return false
}

// AdminComments pages every comment regardless of status.
func (d *Dataset) AdminComments(status string, productID int64, page, size int) ([]models.Comment, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var list []models.Comment
	for _, c := range d.comments {
		if status != "" && c.Status != status {
			continue
		}
		if productID > 0 && c.ProductID != productID {
			continue
		}
		list = append(list, c)
	}
	total := len(list)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start >= total {
		return []models.Comment{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return list[start:end], total
}

func (d *Dataset) AuditComment(id int64, status string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.comments {
		if d.comments[i].ID == id {
			d.comments[i].Status = status
			return true
		}
	}
	return false
}

// NotificationsFor pages a user's notifications, optionally filtered by read
// state.
func (d *Dataset) NotificationsFor(userID int64, isRead *bool, page, size int) ([]models.Notification, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var list []models.Notification
	for _, n := range d.notifications {
		if n.UserID != userID {
			continue
		}
		if isRead != nil && n.IsRead != *isRead {
			continue
		}
		list = append(list, n)
	}
	total := len(list)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start >= total {
		return []models.Notification{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return list[start:end], total
}

func (d *Dataset) UnreadCount(userID int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, n := range d.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count
}

func (d *Dataset) MarkNotificationRead(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.notifications {
		if d.notifications[i].ID == id {
			d.notifications[i].IsRead = true
			return true
		}
	}
	return false
}

func (d *Dataset) MarkAllNotificationsRead(userID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.notifications {
		if d.notifications[i].UserID == userID {
			d.notifications[i].IsRead = true
		}
	}
}

// AdminUsers pages users filtered by keyword and status.
func (d *Dataset) AdminUsers(keyword, status string, page, size int) ([]models.User, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var list []models.User
	for _, u := range d.users {
		if keyword != "" &&
			!strings.Contains(u.Username, keyword) &&
			!strings.Contains(u.Nickname, keyword) &&
			!strings.Contains(u.Email, keyword) {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		list = append(list, u)
	}
	total := len(list)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start >= total {
		return []models.User{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return list[start:end], total
}

func (d *Dataset) UpdateUserStatus(id int64, status string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID == id {
			d.users[i].Status = status
			return true
		}
	}
	return false
}

// CreateProduct adds a PENDING product owned by developerID.
func (d *Dataset) CreateProduct(p models.Product) models.Product {
	d.mu.Lock()
	defer d.mu.Unlock()

	p.ID = d.nextProductID
	d.nextProductID++
	if p.Status == "" {
		p.Status = models.StatusPending
	}
	if p.CreatedAt == "" {
		p.CreatedAt = models.Timestamp(time.Now())
	}
	for _, c := range d.categories {
		if c.ID == p.CategoryID {
			p.CategoryName = c.Name
		}
	}
	d.products = append(d.products, p)
	return p
}

func (d *Dataset) UpdateProduct(id int64, fields map[string]any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.products {
		if d.products[i].ID != id {
			continue
		}
		if v, ok := fields["name"].(string); ok {
			d.products[i].Name = v
		}
		if v, ok := fields["nameEn"].(string); ok {
			d.products[i].NameEn = v
		}
		if v, ok := fields["description"].(string); ok {
			d.products[i].Description = v
		}
		if v, ok := fields["license"].(string); ok {
			d.products[i].License = v
		}
		if v, ok := fields["homepageUrl"].(string); ok {
			d.products[i].HomepageURL = v
		}
		if v, ok := fields["sourceUrl"].(string); ok {
			d.products[i].SourceURL = v
		}
		if v, ok := fields["isFeatured"].(bool); ok {
			d.products[i].IsFeatured = v
		}
		return true
	}
	return false
}

func (d *Dataset) DeleteProduct(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.products {
		if d.products[i].ID == id {
			d.products = append(d.products[:i], d.products[i+1:]...)
			delete(d.versions, id)
			return true
		}
	}
	return false
}

// AuditProduct moves a product to the given status, stamping publishedAt on
// approval.
func (d *Dataset) AuditProduct(id int64, status string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.products {
		if d.products[i].ID != id {
			continue
		}
		d.products[i].Status = status
		if status == models.StatusPublished && d.products[i].PublishedAt == nil {
			ts := models.Timestamp(time.Now())
			d.products[i].PublishedAt = &ts
		}
		return true
	}
	return false
}

// CreateVersion adds a PENDING version for a product.
func (d *Dataset) CreateVersion(productID int64, v models.Version) models.Version {
	d.mu.Lock()
	defer d.mu.Unlock()

	v.ID = d.nextVersionID
	d.nextVersionID++
	v.ProductID = productID
	if v.Status == "" {
		v.Status = models.StatusPending
	}
	if v.CreatedAt == "" {
		v.CreatedAt = models.Timestamp(time.Now())
	}
	d.versions[productID] = append(d.versions[productID], v)
	return v
}

// PublishVersion marks a version published and latest, demoting siblings on
// the same platform.
func (d *Dataset) PublishVersion(versionID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for productID, versions := range d.versions {
		for i := range versions {
			if versions[i].ID != versionID {
				continue
			}
			for j := range versions {
				if versions[j].Platform == versions[i].Platform {
					versions[j].IsLatest = false
				}
			}
			versions[i].Status = models.StatusPublished
			versions[i].IsLatest = true
			versions[i].PublishedAt = models.Timestamp(time.Now())
			d.versions[productID] = versions
			return true
		}
	}
	return false
}

func (d *Dataset) CreateCategory(c models.Category) models.Category {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.ID = d.nextCategoryID
	d.nextCategoryID++
	if c.SortOrder == 0 {
		c.SortOrder = len(d.categories) + 1
	}
	d.categories = append(d.categories, c)
	return c
}

func (d *Dataset) UpdateCategory(id int64, fields map[string]any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.categories {
		if d.categories[i].ID != id {
			continue
		}
		if v, ok := fields["name"].(string); ok {
			d.categories[i].Name = v
		}
		if v, ok := fields["nameEn"].(string); ok {
			d.categories[i].NameEn = v
		}
		if v, ok := fields["slug"].(string); ok {
			d.categories[i].Slug = v
		}
		if v, ok := fields["icon"].(string); ok {
			d.categories[i].Icon = v
		}
		if v, ok := fields["sortOrder"].(float64); ok {
			d.categories[i].SortOrder = int(v)
		}
		return true
	}
	return false
}

func (d *Dataset) DeleteCategory(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.categories {
		if d.categories[i].ID == id {
			d.categories = append(d.categories[:i], d.categories[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Dataset) SystemConfigs() []models.SystemConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.SystemConfig(nil), d.systemConfigs...)
}

func (d *Dataset) UpdateSystemConfig(key, value string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.systemConfigs {
		if d.systemConfigs[i].ConfigKey == key {
			d.systemConfigs[i].ConfigValue = value
			return true
		}
	}
	return false
}

// AuditLogs pages the audit trail, newest first as seeded.
func (d *Dataset) AuditLogs(userID int64, action string, page, size int) ([]models.AuditLog, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var list []models.AuditLog
	for _, l := range d.auditLogs {
		if userID > 0 && l.UserID != userID {
			continue
		}
		if action != "" && l.Action != action {
			continue
		}
		list = append(list, l)
	}
	total := len(list)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start >= total {
		return []models.AuditLog{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return list[start:end], total
}

// DashboardStats assembles the admin dashboard snapshot: fixed headline
// numbers plus live recent users, products and category distribution.
func (d *Dataset) DashboardStats() models.DashboardStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := d.stats
	stats.DownloadTrend = append([]models.TrendPoint(nil), d.stats.DownloadTrend...)

	if len(d.users) > 1 {
		end := len(d.users)
		if end > 6 {
			end = 6
		}
		stats.RecentUsers = append([]models.User(nil), d.users[1:end]...)
	}
	end := len(d.products)
	if end > 5 {
		end = 5
	}
	stats.RecentProducts = append([]models.Product(nil), d.products[:end]...)

	counts := make(map[int64]int64)
	for _, p := range d.products {
		counts[p.CategoryID]++
	}
	for _, c := range d.categories {
		stats.CategoryDistribution = append(stats.CategoryDistribution, models.CategoryCount{Name: c.Name, Count: counts[c.ID]})
	}
	return stats
}

// RollDownloadTrend appends today's point and drops the oldest, keeping a
// 7-day window. The scheduler calls this once a day.
func (d *Dataset) RollDownloadTrend(date string, count int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	trend := append(d.stats.DownloadTrend, models.TrendPoint{Date: date, Count: count})
	if len(trend) > 7 {
		trend = trend[len(trend)-7:]
	}
	d.stats.DownloadTrend = trend
	d.stats.TotalDownloads += count
	d.stats.DownloadsToday = count
}
