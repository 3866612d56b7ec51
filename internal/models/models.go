package models

import "time"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeleted  = "deleted"
)

const (
	AuditCreate  = "create"
	AuditApprove = "approve"
	AuditDelete  = "delete"
	AuditRestore = "restore"
)

const (
	VoteUp   = "up"
	VoteDown = "down"
)

const (
	ReportPending   = "pending"
	ReportReviewed  = "reviewed"
	ReportDismissed = "dismissed"
)

type User struct {
	ID            string    `db:"id"`
	Username      string    `db:"username"`
	PasswordHash  string    `db:"password_hash"`
	PasswordPlain *string   `db:"password_plain"`
	Role          string    `db:"role"`
	Class         *string   `db:"class"`
	CreatedAt     time.Time `db:"created_at"`
	Bio           *string   `db:"bio"`
}

type Submission struct {
	ID           string     `db:"id"`
	AuthorID     string     `db:"author_id"`
	Body         string     `db:"body"`
	Category     string     `db:"category"`
	ContactName  *string    `db:"contact_name"`
	ContactPhone *string    `db:"contact_phone"`
	MediaPath    *string    `db:"media_path"`
	Status       string     `db:"status"`
	ApprovedBy   *string    `db:"approved_by"`
	ApprovedAt   *time.Time `db:"approved_at"`
	DeletedBy    *string    `db:"deleted_by"`
	DeletedAt    *time.Time `db:"deleted_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

type SubmissionAudit struct {
	ID           string    `db:"id"`
	SubmissionID string    `db:"submission_id"`
	Action       string    `db:"action"`
	ActorID      string    `db:"actor_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type Comment struct {
	ID           string    `db:"id"`
	SubmissionID string    `db:"submission_id"`
	AuthorID     string    `db:"author_id"`
	Body         string    `db:"body"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserBan and IPBan share the active-iff-unexpired rule; a NULL expiry
// means permanent.
type UserBan struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Reason    *string    `db:"reason"`
	ExpiresAt *time.Time `db:"expires_at"`
	CreatedBy string     `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
}

type IPBan struct {
	ID        string     `db:"id"`
	IP        string     `db:"ip"`
	Reason    *string    `db:"reason"`
	ExpiresAt *time.Time `db:"expires_at"`
	CreatedBy string     `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
}

type Report struct {
	ID         string     `db:"id"`
	TargetID   string     `db:"target_id"`
	ReporterID string     `db:"reporter_id"`
	Reason     string     `db:"reason"`
	Status     string     `db:"status"`
	ReviewedBy *string    `db:"reviewed_by"`
	ReviewedAt *time.Time `db:"reviewed_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

type Poll struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

type ServerMetricSample struct {
	ID              string    `db:"id"`
	CapturedAt      time.Time `db:"captured_at"`
	ProcessRSSBytes int64     `db:"process_rss_bytes"`
	SystemMemTotal  int64     `db:"system_memory_total_bytes"`
	SystemMemUsed   int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes  int64     `db:"disk_total_bytes"`
	DiskUsedBytes   int64     `db:"disk_used_bytes"`
	ProcessCPULoad  float64   `db:"process_cpu_load"`
	SystemCPULoad   float64   `db:"system_cpu_load"`
}
