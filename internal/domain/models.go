// Package domain defines the persistence models for pen-pal missions, the
// per-user point ledger, cancellation and dispute records, and notifications.
// These types are mapped with GORM and form the core data layer of the
// pen-pal backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Ledger transaction types.
const (
	TxTypeEarn  = "earn"
	TxTypeSpend = "spend"
)

// Mission lifecycle statuses.
const (
	MissionStatusActive    = "active"
	MissionStatusCancelled = "cancelled"
	MissionStatusDisputed  = "disputed"
)

// Letter proof statuses.
const (
	ProofStatusSent      = "sent"
	ProofStatusDelivered = "delivered"
	ProofStatusDisputed  = "disputed"
)

// Cancel request / penalty statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"

	PenaltyStatusPending   = "pending"
	PenaltyStatusConfirmed = "confirmed"
	PenaltyStatusWaived    = "waived"
)

// Penalty severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// PointAccount is the per-user running point balance. Accounts are created
// lazily on the first transaction and never deleted.
//
// Invariant: TotalPoints == EarnedPoints - SpentPoints after every mutation,
// and all three values are non-negative.
type PointAccount struct {
	UserID       string    `json:"user_id"       gorm:"type:varchar(64);primaryKey"`
	TotalPoints  int       `json:"total_points"  gorm:"not null;default:0;check:total_points >= 0"`
	EarnedPoints int       `json:"earned_points" gorm:"not null;default:0;check:earned_points >= 0"`
	SpentPoints  int       `json:"spent_points"  gorm:"not null;default:0;check:spent_points >= 0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for PointAccount.
func (PointAccount) TableName() string { return "point_accounts" }

// PointTransaction is one entry in a user's append-only ledger history.
// Rows are never updated, removed, or reordered; listing is by CreatedAt
// ascending with ID as a tiebreaker.
//
// Fields:
//   - ID: UUID primary key (collision-resistant, unlike wall-clock ids).
//   - UserID: owner of the ledger entry; indexed for history queries.
//   - Type: "earn" or "spend" (enforced by DB constraint).
//   - Amount: positive point delta.
//   - Reason: human-readable cause ("letter mission reward", ...).
//   - ReferenceID: related entity id (mission, order, penalty).
type PointTransaction struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"      gorm:"type:varchar(64);not null;index:idx_user_tx,priority:1"`
	Type        string    `json:"type"         gorm:"type:varchar(8);not null;check:type IN ('earn','spend')"`
	Amount      int       `json:"amount"       gorm:"not null;check:amount > 0"`
	Reason      string    `json:"reason"       gorm:"type:varchar(255);not null"`
	ReferenceID string    `json:"reference_id" gorm:"type:varchar(64);index"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index:idx_user_tx,priority:2"`
}

// TableName returns the database table name for PointTransaction.
func (PointTransaction) TableName() string { return "point_transactions" }

// LetterMission is a multi-step letter exchange between two matched users.
//
// Invariants:
//   - RewardClaimed transitions false→true exactly once, and only while
//     IsCompleted is true.
//   - Only User1ID or User2ID may claim the mission's reward.
type LetterMission struct {
	ID              string         `json:"id"                gorm:"type:char(36);primaryKey"`
	MatchID         string         `json:"match_id"          gorm:"type:char(36);not null;index"`
	User1ID         string         `json:"user1_id"          gorm:"type:varchar(64);not null;index"`
	User2ID         string         `json:"user2_id"          gorm:"type:varchar(64);not null;index"`
	IsCompleted     bool           `json:"is_completed"      gorm:"not null;default:false"`
	RewardClaimed   bool           `json:"reward_claimed"    gorm:"not null;default:false"`
	RewardClaimedAt *time.Time     `json:"reward_claimed_at,omitempty"`
	Status          string         `json:"status"            gorm:"type:varchar(16);not null;default:'active';check:status IN ('active','cancelled','disputed')"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-"                 gorm:"index"`
}

// TableName returns the database table name for LetterMission.
func (LetterMission) TableName() string { return "letter_missions" }

// IsParticipant reports whether userID is one of the mission's two users.
func (m *LetterMission) IsParticipant(userID string) bool {
	return userID != "" && (userID == m.User1ID || userID == m.User2ID)
}

// PenpalMatch pairs two users for letter exchange and tracks whether each
// side has submitted a mailing address.
type PenpalMatch struct {
	ID                    string         `json:"id"                      gorm:"type:char(36);primaryKey"`
	User1ID               string         `json:"user1_id"                gorm:"type:varchar(64);not null;index"`
	User1Name             string         `json:"user1_name"              gorm:"type:varchar(128);not null"`
	User1AddressSubmitted bool           `json:"user1_address_submitted" gorm:"not null;default:false"`
	User2ID               string         `json:"user2_id"                gorm:"type:varchar(64);not null;index"`
	User2Name             string         `json:"user2_name"              gorm:"type:varchar(128);not null"`
	User2AddressSubmitted bool           `json:"user2_address_submitted" gorm:"not null;default:false"`
	Status                string         `json:"status"                  gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `json:"-"                       gorm:"index"`
}

// TableName returns the database table name for PenpalMatch.
func (PenpalMatch) TableName() string { return "penpal_matches" }

// PartnerOf returns the name of the other participant in the match, or ""
// when userID is not part of the match.
func (p *PenpalMatch) PartnerOf(userID string) string {
	switch userID {
	case p.User1ID:
		return p.User2Name
	case p.User2ID:
		return p.User1Name
	default:
		return ""
	}
}

// CancelRequest records one participant's request to cancel a mission.
// The request stays pending until an administrator resolves it; the mission
// row itself is only marked cancelled by that later confirmation.
type CancelRequest struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	MissionID     string    `json:"mission_id"     gorm:"type:char(36);not null;index"`
	RequesterID   string    `json:"requester_id"   gorm:"type:varchar(64);not null;index"`
	RequesterName string    `json:"requester_name" gorm:"type:varchar(128)"`
	PartnerID     string    `json:"partner_id"     gorm:"type:varchar(64);not null"`
	PartnerName   string    `json:"partner_name"   gorm:"type:varchar(128)"`
	Reason        string    `json:"reason"         gorm:"type:text;not null"`
	Status        string    `json:"status"         gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','approved','rejected')"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for CancelRequest.
func (CancelRequest) TableName() string { return "cancel_requests" }

// PenaltyRecord is a pending point deduction raised against the requester of
// a cancellation. The deduction only applies once an administrator confirms
// it; until then Status stays "pending".
type PenaltyRecord struct {
	ID              string    `json:"id"                gorm:"type:char(36);primaryKey"`
	CancelRequestID string    `json:"cancel_request_id" gorm:"type:char(36);not null;index"`
	UserID          string    `json:"user_id"           gorm:"type:varchar(64);not null;index"`
	Severity        string    `json:"severity"          gorm:"type:varchar(8);not null;default:'medium';check:severity IN ('low','medium','high')"`
	PointDeduction  int       `json:"point_deduction"   gorm:"not null;check:point_deduction >= 0"`
	Status          string    `json:"status"            gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','confirmed','waived')"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// CancelRequest is the originating request. Penalties are cascade-deleted
	// with their request.
	CancelRequest CancelRequest `json:"-" gorm:"foreignKey:CancelRequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for PenaltyRecord.
func (PenaltyRecord) TableName() string { return "penalty_records" }

// LetterProof evidences one letter transfer within a mission step. The
// receiver may dispute non-arrival once the minimum elapsed time since
// SentAt has passed.
type LetterProof struct {
	ID            string     `json:"id"             gorm:"type:char(36);primaryKey"`
	MissionID     string     `json:"mission_id"     gorm:"type:char(36);not null;index"`
	SenderID      string     `json:"sender_id"      gorm:"type:varchar(64);not null;index"`
	ReceiverID    string     `json:"receiver_id"    gorm:"type:varchar(64);not null;index"`
	SentAt        time.Time  `json:"sent_at"        gorm:"not null"`
	IsDisputed    bool       `json:"is_disputed"    gorm:"not null;default:false"`
	DisputeReason string     `json:"dispute_reason,omitempty" gorm:"type:text"`
	DisputedAt    *time.Time `json:"disputed_at,omitempty"`
	Status        string     `json:"status"         gorm:"type:varchar(16);not null;default:'sent';check:status IN ('sent','delivered','disputed')"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the database table name for LetterProof.
func (LetterProof) TableName() string { return "letter_proofs" }

// AdminNotification is an operator-facing alert (e.g. a dispute awaiting
// review). ReviewURL points at the relevant admin screen.
type AdminNotification struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Type      string    `json:"type"       gorm:"type:varchar(32);not null;index"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null"`
	Body      string    `json:"body"       gorm:"type:text"`
	Priority  string    `json:"priority"   gorm:"type:varchar(8);not null;default:'normal'"`
	ReviewURL string    `json:"review_url" gorm:"type:varchar(255)"`
	Read      bool      `json:"read"       gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for AdminNotification.
func (AdminNotification) TableName() string { return "admin_notifications" }

// LetterNotification is a user-facing informational notification about
// letter activity (disputes, deliveries).
type LetterNotification struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index"`
	Type      string    `json:"type"       gorm:"type:varchar(32);not null"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null"`
	Body      string    `json:"body"       gorm:"type:text"`
	Read      bool      `json:"read"       gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for LetterNotification.
func (LetterNotification) TableName() string { return "letter_notifications" }

// AddressNotification is an ephemeral reminder asking a match participant to
// submit a mailing address. Entries carry an explicit expiry and are ignored
// by readers after ExpiresAt.
type AddressNotification struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	MatchID   string    `json:"match_id"   gorm:"type:char(36);not null;index"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null"`
	Body      string    `json:"body"       gorm:"type:text"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for AddressNotification.
func (AddressNotification) TableName() string { return "address_notifications" }
