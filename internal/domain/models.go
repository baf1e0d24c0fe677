// Package domain defines the persistence models for users, pets, likes,
// matches, messages, reports and adoption posts. These types are mapped with
// GORM and form the core data layer of the PetCrushes application.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Pet gender values.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Pet size values (optional depending on species).
const (
	SizeSmall  = "SMALL"
	SizeMedium = "MEDIUM"
	SizeLarge  = "LARGE"
)

// Pet objective values.
const (
	ObjectiveBreeding      = "BREEDING"
	ObjectiveCompanionship = "COMPANIONSHIP"
	ObjectiveSocialization = "SOCIALIZATION"
)

// Report status values. Status transitions (moderation) are not implemented;
// reports are created as PENDING and left for an external workflow.
const (
	ReportPending   = "PENDING"
	ReportResolved  = "RESOLVED"
	ReportDismissed = "DISMISSED"
)

// Adoption post status values (Portuguese product vocabulary, kept as-is).
const (
	AdoptionAvailable = "DISPONIVEL"
	AdoptionAdopted   = "ADOTADO"
)

// StringList is a []string persisted as a JSON text column. SQLite has no
// native array type, so photo URLs and coat colors round-trip through JSON.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return errors.New("domain: unsupported source type for StringList")
	}
}

// User is an account on the platform. Identity is an opaque UUID string
// issued on first signup or OTP verification; users are never hard-deleted.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique login identity (lowercased at the service layer).
//   - DisplayName / FirstName / LastName / Whatsapp / Region /
//     ProfileImageUrl: optional profile fields, editable via PATCH /users/me.
//   - Verified: set once the email was confirmed via OTP.
//   - OnboardingCompleted: client-side onboarding marker.
type User struct {
	ID                  string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	Email               string    `json:"email"               gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName         string    `json:"displayName"         gorm:"type:varchar(120)"`
	FirstName           string    `json:"firstName"           gorm:"type:varchar(120)"`
	LastName            string    `json:"lastName"            gorm:"type:varchar(120)"`
	Whatsapp            string    `json:"whatsapp"            gorm:"type:varchar(32)"`
	Region              string    `json:"region"              gorm:"type:varchar(160)"`
	ProfileImageURL     string    `json:"profileImageUrl"     gorm:"type:text"`
	Verified            bool      `json:"verified"            gorm:"not null;default:false"`
	OnboardingCompleted bool      `json:"onboardingCompleted" gorm:"not null;default:false"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Pet is a profile registered by an owner. An owner may register several
// pets, but at most one carries the active flag at any time; the active pet
// is the implicit liker in feed interactions.
//
// Photos must contain at least three URLs and VideoURL must point to a clip
// of at least five seconds; both are validated at the service layer before
// the row is written.
type Pet struct {
	ID           int64      `json:"id"           gorm:"primaryKey;autoIncrement"`
	OwnerID      string     `json:"ownerId"      gorm:"type:char(36);not null;index:idx_owner_pets"`
	DisplayName  string     `json:"displayName"  gorm:"type:varchar(120);not null"`
	Species      string     `json:"species"      gorm:"type:varchar(64);not null;index"`
	Breed        string     `json:"breed"        gorm:"type:varchar(120);not null"`
	Gender       string     `json:"gender"       gorm:"type:varchar(8);not null;check:gender IN ('MALE','FEMALE')"`
	Size         string     `json:"size,omitempty" gorm:"type:varchar(8);check:size IN ('','SMALL','MEDIUM','LARGE')"`
	Colors       StringList `json:"colors"       gorm:"type:text;not null"`
	AgeMonths    int        `json:"ageMonths"    gorm:"not null;check:age_months >= 0"`
	Pedigree     bool       `json:"pedigree"     gorm:"not null;default:false"`
	Vaccinated   bool       `json:"vaccinated"   gorm:"not null;default:false"`
	Neutered     bool       `json:"neutered"     gorm:"not null;default:false"`
	HealthNotes  string     `json:"healthNotes,omitempty" gorm:"type:text"`
	Objective    string     `json:"objective"    gorm:"type:varchar(16);not null;check:objective IN ('BREEDING','COMPANIONSHIP','SOCIALIZATION')"`
	IsDonation   bool       `json:"isDonation"   gorm:"not null;default:false"`
	Region       string     `json:"region"       gorm:"type:varchar(160);not null"`
	About        string     `json:"about"        gorm:"type:text;not null"`
	Photos       StringList `json:"photos"       gorm:"type:text;not null"`
	VideoURL     string     `json:"videoUrl"     gorm:"type:text;not null"`
	VideoSeconds int        `json:"videoSeconds" gorm:"not null;default:0"`
	IsActive     bool       `json:"isActive"     gorm:"not null;default:false;index:idx_owner_pets"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName returns the database table name for Pet.
func (Pet) TableName() string { return "pets" }

// Like is a directed edge from one pet to another, unique per ordered pair.
// Likes are never mutated; re-liking the same target is a no-op.
type Like struct {
	ID          int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	LikerPetID  int64     `json:"likerPetId"  gorm:"not null;uniqueIndex:ux_like_pair,priority:1"`
	TargetPetID int64     `json:"targetPetId" gorm:"not null;uniqueIndex:ux_like_pair,priority:2;index"`
	CreatedAt   time.Time `json:"createdAt"`

	LikerPet  Pet `json:"-" gorm:"foreignKey:LikerPetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	TargetPet Pet `json:"-" gorm:"foreignKey:TargetPetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string { return "likes" }

// Match is the undirected relationship derived from a reciprocal pair of
// likes. The pair is stored canonically as (min, max) pet id under a unique
// index, so two opposite-order inserts racing to create the same match
// collide on the constraint and the loser re-reads the winner's row.
type Match struct {
	ID        int64     `json:"id"       gorm:"primaryKey;autoIncrement"`
	PetLowID  int64     `json:"petLowId"  gorm:"not null;uniqueIndex:ux_match_pair,priority:1;index"`
	PetHighID int64     `json:"petHighId" gorm:"not null;uniqueIndex:ux_match_pair,priority:2;index"`
	CreatedAt time.Time `json:"createdAt"`

	PetLow  Pet `json:"-" gorm:"foreignKey:PetLowID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PetHigh Pet `json:"-" gorm:"foreignKey:PetHighID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Match.
func (Match) TableName() string { return "matches" }

// CanonicalPair returns the (low, high) ordering for two pet ids.
func CanonicalPair(a, b int64) (low, high int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// Message is a chat message inside a match, authored by the user owning one
// of the match's two pets. Content is rejected before persistence when it
// trips the sales-content filter.
type Message struct {
	ID        int64     `json:"id"       gorm:"primaryKey;autoIncrement"`
	MatchID   int64     `json:"matchId"  gorm:"not null;index:idx_match_msgs,priority:1"`
	SenderID  string    `json:"senderId" gorm:"type:char(36);not null"`
	Content   string    `json:"content"  gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_match_msgs,priority:2"`

	Match Match `json:"-" gorm:"foreignKey:MatchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Report records a user's complaint against a pet profile.
type Report struct {
	ID          int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	ReporterID  string    `json:"reporterId"  gorm:"type:char(36);not null;index"`
	TargetPetID int64     `json:"targetPetId" gorm:"not null;index"`
	Reason      string    `json:"reason"      gorm:"type:text;not null"`
	Status      string    `json:"status"      gorm:"type:varchar(16);not null;default:'PENDING';check:status IN ('PENDING','RESOLVED','DISMISSED')"`
	CreatedAt   time.Time `json:"createdAt"`

	TargetPet Pet `json:"-" gorm:"foreignKey:TargetPetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Report.
func (Report) TableName() string { return "reports" }

// AdoptionPost is a standalone adoption listing. It is deliberately not tied
// to the Pet/Like/Match graph; it has its own lifecycle and a simple
// DISPONIVEL/ADOTADO status.
type AdoptionPost struct {
	ID          int64      `json:"id"          gorm:"primaryKey;autoIncrement"`
	OwnerID     string     `json:"ownerId"     gorm:"type:char(36);not null;index"`
	Title       string     `json:"title"       gorm:"type:varchar(160);not null"`
	Species     string     `json:"species"     gorm:"type:varchar(64);not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Region      string     `json:"region"      gorm:"type:varchar(160);not null"`
	Photos      StringList `json:"photos"      gorm:"type:text"`
	Status      string     `json:"status"      gorm:"type:varchar(16);not null;default:'DISPONIVEL';check:status IN ('DISPONIVEL','ADOTADO')"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the database table name for AdoptionPost.
func (AdoptionPost) TableName() string { return "adoption_posts" }

// OtpCode is a short-lived email login credential. Only a SHA-256 hash of the
// six-digit code is stored; Attempts counts failed verifications and UsedAt
// marks consumption so a code can never be replayed.
type OtpCode struct {
	ID        int64      `json:"-" gorm:"primaryKey;autoIncrement"`
	Email     string     `json:"-" gorm:"type:varchar(255);not null;index"`
	CodeHash  string     `json:"-" gorm:"type:char(64);not null"`
	ExpiresAt time.Time  `json:"-" gorm:"not null;index"`
	Attempts  int        `json:"-" gorm:"not null;default:0"`
	UsedAt    *time.Time `json:"-"`
	CreatedAt time.Time  `json:"-"`
}

// TableName returns the database table name for OtpCode.
func (OtpCode) TableName() string { return "otp_codes" }
