package models

import "time"

// Roles a user can hold. Role changes are admin-only.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// Study session lifecycle states.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Booking payment states.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photoUrl"`
	PasswordHash string    `gorm:"not null;default:''" json:"-"`
	Role         string    `gorm:"not null;default:student" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type StudySession struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"not null" json:"title"`
	Description       string    `json:"description"`
	TutorName         string    `json:"tutorName"`
	TutorEmail        string    `gorm:"index;not null" json:"tutorEmail"`
	RegistrationStart time.Time `json:"registrationStart"`
	RegistrationEnd   time.Time `json:"registrationEnd"`
	ClassStart        time.Time `json:"classStart"`
	ClassEnd          time.Time `json:"classEnd"`
	Duration          string    `json:"duration"`
	Status            string    `gorm:"index;not null;default:pending" json:"status"`
	RegistrationFee   float64   `gorm:"not null;default:0" json:"registrationFee"`
	RejectionReason   string    `json:"rejectionReason,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// BookedSession links a student to a session. The composite unique index
// is what keeps the one-booking-per-(session, student) invariant.
type BookedSession struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SessionID     uint      `gorm:"uniqueIndex:idx_session_student;not null" json:"sessionId"`
	SessionTitle  string    `json:"sessionTitle"`
	TutorEmail    string    `json:"tutorEmail"`
	StudentEmail  string    `gorm:"uniqueIndex:idx_session_student;index;not null" json:"studentEmail"`
	PaymentStatus string    `gorm:"not null;default:unpaid" json:"paymentStatus"`
	TransactionID string    `json:"transactionId,omitempty"`
	BookedAt      time.Time `gorm:"autoCreateTime" json:"bookedAt"`
}

type Material struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	SessionID  uint      `gorm:"index;not null" json:"sessionId"`
	TutorEmail string    `gorm:"index;not null" json:"tutorEmail"`
	ImageURL   string    `json:"imageUrl"`
	DriveLink  string    `json:"driveLink"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Note struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"index;not null" json:"email"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    uint      `gorm:"uniqueIndex:idx_session_reviewer;index;not null" json:"sessionId"`
	StudentEmail string    `gorm:"uniqueIndex:idx_session_reviewer;not null" json:"studentEmail"`
	StudentName  string    `json:"studentName"`
	StudentPhoto string    `json:"studentPhoto"`
	ReviewText   string    `json:"reviewText"`
	Rating       int       `gorm:"not null" json:"rating"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SessionID     uint      `gorm:"index;not null" json:"sessionId"`
	Email         string    `gorm:"index;not null" json:"email"`
	Amount        float64   `json:"amount"`
	TransactionID string    `gorm:"uniqueIndex" json:"transactionId"`
	PaymentMethod string    `json:"paymentMethod"`
	PaidAt        time.Time `gorm:"autoCreateTime" json:"paidAt"`
}

// UserStats is the aggregate payload behind /user-stats.
type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalStudents int64 `json:"totalStudents"`
	TotalTutors   int64 `json:"totalTutors"`
	TotalSessions int64 `json:"totalSessions"`
	TotalBookings int64 `json:"totalBookings"`
}
