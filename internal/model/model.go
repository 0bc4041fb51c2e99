package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Role         string
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type Appointment struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Date      time.Time // calendar day at midnight UTC
	Timeslot  string    // "HH:MM to HH:MM"
	Message   string
	CreatedAt time.Time
}
