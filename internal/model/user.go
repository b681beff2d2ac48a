package model

// User is a member of staff who can log in.
type User struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string   `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash []byte   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:user" json:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
