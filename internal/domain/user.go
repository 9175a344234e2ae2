package domain

// User Model
type User struct {
	ID       uint       `gorm:"primaryKey"`                                     // Primary key
	Username string     `gorm:"unique;not null;size:50"`                        // Unique username
	Password string     `gorm:"not null"`                                       // Hashed password
	Enabled  bool       `gorm:"not null"`                                       // Disabled users cannot log in
	Roles    []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"` // Granted roles
}

// TableName pins the table name used by the schema
func (User) TableName() string {
	return "users"
}

// UserRole Model, one row per granted role
type UserRole struct {
	UserID uint `gorm:"primaryKey"`         // Foreign key to User
	Role   Role `gorm:"primaryKey;size:20"` // Role: ADMIN or USER
}

// TableName pins the table name used by the schema
func (UserRole) TableName() string {
	return "user_roles"
}

// HasRole reports whether the user was granted role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// Can reports whether the user may perform op
func (u *User) Can(op Operation) bool {
	if u == nil || !u.Enabled {
		return false
	}
	for _, r := range u.Roles {
		if r.Role.Allows(op) {
			return true
		}
	}
	return false
}
