package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role constants for user authorization.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

var ValidRoles = []string{RoleStudent, RoleInstructor, RoleAdmin}

var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// EnrolledCourse is one entry in a user's enrollment list: the course
// reference plus when the user enrolled.
type EnrolledCourse struct {
	Course     primitive.ObjectID `bson:"course" json:"course"`
	EnrolledAt time.Time          `bson:"enrolledAt" json:"enrolledAt"`
}

type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Email           string               `bson:"email" json:"email"`
	Password        string               `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role            string               `bson:"role" json:"role"`  // student, instructor, admin
	Bio             string               `bson:"bio,omitempty" json:"bio,omitempty"`
	EnrolledCourses []EnrolledCourse     `bson:"enrolledCourses" json:"enrolledCourses"`
	CreatedCourses  []primitive.ObjectID `bson:"createdCourses" json:"createdCourses"`

	// Reset token is stored only as a SHA-256 hex digest of the token
	// handed to the user; it is void once ResetPasswordExpiry elapses.
	ResetPasswordToken  string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpiry time.Time `bson:"resetPasswordExpiry,omitempty" json:"-"`

	LastActive time.Time `bson:"lastActive" json:"lastActive"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Normalize applies the pure pre-save transforms: trimming, email
// lowercasing, and defaults. It never touches the password.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Bio = strings.TrimSpace(u.Bio)
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.LastActive.IsZero() {
		u.LastActive = time.Now()
	}
}

// Validate checks every field constraint except raw password length,
// which the write path enforces before hashing (a stored hash no longer
// has a meaningful length). Returns nil when all fields pass.
func (u *User) Validate() ValidationErrors {
	var errs ValidationErrors
	if u.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	} else if len(u.Name) > 20 {
		errs = append(errs, FieldError{"name", "Name cannot exceed 20 characters"})
	}
	if u.Email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !emailPattern.MatchString(u.Email) {
		errs = append(errs, FieldError{"email", "Please provide a valid email"})
	}
	if u.Password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	}
	if !validRole(u.Role) {
		errs = append(errs, FieldError{"role", "\"" + u.Role + "\" is not a valid role"})
	}
	if len(u.Bio) > 300 {
		errs = append(errs, FieldError{"bio", "Bio cannot exceed 300 characters"})
	}
	return errs
}

// TotalEnrolledCourses is derived from the enrollment list at read time
// and is never persisted.
func (u *User) TotalEnrolledCourses() int {
	return len(u.EnrolledCourses)
}

// HasResetToken reports whether the user holds a reset token that has
// not yet expired.
func (u *User) HasResetToken(now time.Time) bool {
	return u.ResetPasswordToken != "" && now.Before(u.ResetPasswordExpiry)
}

func validRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}
