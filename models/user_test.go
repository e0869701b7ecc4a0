package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validUser() *User {
	return &User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2-ok",
		Role:     RoleStudent,
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		field   string
		message string
	}{
		{"missing name", func(u *User) { u.Name = "" }, "name", "Name is required"},
		{"name too long", func(u *User) { u.Name = strings.Repeat("a", 21) }, "name", "Name cannot exceed 20 characters"},
		{"missing email", func(u *User) { u.Email = "" }, "email", "Email is required"},
		{"bad email", func(u *User) { u.Email = "not-an-email" }, "email", "Please provide a valid email"},
		{"missing password", func(u *User) { u.Password = "" }, "password", "Password is required"},
		{"bad role", func(u *User) { u.Role = "superuser" }, "role", "\"superuser\" is not a valid role"},
		{"bio too long", func(u *User) { u.Bio = strings.Repeat("b", 301) }, "bio", "Bio cannot exceed 300 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)
			errs := u.Validate()
			require.NotEmpty(t, errs)
			assert.True(t, errs.Has(tt.field))
			assert.Contains(t, errs.Error(), tt.message)
		})
	}
}

func TestUserValidateAccepts(t *testing.T) {
	u := validUser()
	u.Email = "a@b.co"
	assert.Empty(t, u.Validate())
}

func TestUserNormalize(t *testing.T) {
	u := &User{
		Name:     "  Ada  ",
		Email:    "  Ada@Example.COM ",
		Password: "hunter2-ok",
	}
	u.Normalize()
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleStudent, u.Role)
	assert.False(t, u.LastActive.IsZero())
}

func TestTotalEnrolledCoursesDerived(t *testing.T) {
	u := validUser()
	for i := 0; i < 3; i++ {
		u.EnrolledCourses = append(u.EnrolledCourses, EnrolledCourse{
			Course:     primitive.NewObjectID(),
			EnrolledAt: time.Now(),
		})
	}
	assert.Equal(t, 3, u.TotalEnrolledCourses())

	// Derived, never stored.
	raw, err := bson.Marshal(u)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "totalEnrolledCourses")
}

func TestHasResetToken(t *testing.T) {
	now := time.Now()
	u := validUser()
	assert.False(t, u.HasResetToken(now))

	u.ResetPasswordToken = "deadbeef"
	u.ResetPasswordExpiry = now.Add(10 * time.Minute)
	assert.True(t, u.HasResetToken(now))

	// Token is void once the expiry elapses.
	assert.False(t, u.HasResetToken(now.Add(11*time.Minute)))
}
