package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload for access tokens issued by the dashboard.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	// StudentIDs are the student records the account may read: its own for a
	// student, linked children for a parent. User IDs never stand in for them.
	StudentIDs []string `json:"student_ids,omitempty"`
	jwt.RegisteredClaims
}

// CanReadStudent reports whether the token is linked to the student record.
func (c *JWTClaims) CanReadStudent(studentID string) bool {
	if studentID == "" {
		return false
	}
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
