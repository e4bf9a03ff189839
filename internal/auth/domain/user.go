// Package domain defines the authenticated principal of an API request.
package domain

// TestUserID is the principal assigned to requests carrying the test authentication header
// while the application runs with APP_ENV=test.
const TestUserID = "test-user-id"

// User is the caller identity extracted from a verified bearer token. Git tokens are
// scoped to User.ID.
type User struct {
	ID    string
	Email string
	Role  string
}
