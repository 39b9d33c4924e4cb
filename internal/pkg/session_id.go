package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - returns a random id for a browser session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID - reports whether id looks like something GenerateNewSessionID returns.
func IsValidSessionID(id string) bool {
	return uuid.Validate(id) == nil
}
