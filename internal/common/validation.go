package common

import (
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// ParseObjectID validates a path or query identifier before it reaches the
// store. name is used in the error message ("Invalid video id").
func ParseObjectID(raw, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil || id.IsZero() {
		return primitive.NilObjectID, NewValidationError("Invalid " + name + " id")
	}
	return id, nil
}

// RequireFields fails with a 400 naming every blank field.
func RequireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name+" is required")
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return NewValidationError("All fields are required", missing...)
}

func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return NewValidationError("username must be between 3 and 50 characters")
	}
	if !usernameRegex.MatchString(username) {
		return NewValidationError("username can only contain lowercase letters, numbers, and underscores")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return NewValidationError("password must be at least 6 characters long")
	}
	if len(password) > 72 {
		return NewValidationError("password is too long")
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return NewValidationError("invalid email format")
	}
	return nil
}
