package utils

import (
	"math"
	"strings"

	"markbook_go/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// NormalizeStatus upper-cases an attendance status and reports whether it
// is one of the four recognized values.
func NormalizeStatus(status string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(status))
	switch s {
	case models.StatusPresent, models.StatusAbsent, models.StatusLate, models.StatusLeave:
		return s, true
	}
	return "", false
}

// IsValidRole checks if a role is valid
func IsValidRole(role string) bool {
	return role == models.RoleTeacher || role == models.RoleStudent
}

// Percentage computes present/total*100 rounded to 2 decimal places. A zero
// denominator yields exactly 0, never NaN, so report consumers need no
// missing-data special case.
func Percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*10000) / 100
}

// SanitizeString removes null bytes and trims surrounding whitespace
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(input)
}
