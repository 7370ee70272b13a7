package utils

import (
	"regexp"
	"strconv"
	"unicode"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// At least 3 of 4 character types required
	count := 0
	if hasUpper {
		count++
	}
	if hasLower {
		count++
	}
	if hasNumber {
		count++
	}
	if hasSpecial {
		count++
	}

	return count >= 3
}

// IsValidVIN accepts the standard 17-character VIN alphabet (no I, O, Q).
func IsValidVIN(vin string) bool {
	if len(vin) != 17 {
		return false
	}
	vinRegex := regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	return vinRegex.MatchString(vin)
}

// IsValidYear accepts a 4-digit model year within a sane range.
func IsValidYear(year string) bool {
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return y >= 1900 && y <= 2100
}

func IsValidQuantity(quantity int) bool {
	return quantity > 0
}

func IsValidPrice(price float64) bool {
	return price >= 0
}
