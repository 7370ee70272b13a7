package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("mario.rossi@example.com"))
	assert.True(t, IsValidEmail("officina+test@moto-shop.it"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Secret123"))
	assert.True(t, IsValidPassword("abc123!@"))
	assert.False(t, IsValidPassword("short"))
	assert.False(t, IsValidPassword("alllowercase"))
}

func TestIsValidVIN(t *testing.T) {
	assert.True(t, IsValidVIN("ZDMH40600JB123456"))
	assert.False(t, IsValidVIN("TOOSHORT"))
	assert.False(t, IsValidVIN("ZDMH40600JB12345O")) // letter O not allowed
	assert.False(t, IsValidVIN(""))
}

func TestIsValidYear(t *testing.T) {
	assert.True(t, IsValidYear("2019"))
	assert.True(t, IsValidYear("1975"))
	assert.False(t, IsValidYear("1850"))
	assert.False(t, IsValidYear("20x9"))
	assert.False(t, IsValidYear(""))
}

func TestIsValidQuantity(t *testing.T) {
	assert.True(t, IsValidQuantity(1))
	assert.False(t, IsValidQuantity(0))
	assert.False(t, IsValidQuantity(-3))
}

func TestIsValidPrice(t *testing.T) {
	assert.True(t, IsValidPrice(0))
	assert.True(t, IsValidPrice(18.50))
	assert.False(t, IsValidPrice(-0.01))
}
