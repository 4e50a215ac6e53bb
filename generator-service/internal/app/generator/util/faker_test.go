package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName_TwoWords(t *testing.T) {
	r := NewRand(42)

	for i := 0; i < 100; i++ {
		name := FullName(r)
		parts := strings.Split(name, " ")
		assert.Len(t, parts, 2)
		assert.NotEmpty(t, parts[0])
		assert.NotEmpty(t, parts[1])
	}
}

func TestEmail_DerivedFromName(t *testing.T) {
	r := NewRand(42)

	email := Email(r, "Anna Petrova")

	assert.True(t, strings.HasPrefix(email, "anna.petrova"))
	assert.Contains(t, email, "@")
	assert.Equal(t, email, strings.ToLower(email))
}

func TestProductName_KnownCategory(t *testing.T) {
	r := NewRand(42)

	for i := 0; i < 100; i++ {
		name := ProductName(r, "Electronics")
		parts := strings.Split(name, " ")
		assert.Len(t, parts, 3)
	}
}

func TestProductName_UnknownCategory_FallsBack(t *testing.T) {
	r := NewRand(42)

	name := ProductName(r, "Groceries")

	assert.NotEmpty(t, name)
	assert.Len(t, strings.Split(name, " "), 3)
}

func TestCitySupplier_NonEmpty(t *testing.T) {
	r := NewRand(42)

	for i := 0; i < 50; i++ {
		assert.NotEmpty(t, City(r))
		assert.NotEmpty(t, Supplier(r))
	}
}
