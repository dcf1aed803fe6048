package postgres

import (
	"github.com/google/uuid"
)

// UUIDReferenceGenerator stamps transfers with opaque UUID reference tokens.
type UUIDReferenceGenerator struct{}

// NewUUIDReferenceGenerator creates a new UUIDReferenceGenerator.
func NewUUIDReferenceGenerator() *UUIDReferenceGenerator {
	return &UUIDReferenceGenerator{}
}

// Generate generates a new reference token.
func (g *UUIDReferenceGenerator) Generate() string {
	return uuid.NewString()
}
