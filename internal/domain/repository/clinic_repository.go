package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// ClinicRepository defines the interface for clinic data operations
type ClinicRepository interface {
	// Create creates a new clinic
	Create(ctx context.Context, clinic *entity.Clinic) error

	// GetByID retrieves a clinic by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Clinic, error)

	// GetBySlug retrieves a clinic by slug (subdomain identifier)
	GetBySlug(ctx context.Context, slug string) (*entity.Clinic, error)

	// Update updates an existing clinic
	Update(ctx context.Context, clinic *entity.Clinic) error

	// UpdateSettings replaces the clinic settings document
	UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.ClinicSettings) error

	// Delete soft-deletes a clinic
	Delete(ctx context.Context, id uuid.UUID) error

	// GetUserClinics retrieves all clinics a user belongs to with pagination
	GetUserClinics(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Clinic, int64, error)

	// AddMember adds a user as a member of a clinic
	AddMember(ctx context.Context, membership *entity.ClinicMembership) error

	// RemoveMember removes a user from a clinic
	RemoveMember(ctx context.Context, clinicID, userID uuid.UUID) error

	// GetMembers retrieves all members of a clinic
	GetMembers(ctx context.Context, clinicID uuid.UUID) ([]entity.ClinicMembership, error)

	// IsMember checks if a user is a member of a clinic
	IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error)

	// GetMembership retrieves a specific membership
	GetMembership(ctx context.Context, clinicID, userID uuid.UUID) (*entity.ClinicMembership, error)

	// UpdateMemberRole updates a member's role in a clinic
	UpdateMemberRole(ctx context.Context, clinicID, userID uuid.UUID, role string) error

	// SlugExists checks if a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListAll retrieves all clinics (for super admin use)
	ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Clinic, int64, error)

	// Count returns the total number of clinics
	Count(ctx context.Context) (int64, error)
}
