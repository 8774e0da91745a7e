package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// ProcedureRepository defines the interface for procedure catalog operations
type ProcedureRepository interface {
	Create(ctx context.Context, procedure *entity.Procedure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Procedure, error)
	// GetByIDs retrieves multiple procedures in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Procedure, error)
	Update(ctx context.Context, procedure *entity.Procedure) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Procedure, int64, error)
}

// LabRepository defines the interface for lab data operations
type LabRepository interface {
	Create(ctx context.Context, lab *entity.Lab) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lab, error)
	Update(ctx context.Context, lab *entity.Lab) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Lab, int64, error)
}

// LabTestRepository defines the interface for lab test catalog operations
type LabTestRepository interface {
	Create(ctx context.Context, test *entity.LabTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LabTest, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.LabTest, error)
	GetByLabID(ctx context.Context, labID uuid.UUID) ([]entity.LabTest, error)
	Update(ctx context.Context, test *entity.LabTest) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.LabTest, int64, error)
}
