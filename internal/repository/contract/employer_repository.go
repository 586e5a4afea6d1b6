package contract

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
)

type EmployerRepository interface {
	Create(ctx context.Context, employer *entity.GovernmentEmployer) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GovernmentEmployer, error)
	// SearchApproved matches approved employers by name/ministry substring
	// or exact code.
	SearchApproved(ctx context.Context, query string) ([]*entity.GovernmentEmployer, error)
}
