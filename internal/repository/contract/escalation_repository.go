package contract

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
)

type EscalationRepository interface {
	Create(ctx context.Context, escalation *entity.Escalation) error
	Update(ctx context.Context, escalation *entity.Escalation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Escalation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Escalation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
