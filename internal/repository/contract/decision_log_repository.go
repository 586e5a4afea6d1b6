package contract

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
)

type DecisionLogRepository interface {
	Create(ctx context.Context, log *entity.DecisionLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DecisionLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
