package contract

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
)

type RuleRepository interface {
	Create(ctx context.Context, rule *entity.Rule) error
	Update(ctx context.Context, rule *entity.Rule) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Rule, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rule, error)
}
