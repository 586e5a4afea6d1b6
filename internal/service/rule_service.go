package service

import (
	"context"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/unitofwork"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/rules"

	"github.com/google/uuid"
)

type IRuleService interface {
	List(ctx context.Context) ([]*dto.RuleResponse, error)
	// Upsert writes a rule by key and invalidates the engine cache so
	// the change applies to the next scoring call.
	Upsert(ctx context.Context, req *dto.UpsertRuleRequest) (*dto.RuleResponse, error)
}

type ruleService struct {
	uowFactory unitofwork.RepositoryFactory
	ruleSource *rules.Source
}

func NewRuleService(uowFactory unitofwork.RepositoryFactory, ruleSource *rules.Source) IRuleService {
	return &ruleService{
		uowFactory: uowFactory,
		ruleSource: ruleSource,
	}
}

func (s *ruleService) List(ctx context.Context) ([]*dto.RuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stored, err := uow.RuleRepository().FindAll(ctx, specification.OrderBy{Field: "rule_key"})
	if err != nil {
		return nil, err
	}

	out := make([]*dto.RuleResponse, 0, len(stored))
	for _, r := range stored {
		out = append(out, toRuleResponse(r))
	}
	return out, nil
}

func (s *ruleService) Upsert(ctx context.Context, req *dto.UpsertRuleRequest) (*dto.RuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rule, err := uow.RuleRepository().FindOne(ctx, specification.ByRuleKey{RuleKey: req.RuleKey})
	if err != nil {
		return nil, err
	}

	if rule == nil {
		rule = &entity.Rule{
			Id:        uuid.New(),
			RuleKey:   req.RuleKey,
			RuleValue: req.RuleValue,
			Label:     req.Label,
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		if req.IsActive != nil {
			rule.IsActive = *req.IsActive
		}
		if err := uow.RuleRepository().Create(ctx, rule); err != nil {
			return nil, err
		}
	} else {
		rule.RuleValue = req.RuleValue
		if req.Label != "" {
			rule.Label = req.Label
		}
		if req.IsActive != nil {
			rule.IsActive = *req.IsActive
		}
		if err := uow.RuleRepository().Update(ctx, rule); err != nil {
			return nil, err
		}
	}

	s.ruleSource.Invalidate()
	return toRuleResponse(rule), nil
}

func toRuleResponse(r *entity.Rule) *dto.RuleResponse {
	return &dto.RuleResponse{
		Id:        r.Id,
		RuleKey:   r.RuleKey,
		RuleValue: r.RuleValue,
		Label:     r.Label,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
