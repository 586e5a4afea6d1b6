package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"

	"github.com/stretchr/testify/assert"
)

type stubRuleRepo struct {
	rules []*entity.Rule
	err   error
}

func (s *stubRuleRepo) Create(ctx context.Context, rule *entity.Rule) error { return nil }
func (s *stubRuleRepo) Update(ctx context.Context, rule *entity.Rule) error { return nil }
func (s *stubRuleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Rule, error) {
	return nil, nil
}
func (s *stubRuleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rule, error) {
	return s.rules, s.err
}

func newTestEngine(rules []*entity.Rule) *Engine {
	source := NewSource(&stubRuleRepo{rules: rules}, logger.NewNoopLogger())
	return NewEngine(source)
}

func TestScore_VerifiedStaffGoodProfileIsPreEligible(t *testing.T) {
	engine := newTestEngine(nil)

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  5000,
		Age:            30,
	})

	// 30 staff + 25 salary + 10 (>3000) + 20 age + 5 (<50) + 10 blacklist = 100
	assert.Equal(t, constant.EligibilityPreEligible, result.Status)
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Reasons)
}

func TestScore_UnverifiedStaffIsHardGated(t *testing.T) {
	engine := newTestEngine(nil)

	// The staff requirement is a hard gate: no matter how strong salary
	// and age are, failing it yields score zero with no partial credit.
	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: false,
		MonthlySalary:  6000,
		Age:            30,
	})

	assert.Equal(t, constant.EligibilityNotEligible, result.Status)
	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Reasons, "Bukan penjawat awam yang disahkan")
}

func TestScore_IsCappedAt100(t *testing.T) {
	engine := newTestEngine(nil)

	// 30 staff + 25 salary + 10 (>3000) + 5 (>5000) + 20 age + 5 (<50)
	// + 10 blacklist = 105 raw, reported as 100.
	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  6000,
		Age:            30,
	})

	assert.Equal(t, constant.EligibilityPreEligible, result.Status)
	assert.Equal(t, 100, result.Score)
}

func TestScore_ExactMinimumSalaryFails(t *testing.T) {
	engine := newTestEngine(nil)

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  1800,
		Age:            30,
	})

	assert.Equal(t, constant.EligibilityNotEligible, result.Status)
	assert.Contains(t, result.Reasons, "Gaji bulanan tidak melebihi RM1800")
}

func TestScore_ExactMaximumAgeFails(t *testing.T) {
	engine := newTestEngine(nil)

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  3500,
		Age:            58,
	})

	assert.Equal(t, constant.EligibilityNotEligible, result.Status)
	assert.Contains(t, result.Reasons, "Umur melebihi had 58 tahun")
}

func TestScore_LowSalaryFails(t *testing.T) {
	engine := newTestEngine(nil)

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  1500,
		Age:            30,
	})

	assert.Equal(t, constant.EligibilityNotEligible, result.Status)
	assert.Contains(t, result.Reasons, "Gaji bulanan tidak melebihi RM1800")
}

func TestScore_OverAgeFails(t *testing.T) {
	engine := newTestEngine(nil)

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  3500,
		Age:            60,
	})

	assert.Equal(t, constant.EligibilityNotEligible, result.Status)
	assert.Contains(t, result.Reasons, "Umur melebihi had 58 tahun")
}

func TestScore_StoredRulesOverrideDefaults(t *testing.T) {
	engine := newTestEngine([]*entity.Rule{
		{RuleKey: KeyMinSalary, RuleValue: "4000", IsActive: true},
	})

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  3500,
		Age:            30,
	})

	assert.Equal(t, constant.EligibilityNotEligible, result.Status)
	assert.Contains(t, result.Reasons, "Gaji bulanan tidak melebihi RM4000")
}

func TestScore_InactiveRulesAreIgnored(t *testing.T) {
	engine := newTestEngine([]*entity.Rule{
		{RuleKey: KeyMinSalary, RuleValue: "4000", IsActive: false},
	})

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  3500,
		Age:            30,
	})

	assert.Equal(t, constant.EligibilityPreEligible, result.Status)
}

func TestScore_RepoFailureFallsBackToDefaults(t *testing.T) {
	source := NewSource(&stubRuleRepo{err: errors.New("db down")}, logger.NewNoopLogger())
	engine := NewEngine(source)

	result := engine.Score(context.Background(), Applicant{
		IsPenjawatAwam: true,
		StaffVerified:  true,
		MonthlySalary:  2000,
		Age:            40,
	})

	assert.Equal(t, constant.EligibilityPreEligible, result.Status)
}

func TestSource_InvalidateForcesReload(t *testing.T) {
	repo := &stubRuleRepo{rules: []*entity.Rule{
		{RuleKey: KeyMaxAge, RuleValue: "40", IsActive: true},
	}}
	source := NewSource(repo, logger.NewNoopLogger())

	assert.Equal(t, "40", source.Values(context.Background())[KeyMaxAge])

	repo.rules = []*entity.Rule{{RuleKey: KeyMaxAge, RuleValue: "55", IsActive: true}}

	// Cached until invalidated.
	assert.Equal(t, "40", source.Values(context.Background())[KeyMaxAge])
	source.Invalidate()
	assert.Equal(t, "55", source.Values(context.Background())[KeyMaxAge])
}
