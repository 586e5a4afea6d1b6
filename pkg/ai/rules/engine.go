package rules

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

// Rule keys recognised by the scorer. Unknown keys stored by operators
// are ignored.
const (
	KeyMinSalary          = "min_salary"
	KeyMaxAge             = "max_age"
	KeyMustBePenjawatAwam = "must_be_penjawat_awam"
)

// Defaults used when a rule row is missing or inactive.
var defaults = map[string]string{
	KeyMinSalary:          "1800",
	KeyMaxAge:             "58",
	KeyMustBePenjawatAwam: "true",
}

const (
	cacheTTL = 60 * time.Second
	cacheKey = "active_rules"

	// EligibleThreshold is the minimum weighted score. Reaching it is
	// necessary but not sufficient; any failed rule still disqualifies.
	EligibleThreshold = 65
)

// Applicant is the input to a scoring run. Fields come from the
// conversation and, when available, OCR extraction.
type Applicant struct {
	IsPenjawatAwam bool
	StaffVerified  bool
	MonthlySalary  float64
	Age            int
	Employer       string
}

// Result is the outcome of scoring one applicant.
type Result struct {
	Status  string // PRE_ELIGIBLE | NOT_ELIGIBLE
	Score   int
	Reasons []string // human-readable failure reasons, empty when eligible
}

// Source loads rule values through a short TTL cache so operator edits
// take effect within a minute without hammering the database.
type Source struct {
	repo   contract.RuleRepository
	cache  *gocache.Cache
	logger logger.ILogger
}

func NewSource(repo contract.RuleRepository, log logger.ILogger) *Source {
	return &Source{
		repo:   repo,
		cache:  gocache.New(cacheTTL, 5*time.Minute),
		logger: log,
	}
}

// Values returns the effective rule map: stored active rules layered
// over the built-in defaults. Database failures fall back to defaults.
func (s *Source) Values(ctx context.Context) map[string]string {
	if v, ok := s.cache.Get(cacheKey); ok {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}

	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("rules", "failed to load rules, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return values
	}

	for _, r := range stored {
		if r.IsActive {
			values[r.RuleKey] = r.RuleValue
		}
	}

	s.cache.Set(cacheKey, values, cacheTTL)
	return values
}

// Invalidate drops the cached rules so the next scoring call re-reads
// them. Called after operator rule updates.
func (s *Source) Invalidate() {
	s.cache.Delete(cacheKey)
}

// Engine computes eligibility deterministically from the rule values.
// The model never decides eligibility; it only relays this result.
type Engine struct {
	source *Source
}

func NewEngine(source *Source) *Engine {
	return &Engine{source: source}
}

// Score runs all rules against the applicant. The result is
// PRE_ELIGIBLE only when the weighted score reaches the threshold AND
// no rule failed.
func (e *Engine) Score(ctx context.Context, applicant Applicant) Result {
	values := e.source.Values(ctx)

	minSalary := parseFloat(values[KeyMinSalary], 1800)
	maxAge := parseInt(values[KeyMaxAge], 58)
	mustBeStaff := parseBool(values[KeyMustBePenjawatAwam], true)

	score := 0
	var reasons []string

	// Government staff status, verified against the employer registry.
	// This rule is a hard gate: failing it disqualifies outright, with
	// score zero and no further point accumulation.
	if mustBeStaff {
		if !applicant.IsPenjawatAwam || !applicant.StaffVerified {
			return Result{
				Status:  constant.EligibilityNotEligible,
				Score:   0,
				Reasons: []string{"Bukan penjawat awam yang disahkan"},
			}
		}
		score += 30
	}

	// Salary must exceed the floor, with bonuses for stronger income.
	if applicant.MonthlySalary > minSalary {
		score += 25
		if applicant.MonthlySalary > 3000 {
			score += 10
		}
		if applicant.MonthlySalary > 5000 {
			score += 5
		}
	} else {
		reasons = append(reasons, fmt.Sprintf("Gaji bulanan tidak melebihi RM%.0f", minSalary))
	}

	// Age must be below the ceiling, with a bonus for applicants under 50.
	if applicant.Age > 0 && applicant.Age < maxAge {
		score += 20
		if applicant.Age < 50 {
			score += 5
		}
	} else {
		reasons = append(reasons, fmt.Sprintf("Umur melebihi had %d tahun", maxAge))
	}

	// Blacklist screening is not integrated with CTOS/CCRIS yet, so every
	// applicant passes. TODO: wire the credit bureau check once the
	// koperasi's CTOS account is provisioned.
	score += 10

	if score > 100 {
		score = 100
	}

	result := Result{Score: score, Reasons: reasons}
	if score >= EligibleThreshold && len(reasons) == 0 {
		result.Status = constant.EligibilityPreEligible
	} else {
		result.Status = constant.EligibilityNotEligible
	}
	return result
}

func parseFloat(s string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}

func parseBool(s string, fallback bool) bool {
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return fallback
}
