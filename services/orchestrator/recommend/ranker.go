package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

// =============================================================================
// Interfaces
// =============================================================================

// GenerateFunc is a function type for LLM text generation.
//
// # Description
//
// Using a function type instead of an interface allows callers to pass
// a simple closure, eliminating the need for adapter structs when the
// underlying LLM client has a different signature.
//
// # Inputs
//
//   - ctx: Context for cancellation and timeout.
//   - prompt: The prompt to send to the LLM.
//   - temperature: Sampling temperature for the call.
//
// # Outputs
//
//   - string: The generated text.
//   - error: Non-nil if generation fails.
//
// # Example
//
//	generate := func(ctx context.Context, prompt string, temperature float32) (string, error) {
//	    return llmClient.Generate(ctx, prompt, llm.GenerationParams{Temperature: &temperature})
//	}
//	ranker := NewLLMAssigneeRanker(generate, DefaultRankerConfig())
type GenerateFunc func(ctx context.Context, prompt string, temperature float32) (string, error)

// Ranker selects exactly one assignee from a non-empty candidate list.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type Ranker interface {
	// Rank returns a tagged outcome naming one of the input candidates, or
	// nil when the candidate list is empty. Generation and parse failures
	// are absorbed into a first-candidate fallback, not returned as errors.
	Rank(ctx context.Context, taskDescription string, candidates []datatypes.CandidateMatch, meetingContext string) (*Outcome, error)
}

// =============================================================================
// Types
// =============================================================================

// Source tags which path produced a recommendation.
type Source string

const (
	// SourceModel means the ranking model returned a valid structured pick.
	SourceModel Source = "model"

	// SourceParseFallback means the model call or its parse failed and the
	// top retrieval hit was selected with degraded confidence.
	SourceParseFallback Source = "parse_fallback"

	// SourceHeuristic means the in-process directory heuristic produced the
	// pick because search retrieval was empty or unavailable.
	SourceHeuristic Source = "heuristic"

	// SourceUnassigned means no recommendation could be made at all.
	SourceUnassigned Source = "unassigned"
)

// Outcome pairs an AssigneeRecommendation with the path that produced it.
//
// # Description
//
// The degraded paths are first-class, testable branches rather than
// exception handling: callers can switch on Source to distinguish a model
// pick from a fallback without inspecting reasoning text. Recommendation is
// nil only when Source is SourceUnassigned.
type Outcome struct {
	Recommendation *datatypes.AssigneeRecommendation `json:"recommendation"`
	Source         Source                            `json:"source"`
}

// RankerConfig holds configuration for the LLM ranking call.
type RankerConfig struct {
	// MaxCandidates caps how many retrieval hits are shown to the model.
	// Default: 3 (can be set via RANKER_MAX_CANDIDATES)
	MaxCandidates int

	// Temperature is the sampling temperature for the ranking call. Kept
	// low so repeated calls over the same candidates agree.
	// Default: 0.1 (can be set via RANKER_TEMPERATURE)
	Temperature float32

	// TimeoutMs bounds the ranking call.
	// Default: 15000 (can be set via RANKER_TIMEOUT_MS)
	TimeoutMs int
}

// DefaultRankerConfig returns the default ranking configuration, with
// environment overrides applied.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		MaxCandidates: getEnvInt("RANKER_MAX_CANDIDATES", 3),
		Temperature:   float32(getEnvFloat("RANKER_TEMPERATURE", 0.1)),
		TimeoutMs:     getEnvInt("RANKER_TIMEOUT_MS", 15000),
	}
}

// getEnvInt returns an environment variable as int, or defaultVal if not set/invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// getEnvFloat returns an environment variable as float64, or defaultVal if not set/invalid.
func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

// =============================================================================
// Implementation
// =============================================================================

// LLMAssigneeRanker implements Ranker with a single text-generation call.
//
// # Description
//
// The prompt enumerates each candidate (name, id, department, position,
// skills, relevance score) alongside the task description and meeting
// context, and instructs the model to pick exactly one candidate as a JSON
// object. When the call fails, the response carries no parseable JSON, or
// the picked id names no input candidate, the ranker falls back to the
// first candidate (the top retrieval hit) with confidence fixed at 0.5.
//
// # Thread Safety
//
// LLMAssigneeRanker is safe for concurrent use.
type LLMAssigneeRanker struct {
	generate GenerateFunc
	config   RankerConfig
}

// NewLLMAssigneeRanker creates a ranker using the given generate function.
func NewLLMAssigneeRanker(generate GenerateFunc, config RankerConfig) *LLMAssigneeRanker {
	if config.MaxCandidates <= 0 {
		config.MaxCandidates = 3
	}
	return &LLMAssigneeRanker{
		generate: generate,
		config:   config,
	}
}

// parseFallbackReasoning is the reasoning attached when the model pick
// could not be used and the top search hit was selected instead.
const parseFallbackReasoning = "parse failure - defaulted to top search match"

// Rank selects one assignee from the candidate list.
//
// # Description
//
// Candidates beyond MaxCandidates are ignored; the input order (descending
// relevance) is preserved. An empty candidate list yields (nil, nil): there
// is nothing to rank, which is not an error.
//
// # Inputs
//
//   - ctx: Context for cancellation and timeout.
//   - taskDescription: The work to assign.
//   - candidates: Retrieval hits, best first. Only the first MaxCandidates
//     are considered.
//   - meetingContext: Optional surrounding meeting text.
//
// # Outputs
//
//   - *Outcome: SourceModel on a valid structured pick, SourceParseFallback
//     otherwise. Nil when candidates is empty.
//   - error: Reserved for programmer errors; environmental failures are
//     absorbed into the fallback outcome.
func (r *LLMAssigneeRanker) Rank(ctx context.Context, taskDescription string, candidates []datatypes.CandidateMatch, meetingContext string) (*Outcome, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if len(candidates) > r.config.MaxCandidates {
		candidates = candidates[:r.config.MaxCandidates]
	}

	prompt := r.buildRankingPrompt(taskDescription, candidates, meetingContext)

	timeout := time.Duration(r.config.TimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := r.generate(ctx, prompt, r.config.Temperature)
	if err != nil {
		slog.Warn("Ranking model call failed, using top candidate", "error", err)
		return r.fallbackOutcome(candidates), nil
	}

	rec, err := r.parseRankingResponse(response, candidates)
	if err != nil {
		slog.Warn("Ranking response unusable, using top candidate", "error", err)
		return r.fallbackOutcome(candidates), nil
	}

	return &Outcome{Recommendation: rec, Source: SourceModel}, nil
}

// fallbackOutcome packages the first candidate as a degraded pick.
func (r *LLMAssigneeRanker) fallbackOutcome(candidates []datatypes.CandidateMatch) *Outcome {
	first := candidates[0]
	return &Outcome{
		Recommendation: &datatypes.AssigneeRecommendation{
			RecommendedUserID: first.UserID,
			RecommendedName:   first.Name,
			ConfidenceScore:   0.5,
			Reasoning:         parseFallbackReasoning,
		},
		Source: SourceParseFallback,
	}
}

// buildRankingPrompt formats the task, context, and candidate enumeration.
func (r *LLMAssigneeRanker) buildRankingPrompt(taskDescription string, candidates []datatypes.CandidateMatch, meetingContext string) string {
	var candidatesText strings.Builder
	for i, c := range candidates {
		candidatesText.WriteString(fmt.Sprintf(`
%d. %s (ID: %d)
   - 부서: %s
   - 직책: %s
   - 스킬: %s
   - 관련성 점수: %.2f
`, i+1, c.Name, c.UserID, c.Department, c.Position, strings.Join(c.Skills, ", "), c.RelevanceScore))
	}

	return fmt.Sprintf(`다음 업무에 가장 적합한 담당자를 추천해주세요.

**업무 설명:**
%s

**회의 맥락:**
%s

**후보 직원들:**
%s

**추천 기준:**
1. 업무 내용과 직원의 스킬 매칭도
2. 부서 및 직책의 적합성
3. 과거 유사 업무 경험 (관련성 점수 참고)

**응답 형식:**
다음 JSON 형식으로 응답해주세요:
{
    "recommended_user_id": "추천할 직원의 user_id",
    "recommended_name": "추천할 직원의 이름",
    "confidence_score": 0.95,
    "reasoning": "추천 이유를 2-3문장으로 설명"
}

가장 적합한 1명만 추천하고, 확신도(0.0-1.0)와 추천 이유를 포함해주세요.`, taskDescription, meetingContext, candidatesText.String())
}

// parseRankingResponse extracts and validates the structured pick.
//
// The model may quote the user id or return it as a number; both are
// accepted. A pick naming an id outside the candidate list is rejected so
// the ranker can never recommend someone who was not retrieved.
func (r *LLMAssigneeRanker) parseRankingResponse(response string, candidates []datatypes.CandidateMatch) (*datatypes.AssigneeRecommendation, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var raw struct {
		RecommendedUserID json.RawMessage `json:"recommended_user_id"`
		RecommendedName   string          `json:"recommended_name"`
		ConfidenceScore   float64         `json:"confidence_score"`
		Reasoning         string          `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	userID, err := coerceUserID(raw.RecommendedUserID)
	if err != nil {
		return nil, err
	}

	picked := false
	for _, c := range candidates {
		if c.UserID == userID {
			picked = true
			break
		}
	}
	if !picked {
		return nil, fmt.Errorf("model picked user_id %d outside candidate list", userID)
	}

	return &datatypes.AssigneeRecommendation{
		RecommendedUserID: userID,
		RecommendedName:   raw.RecommendedName,
		ConfidenceScore:   clampConfidence(raw.ConfidenceScore),
		Reasoning:         raw.Reasoning,
	}, nil
}

// coerceUserID accepts either a JSON number or a numeric string.
func coerceUserID(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing recommended_user_id")
	}

	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return asInt, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		id, convErr := strconv.Atoi(strings.TrimSpace(asString))
		if convErr != nil {
			return 0, fmt.Errorf("non-numeric recommended_user_id %q", asString)
		}
		return id, nil
	}

	return 0, fmt.Errorf("unrecognized recommended_user_id %s", string(raw))
}

// clampConfidence bounds a model-reported confidence to [0, 1].
func clampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
