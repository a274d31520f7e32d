package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

// =============================================================================
// Test Fakes
// =============================================================================

type fakeSearcher struct {
	candidates []datatypes.CandidateMatch
	err        error
	lastQuery  string
	lastTopK   int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, topK int) ([]datatypes.CandidateMatch, error) {
	f.lastQuery = query
	f.lastTopK = topK
	return f.candidates, f.err
}

type fakeRanker struct {
	outcome *Outcome
	err     error
	calls   int
}

func (f *fakeRanker) Rank(ctx context.Context, task string, candidates []datatypes.CandidateMatch, meetingContext string) (*Outcome, error) {
	f.calls++
	return f.outcome, f.err
}

type fakeDirectory struct {
	records []datatypes.StaffRecord
	err     error
}

func (f *fakeDirectory) ListAll(ctx context.Context) ([]datatypes.StaffRecord, error) {
	return f.records, f.err
}

func newTestRecommender(searcher StaffSearcher, ranker Ranker, dir DirectoryLister) *Recommender {
	return NewRecommender(NewKeywordExpander(testSynonymTable()), searcher, ranker, dir, nil)
}

// =============================================================================
// RecommendAssignee Tests
// =============================================================================

func TestRecommendAssignee_EmptyTask(t *testing.T) {
	rec := newTestRecommender(&fakeSearcher{}, &fakeRanker{}, &fakeDirectory{})

	_, err := rec.RecommendAssignee(context.Background(), "", "")
	assert.Error(t, err)
}

func TestRecommendAssignee_ModelPath(t *testing.T) {
	searcher := &fakeSearcher{candidates: testCandidates()}
	ranker := &fakeRanker{outcome: &Outcome{
		Recommendation: &datatypes.AssigneeRecommendation{
			RecommendedUserID: 2, RecommendedName: "이영희", ConfidenceScore: 0.9, Reasoning: "적합",
		},
		Source: SourceModel,
	}}
	rec := newTestRecommender(searcher, ranker, &fakeDirectory{})

	outcome, err := rec.RecommendAssignee(context.Background(), "QA 시나리오 작성", "")
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, SourceModel, outcome.Source)
	assert.Equal(t, 2, outcome.Recommendation.RecommendedUserID)
	assert.Equal(t, 1, ranker.calls)
	assert.Equal(t, 5, searcher.lastTopK)
	assert.Contains(t, searcher.lastQuery, "QA 시나리오 작성")
	assert.Contains(t, searcher.lastQuery, " OR ", "expanded query must reach the searcher")
}

func TestRecommendAssignee_SearchErrorFallsToHeuristic(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("index unreachable")}
	ranker := &fakeRanker{}
	dir := &fakeDirectory{records: testDirectory()}
	rec := newTestRecommender(searcher, ranker, dir)

	outcome, err := rec.RecommendAssignee(context.Background(), "Go 코드 리뷰", "")
	require.NoError(t, err, "index outages must degrade, not propagate")
	require.NotNil(t, outcome)

	assert.Equal(t, SourceHeuristic, outcome.Source)
	assert.Equal(t, 1, outcome.Recommendation.RecommendedUserID)
	assert.Equal(t, 0.5, outcome.Recommendation.ConfidenceScore)
	assert.Equal(t, 0, ranker.calls, "ranker must be skipped with no candidates")
}

func TestRecommendAssignee_EmptyRetrievalFallsToHeuristic(t *testing.T) {
	searcher := &fakeSearcher{candidates: nil}
	rec := newTestRecommender(searcher, &fakeRanker{}, &fakeDirectory{records: testDirectory()})

	outcome, err := rec.RecommendAssignee(context.Background(), "테스트 자동화", "")
	require.NoError(t, err)
	assert.Equal(t, SourceHeuristic, outcome.Source)
}

func TestRecommendAssignee_EmptyDirectoryIsUnassigned(t *testing.T) {
	searcher := &fakeSearcher{candidates: nil}
	rec := newTestRecommender(searcher, &fakeRanker{}, &fakeDirectory{records: nil})

	outcome, err := rec.RecommendAssignee(context.Background(), "업무", "")
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, SourceUnassigned, outcome.Source)
	assert.Nil(t, outcome.Recommendation)
}

func TestRecommendAssignee_DirectoryErrorIsUnassigned(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("index unreachable")}
	dir := &fakeDirectory{err: errors.New("store closed")}
	rec := newTestRecommender(searcher, &fakeRanker{}, dir)

	outcome, err := rec.RecommendAssignee(context.Background(), "업무", "")
	require.NoError(t, err, "every environmental failure path must still answer")
	assert.Equal(t, SourceUnassigned, outcome.Source)
}

func TestRecommendAssignee_RankerErrorFallsToHeuristic(t *testing.T) {
	searcher := &fakeSearcher{candidates: testCandidates()}
	ranker := &fakeRanker{err: errors.New("programmer error")}
	rec := newTestRecommender(searcher, ranker, &fakeDirectory{records: testDirectory()})

	outcome, err := rec.RecommendAssignee(context.Background(), "Go 코드 리뷰", "")
	require.NoError(t, err)
	assert.Equal(t, SourceHeuristic, outcome.Source)
}

func TestRecommendAssignee_ParseFallbackPassesThrough(t *testing.T) {
	searcher := &fakeSearcher{candidates: testCandidates()}
	ranker := &fakeRanker{outcome: &Outcome{
		Recommendation: &datatypes.AssigneeRecommendation{
			RecommendedUserID: 1, RecommendedName: "김철수", ConfidenceScore: 0.5,
			Reasoning: parseFallbackReasoning,
		},
		Source: SourceParseFallback,
	}}
	rec := newTestRecommender(searcher, ranker, &fakeDirectory{})

	outcome, err := rec.RecommendAssignee(context.Background(), "업무", "")
	require.NoError(t, err)
	assert.Equal(t, SourceParseFallback, outcome.Source)
	assert.Equal(t, 0.5, outcome.Recommendation.ConfidenceScore)
}
