package recommend

import (
	"strings"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

// skillMatchWeight is added per skill string found in the task description.
const skillMatchWeight = 2

// departmentBonus is added once when the task names a domain and the
// record's department belongs to it.
const departmentBonus = 1

// departmentDomains groups task-side domain keywords with the department
// name fragments they indicate. All matching is done on lowercased text.
var departmentDomains = []struct {
	taskKeywords []string
	departments  []string
}{
	{
		taskKeywords: []string{"개발", "백엔드", "백앤드", "프론트", "api", "시스템", "코딩", "배포"},
		departments:  []string{"개발", "engineering", "dev"},
	},
	{
		taskKeywords: []string{"qa", "테스트", "품질", "시나리오"},
		departments:  []string{"qa", "품질", "quality"},
	},
	{
		taskKeywords: []string{"마케팅", "홍보", "캠페인", "seo"},
		departments:  []string{"마케팅", "marketing"},
	},
	{
		taskKeywords: []string{"디자인", "ui", "ux"},
		departments:  []string{"디자인", "design"},
	},
	{
		taskKeywords: []string{"데이터", "분석", "통계", "etl"},
		departments:  []string{"데이터", "data"},
	},
	{
		taskKeywords: []string{"인프라", "devops", "모니터링"},
		departments:  []string{"인프라", "infra", "devops"},
	},
	{
		taskKeywords: []string{"기획", "전략", "계획"},
		departments:  []string{"기획", "planning", "pm"},
	},
}

// HeuristicMatcher scores staff records against a task description without
// touching the search index.
//
// # Description
//
// This is the degraded path used when retrieval is empty or unavailable.
// Scoring is pure and in-process: each of a record's skills appearing as a
// case-insensitive substring of the task description adds skillMatchWeight,
// and a department bonus is added when the task names a domain the record's
// department belongs to. The highest score wins; ties keep the earlier
// record, and an all-zero scoreboard falls back to the first record so a
// non-empty directory always yields a pick.
//
// # Thread Safety
//
// HeuristicMatcher is stateless and safe for concurrent use.
type HeuristicMatcher struct{}

// NewHeuristicMatcher creates a matcher.
func NewHeuristicMatcher() *HeuristicMatcher {
	return &HeuristicMatcher{}
}

// Match returns the best-scoring record, or nil when records is empty.
//
// The input order must be deterministic for a fixed directory (the store
// iterates in key order); both the tie-break and the zero-score default
// depend on it.
func (m *HeuristicMatcher) Match(taskDescription string, records []datatypes.StaffRecord) *datatypes.StaffRecord {
	if len(records) == 0 {
		return nil
	}

	taskLower := strings.ToLower(taskDescription)

	best := 0
	bestScore := -1
	for i := range records {
		score := m.score(taskLower, &records[i])
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	return &records[best]
}

// score computes the skill and department score for one record against the
// lowercased task description.
func (m *HeuristicMatcher) score(taskLower string, record *datatypes.StaffRecord) int {
	score := 0

	for _, skill := range record.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if strings.Contains(taskLower, skill) {
			score += skillMatchWeight
		}
	}

	deptLower := strings.ToLower(record.Department)
	if deptLower != "" {
		for _, domain := range departmentDomains {
			if !anySubstring(taskLower, domain.taskKeywords) {
				continue
			}
			if anySubstring(deptLower, domain.departments) {
				score += departmentBonus
				break
			}
		}
	}

	return score
}

// anySubstring reports whether any needle occurs in haystack. Needles are
// already lowercase.
func anySubstring(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
