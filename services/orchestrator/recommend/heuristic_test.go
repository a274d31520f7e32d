package recommend

import (
	"testing"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

func testDirectory() []datatypes.StaffRecord {
	return []datatypes.StaffRecord{
		{ID: "u1", UserID: 1, Name: "김철수", Department: "개발팀", Skills: []string{"Go", "PostgreSQL"}},
		{ID: "u2", UserID: 2, Name: "이영희", Department: "QA팀", Skills: []string{"Selenium", "시나리오"}},
		{ID: "u3", UserID: 3, Name: "박민수", Department: "마케팅팀", Skills: []string{"SEO"}},
	}
}

func TestHeuristicMatch_EmptyDirectory(t *testing.T) {
	m := NewHeuristicMatcher()
	if got := m.Match("아무 업무", nil); got != nil {
		t.Errorf("Match() = %v, want nil for empty directory", got)
	}
}

func TestHeuristicMatch_SkillWins(t *testing.T) {
	m := NewHeuristicMatcher()

	got := m.Match("Go 서비스의 PostgreSQL 마이그레이션", testDirectory())
	if got == nil || got.UserID != 1 {
		t.Fatalf("Match() = %+v, want 김철수 (two skill hits)", got)
	}
}

func TestHeuristicMatch_DepartmentBonus(t *testing.T) {
	m := NewHeuristicMatcher()

	// No skill appears in the task; only the QA domain keyword does.
	got := m.Match("테스트 커버리지 개선 방안 논의", testDirectory())
	if got == nil || got.UserID != 2 {
		t.Fatalf("Match() = %+v, want 이영희 via department bonus", got)
	}
}

func TestHeuristicMatch_SkillOutweighsDepartment(t *testing.T) {
	m := NewHeuristicMatcher()

	records := []datatypes.StaffRecord{
		{ID: "u1", UserID: 1, Name: "부서만", Department: "개발팀"},
		{ID: "u2", UserID: 2, Name: "스킬만", Department: "총무팀", Skills: []string{"배포"}},
	}
	got := m.Match("배포 스크립트 정리", records)
	if got == nil || got.UserID != 2 {
		t.Fatalf("Match() = %+v, want the skill match over the department bonus", got)
	}
}

func TestHeuristicMatch_CaseInsensitiveSkills(t *testing.T) {
	m := NewHeuristicMatcher()

	records := []datatypes.StaffRecord{
		{ID: "u1", UserID: 1, Name: "대문자", Skills: []string{"SEO"}},
		{ID: "u2", UserID: 2, Name: "무관", Skills: []string{"Figma"}},
	}
	got := m.Match("seo 지표 점검", records)
	if got == nil || got.UserID != 1 {
		t.Fatalf("Match() = %+v, want case-insensitive skill match", got)
	}
}

func TestHeuristicMatch_ZeroScoresDefaultToFirst(t *testing.T) {
	m := NewHeuristicMatcher()

	got := m.Match("탕비실 정리", testDirectory())
	if got == nil || got.UserID != 1 {
		t.Fatalf("Match() = %+v, want first record when nothing scores", got)
	}
}

func TestHeuristicMatch_TieKeepsEarlierRecord(t *testing.T) {
	m := NewHeuristicMatcher()

	records := []datatypes.StaffRecord{
		{ID: "u1", UserID: 1, Name: "먼저", Skills: []string{"Go"}},
		{ID: "u2", UserID: 2, Name: "나중", Skills: []string{"Go"}},
	}
	got := m.Match("Go 코드 리뷰", records)
	if got == nil || got.UserID != 1 {
		t.Fatalf("Match() = %+v, want the earlier record on a tie", got)
	}
}
