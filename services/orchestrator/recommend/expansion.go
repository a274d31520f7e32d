package recommend

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Types
// =============================================================================

// SynonymEntry maps one domain keyword to its related search terms.
type SynonymEntry struct {
	// Key is matched as a case-insensitive substring of the task description.
	Key string `yaml:"key"`

	// Synonyms are the terms unioned into the expanded query when Key matches.
	Synonyms []string `yaml:"synonyms"`
}

// SynonymTable is the full keyword configuration for query expansion.
//
// # Description
//
// Entries are kept as ordered lists rather than maps so expansion output is
// deterministic for a fixed table. The table is immutable after load; the
// expander never mutates it at runtime.
type SynonymTable struct {
	// StaffKeywords cover staff-matching domains: engineering, QA, marketing,
	// design, infrastructure, data, and planning.
	StaffKeywords []SynonymEntry `yaml:"staff_keywords"`

	// GeneralKeywords cover work verbs (작성, 검토, 완료, ...) that widen the
	// query beyond the domain terms.
	GeneralKeywords []SynonymEntry `yaml:"general_keywords"`
}

// embeddedSynonyms holds the raw bytes of synonyms.yaml, baked into the
// binary at compile time so the expansion table travels with the executable
// and cannot drift from the code that interprets it.
//
//go:embed synonyms.yaml
var embeddedSynonyms []byte

// LoadDefaultSynonyms parses the embedded synonym table.
func LoadDefaultSynonyms() (*SynonymTable, error) {
	var table SynonymTable
	if err := yaml.Unmarshal(embeddedSynonyms, &table); err != nil {
		return nil, fmt.Errorf("parsing embedded synonym table: %w", err)
	}
	if len(table.StaffKeywords) == 0 {
		return nil, fmt.Errorf("embedded synonym table has no staff keywords")
	}
	return &table, nil
}

// =============================================================================
// Implementation
// =============================================================================

// KeywordExpander expands a task description into a disjunctive search query.
//
// # Description
//
// KeywordExpander unions the original text with the synonym sets of every
// table key present as a case-insensitive substring, then serializes the
// result as an "A OR B OR C" string for the index's match-any mode. The
// function is pure and deterministic: same input and table, same output.
// Inputs with no matching key pass through unchanged.
//
// # Thread Safety
//
// KeywordExpander is safe for concurrent use; the table is never mutated.
//
// # Example
//
//	table, _ := LoadDefaultSynonyms()
//	expander := NewKeywordExpander(table)
//	query := expander.Expand("백엔드 API 작업")
//	// query == "백엔드 API 작업 OR backend OR 개발자 OR ..."
type KeywordExpander struct {
	table *SynonymTable
}

// NewKeywordExpander creates an expander over the given table.
// The table must not be mutated after construction.
func NewKeywordExpander(table *SynonymTable) *KeywordExpander {
	return &KeywordExpander{table: table}
}

// Expand returns the OR-joined expansion of the task description.
//
// # Description
//
// The original input is always the first disjunct, verbatim. For each table
// entry whose key appears (case-insensitively) in the input, the entry's
// synonyms are appended in declaration order. A synonym already present in
// the accumulated query is skipped, which keeps the output a set and makes
// re-expansion of the output a no-op when it matches no additional keys.
//
// # Inputs
//
//   - taskDescription: Free-text description of the work to assign.
//
// # Outputs
//
//   - string: Disjunction string for match-any retrieval. Equals the input
//     when no key matches.
func (e *KeywordExpander) Expand(taskDescription string) string {
	lower := strings.ToLower(taskDescription)

	var sb strings.Builder
	sb.WriteString(taskDescription)

	appendMatches := func(entries []SynonymEntry) {
		for _, entry := range entries {
			if !strings.Contains(lower, strings.ToLower(entry.Key)) {
				continue
			}
			for _, syn := range entry.Synonyms {
				if containsTerm(sb.String(), syn) {
					continue
				}
				sb.WriteString(" OR ")
				sb.WriteString(syn)
			}
		}
	}

	appendMatches(e.table.StaffKeywords)
	appendMatches(e.table.GeneralKeywords)

	return sb.String()
}

// containsTerm reports whether term already occurs case-insensitively in
// the accumulated query string.
func containsTerm(query, term string) bool {
	return strings.Contains(strings.ToLower(query), strings.ToLower(term))
}
