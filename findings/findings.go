// Package findings analyzes the free text findings reported on work orders.
package findings

import (
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/client/es"
	"iwadcs/session"
	"iwadcs/workorder"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	noFindings      = "N/A"
	maxKeywords     = 20
	minKeywordRunes = 4
)

var listAllWorkOrders = workorder.ListAll

// Record is a work order reduced to what the findings log shows. It is also the indexed document.
type Record struct {
	ID               string    `json:"id"`
	WorkOrderNumber  string    `json:"workOrderNumber"`
	WorkCenter       string    `json:"workCenter"`
	LocationType     string    `json:"locationType"`
	SpecificLocation string    `json:"specificLocation"`
	EquipmentName    string    `json:"equipmentName"`
	SubmittedByName  string    `json:"submittedByName"`
	SubmissionDate   time.Time `json:"submissionDate"`
	Status           string    `json:"status"`
	OverallFindings  string    `json:"overallFindings"`
}

func recordOf(w *workorder.WorkOrder) Record {
	return Record{
		ID:               w.ID.String(),
		WorkOrderNumber:  w.WorkOrderNumber,
		WorkCenter:       w.WorkCenter,
		LocationType:     w.LocationType,
		SpecificLocation: w.SpecificLocation,
		EquipmentName:    w.EquipmentName,
		SubmittedByName:  w.SubmittedByName,
		SubmissionDate:   w.SubmissionDate,
		Status:           w.Status,
		OverallFindings:  w.OverallFindings,
	}
}

func hasFindings(w *workorder.WorkOrder) bool {
	f := strings.TrimSpace(w.OverallFindings)
	return f != "" && f != noFindings
}

type Query struct {
	WorkCenters   []string `form:"workCenter"`
	LocationTypes []string `form:"locationType"`
	Search        string   `form:"q"`
}

func (q *Query) matches(r *Record) bool {
	if len(q.WorkCenters) > 0 && !contains(q.WorkCenters, r.WorkCenter) {
		return false
	}
	if len(q.LocationTypes) > 0 && !contains(q.LocationTypes, r.LocationType) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	return term == "" || strings.Contains(strings.ToLower(r.OverallFindings), term)
}

type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type Analysis struct {
	Total    int            `json:"total"`
	Keywords []KeywordCount `json:"keywords"`
	Records  []Record       `json:"records"`

	WorkCenters   []string `json:"workCenters"`
	LocationTypes []string `json:"locationTypes"`
}

// Analyze filters the work orders carrying findings and counts their common keywords. Free
// text search goes through the search index when one is configured.
func Analyze(q *Query, sec *session.Session) (*Analysis, error) {
	if !sec.IsReviewer() {
		return nil, bizerror.ErrForbidden
	}
	all, err := listAllWorkOrders(sec)
	if err != nil {
		return nil, err
	}

	candidates := make([]Record, 0, len(all))
	workCenters, locationTypes := map[string]struct{}{}, map[string]struct{}{}
	for i := range all {
		if !hasFindings(&all[i]) {
			continue
		}
		r := recordOf(&all[i])
		candidates = append(candidates, r)
		workCenters[r.WorkCenter] = struct{}{}
		locationTypes[r.LocationType] = struct{}{}
	}

	var selected []Record
	if es.Enabled() && strings.TrimSpace(q.Search) != "" {
		if selected, err = SearchFindingsFunc(q, sec); err != nil {
			return nil, err
		}
	} else {
		selected = make([]Record, 0, len(candidates))
		for i := range candidates {
			if q.matches(&candidates[i]) {
				selected = append(selected, candidates[i])
			}
		}
	}

	texts := make([]string, 0, len(selected))
	for _, r := range selected {
		texts = append(texts, r.OverallFindings)
	}
	return &Analysis{
		Total:         len(selected),
		Keywords:      Keywords(texts),
		Records:       selected,
		WorkCenters:   sortedKeys(workCenters),
		LocationTypes: sortedKeys(locationTypes),
	}, nil
}

// Keywords lower-cases the texts, strips punctuation and counts the words longer than three
// letters that are not stop words. The twenty most frequent come first, ties alphabetically.
func Keywords(texts []string) []KeywordCount {
	stopWords := catalog.StopWords()
	counts := map[string]int{}
	for _, text := range texts {
		for _, word := range strings.Fields(stripPunctuation(strings.ToLower(text))) {
			if _, stop := stopWords[word]; stop || utf8.RuneCountInString(word) < minKeywordRunes {
				continue
			}
			counts[word]++
		}
	}

	keywords := make([]KeywordCount, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, KeywordCount{Word: word, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
