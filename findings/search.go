package findings

import (
	"encoding/json"
	"iwadcs/client/es"
	"iwadcs/session"
	"strings"
)

var SearchFindingsFunc = SearchFindings

// SearchFindings evaluates q against the findings index, newest submission first.
func SearchFindings(q *Query, sec *session.Session) ([]Record, error) {
	filters := make([]es.H, 0, 3)
	if len(q.WorkCenters) > 0 {
		filters = append(filters, es.H{"terms": es.H{"workCenter.keyword": q.WorkCenters}})
	}
	if len(q.LocationTypes) > 0 {
		filters = append(filters, es.H{"terms": es.H{"locationType.keyword": q.LocationTypes}})
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		filters = append(filters, es.H{"match": es.H{"overallFindings": es.H{"query": term, "operator": "AND"}}})
	}

	body := es.H{
		"size":  10000,
		"query": es.H{"bool": es.H{"filter": filters}},
		"sort":  []es.H{{"submissionDate": es.H{"order": "desc"}}},
	}
	r, err := es.SearchFunc(sec.Ctx(), IndexName, body)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		record := Record{}
		if err := json.Unmarshal([]byte(hit.Source), &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
