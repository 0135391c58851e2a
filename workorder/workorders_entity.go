package workorder

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fundwit/go-commons/types"
)

const SourceType = "WORK_ORDER"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	ChecklistPass = "PASS"
	ChecklistFail = "FAIL"
	ChecklistNA   = "NA"
)

const (
	DefaultPriority         = "Medium"
	DefaultApprovalFeedback = "Task approved as per standards"
)

type ChecklistItem struct {
	Task    string `json:"task"`
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

type ChecklistItems []ChecklistItem

type StringList []string

// WorkOrder is a maintenance activity submitted by a technician. Status moves from pending
// to approved or rejected exactly once.
type WorkOrder struct {
	ID              types.ID `json:"id" gorm:"primary_key"`
	WorkOrderNumber string   `json:"workOrderNumber" gorm:"type:varchar(32);unique_index"`

	WorkCenter        string         `json:"workCenter" gorm:"type:varchar(16);index"`
	LocationType      string         `json:"locationType" gorm:"type:varchar(16)"`
	SpecificLocation  string         `json:"specificLocation" gorm:"type:varchar(64)"`
	Area              string         `json:"area"`
	EquipmentName     string         `json:"equipmentName"`
	EquipmentType     string         `json:"equipmentType"`
	WorkType          string         `json:"workType"`
	Priority          string         `json:"priority" gorm:"type:varchar(16)"`
	EstimatedDuration int            `json:"estimatedDuration"`
	ChecklistData     ChecklistItems `json:"checklistData" gorm:"type:text"`
	OverallFindings   string         `json:"overallFindings" gorm:"type:text"`
	SafetyChecks      StringList     `json:"safetyChecks" gorm:"type:text"`

	Status          string    `json:"status" gorm:"type:varchar(16);index"`
	SubmittedBy     string    `json:"submittedBy" gorm:"type:varchar(64);index"`
	SubmittedByName string    `json:"submittedByName"`
	SubmissionDate  time.Time `json:"submissionDate"`

	Feedback   string     `json:"feedback" gorm:"type:text"`
	ReviewedBy string     `json:"reviewedBy"`
	ReviewDate *time.Time `json:"reviewDate"`
}

func (WorkOrder) TableName() string {
	return "tasks"
}

func (w *WorkOrder) IsCompleted() bool {
	return w.Status == StatusApproved || w.Status == StatusRejected
}

type WorkOrderCreation struct {
	WorkCenter       string          `json:"workCenter"`
	SpecificLocation string          `json:"specificLocation"`
	Area             string          `json:"area"`
	EquipmentName    string          `json:"equipmentName"`
	EquipmentType    string          `json:"equipmentType"`
	WorkType         string          `json:"workType"`
	Priority         string          `json:"priority"`
	ChecklistData    []ChecklistItem `json:"checklistData"`
	OverallFindings  string          `json:"overallFindings"`
	SafetyChecks     []string        `json:"safetyChecks"`
}

type ReviewFeedback struct {
	Feedback string `json:"feedback"`
}

func (t ChecklistItems) Value() (driver.Value, error) {
	if t == nil {
		t = ChecklistItems{}
	}
	jsonBytes, err := json.Marshal(&t)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (c *ChecklistItems) Scan(v interface{}) error {
	return scanJSON(v, c)
}

func (t StringList) Value() (driver.Value, error) {
	if t == nil {
		t = StringList{}
	}
	jsonBytes, err := json.Marshal(&t)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (c *StringList) Scan(v interface{}) error {
	return scanJSON(v, c)
}

func scanJSON(v interface{}, target interface{}) error {
	if v == nil {
		return nil
	}
	jsonString, ok := v.(string)
	if !ok {
		jsonByte, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("type is neither string nor []byte: %T %v", v, v)
		}
		jsonString = string(jsonByte)
	}
	if jsonString == "" {
		return nil
	}
	return json.Unmarshal([]byte(jsonString), target)
}
