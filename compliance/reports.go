// Package compliance keeps the append-only safety and equipment checksheets of each site.
package compliance

import (
	"errors"
	"fmt"
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/idgen"
	"iwadcs/misc"
	"iwadcs/persistence"
	"iwadcs/session"
	"strings"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

const reportDateLayout = "2006-01-02"

var idWorker = idgen.NewWorker()

type Report struct {
	ID                types.ID `json:"id" gorm:"primary_key"`
	Location          string   `json:"location" gorm:"type:varchar(64);index"`
	ReportDate        string   `json:"reportDate" gorm:"type:varchar(10)"`
	Inspector         string   `json:"inspector"`
	InspectorUsername string   `json:"inspectorUsername" gorm:"type:varchar(64)"`

	PermitsVerified bool `json:"permitsVerified"`
	JSAComplete     bool `json:"jsaComplete" gorm:"column:jsa_complete"`
	AreaSecured     bool `json:"areaSecured"`
	LOTOApplied     bool `json:"lotoApplied" gorm:"column:loto_applied"`
	ToolsCertified  bool `json:"toolsCertified"`
	FireEquipmentOK bool `json:"fireEquipmentOk" gorm:"column:fire_equipment_ok"`
	PPEOK           bool `json:"ppeOk" gorm:"column:ppe_ok"`

	Comments            string    `json:"comments" gorm:"type:text"`
	SubmissionTimestamp time.Time `json:"submissionTimestamp"`
}

func (Report) TableName() string {
	return "compliance_reports"
}

type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// Checks lists the seven checks in checksheet order.
func (r *Report) Checks() []Check {
	return []Check{
		{Name: "Permits Verified", Passed: r.PermitsVerified},
		{Name: "JSA Complete", Passed: r.JSAComplete},
		{Name: "Area Secured", Passed: r.AreaSecured},
		{Name: "LOTO Applied", Passed: r.LOTOApplied},
		{Name: "Tools Certified", Passed: r.ToolsCertified},
		{Name: "Fire Equipment OK", Passed: r.FireEquipmentOK},
		{Name: "PPE OK", Passed: r.PPEOK},
	}
}

func (r *Report) AllCompliant() bool {
	for _, c := range r.Checks() {
		if !c.Passed {
			return false
		}
	}
	return true
}

type ReportCreation struct {
	Location   string `json:"location" binding:"required"`
	ReportDate string `json:"reportDate" binding:"required"`
	Inspector  string `json:"inspector"`

	PermitsVerified bool `json:"permitsVerified"`
	JSAComplete     bool `json:"jsaComplete"`
	AreaSecured     bool `json:"areaSecured"`
	LOTOApplied     bool `json:"lotoApplied"`
	ToolsCertified  bool `json:"toolsCertified"`
	FireEquipmentOK bool `json:"fireEquipmentOk"`
	PPEOK           bool `json:"ppeOk"`

	Comments string `json:"comments"`
}

// ReportView is a stored report with its evaluated checks.
type ReportView struct {
	Report
	Checks       []Check `json:"checks"`
	AllCompliant bool    `json:"allCompliant"`
}

func SubmitReport(c *ReportCreation, sec *session.Session) (*Report, error) {
	if !sec.IsReviewer() {
		return nil, bizerror.ErrForbidden
	}
	if _, found := catalog.LocationType(c.Location); !found {
		return nil, &bizerror.ErrBadParam{Cause: fmt.Errorf("unknown location '%s'", c.Location)}
	}
	reportDate, err := time.Parse(reportDateLayout, strings.TrimSpace(c.ReportDate))
	if err != nil {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("report date must be formatted as YYYY-MM-DD")}
	}
	inspector := strings.TrimSpace(c.Inspector)
	if inspector == "" {
		inspector = sec.Identity.Name
	}
	if inspector == "" {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("inspector is required")}
	}

	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	r := Report{
		ID:                  idgen.NextID(idWorker),
		Location:            c.Location,
		ReportDate:          reportDate.Format(reportDateLayout),
		Inspector:           inspector,
		InspectorUsername:   sec.Identity.Username,
		PermitsVerified:     c.PermitsVerified,
		JSAComplete:         c.JSAComplete,
		AreaSecured:         c.AreaSecured,
		LOTOApplied:         c.LOTOApplied,
		ToolsCertified:      c.ToolsCertified,
		FireEquipmentOK:     c.FireEquipmentOK,
		PPEOK:               c.PPEOK,
		Comments:            strings.TrimSpace(c.Comments),
		SubmissionTimestamp: misc.Now(),
	}
	if err := db.Create(&r).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"location": r.Location, "reportDate": r.ReportDate,
		"compliant": r.AllCompliant()}).Info("compliance report submitted")
	return &r, nil
}

// ListReports returns the reports of a location, latest report date first.
func ListReports(location string, sec *session.Session) ([]ReportView, error) {
	if !sec.IsReviewer() {
		return nil, bizerror.ErrForbidden
	}
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	records := []Report{}
	if err := db.Where("location = ?", location).
		Order("report_date DESC").Order("submission_timestamp DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	views := make([]ReportView, 0, len(records))
	for _, r := range records {
		views = append(views, ReportView{Report: r, Checks: r.Checks(), AllCompliant: r.AllCompliant()})
	}
	return views, nil
}
