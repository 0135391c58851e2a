package workorder

import (
	"errors"
	"fmt"
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/session"
	"strings"
)

// normalize validates a creation against the catalog and the submitter's work center and
// returns the trimmed, defaulted copy. No field is written before it succeeds.
func (c *WorkOrderCreation) normalize(sec *session.Session) (*WorkOrderCreation, error) {
	n := WorkOrderCreation{
		WorkCenter:       strings.TrimSpace(c.WorkCenter),
		SpecificLocation: strings.TrimSpace(c.SpecificLocation),
		Area:             strings.TrimSpace(c.Area),
		EquipmentName:    strings.TrimSpace(c.EquipmentName),
		EquipmentType:    strings.TrimSpace(c.EquipmentType),
		WorkType:         strings.TrimSpace(c.WorkType),
		Priority:         strings.TrimSpace(c.Priority),
		OverallFindings:  strings.TrimSpace(c.OverallFindings),
	}

	if n.WorkCenter == "" && sec.Identity.WorkCenter != catalog.WorkCenterAll {
		n.WorkCenter = sec.Identity.WorkCenter
	}
	if n.WorkCenter == "" {
		return nil, badParam("work center is required")
	}
	if !catalog.IsWorkCenter(n.WorkCenter) {
		return nil, badParam(fmt.Sprintf("unknown work center '%s'", n.WorkCenter))
	}
	if !sec.CanAccessWorkCenter(n.WorkCenter) {
		return nil, bizerror.ErrForbidden
	}

	var missing []string
	if n.SpecificLocation == "" {
		missing = append(missing, "Location")
	}
	if n.Area == "" {
		missing = append(missing, "Area")
	}
	if n.EquipmentType == "" {
		missing = append(missing, "Equipment Type")
	}
	if n.EquipmentName == "" {
		missing = append(missing, equipmentLabel(n.WorkCenter))
	}
	if n.WorkType == "" {
		missing = append(missing, "Work Type")
	}
	if len(missing) > 0 {
		return nil, badParam("missing required fields: " + strings.Join(missing, ", "))
	}
	if _, found := catalog.LocationType(n.SpecificLocation); !found {
		return nil, badParam(fmt.Sprintf("unknown location '%s'", n.SpecificLocation))
	}

	if n.Priority == "" {
		n.Priority = DefaultPriority
	} else if !catalog.IsPriority(n.Priority) {
		return nil, badParam(fmt.Sprintf("unknown priority '%s'", n.Priority))
	}

	if c.ChecklistData == nil {
		for _, task := range catalog.Checklist(n.WorkCenter, n.EquipmentType) {
			n.ChecklistData = append(n.ChecklistData, ChecklistItem{Task: task, Status: ChecklistPass})
		}
	} else {
		n.ChecklistData = make([]ChecklistItem, 0, len(c.ChecklistData))
		for i, item := range c.ChecklistData {
			item.Task = strings.TrimSpace(item.Task)
			item.Remarks = strings.TrimSpace(item.Remarks)
			if item.Task == "" {
				return nil, badParam(fmt.Sprintf("checklist item %d has no task", i+1))
			}
			switch item.Status {
			case "":
				item.Status = ChecklistPass
			case ChecklistPass, ChecklistFail, ChecklistNA:
			default:
				return nil, badParam(fmt.Sprintf("checklist item %d has invalid status '%s'", i+1, item.Status))
			}
			n.ChecklistData = append(n.ChecklistData, item)
		}
	}

	n.SafetyChecks = []string{}
	for _, check := range c.SafetyChecks {
		if !catalog.IsSafetyCheck(check) {
			return nil, badParam(fmt.Sprintf("unknown safety check '%s'", check))
		}
		if !contains(n.SafetyChecks, check) {
			n.SafetyChecks = append(n.SafetyChecks, check)
		}
	}
	return &n, nil
}

func equipmentLabel(workCenter string) string {
	if form, found := catalog.FormOf(workCenter); found && form.EquipmentLabel != "" {
		return form.EquipmentLabel
	}
	return "Equipment Name/Tag"
}

func badParam(message string) error {
	return &bizerror.ErrBadParam{Cause: errors.New(message)}
}
