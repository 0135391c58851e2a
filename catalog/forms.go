package catalog

// Form describes the submission form of one work center.
type Form struct {
	WorkCenter     string      `json:"workCenter"`
	EquipmentLabel string      `json:"equipmentLabel"`
	EquipmentTypes []Equipment `json:"equipmentTypes"`
	WorkTypes      []WorkType  `json:"workTypes"`
	Locations      []Location  `json:"locations"`
	Priorities     []string    `json:"priorities"`
	SafetyChecks   []string    `json:"safetyChecks"`
}

func FormOf(workCenter string) (*Form, bool) {
	wc, found := findWorkCenter(workCenter)
	if !found {
		return nil, false
	}
	return &Form{
		WorkCenter:     wc.Name,
		EquipmentLabel: wc.EquipmentLabel,
		EquipmentTypes: append([]Equipment{}, wc.Equipment...),
		WorkTypes:      append([]WorkType{}, wc.WorkTypes...),
		Locations:      Locations(),
		Priorities:     Priorities(),
		SafetyChecks:   SafetyChecks(),
	}, true
}
