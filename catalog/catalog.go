// Package catalog holds the fixed lookup tables of the facility: sites, work centers,
// work type durations, equipment checklists and the safety check catalog.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	WorkCenterElectrical = "Electrical"
	WorkCenterMechanical = "Mechanical"
	WorkCenterInstrument = "Instrument"
	WorkCenterAll        = "All"

	LocationTypeOnshore  = "Onshore"
	LocationTypeOffshore = "Offshore"

	// DefaultKey names the fallback entry of duration tables and checklists.
	DefaultKey = "Default"
)

//go:embed catalog.yaml
var catalogYAML []byte

var active = mustLoad(catalogYAML)

type Location struct {
	Site string `yaml:"site" json:"site"`
	Type string `yaml:"type" json:"type"`
}

type WorkType struct {
	Name  string `yaml:"name" json:"name"`
	Hours int    `yaml:"hours" json:"hours"`
}

type Equipment struct {
	Type      string   `yaml:"type" json:"type"`
	Checklist []string `yaml:"checklist" json:"checklist"`
}

type WorkCenter struct {
	Name           string      `yaml:"name" json:"name"`
	EquipmentLabel string      `yaml:"equipmentLabel" json:"equipmentLabel"`
	WorkTypes      []WorkType  `yaml:"workTypes" json:"workTypes"`
	Equipment      []Equipment `yaml:"equipment" json:"equipment"`
}

type Catalog struct {
	Locations    []Location   `yaml:"locations"`
	Priorities   []string     `yaml:"priorities"`
	SafetyChecks []string     `yaml:"safetyChecks"`
	WorkCenters  []WorkCenter `yaml:"workCenters"`
	StopWords    []string     `yaml:"stopWords"`
}

// Parse decodes a catalog document and checks that every work center carries the
// Default duration and Default checklist entries.
func Parse(data []byte) (*Catalog, error) {
	c := Catalog{}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	for _, wc := range c.WorkCenters {
		if _, found := wc.workType(DefaultKey); !found {
			return nil, fmt.Errorf("work center %s has no %s work type", wc.Name, DefaultKey)
		}
		if _, found := wc.equipment(DefaultKey); !found {
			return nil, fmt.Errorf("work center %s has no %s checklist", wc.Name, DefaultKey)
		}
	}
	return &c, nil
}

func mustLoad(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

func (wc *WorkCenter) workType(name string) (WorkType, bool) {
	for _, t := range wc.WorkTypes {
		if t.Name == name {
			return t, true
		}
	}
	return WorkType{}, false
}

func (wc *WorkCenter) equipment(equipmentType string) (Equipment, bool) {
	for _, e := range wc.Equipment {
		if e.Type == equipmentType {
			return e, true
		}
	}
	return Equipment{}, false
}

func findWorkCenter(name string) (*WorkCenter, bool) {
	for i := range active.WorkCenters {
		if active.WorkCenters[i].Name == name {
			return &active.WorkCenters[i], true
		}
	}
	return nil, false
}

// WorkCenters lists the disciplines that own submission forms.
func WorkCenters() []string {
	names := make([]string, 0, len(active.WorkCenters))
	for _, wc := range active.WorkCenters {
		names = append(names, wc.Name)
	}
	return names
}

func IsWorkCenter(name string) bool {
	_, found := findWorkCenter(name)
	return found
}

// IsUserWorkCenter accepts the disciplines plus All, the assignment of supervisors and admins.
func IsUserWorkCenter(name string) bool {
	return name == WorkCenterAll || IsWorkCenter(name)
}

func Locations() []Location {
	return append([]Location{}, active.Locations...)
}

// LocationType resolves the Onshore/Offshore type of a site.
func LocationType(site string) (string, bool) {
	for _, l := range active.Locations {
		if l.Site == site {
			return l.Type, true
		}
	}
	return "", false
}

// SitesOfType lists the sites of a location type in declared order.
func SitesOfType(locationType string) []string {
	var sites []string
	for _, l := range active.Locations {
		if l.Type == locationType {
			sites = append(sites, l.Site)
		}
	}
	return sites
}

// EstimatedDuration looks up the hours of a work type, falling back to the work center's
// Default entry for unknown work types. Unknown work centers yield 0.
func EstimatedDuration(workCenter, workType string) int {
	wc, found := findWorkCenter(workCenter)
	if !found {
		return 0
	}
	if t, found := wc.workType(workType); found {
		return t.Hours
	}
	t, _ := wc.workType(DefaultKey)
	return t.Hours
}

// WorkTypes lists work type names of a work center, Default included.
func WorkTypes(workCenter string) []string {
	wc, found := findWorkCenter(workCenter)
	if !found {
		return []string{}
	}
	names := make([]string, 0, len(wc.WorkTypes))
	for _, t := range wc.WorkTypes {
		names = append(names, t.Name)
	}
	return names
}

func EquipmentTypes(workCenter string) []string {
	wc, found := findWorkCenter(workCenter)
	if !found {
		return []string{}
	}
	types := make([]string, 0, len(wc.Equipment))
	for _, e := range wc.Equipment {
		types = append(types, e.Type)
	}
	return types
}

// Checklist returns the inspection items for an equipment type, or the work center's
// Default checklist when the equipment type is not listed.
func Checklist(workCenter, equipmentType string) []string {
	wc, found := findWorkCenter(workCenter)
	if !found {
		return []string{}
	}
	e, found := wc.equipment(equipmentType)
	if !found {
		e, _ = wc.equipment(DefaultKey)
	}
	return append([]string{}, e.Checklist...)
}

func SafetyChecks() []string {
	return append([]string{}, active.SafetyChecks...)
}

func IsSafetyCheck(s string) bool {
	return contains(active.SafetyChecks, s)
}

func Priorities() []string {
	return append([]string{}, active.Priorities...)
}

func IsPriority(s string) bool {
	return contains(active.Priorities, s)
}

func StopWords() map[string]struct{} {
	words := make(map[string]struct{}, len(active.StopWords))
	for _, w := range active.StopWords {
		words[w] = struct{}{}
	}
	return words
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
