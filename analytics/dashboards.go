// Package analytics assembles the dashboard, location, trend and prediction views from the
// stored work orders.
package analytics

import (
	"fmt"
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/kpi"
	"iwadcs/misc"
	"iwadcs/notification"
	"iwadcs/session"
	"iwadcs/workorder"
)

const (
	recentActivityLimit = 8
	allLocationTypes    = "All"
)

var (
	listAllWorkOrders = workorder.ListAll
	myWorkOrders      = workorder.MyWorkOrders
	listUnread        = notification.ListUnread
)

type DashboardView struct {
	KPIs          kpi.KPIs                    `json:"kpis"`
	Target        float64                     `json:"target"`
	Personal      *kpi.PersonalStats          `json:"personal,omitempty"`
	Notifications []notification.Notification `json:"notifications"`
	Recent        []workorder.WorkOrder       `json:"recent"`
}

// Dashboard summarizes the whole facility. Field users also get their own statistics.
func Dashboard(sec *session.Session) (*DashboardView, error) {
	all, err := listAllWorkOrders(sec)
	if err != nil {
		return nil, err
	}
	unread, err := listUnread(sec)
	if err != nil {
		return nil, err
	}

	view := DashboardView{KPIs: kpi.Calculate(all), Target: kpi.TargetKPI, Notifications: unread}
	if sec.Identity.Role == authority.RoleUser {
		mine, err := myWorkOrders(nil, sec)
		if err != nil {
			return nil, err
		}
		personal := kpi.Personal(mine)
		view.Personal = &personal
	}
	// work orders come newest first
	recent := all
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	view.Recent = recent
	return &view, nil
}

type LocationView struct {
	LocationType string   `json:"locationType"`
	KPIs         kpi.KPIs `json:"kpis"`
}

// LocationAnalytics narrows the indicators to a location type. The per location breakdown
// only keeps the sites of that type.
func LocationAnalytics(locationType string, sec *session.Session) (*LocationView, error) {
	if !sec.IsReviewer() {
		return nil, bizerror.ErrForbidden
	}
	all, err := listAllWorkOrders(sec)
	if err != nil {
		return nil, err
	}
	if locationType == "" {
		locationType = allLocationTypes
	}
	if locationType == allLocationTypes {
		return &LocationView{LocationType: locationType, KPIs: kpi.Calculate(all)}, nil
	}
	if locationType != catalog.LocationTypeOnshore && locationType != catalog.LocationTypeOffshore {
		return nil, &bizerror.ErrBadParam{Cause: fmt.Errorf("unknown location type '%s'", locationType)}
	}

	var selected []workorder.WorkOrder
	for _, w := range all {
		if w.LocationType == locationType {
			selected = append(selected, w)
		}
	}
	k := kpi.Calculate(selected)
	for site := range k.LocationPerformance {
		if t, _ := catalog.LocationType(site); t != locationType {
			delete(k.LocationPerformance, site)
		}
	}
	return &LocationView{LocationType: locationType, KPIs: k}, nil
}

type TrendsView struct {
	Target  float64       `json:"target"`
	History []kpi.DayRate `json:"history"`
}

func Trends(sec *session.Session) (*TrendsView, error) {
	p, err := predict(sec)
	if err != nil {
		return nil, err
	}
	return &TrendsView{Target: kpi.TargetKPI, History: p.HistoricalData}, nil
}

type PredictionView struct {
	kpi.Prediction
	Target         float64            `json:"target"`
	Delta          float64            `json:"delta"`
	Recommendation kpi.Recommendation `json:"recommendation"`
}

func Predictions(sec *session.Session) (*PredictionView, error) {
	p, err := predict(sec)
	if err != nil {
		return nil, err
	}
	return &PredictionView{
		Prediction:     *p,
		Target:         kpi.TargetKPI,
		Delta:          p.PredictedRate - p.CurrentRate,
		Recommendation: kpi.Recommend(p.AchievementProbability),
	}, nil
}

func predict(sec *session.Session) (*kpi.Prediction, error) {
	if !sec.IsReviewer() {
		return nil, bizerror.ErrForbidden
	}
	all, err := listAllWorkOrders(sec)
	if err != nil {
		return nil, err
	}
	p := kpi.PredictTrend(all, kpi.DefaultTrendWindowDays, misc.Now())
	return &p, nil
}

// ProfileStats summarizes the work orders submitted by the session user.
func ProfileStats(sec *session.Session) (*kpi.PersonalStats, error) {
	mine, err := myWorkOrders(nil, sec)
	if err != nil {
		return nil, err
	}
	s := kpi.Personal(mine)
	return &s, nil
}
