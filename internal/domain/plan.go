package domain

import (
	"slices"
	"strings"
)

// PlanType names a disaster for which a static safety plan exists.
type PlanType string

const (
	PlanEarthquake PlanType = "Earthquake"
	PlanFlood      PlanType = "Flood"
	PlanFire       PlanType = "Fire"
	PlanCyclone    PlanType = "Cyclone"
)

// RiskLevel is the coarse risk rating of a safety plan.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SafetyPlan is a static preparedness plan for one disaster type.
type SafetyPlan struct {
	Disaster        PlanType  `json:"disaster"`
	RiskSummary     string    `json:"risk_summary"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Checklist       []string  `json:"checklist"`
	Evacuation      []string  `json:"evacuation"`
	Helpline        string    `json:"helpline"`
	Motivation      string    `json:"motivation"`
	EstimatedTime   string    `json:"estimated_time"`
	PriorityLevel   string    `json:"priority_level"`
	ResourcesNeeded []string  `json:"resources_needed"`
}

// PlanFor returns the plan for a disaster name, matched case-insensitively.
// Unknown names fall back to the earthquake plan.
func PlanFor(disaster string) SafetyPlan {
	for _, t := range PlanTypes() {
		if strings.EqualFold(strings.TrimSpace(disaster), string(t)) {
			return clonePlan(safetyPlans[t])
		}
	}
	return clonePlan(safetyPlans[PlanEarthquake])
}

// PlanTypes lists the disasters with a dedicated plan, in display order.
func PlanTypes() []PlanType {
	return []PlanType{PlanEarthquake, PlanFlood, PlanFire, PlanCyclone}
}

// clonePlan copies the slices so callers cannot mutate the static table.
func clonePlan(p SafetyPlan) SafetyPlan {
	p.Checklist = slices.Clone(p.Checklist)
	p.Evacuation = slices.Clone(p.Evacuation)
	p.ResourcesNeeded = slices.Clone(p.ResourcesNeeded)
	return p
}

var safetyPlans = map[PlanType]SafetyPlan{
	PlanEarthquake: {
		Disaster:    PlanEarthquake,
		RiskSummary: "High seismic activity zone",
		RiskLevel:   RiskHigh,
		Checklist: []string{
			"Identify safe spots in each room (under sturdy tables, against interior walls)",
			"Secure heavy furniture and appliances to walls",
			"Prepare emergency kit with water, food, and first aid supplies",
			"Practice drop, cover, and hold on drills",
			"Know how to shut off gas, water, and electricity",
		},
		Evacuation: []string{
			"Evacuate if you smell gas or see structural damage",
			"Use stairs, not elevators",
			"Move to open areas away from buildings and power lines",
			"Follow designated evacuation routes",
			"Assemble at predetermined meeting points",
		},
		Helpline:        "National Disaster Response Force: 108 | Earthquake Helpline: 011-24363260",
		Motivation:      "Being prepared can reduce earthquake-related injuries by up to 75%",
		EstimatedTime:   "15-30 minutes for full evacuation",
		PriorityLevel:   "Critical",
		ResourcesNeeded: []string{"Emergency kit", "Whistle", "Dust masks", "Flashlight"},
	},
	PlanFlood: {
		Disaster:    PlanFlood,
		RiskSummary: "Moderate flood risk area",
		RiskLevel:   RiskMedium,
		Checklist: []string{
			"Monitor weather alerts and flood warnings",
			"Move valuables to higher floors",
			"Prepare sandbags for doorways",
			"Charge all electronic devices",
			"Store important documents in waterproof containers",
		},
		Evacuation: []string{
			"Evacuate when authorities issue orders",
			"Avoid walking or driving through flood waters",
			"Move to designated shelters or higher ground",
			"Take emergency kit and essential medications",
			"Follow marked evacuation routes",
		},
		Helpline:        "Flood Control Room: 1070 | Disaster Management: 1078",
		Motivation:      "Early evacuation can prevent 90% of flood-related fatalities",
		EstimatedTime:   "1-2 hours depending on water levels",
		PriorityLevel:   "High",
		ResourcesNeeded: []string{"Life jackets", "Waterproof bags", "Emergency radio", "Dry clothing"},
	},
	PlanFire: {
		Disaster:    PlanFire,
		RiskSummary: "Urban area with standard fire risk",
		RiskLevel:   RiskMedium,
		Checklist: []string{
			"Install and test smoke detectors on every floor",
			"Keep fire extinguishers accessible and maintained",
			"Create and practice family escape plan",
			"Identify two ways out of every room",
			"Clear escape routes of obstructions",
		},
		Evacuation: []string{
			"Alert all occupants and call emergency services",
			"Crawl low under smoke to nearest exit",
			"Feel doors before opening - if hot, use alternative route",
			"Use stairs, never elevators",
			"Assemble at designated meeting point outside",
		},
		Helpline:        "Fire Emergency: 101 | Disaster Management: 108",
		Motivation:      "Proper planning can reduce fire evacuation time by 50%",
		EstimatedTime:   "2-5 minutes for building evacuation",
		PriorityLevel:   "Critical",
		ResourcesNeeded: []string{"Fire extinguishers", "Smoke detectors", "Escape ladders", "First aid kit"},
	},
	PlanCyclone: {
		Disaster:    PlanCyclone,
		RiskSummary: "Coastal region with cyclone vulnerability",
		RiskLevel:   RiskHigh,
		Checklist: []string{
			"Monitor cyclone warnings and updates regularly",
			"Secure outdoor objects and reinforce windows",
			"Prepare emergency kit for 3-7 days",
			"Identify strongest room in house for shelter",
			"Charge all communication devices",
		},
		Evacuation: []string{
			"Evacuate when Category 3 or higher cyclone approaches",
			"Move to designated cyclone shelters or sturdy buildings",
			"Avoid coastal areas and river banks",
			"Follow evacuation routes away from the coast",
			"Take emergency supplies and important documents",
		},
		Helpline:        "Cyclone Warning Center: 1070 | Emergency Services: 108",
		Motivation:      "Timely evacuation reduces cyclone-related mortality by 80%",
		EstimatedTime:   "4-6 hours before landfall",
		PriorityLevel:   "Critical",
		ResourcesNeeded: []string{"Emergency radio", "Water purification tablets", "Non-perishable food", "Emergency lighting"},
	},
}
