package domain

// Badge is the user-facing risk tier of a scan.
type Badge string

const (
	BadgeImmediateThreat Badge = "IMMEDIATE_THREAT"
	BadgeHighRiskZone    Badge = "HIGH_RISK_ZONE"
	BadgeMonitorClosely  Badge = "MONITOR_CLOSELY"
	BadgeSafeZone        Badge = "SAFE_ZONE"
)

// Badge thresholds in km.
const (
	immediateThreatKm = 100.0
	highRiskKm        = 150.0
	monitorKm         = 250.0
)

// ClassifyBadge maps a threat's distance and severity tag to a risk badge.
// Rules are evaluated in order and the first match wins.
func ClassifyBadge(distanceKm float64, severity SeverityTag) Badge {
	switch {
	case severity == SeverityDanger && distanceKm <= immediateThreatKm:
		return BadgeImmediateThreat
	case severity == SeverityDanger || distanceKm <= highRiskKm:
		return BadgeHighRiskZone
	case severity == SeverityCaution || distanceKm <= monitorKm:
		return BadgeMonitorClosely
	default:
		return BadgeSafeZone
	}
}

// DisplayClass returns the presentation class for the badge:
// "danger", "caution" or "safe".
func (b Badge) DisplayClass() string {
	switch b {
	case BadgeImmediateThreat, BadgeHighRiskZone:
		return "danger"
	case BadgeMonitorClosely:
		return "caution"
	default:
		return "safe"
	}
}

// Text returns the badge as shown to users, e.g. "IMMEDIATE THREAT".
func (b Badge) Text() string {
	switch b {
	case BadgeImmediateThreat:
		return "IMMEDIATE THREAT"
	case BadgeHighRiskZone:
		return "HIGH RISK ZONE"
	case BadgeMonitorClosely:
		return "MONITOR CLOSELY"
	default:
		return "SAFE ZONE"
	}
}
