package domain

// GenericRecommendation is returned for threat types without a dedicated action.
const GenericRecommendation = "Follow local authority instructions and monitor official updates."

var recommendations = map[ThreatType]string{
	ThreatEarthquake:  "Drop, Cover, and Hold On. Move away from windows and heavy objects.",
	ThreatFlood:       "Move to higher ground. Do not attempt to cross flowing water.",
	ThreatCyclone:     "Secure outdoor objects. Prepare emergency kit and evacuation plan.",
	ThreatWildfire:    "Follow evacuation orders. Close all windows and ventilation.",
	ThreatLandslide:   "Move away from steep slopes and drainage paths.",
	ThreatSevereStorm: "Stay indoors. Avoid using electrical appliances and plumbing.",
	ThreatTsunami:     "Move inland and to higher ground immediately.",
	ThreatHeatWave:    "Stay hydrated. Avoid outdoor activities during peak hours.",
}

// Recommend returns the safety action for a threat type.
func Recommend(t ThreatType) string {
	if r, ok := recommendations[t]; ok {
		return r
	}
	return GenericRecommendation
}
