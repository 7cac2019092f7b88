// Package domain holds the threat assessment and response classification core
// of the disaster-preparedness drill.
//
// # Radar Scan
//
// A scan resolves a city name against a static registry, instantiates one
// candidate per threat template, filters the candidates by geographic
// relevance and picks the closest one:
//
//	Registry.Lookup → GenerateCandidates → SelectRelevant → PickBest
//	                → ClassifyBadge + Recommend → ScanResult
//
// City names are normalized (trimmed, case-folded, inner whitespace collapsed)
// before lookup, so " delhi " and "DELHI" resolve to the same City.
//
// Candidate distances and affected areas are drawn uniformly from each
// template's declared range using the injected [Rand]. Timestamps come from the
// time passed in by the caller, never from the wall clock.
//
// Relevance rules:
//
//	retain if the template's affinity tag matches the city region or geography
//	retain if distanceKm < ThresholdKm (500 by default)
//	otherwise retain with probability InclusionProbability (0.7 by default)
//
// The closest retained candidate wins; ties go to the template declared first
// in the catalog. An empty retained set is the benign "no active threats"
// outcome, not an error.
//
// # Risk Badges
//
// Evaluated in order, first match wins:
//
//	danger AND distance ≤ 100 km   → IMMEDIATE_THREAT
//	danger OR  distance ≤ 150 km   → HIGH_RISK_ZONE
//	caution OR distance ≤ 250 km   → MONITOR_CLOSELY
//	otherwise                      → SAFE_ZONE
//
// # Narrative Danger
//
// Freeform scenario text is classified by a declarative rule table. The
// default tier is medium. Danger keywords (fire, collapse, smoke, shake, flood,
// explosion, toxic, rising) raise it to high and safety keywords (safe,
// stabilize, rescued, clear, stable) lower it to low. When both sets match,
// the configured precedence decides; danger wins by default. Keywords match
// case-insensitively at the start of a word, so "unsafe" is not a safety
// keyword. Completion is detected independently from phrases such as
// "simulation complete".
//
// # Quiz
//
// A QuizSession is an immutable value. Transitions take a session and return a
// new one:
//
//	InProgress(i, s) --Answer--> InProgress(i, s') (answered)
//	InProgress(i, s) --Advance--> InProgress(i+1, s) | Finished(s)
//	any              --Restart--> InProgress(0, 0)
//
// Tiers use absolute thresholds over the 20-question bank:
// score ≥ 16 EXPERT, 12–15 PROFICIENT, < 12 NEEDS_TRAINING.
package domain
