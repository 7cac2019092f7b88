package domain

// DefaultQuestions returns the built-in disaster management question bank
// in presentation order.
func DefaultQuestions() []Question {
	return []Question{
		{
			Prompt: "During an earthquake, what is the safest immediate action if you're indoors?",
			Options: []string{
				"Run outside immediately",
				"Take cover under sturdy furniture and hold on",
				"Stand in a doorway",
				"Go to the highest floor of the building",
			},
			CorrectIndex: 1,
			Explanation:  "Drop, Cover, and Hold On is the recommended safety procedure. Sturdy furniture like tables provides protection from falling debris.",
		},
		{
			Prompt: "What is the primary purpose of establishing an emergency meeting point?",
			Options: []string{
				"To store emergency supplies",
				"For family reunification after evacuation",
				"To receive emergency broadcasts",
				"For authorities to set up command posts",
			},
			CorrectIndex: 1,
			Explanation:  "Pre-designated meeting points ensure family members can reunite safely when communication systems are down.",
		},
		{
			Prompt: "In flood situations, what depth of moving water is generally considered dangerous for vehicles?",
			Options: []string{
				"6 inches (15 cm)",
				"12 inches (30 cm)",
				"18 inches (45 cm)",
				"24 inches (60 cm)",
			},
			CorrectIndex: 1,
			Explanation:  "Just 12 inches of moving water can float most vehicles, and 2 feet of water can carry away SUVs and trucks.",
		},
		{
			Prompt: "What is the recommended duration of emergency water supply per person?",
			Options: []string{
				"1 day",
				"3 days",
				"1 week",
				"2 weeks",
			},
			CorrectIndex: 2,
			Explanation:  "FEMA recommends storing at least 1 gallon of water per person per day for 3-7 days, with one week being the optimal minimum.",
		},
		{
			Prompt: "When should you shut off utilities after an earthquake?",
			Options: []string{
				"Immediately after the shaking stops",
				"Only if you smell gas or see damage",
				"Before the earthquake occurs",
				"Wait for authorities to instruct you",
			},
			CorrectIndex: 1,
			Explanation:  "Shut off utilities only if you suspect damage - unnecessary shutdown can complicate recovery efforts.",
		},
		{
			Prompt: "What is the 'golden hour' in emergency medicine?",
			Options: []string{
				"The first hour after a disaster strikes",
				"The time window for critical medical intervention",
				"The period when rescue efforts are most effective",
				"The optimal time for evacuation decisions",
			},
			CorrectIndex: 1,
			Explanation:  "The golden hour refers to the critical period following traumatic injury when prompt medical treatment is most likely to prevent death.",
		},
		{
			Prompt: "In wildfire situations, what is 'defensible space'?",
			Options: []string{
				"Area around structures cleared of combustible materials",
				"Safe zones designated by firefighters",
				"Evacuation routes away from the fire",
				"Natural barriers that stop fire spread",
			},
			CorrectIndex: 0,
			Explanation:  "Defensible space is the buffer created between buildings and flammable vegetation that slows or stops wildfire spread.",
		},
		{
			Prompt: "What does the START triage system prioritize?",
			Options: []string{
				"Children and elderly first",
				"Those with the most severe injuries",
				"Patients with the best chance of survival",
				"Breathing, perfusion, and mental status",
			},
			CorrectIndex: 3,
			Explanation:  "START (Simple Triage and Rapid Treatment) assesses respiration, perfusion, and mental status to categorize patients efficiently.",
		},
		{
			Prompt: "During a tsunami warning, what is the safest action?",
			Options: []string{
				"Move to higher ground immediately",
				"Stay indoors on upper floors",
				"Evacuate horizontally inland",
				"Both move to higher ground and go inland",
			},
			CorrectIndex: 3,
			Explanation:  "The best protection is to get to high ground as far inland as possible, as tsunamis can travel inland for miles.",
		},
		{
			Prompt: "What is the primary purpose of an Emergency Operations Center (EOC)?",
			Options: []string{
				"Provide medical treatment to victims",
				"Coordinate multi-agency response efforts",
				"Serve as public shelter during disasters",
				"Store emergency equipment and supplies",
			},
			CorrectIndex: 1,
			Explanation:  "EOCs serve as central command facilities for coordination, decision-making, and resource management during emergencies.",
		},
		{
			Prompt: "In chemical emergencies, what does 'shelter-in-place' typically involve?",
			Options: []string{
				"Evacuating to a designated shelter",
				"Staying indoors with windows and vents sealed",
				"Moving to the building's strongest room",
				"Using personal protective equipment outdoors",
			},
			CorrectIndex: 1,
			Explanation:  "Shelter-in-place means sealing yourself in a room with minimal outside air exchange to avoid exposure to hazardous materials.",
		},
		{
			Prompt: "What is the recommended approach for emergency communication planning?",
			Options: []string{
				"Rely solely on cellular networks",
				"Use multiple redundant communication methods",
				"Depend on social media platforms",
				"Wait for emergency broadcast systems",
			},
			CorrectIndex: 1,
			Explanation:  "Redundant communication methods (cell, landline, radio, satellite) ensure connectivity when some systems fail.",
		},
		{
			Prompt: "During power outages, what food safety rule should be followed for refrigerated items?",
			Options: []string{
				"Discard all refrigerated food after 2 hours",
				"Keep refrigerator closed to maintain temperature",
				"Transfer food to coolers with ice",
				"Cook all meat immediately",
			},
			CorrectIndex: 1,
			Explanation:  "A closed refrigerator keeps food safe for about 4 hours; a full freezer for 48 hours (24 hours if half-full).",
		},
		{
			Prompt: "What is the primary goal of disaster risk reduction?",
			Options: []string{
				"Eliminate all natural hazards",
				"Prevent disasters from occurring",
				"Reduce vulnerability and exposure",
				"Increase emergency response funding",
			},
			CorrectIndex: 2,
			Explanation:  "Disaster risk reduction focuses on minimizing vulnerabilities and exposure to hazards through preventive measures.",
		},
		{
			Prompt: "In emergency first aid, what does ABC stand for?",
			Options: []string{
				"Ambulance, Bandage, Compress",
				"Airway, Breathing, Circulation",
				"Alert, Breathing, CPR",
				"Assessment, Bleeding, Care",
			},
			CorrectIndex: 1,
			Explanation:  "ABC protocol prioritizes Airway, Breathing, and Circulation as the fundamental steps in emergency patient assessment.",
		},
		{
			Prompt: "What is the purpose of conducting emergency drills?",
			Options: []string{
				"To test emergency equipment",
				"To identify planning weaknesses",
				"To satisfy regulatory requirements",
				"To train for muscle memory and reduce panic",
			},
			CorrectIndex: 3,
			Explanation:  "Regular drills create muscle memory and automatic responses, reducing panic and improving performance during actual emergencies.",
		},
		{
			Prompt: "During hurricane preparedness, what does the '5-day cone of uncertainty' represent?",
			Options: []string{
				"The area that will definitely be affected",
				"The probable path of the storm center",
				"Regions under mandatory evacuation",
				"Areas with flood watch warnings",
			},
			CorrectIndex: 1,
			Explanation:  "The cone shows the probable path of the storm's center, with the entire track remaining within the cone 60-70% of the time.",
		},
		{
			Prompt: "What is the recommended approach for emergency financial preparedness?",
			Options: []string{
				"Keep large amounts of cash at home",
				"Maintain emergency savings equivalent to 3-6 months of expenses",
				"Rely on credit cards for emergency expenses",
				"Depend on government assistance programs",
			},
			CorrectIndex: 1,
			Explanation:  "Financial experts recommend 3-6 months of living expenses in emergency savings to cover unexpected situations.",
		},
		{
			Prompt: "In mass casualty incidents, what principle guides resource allocation?",
			Options: []string{
				"Treat the most critically injured first",
				"Do the greatest good for the greatest number",
				"Prioritize children and medical personnel",
				"Follow first-come, first-served basis",
			},
			CorrectIndex: 1,
			Explanation:  "The utilitarian principle of 'greatest good for the greatest number' guides triage and resource allocation in mass casualty events.",
		},
		{
			Prompt: "What is the primary benefit of community emergency response teams (CERT)?",
			Options: []string{
				"Replace professional emergency services",
				"Provide immediate neighborhood assistance",
				"Reduce insurance costs for community members",
				"Coordinate with federal response agencies",
			},
			CorrectIndex: 1,
			Explanation:  "CERT volunteers provide immediate assistance in their neighborhoods when professional responders may be overwhelmed or delayed.",
		},
	}
}
