package catalog

// Reference returns the built-in front office catalog. Each call returns a
// fresh, validated copy.
func Reference() *Catalog {
	c := &Catalog{
		Items: []Item{
			{ID: 1, Name: "Elite Data Scientist", Description: "Better models & decision support",
				Cost: 3.0, Impact: 2.0, Category: CategoryHire, Tags: []string{"analytics", "modeling"}},
			{ID: 2, Name: "Sports Scientist", Description: "Player health & injury reduction",
				Cost: 2.5, Impact: 1.5, Category: CategoryHire, Tags: []string{"science", "health"}},
			{ID: 3, Name: "Veteran Scout", Description: "Player trust & qualitative insight",
				Cost: 1.2, Impact: 0.6, Category: CategoryHire, Tags: []string{"scouting", "traditional"}},
			{ID: 4, Name: "Hybrid Quant Scout", Description: "Blend of analytics & scouting",
				Cost: 1.5, Impact: 1.1, Category: CategoryHire, Tags: []string{"analytics", "scouting"}},
			{ID: 5, Name: "Machine Learning Engineer", Description: "Predictive models & automation",
				Cost: 2.0, Impact: 1.6, Category: CategoryHire, Tags: []string{"modeling", "engineering"}},
			{ID: 6, Name: "Tech Stack Upgrade", Description: "Cleaner, faster data infrastructure",
				Cost: 2.3, Impact: 1.0, Category: CategoryTool, Tags: []string{"infrastructure"}},
			{ID: 7, Name: "Real-Time Data Pipeline", Description: "In-game strategy support",
				Cost: 1.8, Impact: 0.8, Category: CategoryTool, Tags: []string{"data-collection", "infrastructure"}},
			{ID: 8, Name: "Wearable Tracking System", Description: "Workload & recovery monitoring",
				Cost: 2.0, Impact: 0.7, Category: CategoryTool, Tags: []string{"data-collection", "health"}},
			{ID: 9, Name: "Culture/Communication Lead", Description: "Department alignment & buy-in",
				Cost: 0.9, Impact: 0.5, Category: CategoryHire, Tags: []string{"culture"}},
			{ID: 10, Name: "Player Development Analyst", Description: "Faster improvement for young players",
				Cost: 1.7, Impact: 1.0, Category: CategoryHire, Tags: []string{"analytics", "development"}},
		},
		Synergies: []Synergy{
			{Name: "Tech Stack + Data Scientist", Bonus: 1.5, Trigger: AllOf{IDs: []int{1, 6}},
				Reason: "Clean infrastructure lets the data scientist ship models instead of fighting spreadsheets."},
			{Name: "ML Engineer + Tech Stack", Bonus: 1.2, Trigger: AllOf{IDs: []int{1, 5}},
				Reason: "The ML engineer turns the data scientist's prototypes into a production modeling stack."},
			{Name: "Wearables + Sports Science", Bonus: 1.0, Trigger: AllOf{IDs: []int{2, 8}},
				Reason: "Tracking data is only useful when someone can read the workload curves."},
			{Name: "Live Quant Scouting", Bonus: 0.8, Trigger: AllOf{IDs: []int{4, 7}},
				Reason: "Real-time feeds give the quant scout in-game numbers to back the eye test."},
			{Name: "Culture Carries the Room", Bonus: 1.0, Trigger: HireThreshold{Anchor: 9, MinHires: 4},
				Reason: "A big staff needs someone keeping everyone pulling in the same direction."},
		},
		AntiSynergies: []AntiSynergy{
			{Name: "Old School vs New School", Penalty: -0.8, Trigger: AllOf{IDs: []int{3, 5}},
				Reason: "The veteran scout and the ML engineer spend meetings arguing instead of deciding."},
			{Name: "Too Many Cooks", Penalty: -1.0, Trigger: TagCount{Tags: []string{"analytics", "modeling"}, Min: 4},
				Reason: "Four modelers produce four conflicting recommendations."},
			{Name: "Sensor Overload", Penalty: -0.6, Trigger: TagCount{Tags: []string{"data-collection"}, Min: 2},
				Reason: "Two collection systems generate more data than the staff can digest."},
		},
		SecretCombos: []SecretCombo{
			{Name: "The Complete Package", Bonus: 2.5, IDs: []int{1, 6, 9},
				Message: "Brains, infrastructure and buy-in: the front office finally speaks one language."},
			{Name: "Moneyball", Bonus: 2.0, IDs: []int{3, 4, 10},
				Message: "Scouts and analysts agree on undervalued talent."},
			{Name: "Iron Roster", Bonus: 2.0, IDs: []int{2, 8, 10},
				Message: "Healthy players develop faster. Nobody misses a game."},
		},
		Requirements: Requirements{
			MinPeople: 2,
			MinTools:  1,
			MinTotal:  3,
			Message:   "A front office needs at least 2 hires and 1 tool.",
		},
		Modes: []ChallengeMode{
			{Name: "standard", Description: "Build within the $10M budget.", BudgetLimit: 10.0},
			{Name: "shoestring", Description: "Ownership cut the budget to $6M.", BudgetLimit: 6.0},
			{Name: "old-school", Description: "No analytics or modeling hires allowed.", BudgetLimit: 10.0,
				HiddenTags: []string{"analytics", "modeling"}},
			{Name: "starting-five", Description: "Exactly five picks with a $12M budget.", BudgetLimit: 12.0,
				ExactItems: 5},
		},
		DefaultMode: "standard",
		Rules: Rules{
			PassThreshold:         5.0,
			ClaimCode:             "BOW-201-M3-EDGE-01",
			RivalSecondPickChance: 0.30,
			MaxHints:              2,
			ImpactFloor:           3.0,
			UnspentFraction:       0.25,
			NearMissMargin:        1.0,
			CollectorTag:          "data-collection",
			InterpreterTags:       []string{"analytics", "modeling", "science"},
		},
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}
