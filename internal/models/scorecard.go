package models

// DefaultScorecard returns the analyst scorecard and commentary defaults
// substituted into the memo template. Scores run 1-5 with per-category
// weights; commentary placeholders carry neutral boilerplate until an
// analyst edits the template.
func DefaultScorecard() map[string]string {
	return map[string]string{
		"score_founders":    "4",
		"weight_founders":   "1.0",
		"score_team":        "4",
		"weight_team":       "0.9",
		"score_market":      "3",
		"weight_market":     "0.8",
		"score_problem":     "4",
		"weight_problem":    "0.7",
		"score_solution":    "3",
		"weight_solution":   "0.8",
		"score_business":    "3",
		"weight_business":   "0.7",
		"score_financials":  "2",
		"weight_financials": "0.6",
		"score_fundability": "4",
		"weight_fundability": "0.9",

		"recommendation": "Further Due Diligence",
		"bullet_point_1": "Strong team with proven track record.",
		"bullet_point_2": "Market opportunity is significant.",
		"bullet_point_3": "Product differentiation needs more clarity.",

		"premortem_end_picture": "Scalable product with competitive positioning.",
		"premortem_roadmap":     "Expand market reach within 2 years.",
		"premortem_risks":       "Competitive pressure and regulatory risks.",
		"preparade_de_risk":     "Early partnerships mitigate risks.",

		"team_notes":      "Founders have deep industry expertise.",
		"market_notes":    "Market size is large but fragmented.",
		"problem_notes":   "Addressing a clear pain point.",
		"solution_notes":  "Innovative solution, though execution risk remains.",
		"business_notes":  "Business model is solid with room for optimization.",
		"financial_notes": "Financials are early-stage but promising.",
	}
}
