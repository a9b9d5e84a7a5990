package types

// PlanRequest is the input to one comprehensive-plan pipeline run.
// It is consumed within a single run and never mutated.
type PlanRequest struct {
	ProjectName        string `json:"project_name"`
	ProjectDescription string `json:"project_description"`
	Location           string `json:"location"`
	// BlueprintDocument is an optional architectural document (image or PDF)
	// encoded as a data URI. Empty means no blueprint was supplied.
	BlueprintDocument string `json:"blueprint_document,omitempty"`
}

// ProjectClassification is the description classifier's output.
type ProjectClassification struct {
	ProjectType ProjectType `json:"project_type"`
	QualityTier QualityTier `json:"quality_tier"`
	// SuggestedDesignPrompt is an advisory image-generation prompt. May be empty.
	SuggestedDesignPrompt string `json:"suggested_design_prompt,omitempty"`
}

// BlueprintWarning is a single issue found in an architectural document.
type BlueprintWarning struct {
	Category       WarningCategory `json:"category"`
	Severity       WarningSeverity `json:"severity"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
}

// BlueprintQuantities holds quantitative takeoffs from a blueprint.
// Area and TotalLineLength are free text with units as the model reports
// them (e.g. "450 m²"), not normalized numerics.
type BlueprintQuantities struct {
	Area            string         `json:"area"`
	TotalLineLength string         `json:"total_line_length"`
	ObjectCounts    map[string]int `json:"object_counts"`
}

// RequiredItem is a procurement item the blueprint implies, with justification.
type RequiredItem struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// BlueprintFindings is the blueprint analyzer's output. Produced only when
// a document was supplied. An empty warnings list means no issues found.
type BlueprintFindings struct {
	ScopeSummary  string              `json:"scope_summary"`
	Warnings      []BlueprintWarning  `json:"warnings"`
	Quantities    BlueprintQuantities `json:"quantities"`
	RequiredItems []RequiredItem      `json:"required_items"`
}

// MarketPriceSheet holds location- and quality-resolved unit prices.
type MarketPriceSheet struct {
	MaterialUnitPrices map[string]float64 `json:"material_unit_prices"`
	LaborRatePerHour   float64            `json:"labor_rate_per_hour"`
	CurrencyCode       string             `json:"currency_code"`
}

// BOQLine is one bill-of-quantities line item. LineTotal is expected to equal
// Quantity * UnitPrice; the producing model is instructed, not forced, to
// respect this.
type BOQLine struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// CrewRecommendation is a suggested staffing plan by role and headcount.
type CrewRecommendation struct {
	TotalPersonnel int            `json:"total_personnel"`
	RoleBreakdown  map[string]int `json:"role_breakdown"`
}

// ScheduleTask is one entry in the schedule skeleton.
type ScheduleTask struct {
	TaskID           string `json:"task_id"`
	TaskName         string `json:"task_name"`
	ResponsibleParty string `json:"responsible_party"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	DurationDays     int    `json:"duration_days"`
	ProgressPercent  int    `json:"progress_percent"`
}

// FinancialRisk is a cost-related risk callout with its mitigation.
type FinancialRisk struct {
	Risk       string `json:"risk"`
	Mitigation string `json:"mitigation"`
}

// CostEstimate is the cost estimator's output.
type CostEstimate struct {
	TotalCostLabel     string             `json:"total_cost_label"`
	BillOfQuantities   []BOQLine          `json:"bill_of_quantities"`
	CrewRecommendation CrewRecommendation `json:"crew_recommendation"`
	ScheduleSkeleton   []ScheduleTask     `json:"schedule_skeleton"`
	FinancialRisks     []FinancialRisk    `json:"financial_risks"`
	// PriceSheet records the market prices the estimate was derived from.
	PriceSheet MarketPriceSheet `json:"price_sheet"`
}

// ComprehensivePlan is the pipeline's terminal aggregate and its sole
// externally visible output. It owns all nested values by copy.
type ComprehensivePlan struct {
	ProjectName       string                `json:"project_name"`
	Location          string                `json:"location"`
	Classification    ProjectClassification `json:"classification"`
	BlueprintAnalysis *BlueprintFindings    `json:"blueprint_analysis,omitempty"`
	Estimate          CostEstimate          `json:"estimate"`
}
