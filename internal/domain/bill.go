package domain

// FlagLevel grades the severity of a cost anomaly on a single line item.
type FlagLevel string

const (
	FlagLow    FlagLevel = "low"
	FlagMedium FlagLevel = "medium"
	FlagHigh   FlagLevel = "high"
)

// Valid reports whether the level is one of the three canonical values.
func (l FlagLevel) Valid() bool {
	switch l {
	case FlagLow, FlagMedium, FlagHigh:
		return true
	}
	return false
}

// LineItem is one billed service or product entry recognized on a bill.
// Instances are immutable once constructed; later stages build new records.
type LineItem struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Notes       *string `json:"notes"`
}

// AnalysisItem carries a line item enriched with cost-anomaly signals.
type AnalysisItem struct {
	LineItem
	ExpectedCost   float64   `json:"expected_cost"`
	OverchargeFlag bool      `json:"overcharge_flag"`
	FlagLevel      FlagLevel `json:"flag_level"`
	Issue          *string   `json:"issue"`
}

// DebateRole identifies which persona emitted a debate message.
type DebateRole string

const (
	RoleFighter  DebateRole = "fighter"
	RoleHospital DebateRole = "hospital"
)

// DebateMessage is a single utterance inside the debate transcript.
type DebateMessage struct {
	Role    DebateRole `json:"role"`
	Content string     `json:"content"`
}

// DebateSummary condenses a finished debate into negotiation guidance.
type DebateSummary struct {
	PatientArguments  string `json:"patient_arguments"`
	HospitalArguments string `json:"hospital_arguments"`
	Recommendation    string `json:"recommendation"`
}

// ExtractionMethod records which extraction strategy supplied the pages.
// Diagnostic only; downstream behavior never branches on it.
type ExtractionMethod string

const (
	MethodDirect   ExtractionMethod = "direct"
	MethodFallback ExtractionMethod = "fallback"
)

// ExtractionOutcome is the page-segmented text pulled from one document.
type ExtractionOutcome struct {
	Pages  []string         `json:"pages"`
	Method ExtractionMethod `json:"method"`
}

// NegotiationMaterials are the three free-text artifacts handed to the patient.
type NegotiationMaterials struct {
	Email       string `json:"email"`
	PhoneScript string `json:"phone_script"`
	Summary     string `json:"summary"`
}

// SummaryStats aggregates the analysis collection for reporting. Values are
// rounded to two decimals here and nowhere else.
type SummaryStats struct {
	TotalItems       int     `json:"total_items"`
	TotalBilled      float64 `json:"total_billed"`
	TotalExpected    float64 `json:"total_expected"`
	PotentialSavings float64 `json:"potential_savings"`
	FlaggedItems     int     `json:"flagged_items"`
}

// PipelineResult is the layered output of one pipeline run.
type PipelineResult struct {
	Extraction   []LineItem           `json:"extraction"`
	Analysis     []AnalysisItem       `json:"analysis"`
	Negotiation  NegotiationMaterials `json:"negotiation"`
	SummaryStats SummaryStats         `json:"summary_stats"`
}
