package domain

// AssetCategory classifies what kind of asset is being lent out.
type AssetCategory string

const (
	CategoryRoom     AssetCategory = "room"
	CategoryFacility AssetCategory = "facility"
)

// Valid reports whether the category is one of the known values.
func (c AssetCategory) Valid() bool {
	return c == CategoryRoom || c == CategoryFacility
}

// AssetCondition describes the physical state of an asset.
type AssetCondition string

const (
	ConditionGood        AssetCondition = "good"
	ConditionLightDamage AssetCondition = "light_damage"
	ConditionHeavyDamage AssetCondition = "heavy_damage"
)

func (c AssetCondition) Valid() bool {
	switch c {
	case ConditionGood, ConditionLightDamage, ConditionHeavyDamage:
		return true
	}
	return false
}

// LoanStatus is the lifecycle state of a loan request.
// Transitions: pending -> approved|rejected, approved -> completed.
// rejected and completed are terminal.
type LoanStatus string

const (
	LoanPending   LoanStatus = "pending"
	LoanApproved  LoanStatus = "approved"
	LoanRejected  LoanStatus = "rejected"
	LoanCompleted LoanStatus = "completed"
)

// ReportPriority is the triage priority of a damage report.
type ReportPriority string

const (
	PriorityLow    ReportPriority = "low"
	PriorityMedium ReportPriority = "medium"
	PriorityHigh   ReportPriority = "high"
)

func (p ReportPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ReportStatus is the repair progress of a damage report. Progression
// among the three values is unconstrained.
type ReportStatus string

const (
	ReportWaiting  ReportStatus = "waiting"
	ReportInRepair ReportStatus = "in_repair"
	ReportDone     ReportStatus = "done"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportWaiting, ReportInRepair, ReportDone:
		return true
	}
	return false
}
