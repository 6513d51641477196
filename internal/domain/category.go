package domain

// ManagementType distinguishes discretionary day-to-day spending, which the
// daily allocator manages, from planned fixed monthly expenses.
type ManagementType string

const (
	ManagementDayToDay ManagementType = "DAY_TO_DAY"
	ManagementPlanned  ManagementType = "PLANNED"
)

// Category labels expense and income transactions.
type Category struct {
	ID             string
	OwnerID        string
	Name           string
	ManagementType ManagementType
}
