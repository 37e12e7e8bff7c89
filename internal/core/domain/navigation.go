package domain

// DestinationID identifies a navigational destination (a top-level screen).
type DestinationID string

const (
	DestDashboard     DestinationID = "dashboard"
	DestHome          DestinationID = "home"
	DestProperties    DestinationID = "properties"
	DestContracts     DestinationID = "contracts"
	DestPayments      DestinationID = "payments"
	DestMaintenance   DestinationID = "maintenance"
	DestReports       DestinationID = "reports"
	DestNotifications DestinationID = "notifications"
	DestProfile       DestinationID = "profile"
)

// Destination is one entry in a role's navigation set. LabelKey is resolved
// through the locale service at render time so labels follow the active
// language; Icon names a glyph in the client's icon set.
type Destination struct {
	ID       DestinationID `json:"id"`
	Icon     string        `json:"icon"`
	LabelKey string        `json:"label_key"`
}
