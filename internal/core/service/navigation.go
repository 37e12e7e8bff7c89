package service

import (
	"fmt"

	"github.com/habitek/propmobile/internal/core/domain"
)

// catalog maps every destination to its icon and label key. Labels are i18n
// keys so rendered text follows the active language.
var catalog = map[domain.DestinationID]domain.Destination{
	domain.DestDashboard:     {ID: domain.DestDashboard, Icon: "grid", LabelKey: "nav.dashboard"},
	domain.DestHome:          {ID: domain.DestHome, Icon: "house", LabelKey: "nav.home"},
	domain.DestProperties:    {ID: domain.DestProperties, Icon: "building", LabelKey: "nav.properties"},
	domain.DestContracts:     {ID: domain.DestContracts, Icon: "file-text", LabelKey: "nav.contracts"},
	domain.DestPayments:      {ID: domain.DestPayments, Icon: "credit-card", LabelKey: "nav.payments"},
	domain.DestMaintenance:   {ID: domain.DestMaintenance, Icon: "wrench", LabelKey: "nav.maintenance"},
	domain.DestReports:       {ID: domain.DestReports, Icon: "bar-chart", LabelKey: "nav.reports"},
	domain.DestNotifications: {ID: domain.DestNotifications, Icon: "bell", LabelKey: "nav.notifications"},
	domain.DestProfile:       {ID: domain.DestProfile, Icon: "user", LabelKey: "nav.profile"},
}

// defaultRoleOrder is the product-owned navigation order per role. Each role
// sees its most relevant feature first; the orders change independently, so
// they live in data rather than in code paths.
var defaultRoleOrder = map[domain.Role][]domain.DestinationID{
	domain.RoleManager: {
		domain.DestDashboard,
		domain.DestProperties,
		domain.DestContracts,
		domain.DestPayments,
		domain.DestMaintenance,
		domain.DestProfile,
	},
	domain.RoleOwner: {
		domain.DestProperties,
		domain.DestContracts,
		domain.DestPayments,
		domain.DestReports,
		domain.DestProfile,
	},
	domain.RoleTenant: {
		domain.DestHome,
		domain.DestPayments,
		domain.DestMaintenance,
		domain.DestNotifications,
		domain.DestProfile,
	},
}

// NavigationComposer yields the ordered destination set for a role.
// Destinations outside a role's list are absent, not merely disabled.
type NavigationComposer struct {
	orders map[domain.Role][]domain.DestinationID
}

// NavigationOption modifies a NavigationComposer at construction time.
type NavigationOption func(*NavigationComposer)

// WithRoleOrder overrides the destination order for one role.
func WithRoleOrder(role domain.Role, order []domain.DestinationID) NavigationOption {
	return func(c *NavigationComposer) {
		c.orders[role] = append([]domain.DestinationID(nil), order...)
	}
}

func NewNavigationComposer(opts ...NavigationOption) *NavigationComposer {
	c := &NavigationComposer{orders: make(map[domain.Role][]domain.DestinationID, len(defaultRoleOrder))}
	for role, order := range defaultRoleOrder {
		c.orders[role] = append([]domain.DestinationID(nil), order...)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose returns the ordered destinations for role. A missing or
// unrecognized role yields domain.ErrNoRole with an empty list so the caller
// can redirect to authentication.
func (c *NavigationComposer) Compose(role domain.Role) ([]domain.Destination, error) {
	order, ok := c.orders[role]
	if !ok || !role.Known() {
		return nil, domain.ErrNoRole
	}

	dests := make([]domain.Destination, 0, len(order))
	for _, id := range order {
		d, ok := catalog[id]
		if !ok {
			return nil, fmt.Errorf("unknown destination %q in %s order", id, role)
		}
		dests = append(dests, d)
	}
	return dests, nil
}
