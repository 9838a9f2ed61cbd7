package dashboard

import (
	"fmt"

	"quickmechanic/models"
)

// Descriptor tells the client which dashboard to render for an account.
type Descriptor struct {
	UserType models.UserType `json:"userType"`
	Route    string          `json:"route"`
	Sections []string        `json:"sections"`
}

var descriptors = map[models.UserType]Descriptor{
	models.UserTypeClient: {
		Route:    "/dashboard",
		Sections: []string{"orders", "quotes", "vehicles", "payments"},
	},
	models.UserTypeMechanic: {
		Route:    "/mechanic/dashboard",
		Sections: []string{"available_orders", "agenda", "quotes", "earnings"},
	},
	models.UserTypeAdmin: {
		Route:    "/admin/dashboard",
		Sections: []string{"overview", "mechanics_approval", "disputes", "orders"},
	},
	models.UserTypeAutoParts: {
		Route:    "/oficina/dashboard",
		Sections: []string{"pre_reservations", "stock", "orders"},
	},
}

// Resolve returns the dashboard for userType. Unknown variants are refused.
func Resolve(userType models.UserType) (Descriptor, error) {
	d, ok := descriptors[userType]
	if !ok {
		return Descriptor{}, fmt.Errorf("no dashboard for user type %q", userType)
	}
	d.UserType = userType
	d.Sections = append([]string(nil), d.Sections...)
	return d, nil
}
