// models/service_selection.go
package models

// ServiceSelection is read-only catalogue data for a bookable service.
type ServiceSelection struct {
	ID        string  `json:"id"`        // e.g. "oil_change"
	Name      string  `json:"name"`      // display name
	BasePrice float64 `json:"basePrice"` // estimate before any mechanic quote
	Currency  string  `json:"currency"`  // ISO 4217, lower-case
}
