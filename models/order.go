package models

// Order is the client's read-only projection of a server-owned order/quote.
type Order struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	VehicleID      string   `json:"vehicle_id,omitempty"`
	Service        string   `json:"service,omitempty"`
	Location       string   `json:"location,omitempty"`
	LocationType   string   `json:"location_type,omitempty"`
	Description    string   `json:"description,omitempty"`
	Date           string   `json:"date,omitempty"`
	Time           string   `json:"time,omitempty"`
	EstimatedPrice *float64 `json:"estimated_price,omitempty"`
	FinalPrice     *float64 `json:"final_price,omitempty"`
}

// OrderRequest is the order-creation payload sent to the backend.
type OrderRequest struct {
	VehicleID    string `json:"vehicle_id"`
	Service      string `json:"service"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	LocationType string `json:"location_type"`
}
