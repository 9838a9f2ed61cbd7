package models

// Vehicle is a resolved vehicle record. It is never mutated after resolution;
// restarting the vehicle search discards it.
type Vehicle struct {
	ID           string `bson:"id,omitempty" json:"id,omitempty"`
	Plate        string `bson:"plate" json:"plate"`
	Make         string `bson:"make" json:"make"`
	MakeName     string `bson:"make_name,omitempty" json:"make_name,omitempty"`
	Model        string `bson:"model" json:"model"`
	Year         string `bson:"year" json:"year"`
	Color        string `bson:"color,omitempty" json:"color,omitempty"`
	Fuel         string `bson:"fuel,omitempty" json:"fuel,omitempty"`
	Version      string `bson:"version,omitempty" json:"version,omitempty"`
	Category     string `bson:"category,omitempty" json:"category,omitempty"`
	EngineSize   string `bson:"engine_size,omitempty" json:"engine_size,omitempty"`
	Transmission string `bson:"transmission,omitempty" json:"transmission,omitempty"`
	Doors        string `bson:"doors,omitempty" json:"doors,omitempty"`
	Country      string `bson:"country,omitempty" json:"country,omitempty"`

	// Manual marks records typed in by the user after a lookup miss.
	Manual bool `bson:"manual,omitempty" json:"manual,omitempty"`
}
