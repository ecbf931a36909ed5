package fixtures

type yamlSnapshot struct {
	Business    string           `yaml:"business"`
	Policy      *yamlPolicy      `yaml:"policy"`
	Zones       []yamlZone       `yaml:"zones"`
	Assignments []yamlAssignment `yaml:"assignments"`
}

type yamlPolicy struct {
	ExactMatchConfidence   *float64 `yaml:"exact_match_confidence"`
	BelowMinimumConfidence *float64 `yaml:"below_minimum_confidence"`
	NearestZoneConfidence  *float64 `yaml:"nearest_zone_confidence"`
	OrdersPerDriver        *int     `yaml:"orders_per_driver"`
	MaxDeliveryFee         *float64 `yaml:"max_delivery_fee"`
	BaseDeliveryRate       *float64 `yaml:"base_delivery_rate"`
	PerKMDeliveryRate      *float64 `yaml:"per_km_delivery_rate"`
}

type yamlZone struct {
	ID       string `yaml:"id"`
	Business string `yaml:"business"`
	Name     string `yaml:"name"`
	// Ring of [longitude, latitude] positions; wrapped as polygon ring 0.
	Polygon      [][]float64 `yaml:"polygon"`
	GeometryType string      `yaml:"type"`
	DeliveryFee  float64     `yaml:"delivery_fee"`
	MinimumOrder *float64    `yaml:"minimum_order"`
	EstimatedMin *int        `yaml:"estimated_delivery_time_minutes"`
	Active       *bool       `yaml:"active"`
	Pending      int         `yaml:"pending_orders"`
}

type yamlAssignment struct {
	Zone   string `yaml:"zone"`
	Driver string `yaml:"driver"`
	Active *bool  `yaml:"active"`
}
