package domain

// ServiceOffering is one bookable service in the catalog.
type ServiceOffering struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ServiceCategory groups offerings for the services page.
type ServiceCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Catalog is the full service listing returned by the catalog endpoint.
type Catalog struct {
	Featured    []ServiceOffering `json:"featured"`
	Categories  []ServiceCategory `json:"categories"`
	LastUpdated string            `json:"lastUpdated"`
}
