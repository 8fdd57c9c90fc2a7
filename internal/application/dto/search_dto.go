package dto

// SearchLocation celda donde se encuentra un producto (resultado de búsqueda).
type SearchLocation struct {
	Code string `json:"code"`
}

// SearchResult una entrada del buscador global: producto o celda.
type SearchResult struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"` // "product" | "storage-cell"
	Name        string           `json:"name,omitempty"`
	SKU         string           `json:"sku,omitempty"`
	Code        string           `json:"code,omitempty"`
	Description string           `json:"description,omitempty"`
	Locations   []SearchLocation `json:"locations,omitempty"`
}
