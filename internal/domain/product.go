package domain

// Product mirrors the backend's `/productos` representation. Field names on
// the wire are Spanish; they must stay in sync with the REST backend.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Description string  `json:"descripcion,omitempty"`
	ImageURL    string  `json:"imagenUrl,omitempty"`
	CategoryID  int64   `json:"categoriaId"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Description string  `json:"descripcion,omitempty"`
	ImageURL    string  `json:"imagenUrl,omitempty"`
	CategoryID  int64   `json:"categoriaId"`
}
