package domain

import "context"

// Location is a mortuary or other shmira site. The roster is configuration
// data; this core only reads it to expand a location name into an address.
type Location struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	DirectionsURL string `json:"directions_url"`
	Info          string `json:"info"`
}

// LocationRepository defines read access to the location roster.
type LocationRepository interface {
	List(ctx context.Context) ([]*Location, error)
	GetByName(ctx context.Context, name string) (*Location, error)
}
