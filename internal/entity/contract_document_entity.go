package entity

import "time"

// ContractDocument is a stored contract body with its open metadata map.
type ContractDocument struct {
	Id        string
	Content   string
	Metadata  map[string]interface{}
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt *time.Time
}
