package entity

// IDName is the lightweight {id, name} pair used to fill select inputs.
type IDName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
