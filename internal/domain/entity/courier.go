package entity

// Courier repartidor.
type Courier struct {
	ID        int64
	Name      string
	Phone     string
	Vehicle   string
	Available bool
}
