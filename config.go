package pool

// Config provides a StoreConfig with default settings.
var Config = NewConfig()

// StoreConfig is used by the store when creating a new instance.
type StoreConfig struct {
	BaseSlotsPerPool uint8
	GrowthFactor     float64 // for use with math.Pow this is easier
}

// NewConfig returns a new store configuration with default settings.
func NewConfig() StoreConfig {
	return StoreConfig{
		BaseSlotsPerPool: 25,
		GrowthFactor:     1.3,
	}
}
