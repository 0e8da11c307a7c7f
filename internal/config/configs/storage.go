package configs

import "fmt"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Storage selects where the hierarchy is kept. The memory driver keeps
// everything in process and loses it on restart.
type Storage struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
	// Seed inserts a demo hierarchy on startup when the store is empty.
	Seed bool `env:"SEED" envDefault:"false"`
}

// Validate rejects unknown drivers.
func (s Storage) Validate() error {
	switch s.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
}
