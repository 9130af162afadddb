package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when REGIONFLAGS_CONFIG is not set.
const DefaultPath = "config/regionflags.yaml"

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Server holds all configuration for the region flags daemon.
type Server struct {
	LogLevel string `yaml:"log_level" env:"REGIONFLAGS_LOG_LEVEL"`

	// Storage
	StorageType string         `yaml:"storage_type" env:"REGIONFLAGS_STORAGE_TYPE"` // postgres | sqlite
	Database    DatabaseConfig `yaml:"database"`
	SQLitePath  string         `yaml:"sqlite_path" env:"REGIONFLAGS_SQLITE_PATH"`

	// Region geometry
	RegionsFile string  `yaml:"regions_file" env:"REGIONFLAGS_REGIONS_FILE"`
	TileSize    float64 `yaml:"tile_size" env:"REGIONFLAGS_TILE_SIZE"` // world units per tile

	// Network
	ListenAddress string `yaml:"listen_address" env:"REGIONFLAGS_LISTEN_ADDRESS"`
	MaxPlayers    int    `yaml:"max_players" env:"REGIONFLAGS_MAX_PLAYERS"`

	// Effects
	TickRate   time.Duration `yaml:"tick_rate" env:"REGIONFLAGS_TICK_RATE"`
	HealAmount int32         `yaml:"heal_amount" env:"REGIONFLAGS_HEAL_AMOUNT"` // HP per heal

	// Player names granted every admin permission on connect.
	Admins []string `yaml:"admins" env:"REGIONFLAGS_ADMINS" envSeparator:","`

	// NPCs placed in the world at startup.
	Spawns []Spawn `yaml:"spawns"`
}

// Spawn describes one NPC placed at startup.
type Spawn struct {
	TemplateID int32   `yaml:"template_id"`
	Name       string  `yaml:"name"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	MaxHP      int32   `yaml:"max_hp"`
	Friendly   bool    `yaml:"friendly"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:    "info",
		StorageType: StorageSQLite,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "regionflags",
			Password: "regionflags",
			DBName:   "regionflags",
			SSLMode:  "disable",
		},
		SQLitePath:    "regionflags.db",
		RegionsFile:   "config/regions.yaml",
		TileSize:      16,
		ListenAddress: ":8080",
		MaxPlayers:    64,
		TickRate:      time.Second / 60,
		HealAmount:    20,
	}
}

// LoadServer loads config from a YAML file, then applies environment overrides.
// If the file doesn't exist, defaults are used.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config path from REGIONFLAGS_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv("REGIONFLAGS_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Validate checks value ranges.
func (s Server) Validate() error {
	var errs []error
	if s.StorageType != StoragePostgres && s.StorageType != StorageSQLite {
		errs = append(errs, fmt.Errorf("storage_type %q: want %s or %s", s.StorageType, StoragePostgres, StorageSQLite))
	}
	if s.MaxPlayers <= 0 {
		errs = append(errs, fmt.Errorf("max_players %d: must be positive", s.MaxPlayers))
	}
	if s.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %s: must be positive", s.TickRate))
	}
	if s.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile_size %v: must be positive", s.TileSize))
	}
	if s.HealAmount <= 0 {
		errs = append(errs, fmt.Errorf("heal_amount %d: must be positive", s.HealAmount))
	}
	for i, sp := range s.Spawns {
		if sp.MaxHP <= 0 {
			errs = append(errs, fmt.Errorf("spawns[%d] %q: max_hp must be positive", i, sp.Name))
		}
	}
	return errors.Join(errs...)
}

// StorageDSN returns the connection string for the configured storage type.
func (s Server) StorageDSN() string {
	if s.StorageType == StoragePostgres {
		return s.Database.DSN()
	}
	return s.SQLitePath
}
