package vault

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	ds "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	dslvl "github.com/ipfs/go-ds-leveldb"
	"github.com/kelseyhightower/envconfig"
	"github.com/pyropy/vault/core/maidmanager"
	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/core/routing"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type Config struct {
	Server struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	} `toml:"server"`
	Node struct {
		// Name is the hex encoded node name; a random one is used when empty.
		Name string `toml:"name"`
	} `toml:"node"`
	Routing struct {
		GatewayAddr string `toml:"gateway_addr" split_words:"true"`
		GroupSize   int    `toml:"group_size" split_words:"true"`
	} `toml:"routing"`
	Store struct {
		// Path of the leveldb account store; accounts are kept in memory when empty.
		Path string `toml:"path"`
	} `toml:"store"`
	Account struct {
		Size            uint64 `toml:"size"`
		Payment         uint64 `toml:"payment"`
		ChargeByPayload bool   `toml:"charge_by_payload" split_words:"true"`
	} `toml:"account"`
	Cache struct {
		TTL           time.Duration `toml:"ttl"`
		Capacity      int           `toml:"capacity"`
		SweepInterval time.Duration `toml:"sweep_interval" split_words:"true"`
	} `toml:"cache"`
	Metrics struct {
		Enabled bool `toml:"enabled"`
	} `toml:"metrics"`
}

func DefaultConfig() Config {
	var cfg Config
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 1235
	cfg.Routing.GatewayAddr = "localhost:1234"
	cfg.Routing.GroupSize = routing.DefaultGroupSize
	cfg.Account.Size = model.DefaultAccountSize
	cfg.Account.Payment = model.DefaultPayment
	cfg.Cache.TTL = maidmanager.DefaultRequestCacheTTL
	cfg.Cache.Capacity = maidmanager.DefaultRequestCacheCapacity
	cfg.Cache.SweepInterval = 30 * time.Second
	cfg.Metrics.Enabled = true

	return cfg
}

// GetConfig builds the configuration from defaults, then the TOML file at
// path if one is given, then the environment.
func GetConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings that would leave the request cache unbounded or
// stall the background loops.
func (c *Config) Validate() error {
	switch {
	case c.Cache.TTL <= 0:
		return fmt.Errorf("%w: cache ttl must be positive, got %s", ErrInvalidConfig, c.Cache.TTL)
	case c.Cache.Capacity <= 0:
		return fmt.Errorf("%w: cache capacity must be positive, got %d", ErrInvalidConfig, c.Cache.Capacity)
	case c.Cache.SweepInterval <= 0:
		return fmt.Errorf("%w: cache sweep interval must be positive, got %s", ErrInvalidConfig, c.Cache.SweepInterval)
	case c.Routing.GroupSize <= 0:
		return fmt.Errorf("%w: routing group size must be positive, got %d", ErrInvalidConfig, c.Routing.GroupSize)
	}

	return nil
}

func (c *Config) NodeName() (model.XorName, error) {
	if c.Node.Name == "" {
		return model.RandomXorName(), nil
	}

	return model.ParseXorName(c.Node.Name)
}

func (c *Config) MaidManager() maidmanager.Config {
	return maidmanager.Config{
		AccountSize:          c.Account.Size,
		PaymentPerPut:        c.Account.Payment,
		ChargeByPayload:      c.Account.ChargeByPayload,
		RequestCacheTTL:      c.Cache.TTL,
		RequestCacheCapacity: c.Cache.Capacity,
	}
}

// OpenDatastore opens the account datastore described by the config.
func (c *Config) OpenDatastore() (ds.Datastore, error) {
	if c.Store.Path == "" {
		return dssync.MutexWrap(ds.NewMapDatastore()), nil
	}

	store, err := dslvl.NewDatastore(c.Store.Path, nil)
	if err != nil {
		return nil, err
	}

	return store, nil
}
