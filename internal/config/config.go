package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Board is one ingestable job board.
type Board struct {
	Slug string `yaml:"slug"` // boards.greenhouse.io/<slug>
	Name string `yaml:"name"` // display name
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Database struct {
		Driver string `yaml:"driver"` // sqlite | postgres
		Path   string `yaml:"path"`   // sqlite file, relative to data_dir
		URL    string `yaml:"url"`    // postgres DSN; DATABASE_URL overrides
	} `yaml:"database"`

	Search struct {
		PerPageMax int `yaml:"per_page_max"`
		// Representative member codes for the EU pseudo-country.
		EUCountries []string `yaml:"eu_countries"`
		// Cities matched by the HIGH_PAY pseudo-country.
		HighPayCities []string `yaml:"high_pay_cities"`
	} `yaml:"search"`

	Ingest struct {
		Boards    []Board `yaml:"boards"`
		ReqPerSec float64 `yaml:"req_per_sec"` // per-host request rate
		Burst     int     `yaml:"burst"`
	} `yaml:"ingest"`

	Admin struct {
		// OS keyring account holding the metrics token; ADMIN_TOKEN env
		// is the fallback.
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"admin"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
