package config

import "testing"

func validBase() Config {
	var cfg Config
	cfg.App.Port = 8080
	return cfg
}

func TestNormalizeAndValidateDefaults(t *testing.T) {
	cfg, val := NormalizeAndValidate(validBase())
	if !val.OK() {
		t.Fatalf("errors: %v", val.Errors)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "jobboard.db" {
		t.Errorf("database defaults: %+v", cfg.Database)
	}
	if cfg.Search.PerPageMax != 100 {
		t.Errorf("per_page_max default = %d", cfg.Search.PerPageMax)
	}
	if cfg.Ingest.ReqPerSec != 1 || cfg.Ingest.Burst != 2 {
		t.Errorf("ingest defaults: %+v", cfg.Ingest)
	}
}

func TestNormalizeAndValidateLists(t *testing.T) {
	cfg := validBase()
	cfg.Search.EUCountries = []string{" de ", "DE", "fr", ""}
	cfg.Search.HighPayCities = []string{"Zurich", "zurich", " London "}

	cfg, val := NormalizeAndValidate(cfg)
	if !val.OK() {
		t.Fatalf("errors: %v", val.Errors)
	}
	if len(cfg.Search.EUCountries) != 2 || cfg.Search.EUCountries[0] != "DE" || cfg.Search.EUCountries[1] != "FR" {
		t.Errorf("eu codes = %v", cfg.Search.EUCountries)
	}
	if len(cfg.Search.HighPayCities) != 2 || cfg.Search.HighPayCities[0] != "zurich" || cfg.Search.HighPayCities[1] != "london" {
		t.Errorf("cities = %v", cfg.Search.HighPayCities)
	}
}

func TestNormalizeAndValidateErrors(t *testing.T) {
	cfg := validBase()
	cfg.App.Port = 0
	cfg.Database.Driver = "oracle"
	cfg.Search.EUCountries = []string{"DEU"}
	cfg.Search.PerPageMax = 5
	cfg.Ingest.Boards = []Board{{Slug: ""}}

	_, val := NormalizeAndValidate(cfg)
	if val.OK() {
		t.Fatal("expected errors")
	}
	if len(val.Errors) != 5 {
		t.Errorf("errors = %v", val.Errors)
	}
}

func TestNormalizeAndValidatePostgresWarning(t *testing.T) {
	cfg := validBase()
	cfg.Database.Driver = "postgres"

	_, val := NormalizeAndValidate(cfg)
	if !val.OK() {
		t.Fatalf("errors: %v", val.Errors)
	}
	if len(val.Warnings) != 1 {
		t.Errorf("warnings = %v", val.Warnings)
	}
}
