package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus validation results.
// Missing search knobs fall back to defaults rather than erroring so a
// minimal config file still boots.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.EUCountries = trimList(out.Search.EUCountries)
	out.Search.HighPayCities = trimList(out.Search.HighPayCities)
	for i, c := range out.Search.EUCountries {
		out.Search.EUCountries[i] = strings.ToUpper(c)
		if len(c) != 2 {
			res.addErr("search.eu_countries[%d] %q is not a 2-letter code", i, c)
		}
	}
	for i, c := range out.Search.HighPayCities {
		out.Search.HighPayCities[i] = strings.ToLower(c)
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.Database.Driver {
	case "", "sqlite":
		out.Database.Driver = "sqlite"
		if strings.TrimSpace(out.Database.Path) == "" {
			out.Database.Path = "jobboard.db"
		}
	case "postgres":
		if strings.TrimSpace(out.Database.URL) == "" {
			res.addWarn("database.url is empty; DATABASE_URL must be set for the postgres driver")
		}
	default:
		res.addErr("database.driver must be sqlite or postgres, got %q", out.Database.Driver)
	}

	if out.Search.PerPageMax <= 0 {
		out.Search.PerPageMax = 100
	} else if out.Search.PerPageMax < 10 {
		res.addErr("search.per_page_max must be >= 10")
	}

	if out.Ingest.ReqPerSec <= 0 {
		out.Ingest.ReqPerSec = 1
	}
	if out.Ingest.Burst <= 0 {
		out.Ingest.Burst = 2
	}
	for i, b := range out.Ingest.Boards {
		if strings.TrimSpace(b.Slug) == "" {
			res.addErr("ingest.boards[%d].slug is required", i)
		}
	}

	return out, res
}
