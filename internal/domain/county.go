package domain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// californiaCounties is the fixed enumeration of the 58 California counties,
// in canonical spelling.
var californiaCounties = []string{
	"Alameda", "Alpine", "Amador", "Butte", "Calaveras", "Colusa",
	"Contra Costa", "Del Norte", "El Dorado", "Fresno", "Glenn", "Humboldt",
	"Imperial", "Inyo", "Kern", "Kings", "Lake", "Lassen", "Los Angeles",
	"Madera", "Marin", "Mariposa", "Mendocino", "Merced", "Modoc", "Mono",
	"Monterey", "Napa", "Nevada", "Orange", "Placer", "Plumas", "Riverside",
	"Sacramento", "San Benito", "San Bernardino", "San Diego",
	"San Francisco", "San Joaquin", "San Luis Obispo", "San Mateo",
	"Santa Barbara", "Santa Clara", "Santa Cruz", "Shasta", "Sierra",
	"Siskiyou", "Solano", "Sonoma", "Stanislaus", "Sutter", "Tehama",
	"Trinity", "Tulare", "Tuolumne", "Ventura", "Yolo", "Yuba",
}

// CountySet matches free-text county names from the feed against a fixed
// enumeration, case-insensitively.
type CountySet struct {
	canonical map[string]string // lowercased -> canonical spelling
}

// DefaultCounties returns the built-in enumeration of California counties.
func DefaultCounties() *CountySet {
	return newCountySet(californiaCounties)
}

// LoadCounties reads a county enumeration from a YAML file containing a
// sequence of names. Used when COUNTY_ENUM_SOURCE overrides the built-in
// list.
func LoadCounties(path string) (*CountySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load counties: %w", err)
	}

	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("load counties %s: %w", path, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("load counties %s: empty enumeration", path)
	}

	return newCountySet(names), nil
}

func newCountySet(names []string) *CountySet {
	s := &CountySet{canonical: make(map[string]string, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s.canonical[strings.ToLower(name)] = name
	}
	return s
}

// Match returns the canonical spelling for a feed county value. The second
// return is false when the value is not in the enumeration; callers keep the
// value verbatim and flag it rather than dropping the record.
func (s *CountySet) Match(value string) (string, bool) {
	canonical, ok := s.canonical[strings.ToLower(strings.TrimSpace(value))]
	return canonical, ok
}

// Len reports the number of counties in the set.
func (s *CountySet) Len() int { return len(s.canonical) }
