package constants

import (
	"strings"
)

// Entity names the catalog tables exposed through the API.
type Entity string

const (
	EntityCategories Entity = "categories"
	EntityStorages   Entity = "storages"
	EntityDisplays   Entity = "displays"
)

var allEntities = []Entity{
	EntityCategories,
	EntityStorages,
	EntityDisplays,
}

func EntitiesAsStringSlice() []string {
	result := make([]string, len(allEntities))
	for i, e := range allEntities {
		result[i] = string(e)
	}
	return result
}

// CanonicalizeEntity maps user input (CLI args, export paths) to an Entity.
func CanonicalizeEntity(input string) (Entity, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]Entity{
		"category":    EntityCategories,
		"storage":     EntityStorages,
		"hard-drive":  EntityStorages,
		"hard-drives": EntityStorages,
		"harddrive":   EntityStorages,
		"harddrives":  EntityStorages,
		"display":     EntityDisplays,
		"screen":      EntityDisplays,
		"screens":     EntityDisplays,
	}
	if e, ok := synonyms[normalized]; ok {
		return e, true
	}

	for _, e := range allEntities {
		if normalized == string(e) {
			return e, true
		}
	}
	return "", false
}

// CanonicalOption returns the entry of options matching input case-insensitively,
// so "ssd" is stored as "SSD".
func CanonicalOption(options []string, input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	for _, o := range options {
		if strings.ToLower(o) == normalized {
			return o, true
		}
	}
	return "", false
}
