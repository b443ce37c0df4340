package tags

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskline/internal/model"
)

const (
	FieldTags    = "tags"
	FieldOldName = "oldName"
	FieldNewName = "newName"
)

// ValidateNames rejects empty lists and names that are blank or contain
// whitespace or commas.
func ValidateNames(names []string) error {
	var bag model.ErrorBag
	if len(names) == 0 {
		bag.Put(FieldTags, "At least one tag name is required")
	}
	for _, n := range names {
		if msg := checkName(n); msg != "" {
			bag.Put(FieldTags, msg)
			break
		}
	}
	return bag.Err("")
}

// ValidateExisting requires every name to be registered.
func ValidateExisting(r *Registry, names []string) error {
	if err := ValidateNames(names); err != nil {
		return err
	}
	var missing []string
	for _, n := range names {
		if !r.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	var bag model.ErrorBag
	bag.Put(FieldTags, fmt.Sprintf("Tag not found: %s", strings.Join(missing, ", ")))
	return bag.Err("")
}

// ValidateRename checks that oldName exists and newName is free.
func ValidateRename(r *Registry, oldName, newName string) error {
	var bag model.ErrorBag
	if msg := checkName(oldName); msg != "" {
		bag.Put(FieldOldName, msg)
	} else if !r.Has(oldName) {
		bag.Put(FieldOldName, fmt.Sprintf("Tag not found: %s", oldName))
	}
	if msg := checkName(newName); msg != "" {
		bag.Put(FieldNewName, msg)
	} else if r.Has(newName) {
		bag.Put(FieldNewName, fmt.Sprintf("Tag already exists: %s", newName))
	}
	return bag.Err("")
}

func checkName(name string) string {
	switch {
	case strings.TrimSpace(name) == "":
		return "Tag name should not be empty"
	case strings.ContainsAny(name, " \t\n,"):
		return fmt.Sprintf("Tag name %q should not contain spaces or commas", name)
	default:
		return ""
	}
}
