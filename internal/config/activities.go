package config

import (
	"fmt"
	"strings"
)

// Activity is a permitted warehouse operation
type Activity string

const (
	// ActivityQuery allows querying data from the warehouse
	ActivityQuery Activity = "query"
	// ActivityIndex allows indexing operations
	ActivityIndex Activity = "index"
	// ActivityDataflow allows dataflow/ETL operations
	ActivityDataflow Activity = "dataflow"
)

// Activities returns the full set of known activities
func Activities() []Activity {
	return []Activity{ActivityQuery, ActivityIndex, ActivityDataflow}
}

// ParseActivity validates a single activity value
func ParseActivity(s string) (Activity, error) {
	switch Activity(s) {
	case ActivityQuery, ActivityIndex, ActivityDataflow:
		return Activity(s), nil
	}

	known := make([]string, 0, len(Activities()))
	for _, a := range Activities() {
		known = append(known, string(a))
	}

	return "", &ConfigError{Msg: fmt.Sprintf("unknown warehouse activity %q (valid: %s)", s, strings.Join(known, ", "))}
}

// ValidateActivities validates a list of activity values. An empty list is
// rejected: an assignment without activities grants nothing.
func ValidateActivities(activities []string) error {
	if len(activities) == 0 {
		return &ConfigError{Msg: "warehouse.activities must not be empty when a warehouse is configured"}
	}

	for _, s := range activities {
		if _, err := ParseActivity(s); err != nil {
			return err
		}
	}

	return nil
}
