package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// Helper functions shared across commands

func stringPtr(s string) *string {
	return &s
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// parseID parses a numeric id argument.
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

// parseIDList parses a comma-separated list of numeric ids.
func parseIDList(arg string) ([]uint, error) {
	parts := strings.Split(arg, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := parseID(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
