package id

import (
	"fmt"
	"strconv"
	"strings"
)

const sep = "_"

// FormatRecordID returns a record ID like "OBS_0001".
func FormatRecordID(prefix string, seq int) string {
	return fmt.Sprintf("%s%s%04d", prefix, sep, seq)
}

// ParseRecordID parses "OBS_0001" into prefix and sequence number.
func ParseRecordID(id string) (prefix string, seq int, err error) {
	parts := strings.SplitN(id, sep, 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("invalid record ID format: %q", id)
	}
	if !isDigits(parts[1]) {
		return "", 0, fmt.Errorf("invalid sequence in record ID %q", id)
	}
	seq, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in record ID %q: %w", id, err)
	}
	return parts[0], seq, nil
}

// NextSeq returns one past the highest sequence among ids carrying prefix,
// or 1 when there are none. IDs that do not parse are ignored.
func NextSeq(ids []string, prefix string) int {
	maxSeq := 0
	for _, s := range ids {
		p, seq, err := ParseRecordID(s)
		if err != nil || p != prefix {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
