package manifest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"parcelhub/internal/pkg/errs"
)

// NumberPrefix is the fixed prefix of every manifest number.
const NumberPrefix = "MF"

// DayPrefix returns the number prefix shared by all manifests dispatched on
// the given calendar day, e.g. "MF-20260830-".
func DayPrefix(day time.Time) string {
	return fmt.Sprintf("%s-%s-", NumberPrefix, day.Format("20060102"))
}

// FormatNumber renders a day-scoped sequence as a manifest number,
// e.g. FormatNumber(aug30, 7) == "MF-20260830-0007".
func FormatNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", DayPrefix(day), seq)
}

// NextNumber computes the successor of the greatest existing manifest number
// for a day. last is that number, or empty when the day has no manifests yet
// (the sequence then starts at 1). The sequence is gapless within a day and
// resets daily.
//
// The caller must obtain last under a conflict-safe read (the repository
// locks the day's greatest row); computing from a stale read would silently
// assign a duplicate.
func NextNumber(day time.Time, last string) (string, error) {
	if last == "" {
		return FormatNumber(day, 1), nil
	}

	seq, err := ParseSequence(day, last)
	if err != nil {
		return "", err
	}

	return FormatNumber(day, seq+1), nil
}

// ParseSequence extracts the trailing sequence of a manifest number belonging
// to the given day.
func ParseSequence(day time.Time, number string) (int, error) {
	prefix := DayPrefix(day)
	if !strings.HasPrefix(number, prefix) {
		return 0, errs.NewValueIsInvalidErrorWithCause("manifest number",
			fmt.Errorf("%q does not start with %q", number, prefix))
	}

	seq, err := strconv.Atoi(number[len(prefix):])
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("manifest number",
			fmt.Errorf("%q has a non-numeric sequence: %w", number, err))
	}

	if seq < 1 {
		return 0, errs.NewValueIsInvalidErrorWithCause("manifest number",
			fmt.Errorf("%q has a non-positive sequence", number))
	}

	return seq, nil
}
