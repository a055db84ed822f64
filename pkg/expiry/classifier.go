// Package expiry derives the freshness status of an item from its
// expiration date. Nothing here reads the wall clock; callers pass now.
package expiry

import (
	"Ginraidee/domain"
	"fmt"
	"time"
)

type Status string

const (
	StatusExpired  Status = "expired"
	StatusToday    Status = "today"
	StatusTomorrow Status = "tomorrow"
	StatusFresh    Status = "fresh"
)

// DueSoonDays is the horizon of the "expiring soon" window.
const DueSoonDays = 3

const day = 24 * time.Hour

// DaysUntil counts calendar days from now to expirationDate. The expiration
// date is read in its own location and now in the caller's, so the answer
// does not depend on the time of day.
func DaysUntil(expirationDate, now time.Time) int {
	exp := domain.DateOf(expirationDate)
	cur := domain.DateOf(now)
	return int(exp.Sub(cur.Time) / day)
}

// Classify returns the status of an item and its localized description.
// A difference of one day still reads as "today".
func Classify(expirationDate, now time.Time, lang domain.Language) (Status, string) {
	days := DaysUntil(expirationDate, now)
	switch {
	case days < 0:
		return StatusExpired, overdueText(-days, lang)
	case days <= 1:
		return StatusToday, lang.Pick("หมดอายุวันนี้", "Expires today")
	case days <= DueSoonDays:
		return StatusTomorrow, expiresInText(days, lang)
	default:
		return StatusFresh, expiresInText(days, lang)
	}
}

// StatusOf is Classify without the text.
func StatusOf(expirationDate, now time.Time) Status {
	status, _ := Classify(expirationDate, now, domain.LanguageEnglish)
	return status
}

// WithinWindow reports whether expirationDate is at most days calendar days
// after now. Past-due dates are inside every window.
func WithinWindow(expirationDate, now time.Time, days int) bool {
	return DaysUntil(expirationDate, now) <= days
}

func overdueText(days int, lang domain.Language) string {
	if lang == domain.LanguageThai {
		return fmt.Sprintf("เลยมา %d วัน", days)
	}
	if days == 1 {
		return "1 day overdue"
	}
	return fmt.Sprintf("%d days overdue", days)
}

func expiresInText(days int, lang domain.Language) string {
	if lang == domain.LanguageThai {
		return fmt.Sprintf("หมดอายุใน %d วัน", days)
	}
	return fmt.Sprintf("Expires in %d days", days)
}
