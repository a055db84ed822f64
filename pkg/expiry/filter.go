package expiry

// Predicate selects items by status for list filters.
type Predicate func(Status) bool

func Any(Status) bool { return true }

// DueSoon matches items that expire today or within the due-soon window.
func DueSoon(s Status) bool {
	return s == StatusToday || s == StatusTomorrow
}

func PastDue(s Status) bool {
	return s == StatusExpired
}

func Fresh(s Status) bool {
	return s == StatusFresh
}

// ParseFilter maps the names used by list filters to predicates.
func ParseFilter(name string) (Predicate, bool) {
	switch name {
	case "", "all":
		return Any, true
	case "due-soon", "due_soon", "expiring":
		return DueSoon, true
	case "past-due", "past_due", "expired":
		return PastDue, true
	case "fresh":
		return Fresh, true
	}
	return nil, false
}
