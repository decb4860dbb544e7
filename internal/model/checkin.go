package model

// CheckIn records "did the habit" on one local calendar day. Date is a
// "YYYY-MM-DD" string in the user's local calendar, never a UTC instant:
// every derivation compares these strings, which keeps streaks immune to
// timezone off-by-one errors.
//
// The log does not enforce one check-in per day; duplicates are legal and
// streak/period derivations dedupe by date.
type CheckIn struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}
