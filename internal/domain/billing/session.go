package billing

import (
	"sort"
	"strings"
	"time"
)

// Sentinel tokens substituted into a session key when a component is missing.
// Keys are compared verbatim, so callers must format dates and times
// consistently upstream.
const (
	UnknownDoctorToken = "unknown"
	NoDateToken        = "no-date"
	NoTimeToken        = "no-time"
	NoEndTimeToken     = "no-endtime"
)

const sessionKeySeparator = "_"

// SessionKey derives the grouping key that clusters appointments into a
// session: all appointments sharing one doctor, date and time slot. Two
// appointments map to the same key iff all four components are equal as
// strings.
func SessionKey(doctorID, date, startTime, endTime string) string {
	if doctorID == "" {
		doctorID = UnknownDoctorToken
	}
	if date == "" {
		date = NoDateToken
	}
	if startTime == "" {
		startTime = NoTimeToken
	}
	if endTime == "" {
		endTime = NoEndTimeToken
	}
	return strings.Join([]string{doctorID, date, startTime, endTime}, sessionKeySeparator)
}

// SessionMember is an appointment viewed by the ranker: its identifier and
// optional creation timestamp.
type SessionMember struct {
	ID        string
	CreatedAt *time.Time
}

// RankSession orders the members of one session and returns them in queue
// order; the appointment number of members[i] is i+1.
//
// Ordering: creation timestamp ascending when both members have one; a
// member with a timestamp sorts before one without; when neither has a
// timestamp, identifiers are compared lexicographically. The sort is stable,
// so timestamp ties keep their input order.
func RankSession(members []SessionMember) []SessionMember {
	ranked := make([]SessionMember, len(members))
	copy(ranked, members)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.CreatedAt != nil && b.CreatedAt != nil:
			return a.CreatedAt.Before(*b.CreatedAt)
		case a.CreatedAt != nil:
			return true
		case b.CreatedAt != nil:
			return false
		default:
			return a.ID < b.ID
		}
	})

	return ranked
}

// AppointmentNumbers returns the 1-based appointment number for each member
// keyed by ID. Numbers within a session are a gapless permutation of 1..N.
func AppointmentNumbers(members []SessionMember) map[string]int {
	ranked := RankSession(members)
	numbers := make(map[string]int, len(ranked))
	for i, m := range ranked {
		numbers[m.ID] = i + 1
	}
	return numbers
}
