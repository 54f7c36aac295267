// Package registration holds the registrant model, the field validators, and
// the aggregation helpers used by statistics and export.
package registration

import (
	"strings"
	"time"
)

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

type AttendanceMode string

const (
	AttendanceOnSite AttendanceMode = "On-site"
	AttendanceOnline AttendanceMode = "Online"
	AttendanceHybrid AttendanceMode = "Hybrid"
)

// Registrant is one stored sign-up record. Records are append-only: nothing
// in the application updates or deletes a row once it is persisted.
type Registrant struct {
	LastName        string         `json:"last_name"`
	FirstName       string         `json:"first_name"`
	NationalID      string         `json:"national_id"`
	Phone           string         `json:"phone"`
	Organization    string         `json:"organization"`
	PreferredPeriod string         `json:"preferred_period"`
	Sex             Sex            `json:"sex"`
	Age             int            `json:"age"`
	Level           Level          `json:"level"`
	AttendanceMode  AttendanceMode `json:"attendance_mode"`
	// RegisteredAt is stamped by the store at insertion time, never by the
	// caller.
	RegisteredAt time.Time `json:"registered_at"`
}

// Columns is the fixed header of the persisted dataset, in storage order.
var Columns = []string{
	"Last Name",
	"First Name",
	"National ID",
	"Phone",
	"Organization",
	"Preferred Period",
	"Sex",
	"Age",
	"Level",
	"Attendance Mode",
	"Registered At",
}

// TimestampLayout is the storage format of the RegisteredAt column.
const TimestampLayout = "2006-01-02 15:04:05"

// NormalizeNationalID produces the canonical form used both for storage and
// for the uniqueness check: trimmed and uppercased.
func NormalizeNationalID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
