package model

import "fmt"

// Section identifies one of the train's fixed partitions.
type Section string

const (
    SectionA Section = "A"
    SectionB Section = "B"
)

// Sections lists every section of the train in issuance order.
var Sections = []Section{SectionA, SectionB}

// ParseSection returns the Section named by s.  The lookup is exact; callers
// that accept user input are expected to upper-case it first.
func ParseSection(s string) (Section, bool) {
    for _, sec := range Sections {
        if string(sec) == s {
            return sec, true
        }
    }
    return "", false
}

// Seat identifies a physical seat.  Two seats are equal when both the
// section and the number match, so Seat can be compared with == and used
// as a map key.
//
// Fields:
//  Section    – section the seat belongs to (A or B).
//  SeatNumber – 1-based position inside the section.
type Seat struct {
    Section    Section `json:"section"`     // tickets.section
    SeatNumber int     `json:"seat_number"` // tickets.seat_number
}

// String renders the seat as e.g. "A12".
func (s Seat) String() string {
    return fmt.Sprintf("%s%d", s.Section, s.SeatNumber)
}
