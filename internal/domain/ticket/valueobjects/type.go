package valueobjects

import "fmt"

// TicketType selects which narrative fields a ticket must carry.
type TicketType string

const (
	TypeBug      TicketType = "Bug"
	TypeTestCase TicketType = "Test Case"
)

var validTicketTypes = map[TicketType]bool{
	TypeBug:      true,
	TypeTestCase: true,
}

func (tt TicketType) String() string {
	return string(tt)
}

func (tt TicketType) IsValid() bool {
	return validTicketTypes[tt]
}

// AllTypes returns the supported ticket types.
func AllTypes() []TicketType {
	return []TicketType{TypeBug, TypeTestCase}
}

func ParseTicketType(s string) (TicketType, error) {
	tt := TicketType(s)
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return tt, nil
}
