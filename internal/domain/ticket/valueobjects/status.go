package valueobjects

import "fmt"

// TicketStatus is a step in the ticket workflow. Any status may move to any
// other status; there is no enforced transition graph.
type TicketStatus string

const (
	StatusNew            TicketStatus = "New"
	StatusOpen           TicketStatus = "Open"
	StatusInProgress     TicketStatus = "In Progress"
	StatusProductBacklog TicketStatus = "Product Backlog - Pending (B)"
	StatusSprintTest     TicketStatus = "Test: Sprint Test"
	StatusBuildReady     TicketStatus = "Test: Build Ready"
	StatusRegression     TicketStatus = "Test: Regression"
	StatusReleased       TicketStatus = "Released"
	StatusClosed         TicketStatus = "Closed"
)

// ticketStatuses is the workflow vocabulary in display order.
var ticketStatuses = []TicketStatus{
	StatusNew,
	StatusOpen,
	StatusInProgress,
	StatusProductBacklog,
	StatusSprintTest,
	StatusBuildReady,
	StatusRegression,
	StatusReleased,
	StatusClosed,
}

var validTicketStatuses = func() map[TicketStatus]bool {
	m := make(map[TicketStatus]bool, len(ticketStatuses))
	for _, s := range ticketStatuses {
		m[s] = true
	}
	return m
}()

var openLikeStatuses = map[TicketStatus]bool{
	StatusNew:            true,
	StatusOpen:           true,
	StatusInProgress:     true,
	StatusSprintTest:     true,
	StatusBuildReady:     true,
	StatusRegression:     true,
	StatusProductBacklog: true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

// IsOpenLike reports whether the status counts as open work on the dashboard.
func (ts TicketStatus) IsOpenLike() bool {
	return openLikeStatuses[ts]
}

// AllStatuses returns the workflow vocabulary in display order.
func AllStatuses() []TicketStatus {
	out := make([]TicketStatus, len(ticketStatuses))
	copy(out, ticketStatuses)
	return out
}

// OpenLikeStatuses returns the open-like subset in display order.
func OpenLikeStatuses() []TicketStatus {
	out := make([]TicketStatus, 0, len(openLikeStatuses))
	for _, s := range ticketStatuses {
		if s.IsOpenLike() {
			out = append(out, s)
		}
	}
	return out
}

func ParseTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
