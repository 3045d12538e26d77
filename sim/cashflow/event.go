// Package cashflow builds per-year LP and GP cash-flow series from discrete
// fund events and applies the carried-interest waterfall.
//
// Events are immutable values. A Series is produced only by folding an event
// list, so each event can be checked in isolation before it is summed.
package cashflow

import "fmt"

// Kind classifies a cash-flow event.
type Kind int

const (
	KindInitialCheck Kind = iota
	KindFollowOn
	KindManagementFee
	KindExitProceeds
)

func (k Kind) String() string {
	switch k {
	case KindInitialCheck:
		return "initial_check"
	case KindFollowOn:
		return "follow_on"
	case KindManagementFee:
		return "management_fee"
	case KindExitProceeds:
		return "exit_proceeds"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FundLevel is the Deal index used by events not tied to a portfolio company.
const FundLevel = -1

// Event is a single signed LP cash flow. Calls and fees are negative,
// proceeds positive.
type Event struct {
	Year   int
	Amount float64
	Kind   Kind
	Deal   int
}

// Call returns the capital call for an initial or follow-on check.
func Call(deal, year int, amount float64, kind Kind) Event {
	return Event{Year: year, Amount: -amount, Kind: kind, Deal: deal}
}

// Proceeds returns the exit event for a deal.
func Proceeds(deal, year int, amount float64) Event {
	return Event{Year: year, Amount: amount, Kind: KindExitProceeds, Deal: deal}
}

// ManagementFees charges rate*committed once per year for years 1..fundLife.
// The fee is flat on committed capital regardless of what has been called.
func ManagementFees(rate, committed float64, fundLife int) []Event {
	events := make([]Event, 0, fundLife)
	fee := rate * committed
	for year := 1; year <= fundLife; year++ {
		events = append(events, Event{Year: year, Amount: -fee, Kind: KindManagementFee, Deal: FundLevel})
	}
	return events
}

// Totals returns paid-in capital (sum of negative events, as a positive
// number) and distributions (sum of positive events), before any netting.
func Totals(events []Event) (invested, distributed float64) {
	for _, e := range events {
		if e.Amount < 0 {
			invested -= e.Amount
		} else {
			distributed += e.Amount
		}
	}
	return invested, distributed
}
