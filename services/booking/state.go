package booking

import "quickmechanic/utils"

// State is a booking session's position in the workflow.
type State string

const (
	StateVehicleConfirmation State = "VEHICLE_CONFIRMATION"
	StateServiceSelection    State = "SERVICE_SELECTION"
	StateScheduling          State = "SCHEDULING"
	StateSummary             State = "SUMMARY"
	StatePaymentPending      State = "PAYMENT_PENDING"
	StateSubmitted           State = "SUBMITTED"
)

// Event drives a state change.
type Event string

const (
	EventVehicleResolved     Event = "VehicleResolved"
	EventManualEntryAccepted Event = "ManualEntryAccepted"
	EventServiceChosen       Event = "ServiceChosen"
	EventDraftEdited         Event = "DraftEdited"
	EventScheduleCompleted   Event = "ScheduleCompleted"
	EventConfirmed           Event = "Confirmed"
	EventPaymentConfirmed    Event = "PaymentConfirmed"
	EventPaymentFailed       Event = "PaymentFailed"
	EventPaymentCancelled    Event = "PaymentCancelled"
	EventBack                Event = "Back"
	EventRestart             Event = "Restart"
)

// transitions lists every legal (state, event) pair. Anything else is refused.
var transitions = map[State]map[Event]State{
	StateVehicleConfirmation: {
		EventVehicleResolved:     StateServiceSelection,
		EventManualEntryAccepted: StateServiceSelection,
		EventRestart:             StateVehicleConfirmation,
	},
	StateServiceSelection: {
		EventServiceChosen: StateScheduling,
		EventBack:          StateVehicleConfirmation,
		EventRestart:       StateVehicleConfirmation,
	},
	StateScheduling: {
		EventServiceChosen:     StateScheduling,
		EventDraftEdited:       StateScheduling,
		EventScheduleCompleted: StateSummary,
		EventBack:              StateServiceSelection,
		EventRestart:           StateVehicleConfirmation,
	},
	StateSummary: {
		EventServiceChosen: StateScheduling,
		EventConfirmed:     StatePaymentPending,
		EventBack:          StateScheduling,
		EventRestart:       StateVehicleConfirmation,
	},
	StatePaymentPending: {
		EventPaymentConfirmed: StateSubmitted,
		EventPaymentFailed:    StateSummary,
		EventPaymentCancelled: StateSummary,
		EventRestart:          StateVehicleConfirmation,
	},
	StateSubmitted: {},
}

// Next returns the state reached by applying ev in from.
func Next(from State, ev Event) (State, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return from, utils.NewInvalidTransition(string(from), string(ev))
	}
	return to, nil
}

// Terminal reports whether no event is accepted in s.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}
