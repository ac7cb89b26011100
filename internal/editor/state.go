// Package editor keeps the employee change form in sync with the record
// store: the fetched list, the selected identifier, the incoming
// navigation identifier and the draft being edited.
//
// Transition is a pure reducer over an explicit Phase. Flow drives it,
// running the effects it returns against a Gateway.
package editor

import "hrform/internal/domain/employee"

// ListingScreen is where the operator is sent after a successful save.
const ListingScreen = "/employees/information"

const (
	MsgUpdated        = "Employee updated successfully"
	MsgSelectEmployee = "Please select an employee"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseSubmitting
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// State is owned by one screen visit.
type State struct {
	Phase        Phase
	Employees    []employee.Employee
	SelectedID   string
	NavigationID string
	Draft        employee.Draft
	Busy         bool
}

func NewState() State {
	return State{Phase: PhaseIdle, Draft: employee.DefaultDraft()}
}

func (s State) find(id string) (employee.Employee, bool) {
	for _, emp := range s.Employees {
		if emp.ID == id {
			return emp, true
		}
	}
	return employee.Employee{}, false
}

type Event interface {
	event()
}

type (
	Activated struct {
		NavigationID string
	}
	ListLoaded struct {
		Employees []employee.Employee
	}
	ListFailed struct {
		Err error
	}
	Selected struct {
		ID string
	}
	FieldEdited struct {
		Field employee.Field
		Value string
	}
	SubmitRequested struct{}
	UpdateSucceeded struct{}
	UpdateFailed    struct {
		Err error
	}
)

func (Activated) event()       {}
func (ListLoaded) event()      {}
func (ListFailed) event()      {}
func (Selected) event()        {}
func (FieldEdited) event()     {}
func (SubmitRequested) event() {}
func (UpdateSucceeded) event() {}
func (UpdateFailed) event()    {}

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

type Notification struct {
	Kind NotificationKind
	Text string
}

type Effect interface {
	effect()
}

type (
	LoadList   struct{}
	SaveRecord struct {
		Record employee.Employee
	}
	Notify struct {
		Notification Notification
	}
	Navigate struct {
		Target string
	}
)

func (LoadList) effect()   {}
func (SaveRecord) effect() {}
func (Notify) effect()     {}
func (Navigate) effect()   {}

func errorNotice(text string) Notify {
	return Notify{Notification: Notification{Kind: KindError, Text: text}}
}

// Transition returns the state after ev and the effects the caller must run.
// Events that make no sense in the current phase leave the state unchanged.
func Transition(s State, ev Event) (State, []Effect) {
	if s.Phase == PhaseDone {
		return s, nil
	}

	switch ev := ev.(type) {
	case Activated:
		if s.Phase != PhaseIdle {
			return s, nil
		}
		s.Phase = PhaseLoading
		s.NavigationID = ev.NavigationID
		return s, []Effect{LoadList{}}

	case ListLoaded:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		s.Phase = PhaseReady
		s.Employees = append([]employee.Employee(nil), ev.Employees...)
		if s.NavigationID != "" {
			s.SelectedID = s.NavigationID
			if emp, ok := s.find(s.NavigationID); ok {
				s.Draft = emp.Draft()
			}
		}
		return s, nil

	case ListFailed:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		s.Phase = PhaseReady
		s.Employees = nil
		return s, []Effect{errorNotice(errorText(ev.Err, "Failed to fetch employees"))}

	case Selected:
		if s.Phase != PhaseReady {
			return s, nil
		}
		emp, ok := s.find(ev.ID)
		if !ok {
			return s, nil
		}
		s.SelectedID = emp.ID
		s.Draft = emp.Draft()
		return s, nil

	case FieldEdited:
		if s.Phase != PhaseReady {
			return s, nil
		}
		draft := s.Draft
		if err := draft.Set(ev.Field, ev.Value); err != nil {
			return s, nil
		}
		s.Draft = draft
		return s, nil

	case SubmitRequested:
		if s.Phase != PhaseReady || s.Busy {
			return s, nil
		}
		if err := s.Draft.Validate(); err != nil {
			return s, []Effect{errorNotice(err.Error())}
		}
		if s.SelectedID == "" {
			return s, []Effect{errorNotice(MsgSelectEmployee)}
		}
		s.Phase = PhaseSubmitting
		s.Busy = true
		return s, []Effect{SaveRecord{Record: s.Draft.WithID(s.SelectedID)}}

	case UpdateSucceeded:
		if s.Phase != PhaseSubmitting {
			return s, nil
		}
		s.Phase = PhaseDone
		s.Busy = false
		return s, []Effect{
			Notify{Notification: Notification{Kind: KindSuccess, Text: MsgUpdated}},
			Navigate{Target: ListingScreen},
		}

	case UpdateFailed:
		if s.Phase != PhaseSubmitting {
			return s, nil
		}
		s.Phase = PhaseReady
		s.Busy = false
		return s, []Effect{errorNotice(errorText(ev.Err, "Failed to update employee"))}
	}

	return s, nil
}

func errorText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
