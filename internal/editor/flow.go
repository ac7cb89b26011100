package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hrform/internal/domain/employee"
)

const DefaultTimeout = 15 * time.Second

var (
	ErrBusy     = errors.New("an update is already in flight")
	ErrNotReady = errors.New("employee form is not ready")
)

// Gateway is the only way the form reaches the record store.
type Gateway interface {
	List(ctx context.Context) ([]employee.Employee, error)
	Create(ctx context.Context, emp employee.Employee) error
	Update(ctx context.Context, emp employee.Employee) error
}

type Notifier interface {
	Notify(Notification)
}

type NotifierFunc func(Notification)

func (fn NotifierFunc) Notify(n Notification) { fn(n) }

// Navigator is called with the target screen after a successful save.
type Navigator func(target string)

type Option func(*Flow)

func WithNotifier(n Notifier) Option {
	return func(f *Flow) {
		if n != nil {
			f.notifier = n
		}
	}
}

func WithNavigator(nav Navigator) Option {
	return func(f *Flow) {
		if nav != nil {
			f.navigate = nav
		}
	}
}

func WithLoadTimeout(d time.Duration) Option {
	return func(f *Flow) {
		if d > 0 {
			f.loadTimeout = d
		}
	}
}

func WithSubmitTimeout(d time.Duration) Option {
	return func(f *Flow) {
		if d > 0 {
			f.submitTimeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Flow runs one visit of the change form. Gateway calls happen outside the
// lock; the busy flag in State keeps a second submit from starting.
type Flow struct {
	gateway       Gateway
	notifier      Notifier
	navigate      Navigator
	loadTimeout   time.Duration
	submitTimeout time.Duration
	logger        *slog.Logger

	mu    sync.Mutex
	state State
}

func New(gateway Gateway, opts ...Option) *Flow {
	f := &Flow{
		gateway:       gateway,
		notifier:      NotifierFunc(func(Notification) {}),
		navigate:      func(string) {},
		loadTimeout:   DefaultTimeout,
		submitTimeout: DefaultTimeout,
		logger:        slog.Default(),
		state:         NewState(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Choice is one entry of the employee selector.
type Choice struct {
	ID   string
	Name string
}

// Snapshot is what the presentation layer renders.
type Snapshot struct {
	Phase      Phase
	SelectedID string
	Draft      employee.Draft
	Choices    []Choice
	Busy       bool
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	choices := make([]Choice, 0, len(f.state.Employees))
	for _, emp := range f.state.Employees {
		choices = append(choices, Choice{ID: emp.ID, Name: emp.Name})
	}
	return Snapshot{
		Phase:      f.state.Phase,
		SelectedID: f.state.SelectedID,
		Draft:      f.state.Draft,
		Choices:    choices,
		Busy:       f.state.Busy,
	}
}

func (f *Flow) dispatch(ev Event) (before, after State, effects []Effect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	before = f.state
	f.state, effects = Transition(f.state, ev)
	return before, f.state, effects
}

// Activate loads the employee list and pre-selects navigationID when it is
// present. A failed load is reported through the notifier and returned, but
// the form still becomes ready.
func (f *Flow) Activate(ctx context.Context, navigationID string) error {
	_, _, effects := f.dispatch(Activated{NavigationID: navigationID})
	return f.run(ctx, effects)
}

// Select reseeds the draft from the employee with id, discarding unsaved
// edits. Unknown ids are ignored.
func (f *Flow) Select(id string) {
	f.dispatch(Selected{ID: id})
}

func (f *Flow) Edit(field employee.Field, value string) error {
	probe := employee.DefaultDraft()
	if err := probe.Set(field, value); err != nil {
		return err
	}
	f.dispatch(FieldEdited{Field: field, Value: value})
	return nil
}

// Submit validates the draft and writes it back under the selected id.
// It returns the validation or store error that was also notified.
func (f *Flow) Submit(ctx context.Context) error {
	before, after, effects := f.dispatch(SubmitRequested{})
	switch {
	case before.Busy:
		return ErrBusy
	case before.Phase != PhaseReady:
		return ErrNotReady
	}
	if after.Phase != PhaseSubmitting {
		if err := f.run(ctx, effects); err != nil {
			return err
		}
		if err := before.Draft.Validate(); err != nil {
			return err
		}
		return &employee.ValidationError{Message: MsgSelectEmployee}
	}
	return f.run(ctx, effects)
}

func (f *Flow) run(ctx context.Context, effects []Effect) error {
	var firstErr error
	for _, eff := range effects {
		var err error
		switch eff := eff.(type) {
		case LoadList:
			err = f.load(ctx)
		case SaveRecord:
			err = f.save(ctx, eff.Record)
		case Notify:
			f.notifier.Notify(eff.Notification)
		case Navigate:
			f.navigate(eff.Target)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *Flow) load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, f.loadTimeout)
	defer cancel()

	employees, err := f.gateway.List(ctx)
	if err != nil {
		err = storeFailure("list", err, f.loadTimeout)
		f.logger.Warn("employee list failed", "err", err)
		_, _, effects := f.dispatch(ListFailed{Err: err})
		_ = f.run(ctx, effects)
		return err
	}
	_, _, effects := f.dispatch(ListLoaded{Employees: employees})
	return f.run(ctx, effects)
}

func (f *Flow) save(ctx context.Context, record employee.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, f.submitTimeout)
	defer cancel()

	if err := f.gateway.Update(ctx, record); err != nil {
		err = storeFailure("update", err, f.submitTimeout)
		f.logger.Warn("employee update failed", "employeeId", record.ID, "err", err)
		_, _, effects := f.dispatch(UpdateFailed{Err: err})
		_ = f.run(ctx, effects)
		return err
	}
	f.logger.Info("employee updated", "employeeId", record.ID)
	_, _, effects := f.dispatch(UpdateSucceeded{})
	return f.run(ctx, effects)
}

func storeFailure(op string, err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &employee.StoreError{Op: op, Err: fmt.Errorf("%s timed out after %s: %w", op, timeout, err)}
	}
	return employee.WrapStoreError(op, err)
}
