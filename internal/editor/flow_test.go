package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrform/internal/domain/employee"
)

type fakeGateway struct {
	mu        sync.Mutex
	employees []employee.Employee
	listErr   error
	updateErr error
	updates   []employee.Employee
	block     chan struct{}
	started   chan struct{}
}

func (g *fakeGateway) List(ctx context.Context) ([]employee.Employee, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]employee.Employee(nil), g.employees...), nil
}

func (g *fakeGateway) Create(context.Context, employee.Employee) error {
	return nil
}

func (g *fakeGateway) Update(ctx context.Context, emp employee.Employee) error {
	if g.started != nil {
		close(g.started)
	}
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates = append(g.updates, emp)
	return g.updateErr
}

func (g *fakeGateway) updateCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.updates)
}

type recorder struct {
	mu      sync.Mutex
	notices []Notification
	targets []string
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) Navigate(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

func newTestFlow(g *fakeGateway, opts ...Option) (*Flow, *recorder) {
	rec := &recorder{}
	opts = append([]Option{WithNotifier(rec), WithNavigator(rec.Navigate)}, opts...)
	return New(g, opts...), rec
}

func TestFlowActivateSeedsFromNavigation(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana(), ben()}}
	flow, rec := newTestFlow(g)

	require.NoError(t, flow.Activate(context.Background(), "1"))

	snap := flow.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, "1", snap.SelectedID)
	assert.Equal(t, ana().Draft(), snap.Draft)
	assert.Equal(t, []Choice{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Ben"}}, snap.Choices)
	assert.False(t, snap.Busy)
	assert.Empty(t, rec.notices)
}

func TestFlowActivateListFailure(t *testing.T) {
	g := &fakeGateway{listErr: errors.New("permission denied")}
	flow, rec := newTestFlow(g)

	err := flow.Activate(context.Background(), "1")
	var se *employee.StoreError
	require.ErrorAs(t, err, &se)

	snap := flow.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Empty(t, snap.Choices)
	assert.Equal(t, []Notification{{Kind: KindError, Text: "permission denied"}}, rec.notices)
}

func TestFlowSubmitSuccessNavigates(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana()}}
	flow, rec := newTestFlow(g)
	require.NoError(t, flow.Activate(context.Background(), "1"))
	require.NoError(t, flow.Edit(employee.FieldPosition, "Senior Clerk"))

	require.NoError(t, flow.Submit(context.Background()))

	want := ana()
	want.Position = "Senior Clerk"
	assert.Equal(t, []employee.Employee{want}, g.updates)
	assert.Equal(t, []Notification{{Kind: KindSuccess, Text: MsgUpdated}}, rec.notices)
	assert.Equal(t, []string{ListingScreen}, rec.targets)
	assert.Equal(t, PhaseDone, flow.Snapshot().Phase)
}

func TestFlowSubmitStoreFailureReturnsToReady(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana()}, updateErr: errors.New("network down")}
	flow, rec := newTestFlow(g)
	require.NoError(t, flow.Activate(context.Background(), "1"))
	draft := flow.Snapshot().Draft

	err := flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "network down", err.Error())

	snap := flow.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.False(t, snap.Busy)
	assert.Equal(t, draft, snap.Draft)
	assert.Equal(t, []Notification{{Kind: KindError, Text: "network down"}}, rec.notices)
	assert.Empty(t, rec.targets)
}

func TestFlowSubmitValidationSkipsStore(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana()}}
	flow, rec := newTestFlow(g)
	require.NoError(t, flow.Activate(context.Background(), "1"))
	require.NoError(t, flow.Edit(employee.FieldName, ""))

	err := flow.Submit(context.Background())
	var verr *employee.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, employee.MsgRequiredFields, verr.Message)
	assert.Zero(t, g.updateCount())
	assert.Equal(t, []Notification{{Kind: KindError, Text: employee.MsgRequiredFields}}, rec.notices)
	assert.Equal(t, PhaseReady, flow.Snapshot().Phase)
}

func TestFlowOnlineWithoutBankCode(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana()}}
	flow, _ := newTestFlow(g)
	require.NoError(t, flow.Activate(context.Background(), "1"))
	require.NoError(t, flow.Edit(employee.FieldPaymentMethod, "online"))
	require.NoError(t, flow.Edit(employee.FieldBankAccountNumber, "123"))

	err := flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, employee.MsgBankDetails, err.Error())
	assert.Zero(t, g.updateCount())
}

func TestFlowSubmitWithoutSelection(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana()}}
	flow, _ := newTestFlow(g)
	require.NoError(t, flow.Activate(context.Background(), ""))
	for field, value := range map[employee.Field]string{
		employee.FieldName:       "Ana",
		employee.FieldPosition:   "Clerk",
		employee.FieldHourlyWage: "10",
		employee.FieldFNPFNo:     "F1",
	} {
		require.NoError(t, flow.Edit(field, value))
	}

	err := flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, MsgSelectEmployee, err.Error())
	assert.Zero(t, g.updateCount())
}

func TestFlowSelectAndEdit(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana(), ben()}}
	flow, _ := newTestFlow(g)
	require.NoError(t, flow.Activate(context.Background(), "1"))
	require.NoError(t, flow.Edit(employee.FieldName, "changed"))

	flow.Select("2")
	assert.Equal(t, ben().Draft(), flow.Snapshot().Draft)

	flow.Select("missing")
	assert.Equal(t, "2", flow.Snapshot().SelectedID)
	assert.Equal(t, ben().Draft(), flow.Snapshot().Draft)

	assert.ErrorIs(t, flow.Edit("salary", "1"), employee.ErrUnknownField)
}

func TestFlowRejectsConcurrentSubmit(t *testing.T) {
	g := &fakeGateway{
		employees: []employee.Employee{ana()},
		block:     make(chan struct{}),
		started:   make(chan struct{}),
	}
	flow, _ := newTestFlow(g)
	require.NoError(t, flow.Activate(context.Background(), "1"))

	done := make(chan error, 1)
	go func() { done <- flow.Submit(context.Background()) }()
	<-g.started

	assert.True(t, flow.Snapshot().Busy)
	assert.ErrorIs(t, flow.Submit(context.Background()), ErrBusy)

	close(g.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, g.updateCount())
}

func TestFlowSubmitTimeout(t *testing.T) {
	g := &fakeGateway{employees: []employee.Employee{ana()}, block: make(chan struct{})}
	flow, rec := newTestFlow(g, WithSubmitTimeout(20*time.Millisecond))
	require.NoError(t, flow.Activate(context.Background(), "1"))

	err := flow.Submit(context.Background())
	var se *employee.StoreError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")

	assert.Equal(t, PhaseReady, flow.Snapshot().Phase)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, KindError, rec.notices[0].Kind)
}

func TestFlowSubmitBeforeActivate(t *testing.T) {
	flow, _ := newTestFlow(&fakeGateway{})
	assert.ErrorIs(t, flow.Submit(context.Background()), ErrNotReady)
}
