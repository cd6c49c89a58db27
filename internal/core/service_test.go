package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeClassifier struct {
	decision *RoutingDecision
	err      error
}

func (f *fakeClassifier) ClassifyEmail(ctx context.Context, email *Email) (*RoutingDecision, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.decision, nil
}

type fakeLedger struct {
	entries []*LedgerEntry
	err     error
}

func (f *fakeLedger) Append(ctx context.Context, entry *LedgerEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeRemediator struct {
	actions []string
	err     error
}

func (f *fakeRemediator) Remediate(ctx context.Context, action string) error {
	f.actions = append(f.actions, action)
	return f.err
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) SendSummary(ctx context.Context, email *Email, decision *RoutingDecision) error {
	f.calls++
	return f.err
}

type fakeChecker struct {
	calls int
	err   error
}

func (f *fakeChecker) Check(ctx context.Context, email *Email, decision *RoutingDecision) error {
	f.calls++
	return f.err
}

func testEmail() *Email {
	return &Email{
		From:       "alice@example.com",
		To:         []string{"router@example.com"},
		Subject:    "prod is down",
		Body:       "everything is on fire",
		ReceivedAt: time.Now(),
	}
}

func decisionFor(target RoutingTarget) *RoutingDecision {
	return &RoutingDecision{
		Target:       target,
		Action:       "restart the deployment",
		ModelUsed:    "test-model",
		ClassifiedAt: time.Now(),
	}
}

func TestRouteEmailGeminiKnight(t *testing.T) {
	remediator := &fakeRemediator{}
	notifier := &fakeNotifier{}
	checker := &fakeChecker{}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{decision: decisionFor(TargetGeminiKnight)}

	dispatcher := NewDispatcher(remediator, notifier, checker, zap.NewNop())
	service := NewRouterService(classifier, ledger, dispatcher, zap.NewNop())

	result, err := service.RouteEmail(context.Background(), testEmail())
	if err != nil {
		t.Fatalf("route: %v", err)
	}

	if result.Status != StatusExecuted {
		t.Errorf("expected status executed, got %q", result.Status)
	}
	if result.Target != TargetGeminiKnight {
		t.Errorf("expected target gemini_knight, got %q", result.Target)
	}
	if len(remediator.actions) != 1 || remediator.actions[0] != "restart the deployment" {
		t.Errorf("expected action forwarded to remediator, got %v", remediator.actions)
	}
	if notifier.calls != 0 || checker.calls != 0 {
		t.Error("only the remediation branch should run")
	}
}

func TestRouteEmailAppendsExactlyOneLedgerEntry(t *testing.T) {
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{decision: decisionFor(TargetUser)}
	dispatcher := NewDispatcher(&fakeRemediator{}, &fakeNotifier{}, &fakeChecker{}, zap.NewNop())
	service := NewRouterService(classifier, ledger, dispatcher, zap.NewNop())

	if _, err := service.RouteEmail(context.Background(), testEmail()); err != nil {
		t.Fatalf("route: %v", err)
	}

	if len(ledger.entries) != 1 {
		t.Fatalf("expected exactly one ledger entry, got %d", len(ledger.entries))
	}
	entry := ledger.entries[0]
	if entry.Sender != "alice@example.com" {
		t.Errorf("unexpected ledger sender %q", entry.Sender)
	}
	if entry.Target != TargetUser {
		t.Errorf("unexpected ledger target %q", entry.Target)
	}
	if entry.RoutedAt.IsZero() {
		t.Error("expected ledger timestamp to be set")
	}
}

func TestRouteEmailUserBranch(t *testing.T) {
	notifier := &fakeNotifier{}
	classifier := &fakeClassifier{decision: decisionFor(TargetUser)}
	dispatcher := NewDispatcher(&fakeRemediator{}, notifier, &fakeChecker{}, zap.NewNop())
	service := NewRouterService(classifier, &fakeLedger{}, dispatcher, zap.NewNop())

	result, err := service.RouteEmail(context.Background(), testEmail())
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if notifier.calls != 1 {
		t.Errorf("expected one summary notification, got %d", notifier.calls)
	}
	if result.Target != TargetUser {
		t.Errorf("unexpected target %q", result.Target)
	}
}

func TestRouteEmailLumoArchitectBranch(t *testing.T) {
	checker := &fakeChecker{}
	classifier := &fakeClassifier{decision: decisionFor(TargetLumoArchitect)}
	dispatcher := NewDispatcher(&fakeRemediator{}, &fakeNotifier{}, checker, zap.NewNop())
	service := NewRouterService(classifier, &fakeLedger{}, dispatcher, zap.NewNop())

	result, err := service.RouteEmail(context.Background(), testEmail())
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if checker.calls != 1 {
		t.Errorf("expected one constraint check, got %d", checker.calls)
	}
	if result.Status != StatusExecuted {
		t.Errorf("unexpected status %q", result.Status)
	}
}

func TestDispatchUnknownTargetReportsExecuted(t *testing.T) {
	remediator := &fakeRemediator{}
	notifier := &fakeNotifier{}
	checker := &fakeChecker{}
	dispatcher := NewDispatcher(remediator, notifier, checker, zap.NewNop())

	decision := &RoutingDecision{Target: RoutingTarget("unknown_target")}
	result, err := dispatcher.Dispatch(context.Background(), decision, testEmail())
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if result.Status != StatusExecuted {
		t.Errorf("expected status executed for unknown target, got %q", result.Status)
	}
	if result.Target != RoutingTarget("unknown_target") {
		t.Errorf("expected target unchanged, got %q", result.Target)
	}
	if len(remediator.actions) != 0 || notifier.calls != 0 || checker.calls != 0 {
		t.Error("unknown target must not trigger any action")
	}
}

func TestRouteEmailClassifierErrorShortCircuits(t *testing.T) {
	ledger := &fakeLedger{}
	remediator := &fakeRemediator{}
	classifier := &fakeClassifier{err: NewClassificationError("gemini", errors.New("boom"))}
	dispatcher := NewDispatcher(remediator, &fakeNotifier{}, &fakeChecker{}, zap.NewNop())
	service := NewRouterService(classifier, ledger, dispatcher, zap.NewNop())

	result, err := service.RouteEmail(context.Background(), testEmail())
	if err == nil {
		t.Fatal("expected classification error")
	}
	if result != nil {
		t.Errorf("expected no result on classification failure, got %+v", result)
	}

	var classErr *ClassificationError
	if !errors.As(err, &classErr) {
		t.Errorf("expected ClassificationError, got %T", err)
	}
	if len(ledger.entries) != 0 {
		t.Error("classification failure must not reach the ledger")
	}
	if len(remediator.actions) != 0 {
		t.Error("classification failure must not reach the dispatcher")
	}
}

func TestDispatchCollaboratorFailureReportsFailed(t *testing.T) {
	remediator := &fakeRemediator{err: errors.New("webhook down")}
	dispatcher := NewDispatcher(remediator, &fakeNotifier{}, &fakeChecker{}, zap.NewNop())

	result, err := dispatcher.Dispatch(context.Background(), decisionFor(TargetGeminiKnight), testEmail())
	if err == nil {
		t.Fatal("expected dispatch error")
	}

	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("expected DispatchError, got %T", err)
	}
	if dispatchErr.Target != TargetGeminiKnight {
		t.Errorf("unexpected error target %q", dispatchErr.Target)
	}
	if result == nil || result.Status != StatusFailed {
		t.Errorf("expected failed result, got %+v", result)
	}
	if result.Target != TargetGeminiKnight {
		t.Errorf("expected target preserved in failed result, got %q", result.Target)
	}
}

func TestRouteEmailLedgerFailureDoesNotBlockDispatch(t *testing.T) {
	remediator := &fakeRemediator{}
	classifier := &fakeClassifier{decision: decisionFor(TargetGeminiKnight)}
	ledger := &fakeLedger{err: errors.New("datastore unavailable")}
	dispatcher := NewDispatcher(remediator, &fakeNotifier{}, &fakeChecker{}, zap.NewNop())
	service := NewRouterService(classifier, ledger, dispatcher, zap.NewNop())

	result, err := service.RouteEmail(context.Background(), testEmail())
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if result.Status != StatusExecuted {
		t.Errorf("expected executed despite ledger failure, got %q", result.Status)
	}
	if len(remediator.actions) != 1 {
		t.Error("dispatch should still run when the ledger write fails")
	}
}
