package worker

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestGather_PreservesOrder(t *testing.T) {
	ops := make([]func(ctx context.Context) (int, error), 5)
	for i := range ops {
		i := i
		ops[i] = func(ctx context.Context) (int, error) {
			// Later submissions finish first
			time.Sleep(time.Duration(5-i) * time.Millisecond)
			return i, nil
		}
	}

	outcomes := Gather(context.Background(), ops)
	if len(outcomes) != 5 {
		t.Fatalf("Expected 5 outcomes, got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("Unexpected error at %d: %v", i, o.Err)
		}
		if o.Value != i {
			t.Errorf("Outcome %d holds value %d", i, o.Value)
		}
	}
}

func TestGather_ErrorDoesNotShortCircuit(t *testing.T) {
	ops := []func(ctx context.Context) (string, error){
		func(ctx context.Context) (string, error) { return "", fmt.Errorf("branch failed") },
		func(ctx context.Context) (string, error) { return "ok", nil },
	}

	outcomes := Gather(context.Background(), ops)
	if outcomes[0].Err == nil {
		t.Error("Expected first branch error to be recorded")
	}
	if outcomes[1].Err != nil || outcomes[1].Value != "ok" {
		t.Errorf("Sibling branch must complete: %+v", outcomes[1])
	}
}

func TestGather_PanicSurfacesAsError(t *testing.T) {
	ops := []func(ctx context.Context) (int, error){
		func(ctx context.Context) (int, error) { panic("boom") },
		func(ctx context.Context) (int, error) { return 7, nil },
	}

	outcomes := Gather(context.Background(), ops)
	if outcomes[0].Err == nil {
		t.Fatal("Expected panic to surface as error")
	}
	if outcomes[1].Value != 7 {
		t.Error("Panicking branch must not cancel siblings")
	}
}

func TestGather_Empty(t *testing.T) {
	outcomes := Gather[int](context.Background(), nil)
	if len(outcomes) != 0 {
		t.Errorf("Expected no outcomes, got %d", len(outcomes))
	}
}
