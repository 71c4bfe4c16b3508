package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
)

func setupTestEmployeeService(t *testing.T) EmployeeService {
	t.Helper()
	return NewEmployeeService(newMockRepository(), zap.NewNop())
}

func TestEmployeeService_CreateAndGet(t *testing.T) {
	svc := setupTestEmployeeService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEmployeeRequest{
		FriendlyName: "Alice Smith",
		SystemName:   "Smith Alice",
		HourlyRate:   floatPtr(22.50),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.Active {
		t.Error("new employees should be active")
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FriendlyName != "Alice Smith" || got.SystemName != "Smith Alice" {
		t.Errorf("unexpected employee: %+v", got)
	}
	if got.HourlyRate == nil || *got.HourlyRate != 22.50 {
		t.Errorf("hourly rate = %v", got.HourlyRate)
	}
}

func TestEmployeeService_Create_SystemNameTaken(t *testing.T) {
	svc := setupTestEmployeeService(t)
	ctx := context.Background()

	req := &dto.CreateEmployeeRequest{FriendlyName: "Alice", SystemName: "Smith Alice"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrEmployeeNameTaken) {
		t.Errorf("expected ErrEmployeeNameTaken, got %v", err)
	}
}

func TestEmployeeService_Update(t *testing.T) {
	svc := setupTestEmployeeService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEmployeeRequest{
		FriendlyName: "Alice", SystemName: "Smith Alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	hidden := true
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateEmployeeRequest{
		FriendlyName: strPtr("Alice S."),
		Hidden:       &hidden,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FriendlyName != "Alice S." || !updated.Hidden {
		t.Errorf("unexpected update: %+v", updated)
	}
	if updated.SystemName != "Smith Alice" {
		t.Errorf("untouched field changed: %+v", updated)
	}

	if _, err := svc.Update(ctx, "missing", &dto.UpdateEmployeeRequest{}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeService_Deactivate(t *testing.T) {
	svc := setupTestEmployeeService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEmployeeRequest{
		FriendlyName: "Alice", SystemName: "Smith Alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(ctx, created.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	// The record survives for historical shifts; only listings change.
	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after deactivation: %v", err)
	}
	if got.Active {
		t.Error("employee should be inactive")
	}

	active, err := svc.List(ctx, &dto.EmployeeListRequest{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active listing should be empty, got %d", len(active))
	}
	all, err := svc.List(ctx, &dto.EmployeeListRequest{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("full listing should keep the record, got %d", len(all))
	}
}
