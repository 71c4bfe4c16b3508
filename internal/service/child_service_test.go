package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
)

func setupTestChildService(t *testing.T) ChildService {
	t.Helper()
	return NewChildService(newMockRepository(), zap.NewNop())
}

func TestChildService_CreateAndGet(t *testing.T) {
	svc := setupTestChildService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateChildRequest{Name: "Casey Jones", Code: "CAS1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.Active {
		t.Error("new children should be active")
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Casey Jones" || got.Code != "CAS1" {
		t.Errorf("unexpected child: %+v", got)
	}
}

func TestChildService_Create_CodeTaken(t *testing.T) {
	svc := setupTestChildService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateChildRequest{Name: "Casey", Code: "CAS1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, &dto.CreateChildRequest{Name: "Another Casey", Code: "CAS1"})
	if !errors.Is(err, ErrChildCodeTaken) {
		t.Errorf("expected ErrChildCodeTaken, got %v", err)
	}
}

func TestChildService_Update(t *testing.T) {
	svc := setupTestChildService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateChildRequest{Name: "Casey", Code: "CAS1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateChildRequest{Name: strPtr("Casey J.")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Casey J." || updated.Code != "CAS1" {
		t.Errorf("unexpected update: %+v", updated)
	}

	if _, err := svc.Update(ctx, "missing", &dto.UpdateChildRequest{}); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("expected ErrChildNotFound, got %v", err)
	}
}

func TestChildService_Deactivate(t *testing.T) {
	svc := setupTestChildService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateChildRequest{Name: "Casey", Code: "CAS1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(ctx, created.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	active, err := svc.List(ctx, &dto.ChildListRequest{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active listing should be empty, got %d", len(active))
	}

	if err := svc.Deactivate(ctx, "missing"); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("expected ErrChildNotFound, got %v", err)
	}
}
