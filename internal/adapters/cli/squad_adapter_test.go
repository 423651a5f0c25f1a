package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
)

// mockSquadService implements primary.SquadService for testing
type mockSquadService struct {
	lastNew      snapshot.NewSquad
	lastPatch    snapshot.SquadPatch
	lastLocation string
	lastOrder    []int
}

func (m *mockSquadService) CreateSquad(ctx context.Context, req snapshot.NewSquad) (int, error) {
	m.lastNew = req
	return 7, nil
}

func (m *mockSquadService) UpdateSquad(ctx context.Context, squadID int, patch snapshot.SquadPatch) error {
	m.lastPatch = patch
	return nil
}

func (m *mockSquadService) DeleteSquad(ctx context.Context, squadID int) error {
	return nil
}

func (m *mockSquadService) SetLocation(ctx context.Context, squadID int, location string) error {
	m.lastLocation = location
	return nil
}

func (m *mockSquadService) Reorder(ctx context.Context, order []int) error {
	m.lastOrder = order
	if len(order) == 0 {
		return errors.New("order must list every squad")
	}
	return nil
}

// mockShiftService implements primary.ShiftService for testing
type mockShiftService struct {
	lastStart snapshot.ShiftSettings
}

func (m *mockShiftService) StartShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	m.lastStart = settings
	return nil
}

func (m *mockShiftService) UpdateShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	return nil
}

func (m *mockShiftService) EndShift(ctx context.Context) (*primary.EndShiftResponse, error) {
	return &primary.EndShiftResponse{FileName: "einsatz.xlsx", Location: "/tmp/exports/einsatz.xlsx", Size: 2048}, nil
}

func TestSquadAdapter(t *testing.T) {
	svc := &mockSquadService{}
	var out bytes.Buffer
	adapter := NewSquadAdapter(svc, &out)
	ctx := context.Background()

	if err := adapter.Add(ctx, snapshot.NewSquad{Name: "Trupp 7", Type: "Trupp"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := adapter.Locate(ctx, 7, "Bühne"); err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if err := adapter.Locate(ctx, 7, ""); err != nil {
		t.Fatalf("Locate clear: %v", err)
	}
	if err := adapter.Reorder(ctx, []int{7, 1}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"✓ Created squad Trupp 7 (id 7)",
		"✓ Squad 7 at Bühne",
		"✓ Squad 7 location cleared",
		"✓ Squad order saved: [7 1]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if svc.lastNew.Name != "Trupp 7" {
		t.Errorf("expected new squad forwarded, got %+v", svc.lastNew)
	}
}

func TestSquadAdapter_Reorder_Error(t *testing.T) {
	var out bytes.Buffer
	adapter := NewSquadAdapter(&mockSquadService{}, &out)

	if err := adapter.Reorder(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got: %s", out.String())
	}
}

func TestShiftAdapter(t *testing.T) {
	svc := &mockShiftService{}
	var out bytes.Buffer
	adapter := NewShiftAdapter(svc, &out)
	ctx := context.Background()

	location := "Stadtfest"
	if err := adapter.Start(ctx, snapshot.ShiftSettings{Location: &location}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := adapter.End(ctx); err != nil {
		t.Fatalf("End: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "✓ Shift started at Stadtfest") {
		t.Errorf("missing start line: %s", output)
	}
	if !strings.Contains(output, "Export: einsatz.xlsx (2048 bytes)") || !strings.Contains(output, "Stored at: /tmp/exports/einsatz.xlsx") {
		t.Errorf("missing export lines: %s", output)
	}
}
