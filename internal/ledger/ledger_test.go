package ledger

import (
	"errors"
	"testing"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func validParams() RegisterParams {
	return RegisterParams{
		Label:        "drum 7",
		WasteType:    "low_level",
		Isotopes:     []string{"Cs-137"},
		ActivityBq:   1e5,
		VolumeL:      200,
		MassKg:       350,
		Location:     "bunker-a",
		StorageClass: "low_level",
	}
}

func TestRegister(t *testing.T) {
	l := openLedger(t)

	c, err := l.Register(validParams())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if len(c.ID) != 8 {
		t.Errorf("id %q length = %d, want 8", c.ID, len(c.ID))
	}
	if c.Status != store.StatusActive {
		t.Errorf("status = %q, want active", c.Status)
	}
	if c.DecayDate < c.CreatedAt {
		t.Errorf("decay date %d before created_at %d", c.DecayDate, c.CreatedAt)
	}

	// Persisted.
	got, err := l.DB.GetContainer(c.ID)
	if err != nil {
		t.Fatalf("GetContainer: %v", err)
	}
	if got.Label != "drum 7" || got.ActivityBq != 1e5 {
		t.Errorf("persisted container mismatch: %+v", got)
	}
}

func TestRegisterUniqueIDs(t *testing.T) {
	l := openLedger(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		c, err := l.Register(validParams())
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if seen[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestRegisterEmptyIsotopes(t *testing.T) {
	l := openLedger(t)

	p := validParams()
	p.Isotopes = nil
	p.ActivityBq = 2000
	c, err := l.Register(p)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	const dayMillis = 24 * 60 * 60 * 1000
	days := float64(c.DecayDate-c.CreatedAt) / dayMillis
	if days < 364.9 || days > 365.1 {
		t.Errorf("empty-composition decay date %g days out, want 365", days)
	}
}

func TestRegisterAlreadySafe(t *testing.T) {
	l := openLedger(t)

	p := validParams()
	p.ActivityBq = 800
	c, err := l.Register(p)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if c.DecayDate != c.CreatedAt {
		t.Errorf("sub-threshold container decay date %d, want created_at %d", c.DecayDate, c.CreatedAt)
	}
}

func TestRegisterInvalidInput(t *testing.T) {
	l := openLedger(t)

	cases := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"negative activity", func(p *RegisterParams) { p.ActivityBq = -1 }},
		{"negative volume", func(p *RegisterParams) { p.VolumeL = -1 }},
		{"empty waste type", func(p *RegisterParams) { p.WasteType = "" }},
		{"empty location", func(p *RegisterParams) { p.Location = "" }},
		{"empty storage class", func(p *RegisterParams) { p.StorageClass = "" }},
	}
	for _, tc := range cases {
		p := validParams()
		tc.mutate(&p)
		if _, err := l.Register(p); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", tc.name, err)
		}
	}

	// Nothing persisted by the rejected registrations.
	containers, err := l.DB.ListContainers(store.ContainerFilter{})
	if err != nil {
		t.Fatalf("ListContainers: %v", err)
	}
	if len(containers) != 0 {
		t.Errorf("rejected registrations persisted %d rows", len(containers))
	}
}

func TestTransfer(t *testing.T) {
	l := openLedger(t)

	c, err := l.Register(validParams())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	rec, err := l.Transfer(c.ID, "bunker-b", "j.ops")
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if rec.FromLocation != "bunker-a" || rec.ToLocation != "bunker-b" {
		t.Errorf("locations = %q -> %q", rec.FromLocation, rec.ToLocation)
	}
	if rec.Manifested {
		t.Error("transfer must start unmanifested")
	}

	moved, err := l.DB.GetContainer(c.ID)
	if err != nil {
		t.Fatalf("GetContainer: %v", err)
	}
	if moved.Location != "bunker-b" {
		t.Errorf("container location = %q, want bunker-b", moved.Location)
	}
	if moved.DecayDate != c.DecayDate {
		t.Error("transfer must not recompute the decay date")
	}
}

func TestTransferUnknownContainer(t *testing.T) {
	l := openLedger(t)

	_, err := l.Transfer("ghost123", "bunker-b", "j.ops")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTransferInvalidInput(t *testing.T) {
	l := openLedger(t)

	c, err := l.Register(validParams())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := l.Transfer(c.ID, "", "j.ops"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty destination: err = %v, want ErrInvalidInput", err)
	}
	if _, err := l.Transfer(c.ID, "bunker-b", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty actor: err = %v, want ErrInvalidInput", err)
	}
	if _, err := l.Transfer("", "bunker-b", "j.ops"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty container id: err = %v, want ErrInvalidInput", err)
	}
}
