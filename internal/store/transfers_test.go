package store

import (
	"errors"
	"testing"
	"time"
)

func TestRecordTransfer(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	if err := db.PutContainer(testContainer("c-1", "bunker-a", "low_level")); err != nil {
		t.Fatalf("PutContainer: %v", err)
	}

	ts := time.Now().UnixMilli()
	rec, err := db.RecordTransfer("c-1", "bunker-b", "j.ops", ts)
	if err != nil {
		t.Fatalf("RecordTransfer: %v", err)
	}

	if rec.ID == 0 {
		t.Error("expected assigned sequence id")
	}
	if rec.FromLocation != "bunker-a" || rec.ToLocation != "bunker-b" {
		t.Errorf("locations = %q -> %q, want bunker-a -> bunker-b", rec.FromLocation, rec.ToLocation)
	}
	if rec.Manifested {
		t.Error("new transfers must start unmanifested")
	}

	// Side effect: container location updated.
	c, err := db.GetContainer("c-1")
	if err != nil {
		t.Fatalf("GetContainer: %v", err)
	}
	if c.Location != "bunker-b" {
		t.Errorf("container location = %q, want bunker-b", c.Location)
	}
}

func TestRecordTransferSequence(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	db.PutContainer(testContainer("c-1", "bunker-a", "low_level"))

	first, err := db.RecordTransfer("c-1", "bunker-b", "j.ops", time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("RecordTransfer: %v", err)
	}
	second, err := db.RecordTransfer("c-1", "bunker-c", "j.ops", time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("RecordTransfer: %v", err)
	}

	if second.ID <= first.ID {
		t.Errorf("sequence ids not increasing: %d then %d", first.ID, second.ID)
	}
	if second.FromLocation != "bunker-b" {
		t.Errorf("second transfer from %q, want the first transfer's destination", second.FromLocation)
	}
}

func TestRecordTransferUnknownContainerAtomic(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	db.PutContainer(testContainer("c-1", "bunker-a", "low_level"))

	_, err = db.RecordTransfer("ghost", "bunker-b", "j.ops", time.Now().UnixMilli())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// Neither table changed.
	transfers, err := db.ListTransfers(TransferFilter{})
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(transfers) != 0 {
		t.Errorf("ledger has %d records after failed transfer, want 0", len(transfers))
	}
	c, _ := db.GetContainer("c-1")
	if c.Location != "bunker-a" {
		t.Errorf("container location = %q, want unchanged bunker-a", c.Location)
	}
}

func TestGetTransferNotFound(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	_, err = db.GetTransfer(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListTransfersFilters(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	db.PutContainer(testContainer("c-1", "bunker-a", "low_level"))
	db.PutContainer(testContainer("c-2", "bunker-a", "low_level"))

	db.RecordTransfer("c-1", "bunker-b", "j.ops", time.Now().UnixMilli())
	db.RecordTransfer("c-2", "bunker-b", "j.ops", time.Now().UnixMilli())
	rec, _ := db.RecordTransfer("c-1", "bunker-c", "j.ops", time.Now().UnixMilli())

	// Simulate the external approval workflow manifesting one record.
	if _, err := db.Exec("UPDATE transfers SET manifested = 1 WHERE id = ?", rec.ID); err != nil {
		t.Fatalf("manifest update: %v", err)
	}

	byContainer, err := db.ListTransfers(TransferFilter{ContainerID: "c-1"})
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(byContainer) != 2 {
		t.Errorf("c-1 has %d transfers, want 2", len(byContainer))
	}

	unmanifested := false
	pending, err := db.ListTransfers(TransferFilter{Manifested: &unmanifested})
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("%d unmanifested transfers, want 2", len(pending))
	}

	manifested := true
	done, err := db.ListTransfers(TransferFilter{ContainerID: "c-1", Manifested: &manifested})
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(done) != 1 || done[0].ID != rec.ID {
		t.Errorf("manifested c-1 transfers = %+v, want only record %d", done, rec.ID)
	}
}
