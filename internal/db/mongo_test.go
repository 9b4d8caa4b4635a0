package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/serproauto/workshop-manager/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestMongoStore_NilCollection(t *testing.T) {
	store := &MongoStore{Collection: nil}
	ctx := context.Background()

	if _, err := store.Create(ctx, models.Vehicle{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if err := store.Update(ctx, models.Vehicle{ID: "x"}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := store.FindByID(ctx, "x"); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := store.ListAll(ctx); err == nil {
		t.Error("expected error when collection is nil")
	}
}

// Integration test (requires running MongoDB)
func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "mongodb://bad:uri" {
		t.Skip("MONGO_URI not set, skipping integration test")
		return
	}
	client, err := ConnectMongo()
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
		return
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "workshop"
	}
	store := NewMongoStore(client.Database(dbName).Collection("vehicles_test"))

	ctx := context.Background()
	created, err := store.Create(ctx, models.Vehicle{
		Make: "Kia", Model: "Forte", Year: 2022,
		VIN: "KMFG54H87NB123456", LicensePlate: "RST-7890",
		Status:   models.StatusInService,
		Customer: models.Customer{ID: "c1", Name: "Ana Garcia", Phone: "55-1234-5678"},
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got error: %v", err)
	}

	found, err := store.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected find to succeed, got error: %v", err)
	}
	if found.LicensePlate != "RST-7890" {
		t.Errorf("expected plate RST-7890, got %s", found.LicensePlate)
	}

	// An update without a creation time must not disturb the stored one,
	// or the most-recent-first sort breaks.
	updated := created.Clone()
	updated.Status = models.StatusInRepair
	updated.CreatedAt = time.Time{}
	if err := store.Update(ctx, updated); err != nil {
		t.Fatalf("expected update to succeed, got error: %v", err)
	}
	found, err = store.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected find to succeed, got error: %v", err)
	}
	if found.Status != models.StatusInRepair {
		t.Errorf("expected status in_repair, got %s", found.Status)
	}
	// BSON datetimes carry millisecond precision.
	want := created.CreatedAt.Truncate(time.Millisecond)
	if !found.CreatedAt.Equal(want) {
		t.Errorf("expected created_at %v to survive the update, got %v", want, found.CreatedAt)
	}
}
