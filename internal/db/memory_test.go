package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serproauto/workshop-manager/internal/models"
)

func testVehicle(plate string) models.Vehicle {
	return models.Vehicle{
		Make:         "Kia",
		Model:        "Rio",
		Year:         2021,
		VIN:          "KNADM5A34M1231231",
		LicensePlate: plate,
		Status:       models.StatusInService,
		Customer:     models.Customer{ID: "c1", Name: "Ana Garcia", Phone: "55-1234-5678"},
		EntryDate:    "2023-10-26",
	}
}

func TestMemoryStore_CreateAssignsUniqueIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		created, err := store.Create(ctx, testVehicle("AAA-0000"))
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, seen[created.ID], "id %s assigned twice", created.ID)
		seen[created.ID] = true
	}
}

func TestMemoryStore_CreatedRecordIsUpdatable(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, testVehicle("AAA-0000"))
	assert.NoError(t, err)

	created.Status = models.StatusInRepair
	assert.NoError(t, store.Update(ctx, created))

	found, err := store.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusInRepair, found.Status)
}

func TestMemoryStore_ListAllMostRecentFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a, _ := store.Create(ctx, testVehicle("AAA-1111"))
	b, _ := store.Create(ctx, testVehicle("BBB-2222"))
	c, _ := store.Create(ctx, testVehicle("CCC-3333"))

	vehicles, err := store.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, vehicles, 3)
	assert.Equal(t, c.ID, vehicles[0].ID)
	assert.Equal(t, b.ID, vehicles[1].ID)
	assert.Equal(t, a.ID, vehicles[2].ID)
}

func TestMemoryStore_UpdateUnknownID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	v := testVehicle("AAA-0000")
	v.ID = "does-not-exist"
	err := store.Update(ctx, v)
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	vehicles, _ := store.ListAll(ctx)
	assert.Empty(t, vehicles)
}

func TestMemoryStore_FindByIDUnknown(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestMemoryStore_SnapshotsDoNotAliasStoredState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	insp := models.DefaultInspection()
	insp.Exterior.Bodywork.Notes = "original"
	v := testVehicle("AAA-0000")
	v.Inspection = &insp

	created, _ := store.Create(ctx, v)

	// Mutating a listed record must not leak into the store.
	listed, _ := store.ListAll(ctx)
	listed[0].Inspection.Exterior.Bodywork.Notes = "tampered"
	listed[0].Inspection.Exterior.Bodywork.AddPhoto("tampered")

	found, _ := store.FindByID(ctx, created.ID)
	assert.Equal(t, "original", found.Inspection.Exterior.Bodywork.Notes)
	assert.Empty(t, found.Inspection.Exterior.Bodywork.Photos)

	// Mutating the caller's input after Create must not either.
	insp.Exterior.Bodywork.Notes = "tampered"
	found, _ = store.FindByID(ctx, created.ID)
	assert.Equal(t, "original", found.Inspection.Exterior.Bodywork.Notes)
}

func TestMemoryStore_UpdatePreservesCreationTime(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, _ := store.Create(ctx, testVehicle("AAA-0000"))

	updated := created.Clone()
	updated.Status = models.StatusReadyForDelivery
	updated.CreatedAt = updated.CreatedAt.AddDate(1, 0, 0)
	assert.NoError(t, store.Update(ctx, updated))

	found, _ := store.FindByID(ctx, created.ID)
	assert.Equal(t, created.CreatedAt, found.CreatedAt)
}
