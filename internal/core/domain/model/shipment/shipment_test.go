package shipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/domain/model/kernel"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func newTestShipment(t *testing.T) *Shipment {
	t.Helper()
	shipment, err := NewShipment(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"laptop",
		"John Smith",
		"Egypt",
		"12 Tahrir Square, Cairo",
		2.5,
		mustGeoPoint(t, 30.0444, 31.2357),
	)
	require.NoError(t, err)
	return shipment
}

func Test_NewShipment(t *testing.T) {
	ownerID := kernel.NewUUID()

	shipment, err := NewShipment(
		kernel.NewUUID(),
		ownerID,
		"laptop",
		"John Smith",
		"Egypt",
		"12 Tahrir Square, Cairo",
		2.5,
		mustGeoPoint(t, 30.0444, 31.2357),
	)

	require.NoError(t, err)
	require.NoError(t, shipment.Validate())
	assert.Equal(t, Pending, shipment.State())
	assert.Equal(t, ownerID, shipment.OwnerID())
	assert.NoError(t, shipment.TrackingID().Validate())
	assert.Nil(t, shipment.Driver())
	assert.Nil(t, shipment.ScheduledAt())
	assert.Nil(t, shipment.EstimatedShippingDate())
}

func Test_NewShipment_Validation(t *testing.T) {
	validLocation := mustGeoPoint(t, 30.0444, 31.2357)

	tests := []struct {
		name     string
		id       kernel.UUID
		ownerID  kernel.UUID
		title    string
		receiver string
		country  string
		address  string
		weight   float64
	}{
		{name: "empty id", ownerID: kernel.NewUUID(), title: "laptop",
			receiver: "John", country: "Egypt", address: "Cairo", weight: 1},
		{name: "empty owner", id: kernel.NewUUID(), title: "laptop",
			receiver: "John", country: "Egypt", address: "Cairo", weight: 1},
		{name: "empty title", id: kernel.NewUUID(), ownerID: kernel.NewUUID(),
			receiver: "John", country: "Egypt", address: "Cairo", weight: 1},
		{name: "empty receiver name", id: kernel.NewUUID(), ownerID: kernel.NewUUID(),
			title: "laptop", country: "Egypt", address: "Cairo", weight: 1},
		{name: "empty country", id: kernel.NewUUID(), ownerID: kernel.NewUUID(),
			title: "laptop", receiver: "John", address: "Cairo", weight: 1},
		{name: "empty address", id: kernel.NewUUID(), ownerID: kernel.NewUUID(),
			title: "laptop", receiver: "John", country: "Egypt", weight: 1},
		{name: "zero weight", id: kernel.NewUUID(), ownerID: kernel.NewUUID(),
			title: "laptop", receiver: "John", country: "Egypt", address: "Cairo"},
		{name: "negative weight", id: kernel.NewUUID(), ownerID: kernel.NewUUID(),
			title: "laptop", receiver: "John", country: "Egypt", address: "Cairo", weight: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shipment, err := NewShipment(tt.id, tt.ownerID, tt.title,
				tt.receiver, tt.country, tt.address, tt.weight, validLocation)

			require.Error(t, err)
			assert.Nil(t, shipment)
		})
	}
}

func Test_Shipment_Schedule(t *testing.T) {
	shipment := newTestShipment(t)
	now := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	err := shipment.Schedule(now, 3.5)

	require.NoError(t, err)
	assert.Equal(t, Scheduled, shipment.State())
	require.NotNil(t, shipment.ScheduledAt())
	assert.Equal(t, now, *shipment.ScheduledAt())
	require.NotNil(t, shipment.EstimatedShippingDate())

	snapshot := shipment.Snapshot()
	require.NotNil(t, snapshot.ScheduledAt)
	assert.Equal(t, "2020-05-01", *snapshot.ScheduledAt)
	require.NotNil(t, snapshot.EstimatedShippingDate)
	assert.Equal(t, "2020-05-04", *snapshot.EstimatedShippingDate)
}

func Test_Shipment_Schedule_OnlyFromPending(t *testing.T) {
	shipment := newTestShipment(t)
	now := time.Now().UTC()

	require.NoError(t, shipment.Schedule(now, 2))
	firstEstimate := *shipment.EstimatedShippingDate()

	err := shipment.Schedule(now.Add(time.Hour), 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, Scheduled, shipment.State())
	assert.Equal(t, firstEstimate, *shipment.EstimatedShippingDate())
}

func Test_Shipment_UpdateState(t *testing.T) {
	shipment := newTestShipment(t)
	require.NoError(t, shipment.Schedule(time.Now().UTC(), 2))

	require.NoError(t, shipment.UpdateState(Prepared))
	assert.Equal(t, Prepared, shipment.State())

	require.NoError(t, shipment.UpdateState(Delivered))
	assert.Equal(t, Delivered, shipment.State())
}

func Test_Shipment_UpdateState_InvalidTransition(t *testing.T) {
	shipment := newTestShipment(t)

	err := shipment.UpdateState(Delivered)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, Pending, shipment.State())
}

func Test_Shipment_UpdateState_DeliveredIsTerminal(t *testing.T) {
	shipment := newTestShipment(t)
	require.NoError(t, shipment.Schedule(time.Now().UTC(), 2))
	require.NoError(t, shipment.UpdateState(Prepared))
	require.NoError(t, shipment.UpdateState(Delivered))

	for _, target := range []State{Pending, Scheduled, Prepared, Delivered} {
		err := shipment.UpdateState(target)
		require.Error(t, err)
		assert.Equal(t, Delivered, shipment.State())
	}
}

func Test_Shipment_AssignDriver(t *testing.T) {
	shipment := newTestShipment(t)
	driverID := kernel.NewUUID()

	require.NoError(t, shipment.AssignDriver(driverID))
	require.NotNil(t, shipment.Driver())
	assert.Equal(t, driverID, *shipment.Driver())

	// reassignment is allowed at any stage
	require.NoError(t, shipment.Schedule(time.Now().UTC(), 2))
	replacement := kernel.NewUUID()
	require.NoError(t, shipment.AssignDriver(replacement))
	assert.Equal(t, replacement, *shipment.Driver())
}

func Test_Shipment_AssignDriver_EmptyID(t *testing.T) {
	shipment := newTestShipment(t)

	err := shipment.AssignDriver(kernel.UUID{})

	require.Error(t, err)
	assert.Nil(t, shipment.Driver())
}

func Test_Shipment_Snapshot(t *testing.T) {
	shipment := newTestShipment(t)

	snapshot := shipment.Snapshot()

	assert.Equal(t, "laptop", snapshot.Title)
	assert.Equal(t, "John Smith", snapshot.ReceiverName)
	assert.Equal(t, "Egypt", snapshot.ReceiverCountry)
	assert.Equal(t, "12 Tahrir Square, Cairo", snapshot.ReceiverAddress)
	assert.Equal(t, 2.5, snapshot.Weight)
	assert.Equal(t, "PENDING", snapshot.State)
	assert.Equal(t, shipment.TrackingID().String(), snapshot.TrackingID)
	assert.Nil(t, snapshot.ScheduledAt)
	assert.Nil(t, snapshot.EstimatedShippingDate)
	assert.InDelta(t, 30.0444, snapshot.Lat, 0.0001)
	assert.InDelta(t, 31.2357, snapshot.Lon, 0.0001)
}

func Test_Shipment_Snapshot_IsIndependent(t *testing.T) {
	shipment := newTestShipment(t)

	before := shipment.Snapshot()
	require.NoError(t, shipment.Schedule(time.Now().UTC(), 2))

	assert.Equal(t, "PENDING", before.State)
	assert.Nil(t, before.ScheduledAt)
	assert.Equal(t, "SCHEDULED", shipment.Snapshot().State)
}

func Test_RestoreShipment(t *testing.T) {
	original := newTestShipment(t)
	require.NoError(t, original.Schedule(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), 3.5))
	driverID := kernel.NewUUID()
	require.NoError(t, original.AssignDriver(driverID))

	restored, err := RestoreShipment(
		original.ID(),
		original.TrackingID(),
		original.OwnerID(),
		original.Driver(),
		original.Title(),
		original.ReceiverName(),
		original.ReceiverCountry(),
		original.ReceiverAddress(),
		original.Weight(),
		original.Location(),
		original.State(),
		original.ScheduledAt(),
		original.EstimatedShippingDate(),
	)

	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.True(t, restored.IsEqual(original))
	assert.Equal(t, original.TrackingID(), restored.TrackingID())
	assert.Equal(t, Scheduled, restored.State())
	assert.Equal(t, driverID, *restored.Driver())
	assert.Equal(t, original.Snapshot(), restored.Snapshot())
}

func Test_RestoreShipment_InvalidState(t *testing.T) {
	original := newTestShipment(t)

	_, err := RestoreShipment(
		original.ID(),
		original.TrackingID(),
		original.OwnerID(),
		nil,
		original.Title(),
		original.ReceiverName(),
		original.ReceiverCountry(),
		original.ReceiverAddress(),
		original.Weight(),
		original.Location(),
		State("SHIPPED"),
		nil,
		nil,
	)

	require.Error(t, err)
}

func Test_Shipment_Validate_NotConstructed(t *testing.T) {
	var shipment Shipment
	assert.ErrorIs(t, shipment.Validate(), ErrShipmentIsNotConstructed)

	var nilShipment *Shipment
	assert.ErrorIs(t, nilShipment.Validate(), ErrShipmentIsNotConstructed)
}
