// Package notify publishes vehicle status change events so workshop
// display boards can refresh without polling. Delivery is best effort:
// a failed publish is logged and otherwise ignored.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/serproauto/workshop-manager/internal/models"
)

const statusTopic = "workshop/vehicles/status"

// StatusEvent is the wire payload for a status change.
type StatusEvent struct {
	VehicleID    string               `json:"vehicle_id"`
	LicensePlate string               `json:"license_plate"`
	Status       models.VehicleStatus `json:"status"`
	Technician   string               `json:"technician,omitempty"`
	Timestamp    time.Time            `json:"timestamp"`
}

// MQTTNotifier publishes status events to an MQTT broker.
type MQTTNotifier struct {
	client mqtt.Client
}

// NewMQTTNotifier connects to the broker and returns a notifier.
func NewMQTTNotifier(broker, clientID string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTNotifier{client: client}, nil
}

// VehicleStatusChanged publishes the vehicle's new status. Errors are
// logged, never returned: a dead display board must not block a save.
func (n *MQTTNotifier) VehicleStatusChanged(vehicle models.Vehicle) {
	event := StatusEvent{
		VehicleID:    vehicle.ID,
		LicensePlate: vehicle.LicensePlate,
		Status:       vehicle.Status,
		Technician:   vehicle.Technician,
		Timestamp:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("failed to marshal status event")
		return
	}
	token := n.client.Publish(statusTopic, 0, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.WithError(token.Error()).WithField("vehicle_id", vehicle.ID).
			Error("failed to publish status event")
	}
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
