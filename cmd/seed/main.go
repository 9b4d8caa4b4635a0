// Command seed populates a running workshop-manager instance with demo
// vehicles through the public API, the same way the reception desk
// would enter them.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/serproauto/workshop-manager/internal/models"
)

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func login(apiURL, username, password string) error {
	data, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	resp, err := authorizedPost(apiURL+"/auth/login", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}
	var result models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	authToken = result.Token
	return nil
}

func registerVehicle(apiURL string, vehicle models.Vehicle) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle: %w", err)
	}
	resp, err := authorizedPost(apiURL+"/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to register vehicle: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("vehicle registration failed with status: %d", resp.StatusCode)
	}
	var created models.Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	log.WithFields(log.Fields{
		"vehicle_id": created.ID,
		"plate":      created.LicensePlate,
		"model":      created.Model,
	}).Info("Registered vehicle")
	return nil
}

func demoVehicles() []models.Vehicle {
	return []models.Vehicle{
		{
			Make: "Kia", Model: "Sportage", Year: 2023,
			VIN: "KNHPC3A56P5432109", LicensePlate: "MNO-9012",
			Status:   models.StatusInService,
			Customer: models.Customer{Name: "Luis Hernandez", Phone: "55-2345-6789", Email: "luis.h@email.com"},
		},
		{
			Make: "Kia", Model: "Rio", Year: 2021,
			VIN: "KNADM5A34M1231231", LicensePlate: "XYZ-5678",
			Status:     models.StatusReadyForDelivery,
			Customer:   models.Customer{Name: "Sofia Rodriguez", Phone: "55-5555-5555", Email: "sofia.r@email.com"},
			Technician: "mecanico",
		},
		{
			Make: "Kia", Model: "Seltos", Year: 2023,
			VIN: "KNDJX3A42P7654321", LicensePlate: "JKL-1234",
			Status:     models.StatusInDiagnosis,
			Customer:   models.Customer{Name: "Juan Martinez", Phone: "55-8765-4321", Email: "juan.martinez@email.com"},
			Technician: "mecanico",
			Priority:   models.PriorityMedium,
		},
		{
			Make: "Kia", Model: "Forte", Year: 2022,
			VIN: "KMFG54H87NB123456", LicensePlate: "RST-7890",
			Status:         models.StatusInRepair,
			Customer:       models.Customer{Name: "Ana Garcia", Phone: "55-1234-5678", Email: "ana.garcia@email.com"},
			Technician:     "Carlos Perez",
			Priority:       models.PriorityHigh,
			WorkOrderNotes: "Brake pad replacement and disc resurfacing.",
		},
	}
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	if err := login(apiURL, "asesor", "asesor123"); err != nil {
		log.Fatalf("Failed to log in: %v", err)
	}

	for _, v := range demoVehicles() {
		if err := registerVehicle(apiURL, v); err != nil {
			log.WithError(err).Error("Failed to register demo vehicle")
		}
	}
}
