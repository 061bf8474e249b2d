package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caktus/internal/sensor"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// sensor-bridge publishes simulated readings over MQTT so the API can run
// against its MQTT source without hardware.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("🌵 Sensor bridge starting...")

	broker := os.Getenv("MQTT_BROKER_URL")
	if broker == "" {
		log.Fatal("MQTT_BROKER_URL is not set")
	}
	topic := os.Getenv("MQTT_TOPIC")
	if topic == "" {
		topic = "caktus/readings"
	}

	interval := 5 * time.Second
	if v := os.Getenv("SENSOR_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid SENSOR_POLL_INTERVAL: %v", err)
		}
		interval = d
	}

	deviceID := os.Getenv("BRIDGE_DEVICE_ID")
	if deviceID == "" {
		deviceID = "bridge-" + uuid.NewString()[:8]
	}

	pub, err := sensor.NewPublisher(broker, topic, "caktus-bridge-"+deviceID)
	if err != nil {
		log.Fatal(err)
	}
	defer pub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := sensor.NewSimulator(nil)

	log.Printf("✅ Publishing to %s every %s as %s. Press Ctrl+C to stop.", topic, interval, deviceID)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Sensor bridge stopped")
			return
		case <-ticker.C:
		}

		reading, err := sim.Read(ctx, deviceID)
		if err != nil {
			continue
		}

		if err := pub.Publish(reading); err != nil {
			log.Printf("⚠️  publish error: %v", err)
		}
	}
}
