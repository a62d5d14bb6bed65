package testutil

import (
	"context"
	"testing"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	InfluxDBOrg    = "primind"
	InfluxDBBucket = "schedule_results"
	InfluxDBToken  = "schedule-test-token"

	influxDBPort = "8086/tcp"
)

// InfluxDB describes a running InfluxDB test instance.
type InfluxDB struct {
	URL    string
	Org    string
	Bucket string
	Token  string
	Client influxdb2.Client
}

func SetupInfluxDBContainer(ctx context.Context, t *testing.T) (*InfluxDB, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start influxdb container: %v", r)
		}
	}()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "influxdb:2.7-alpine",
			ExposedPorts: []string{influxDBPort},
			Env: map[string]string{
				"DOCKER_INFLUXDB_INIT_MODE":        "setup",
				"DOCKER_INFLUXDB_INIT_USERNAME":    "scheduler",
				"DOCKER_INFLUXDB_INIT_PASSWORD":    "scheduler-password",
				"DOCKER_INFLUXDB_INIT_ORG":         InfluxDBOrg,
				"DOCKER_INFLUXDB_INIT_BUCKET":      InfluxDBBucket,
				"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": InfluxDBToken,
			},
			WaitingFor: wait.ForHTTP("/health").WithPort(influxDBPort),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("failed to start influxdb container: %v", err)
	}

	endpoint, err := container.PortEndpoint(ctx, influxDBPort, "http")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Skipf("failed to get influxdb endpoint: %v", err)
	}

	client := influxdb2.NewClient(endpoint, InfluxDBToken)

	// The image restarts influxd once initial setup finishes; wait until the
	// org created by setup is visible.
	deadline := time.Now().Add(30 * time.Second)
	for {
		if _, err := client.OrganizationsAPI().FindOrganizationByName(ctx, InfluxDBOrg); err == nil {
			break
		}
		if time.Now().After(deadline) {
			client.Close()
			_ = container.Terminate(ctx)
			t.Skip("influxdb setup did not complete in time")
		}
		time.Sleep(500 * time.Millisecond)
	}

	cleanup := func() {
		client.Close()

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate influxdb container: %v", err)
		}
	}

	return &InfluxDB{
		URL:    endpoint,
		Org:    InfluxDBOrg,
		Bucket: InfluxDBBucket,
		Token:  InfluxDBToken,
		Client: client,
	}, cleanup
}
