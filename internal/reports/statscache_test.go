package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"ms-attendance/internal/models"
	"ms-attendance/internal/reports"
)

// TestStatsCacheIntegration exercises the cache against a real Redis
// container.
func TestStatsCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	defer redisContainer.Terminate(ctx)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	cache := reports.NewStatsCache(client, 2*time.Second)

	// Miss before any write.
	stats, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stats)

	want := &models.EventStats{EventID: 1, EventName: "Tech Meetup", Registered: 10, Attended: 7, Percentage: 70}
	require.NoError(t, cache.Set(ctx, want))

	stats, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, want, stats)

	// Entries expire with the TTL.
	time.Sleep(3 * time.Second)
	stats, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestStatsCacheNilClient(t *testing.T) {
	var cache *reports.StatsCache
	ctx := context.Background()

	// A nil cache degrades to a permanent miss.
	stats, err := cache.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, stats)
	assert.NoError(t, cache.Set(ctx, &models.EventStats{EventID: 1}))
}
