//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type FacilityDiscoveryJob struct {
	JobID        uuid.UUID `json:"job_id"`
	Address      string    `json:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Category     string    `json:"category"`
	Brand        *string   `json:"brand,omitempty"`
	RadiusMeters int       `json:"radius_meters,omitempty"`
	TravelMode   string    `json:"travel_mode,omitempty"`
	ResultLimit  int       `json:"result_limit,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое задание (Shinjuku, Tokyo)
	job := FacilityDiscoveryJob{
		JobID:        uuid.New(),
		Latitude:     ptr(35.690921),
		Longitude:    ptr(139.700258),
		Category:     "convenience_store",
		TravelMode:   "walking",
		RadiusMeters: 800,
		ResultLimit:  3,
	}

	data, err := json.Marshal(job)
	if err != nil {
		log.Fatalf("Failed to marshal job: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:facility:discover",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish job: %v", err)
	}

	fmt.Printf("✅ Job published successfully!\n")
	fmt.Printf("   Stream: stream:facility:discover\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s\n", job.JobID)
	fmt.Printf("   Category: %s\n", job.Category)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", *job.Latitude, *job.Longitude)

	// Ожидание ответа
	fmt.Printf("\n⏳ Waiting for response in stream:facility:done...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:facility:done", "0"},
				Count:   10,
				Block:   0,
			}).Result()
			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var done map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
						continue
					}

					if done["job_id"] != job.JobID.String() {
						continue
					}

					pretty, _ := json.MarshalIndent(done, "", "  ")
					fmt.Printf("✅ Discovery result received:\n%s\n", pretty)
					return
				}
			}
		}
	}
}
