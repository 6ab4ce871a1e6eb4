//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/archive-alert/internal/domain"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", domain.StreamArchiveAlerts, "alert stream name")
	from := flag.String("from", "0", "read messages after this ID ($ for new ones only)")
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

	fmt.Printf("Waiting for alerts in %s...\n", *stream)

	lastID := *from
	for {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{*stream, lastID},
			Count:   10,
			Block:   0,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Fatalf("Failed to read stream: %v", err)
		}

		for _, s := range results {
			for _, msg := range s.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var event domain.AlertEvent
				if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
					fmt.Printf("%s: undecodable message: %v\n", msg.ID, err)
					continue
				}

				fmt.Printf("%s %s %s  %s: %d new scenes (%d total), email sent: %t\n   report: %s\n",
					msg.ID, event.Date, event.Time, event.AOIName,
					event.NewScenes, event.TotalScenes, event.EmailSent, event.ReportPath)
			}
		}
	}
}
