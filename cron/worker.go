// Package cron runs the background task worker: booking reminders and
// scheduled blog publishing.
package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mendwell/models"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// Notifier delivers the reminder pushes. Satisfied by the notification
// service.
type Notifier interface {
	NotifyBooking(userID, title, body string)
}

// Publisher flips scheduled posts live. Satisfied by the blog service.
type Publisher interface {
	PublishNow(postID string) error
}

// InitWorker runs the async worker in background.
func InitWorker(notifier Notifier, publisher Publisher) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifier))
	mux.HandleFunc(TypeBlogPublish, handlePublishTask(publisher))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] firing reminder for booking %s", p.BookingID)
		notifier.NotifyBooking(p.UserID, p.Title, p.Body)
		return nil
	}
}

func handlePublishTask(publisher Publisher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PublishPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PublishHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[PublishHandler] publishing post %s", p.PostID)
		if err := publisher.PublishNow(p.PostID); err != nil {
			log.Printf("[PublishHandler] failed to publish post %s: %v", p.PostID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	opts := redisOpts()
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
