package cron

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mendwell/config"
	"mendwell/models"

	"github.com/hibiken/asynq"
)

// Task type names.
const (
	TypeReminderSend = "reminder:send"
	TypeBlogPublish  = "blog:publish"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// QueueClient enqueues delayed tasks. It backs both the booking reminder
// scheduler and the blog publish scheduler.
type QueueClient struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

// NewQueueClient connects to the task queue Redis DB.
func NewQueueClient() *QueueClient {
	opts := redisOpts()
	return &QueueClient{
		client:    asynq.NewClient(opts),
		inspector: asynq.NewInspector(opts),
	}
}

func reminderTaskID(bookingID string) string {
	return "reminder:" + bookingID
}

// ScheduleReminder enqueues a booking reminder to fire at the given time.
// The task id is derived from the booking so the reminder can be cancelled.
func (q *QueueClient) ScheduleReminder(payload models.ReminderPayload, at time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeReminderSend, body)
	_, err = q.client.Enqueue(task,
		asynq.ProcessAt(at),
		asynq.TaskID(reminderTaskID(payload.BookingID)),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// CancelReminder drops a scheduled booking reminder. Missing tasks are fine;
// the reminder may already have fired.
func (q *QueueClient) CancelReminder(bookingID string) error {
	err := q.inspector.DeleteTask("default", reminderTaskID(bookingID))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		return fmt.Errorf("failed to cancel reminder: %w", err)
	}
	return nil
}

// SchedulePublish enqueues the task that flips a scheduled post live.
func (q *QueueClient) SchedulePublish(payload models.PublishPayload, at time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal publish payload: %w", err)
	}
	task := asynq.NewTask(TypeBlogPublish, body)
	if _, err := q.client.Enqueue(task, asynq.ProcessAt(at)); err != nil {
		return fmt.Errorf("failed to enqueue publish task: %w", err)
	}
	return nil
}

// Close releases the underlying connections.
func (q *QueueClient) Close() error {
	return q.client.Close()
}
