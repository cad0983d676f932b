// Package notification pushes "new entry logged" messages to subscribed
// browsers through a small worker pool.
package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/observability"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/store"
)

// queueSize bounds the dispatch buffer. The refresh loop must never block on
// notifications, so a full queue drops instead.
const queueSize = 64

// NotificationSender defines the interface for sending a web push
// notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the
// webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan model.ParkingEvent
	store   store.Store
	webpush *webpush.Options
	sender  NotificationSender
	metrics *observability.Metrics
}

// NewWorkerPool creates a new worker pool over the subscription store.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options, metrics *observability.Metrics) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan model.ParkingEvent, queueSize),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		metrics: metrics,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case event := <-wp.jobs:
			wp.notifyAll(ctx, event)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues one event for notification. It never blocks; when the
// queue is full the notification is dropped with a log line.
func (wp *WorkerPool) Dispatch(event model.ParkingEvent) {
	select {
	case wp.jobs <- event:
	default:
		log.Printf("Notification queue full, dropping notification for %s", event.Location)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.ParkingEvent {
	return wp.jobs
}

// notifyAll sends the event summary to every registered subscription.
func (wp *WorkerPool) notifyAll(ctx context.Context, event model.ParkingEvent) {
	subscriptions, err := wp.store.Subscriptions(ctx)
	if err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload := []byte(eventMessage(event))
	log.Printf("Sending %d notifications for new entry at %s", len(subscriptions), event.Location)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// eventMessage builds the Thai one-liner the browser shows. Floor only makes
// sense for the condo, time only when it parses.
func eventMessage(e model.ParkingEvent) string {
	msg := "จอดรถที่ " + e.Location
	if model.FacetOf(e.Location) == model.FacetCondo && e.Floor != "" && e.Floor != model.FloorNotApplicable {
		msg += " ชั้น " + e.Floor
	}
	if minute, ok := model.MinuteOfDay(e.TimeOfEvent); ok {
		msg += fmt.Sprintf(" เวลา %02d:%02d", minute/60, minute%60)
	}
	return msg
}

// sendNotification sends a single web push notification and cleans up
// subscriptions the push service reports as gone.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		wp.metrics.NotificationsFailed.Inc()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
		return
	}

	wp.metrics.NotificationsSent.Inc()
}
