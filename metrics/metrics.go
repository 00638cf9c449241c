package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alugaki_bookings_created_total",
		Help: "Bookings created, split by approval path.",
	}, []string{"auto_approved"})

	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alugaki_booking_transitions_total",
		Help: "Booking status transitions applied.",
	}, []string{"to"})

	ChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alugaki_chat_messages_total",
		Help: "Chat messages persisted through the realtime bus.",
	})

	BroadcastPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alugaki_broadcast_published_total",
		Help: "Events published to the cross-session channel.",
	})

	BroadcastDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alugaki_broadcast_dropped_total",
		Help: "Events that could not reach the cross-session channel.",
	})
)
