package handlers

import (
	"github.com/arzonkitob/storefront/internal/signup"
)

// notificationCollector gathers flow notifications during one request so they
// can be returned in the response body for the frontend toast surface.
type notificationCollector struct {
	notifications []signup.Notification
}

func (c *notificationCollector) Notify(n signup.Notification) {
	c.notifications = append(c.notifications, n)
}
