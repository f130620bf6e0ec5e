package notify

import (
	"fmt"

	"github.com/gregdel/pushover"
	"github.com/sirupsen/logrus"

	"github.com/AbdulAhadRauf/best-train-finder/internal/search"
)

const (
	PriorityNormal = 0
	PriorityHigh   = 1
)

type Notifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
	logger    *logrus.Logger
}

func NewNotifier(token, userKey string, logger *logrus.Logger) *Notifier {
	return &Notifier{
		app:       pushover.New(token),
		recipient: pushover.NewRecipient(userKey),
		logger:    logger,
	}
}

func (n *Notifier) Send(title, message string) error {
	return n.SendWithPriority(title, message, PriorityNormal)
}

func (n *Notifier) SendWithPriority(title, message string, priority int) error {
	msg := pushover.NewMessageWithTitle(message, title)
	msg.Priority = priority

	resp, err := n.app.SendMessage(msg, n.recipient)
	if err != nil {
		return fmt.Errorf("sending pushover notification: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"title":      title,
		"status":     resp.Status,
		"request_id": resp.ID,
	}).Debug("notification sent")

	return nil
}

// SendAvailability alerts that seats opened up on a watched route.
func (n *Notifier) SendAvailability(rec search.RankedRecord) error {
	title := "Seats Available"
	fare := "n/a"
	if rec.Fare != nil {
		fare = fmt.Sprintf("₹%.2f", *rec.Fare)
	}
	body := fmt.Sprintf("%s (%s) %s -> %s on %s\nClass %s: %s, fare %s",
		rec.TrainName, rec.TrainNumber, rec.FromStation, rec.ToStation,
		rec.TravelDate, rec.BookingClass, rec.Availability, fare)
	return n.SendWithPriority(title, body, PriorityHigh)
}

// SendSearchProblem reports a failing watch search, e.g. the availability
// source going away.
func (n *Notifier) SendSearchProblem(reason string) error {
	title := "Train Search Problem"
	return n.Send(title, reason)
}
