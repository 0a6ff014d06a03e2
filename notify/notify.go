// Package notify delivers short user-facing notifications such as "Skipping intro".
package notify

import (
	"errors"

	"github.com/segskip/segskip/log"
)

// Notifier shows a notification to the user.
type Notifier interface {
	Notify(title, message string) error
}

// Func adapts a function to a Notifier.
type Func func(title, message string) error

func (f Func) Notify(title, message string) error {
	return f(title, message)
}

// Log writes notifications to the application log.
type Log struct{}

func (Log) Notify(title, message string) error {
	log.Infof("[%s] %s", title, message)
	return nil
}

// Multi notifies every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(title, message string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Send notifies without waiting on the outcome; a failure is logged and otherwise ignored.
func Send(n Notifier, title, message string) {
	if n == nil {
		return
	}
	if err := n.Notify(title, message); err != nil {
		log.Warnf("notification %q dropped: %v", message, err)
	}
}
