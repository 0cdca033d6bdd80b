package client

// Navigator moves the operator between back-office screens.
type Navigator interface {
	Replace(path string)
	Back()
}

// Notifier surfaces short outcome messages (toasts).
type Notifier interface {
	Success(message string)
	Error(message string)
}

type nopNavigator struct{}

func (nopNavigator) Replace(string) {}
func (nopNavigator) Back()          {}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
