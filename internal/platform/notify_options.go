package platform

import "time"

// AppName identifies snipshot to the notification server.
const AppName = "snipshot"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath, when non-empty, points to an image shown with the
	// notification.
	IconPath string
	// Timeout is how long the notification stays visible. Zero lets the
	// server decide.
	Timeout time.Duration
}

func (o Options) expireMillis() int32 {
	if o.Timeout <= 0 {
		return -1
	}
	return int32(o.Timeout / time.Millisecond)
}
