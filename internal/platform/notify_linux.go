//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIface = notifyDest + ".Notify"
)

// Notify sends a desktop notification over the session bus using the
// freedesktop.org notification interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"desktop-entry": dbus.MakeVariant(AppName),
	}
	obj := conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyIface, 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints, opts.expireMillis())
	return call.Err
}
