//go:build !linux

package platform

// Notify is a no-op off Linux.
func Notify(title, body string, opts Options) error {
	return nil
}
