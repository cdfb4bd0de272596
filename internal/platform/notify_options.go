// Package platform sends desktop notifications through the host's
// notification service.
package platform

// DefaultAppName identifies notifications when Options.AppName is empty.
const DefaultAppName = "Inkwell"

// Options configures how a notification is displayed.
type Options struct {
	// AppName is the sender shown by the notification center.
	AppName string
	// IconPath points to an image shown with the notification where the
	// platform supports it.
	IconPath string
	// TimeoutMillis is how long the notification stays up. Zero leaves it to
	// the server.
	TimeoutMillis int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
