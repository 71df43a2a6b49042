package templates

import "time"

// Option pattern
type Option func(*EmailData)

func WithAppName(name string) Option { return func(d *EmailData) { d.AppName = name } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
	}
}

// NewBaseEmailData fills the common fields then applies opts.
func NewBaseEmailData(typ string, email string, opts ...Option) EmailData {
	d := EmailData{
		Email: email,
		Type:  typ,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewActivationData(email, activationURL string, opts ...Option) map[string]any {
	d := NewBaseEmailData(Activation, email, opts...)
	d.ActivationURL = activationURL
	return ToMap(d)
}
