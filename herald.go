// Package herald is a unified notification-dispatch library: pick a
// provider by name, hand it keyed arguments, and get back a uniform
// Response. Validation, environment ingestion, default merging and payload
// shaping all happen behind one call.
//
//	resp, err := herald.Notify(ctx, "pushover", map[string]any{
//		"user":    "hruser",
//		"token":   "apptoken",
//		"message": "deploy finished",
//	})
package herald

import (
	"context"

	"github.com/herald-notify/herald/providers"
	"github.com/herald-notify/herald/providers/dingtalk"
	"github.com/herald-notify/herald/providers/gitter"
	"github.com/herald-notify/herald/providers/icq"
	"github.com/herald-notify/herald/providers/join"
	"github.com/herald-notify/herald/providers/mailgun"
	"github.com/herald-notify/herald/providers/pagerduty"
	"github.com/herald-notify/herald/providers/popcornnotify"
	"github.com/herald-notify/herald/providers/pushbullet"
	"github.com/herald-notify/herald/providers/pushover"
	"github.com/herald-notify/herald/providers/simplepush"
	"github.com/herald-notify/herald/providers/slack"
	"github.com/herald-notify/herald/providers/statuspage"
	"github.com/herald-notify/herald/providers/telegram"
	"github.com/herald-notify/herald/providers/twilio"
	"github.com/herald-notify/herald/providers/zulip"
)

var defaultRegistry = providers.NewRegistry()

func init() {
	defaultRegistry.Register("dingtalk", func() (providers.Provider, error) { return dingtalk.New() })
	defaultRegistry.Register("gitter", func() (providers.Provider, error) { return gitter.New() })
	defaultRegistry.Register("icq", func() (providers.Provider, error) { return icq.New() })
	defaultRegistry.Register("join", func() (providers.Provider, error) { return join.New() })
	defaultRegistry.Register("mailgun", func() (providers.Provider, error) { return mailgun.New() })
	defaultRegistry.Register("pagerduty", func() (providers.Provider, error) { return pagerduty.New() })
	defaultRegistry.Register("popcornnotify", func() (providers.Provider, error) { return popcornnotify.New() })
	defaultRegistry.Register("pushbullet", func() (providers.Provider, error) { return pushbullet.New() })
	defaultRegistry.Register("pushover", func() (providers.Provider, error) { return pushover.New() })
	defaultRegistry.Register("simplepush", func() (providers.Provider, error) { return simplepush.New() })
	defaultRegistry.Register("slack", func() (providers.Provider, error) { return slack.New() })
	defaultRegistry.Register("statuspage", func() (providers.Provider, error) { return statuspage.New() })
	defaultRegistry.Register("telegram", func() (providers.Provider, error) { return telegram.New() })
	defaultRegistry.Register("twilio", func() (providers.Provider, error) { return twilio.New() })
	defaultRegistry.Register("zulip", func() (providers.Provider, error) { return zulip.New() })
}

// DefaultRegistry returns the process-wide provider registry.
func DefaultRegistry() *providers.Registry { return defaultRegistry }

// GetNotifier is the permissive lookup: it returns nil when the name is
// unknown. Names are case-insensitive.
func GetNotifier(name string) providers.Provider {
	return defaultRegistry.Get(name)
}

// RequireNotifier is the strict lookup: unknown names yield
// *providers.ErrNoSuchNotifier.
func RequireNotifier(name string) (providers.Provider, error) {
	return defaultRegistry.Lookup(name)
}

// AllProviders returns the sorted names of every registered provider.
func AllProviders() []string {
	return defaultRegistry.Names()
}

// Notify dispatches a notification through the named provider.
func Notify(ctx context.Context, provider string, args map[string]any) (*providers.Response, error) {
	p, err := RequireNotifier(provider)
	if err != nil {
		return nil, err
	}
	return p.Notify(ctx, args)
}
