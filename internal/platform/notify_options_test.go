package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != DefaultAppName || o.timeout() != DefaultTimeout {
		t.Fatalf("zero options: %q %v", o.appName(), o.timeout())
	}
	o = Options{AppName: "demo", Timeout: time.Second}
	if o.appName() != "demo" || o.timeout() != time.Second {
		t.Fatalf("explicit options: %q %v", o.appName(), o.timeout())
	}
}
