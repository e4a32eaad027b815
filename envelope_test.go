package mailsieve

import (
	"testing"
)

func TestScanOptions_OrderPreserved(t *testing.T) {
	cfg := &scanConfig{}
	opts := []ScanOption{
		ScanFrom("sender@example.com"),
		ScanRcpt("one@example.com"),
		ScanRcpt("two@example.com"),
		ScanIP("198.51.100.7"),
		ScanUser("alice"),
		ScanHelo("mail.example.com"),
		ScanHostname("client.example.com"),
		ScanHeader("Pass", "all"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	want := []struct{ name, value string }{
		{"From", "sender@example.com"},
		{"Rcpt", "one@example.com"},
		{"Rcpt", "two@example.com"},
		{"IP", "198.51.100.7"},
		{"User", "alice"},
		{"Helo", "mail.example.com"},
		{"Hostname", "client.example.com"},
		{"Pass", "all"},
	}
	if len(cfg.headers) != len(want) {
		t.Fatalf("headers = %v", cfg.headers)
	}
	for i, w := range want {
		if cfg.headers[i].Name != w.name || cfg.headers[i].Value != w.value {
			t.Errorf("headers[%d] = %+v, want %+v", i, cfg.headers[i], w)
		}
	}
}

func TestScanFile(t *testing.T) {
	cfg := &scanConfig{}
	ScanFile("/var/mail/msg.eml")(cfg)
	if len(cfg.headers) != 1 || cfg.headers[0].Name != "File" || cfg.headers[0].Value != "/var/mail/msg.eml" {
		t.Errorf("headers = %v", cfg.headers)
	}
}
