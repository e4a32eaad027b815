package mailsieve

import (
	"github.com/mailsieve/client-go/internal/httpcrypt"
)

// scanConfig holds envelope metadata for a single scan or learn call.
// Headers keep caller order: the daemon sees them exactly as given, and
// on the encrypted path their order is authenticated.
type scanConfig struct {
	headers []httpcrypt.Header
}

// ScanOption attaches envelope metadata to a scan or learn request.
type ScanOption func(*scanConfig)

func (c *scanConfig) add(name, value string) {
	c.headers = append(c.headers, httpcrypt.Header{Name: name, Value: value})
}

// ScanFrom sets the SMTP envelope sender.
func ScanFrom(from string) ScanOption {
	return func(c *scanConfig) {
		c.add("From", from)
	}
}

// ScanRcpt adds an SMTP envelope recipient. Repeat for multiple
// recipients.
func ScanRcpt(rcpt string) ScanOption {
	return func(c *scanConfig) {
		c.add("Rcpt", rcpt)
	}
}

// ScanIP sets the source IP address of the sending client.
func ScanIP(ip string) ScanOption {
	return func(c *scanConfig) {
		c.add("IP", ip)
	}
}

// ScanUser sets the authenticated username of the sending client.
func ScanUser(user string) ScanOption {
	return func(c *scanConfig) {
		c.add("User", user)
	}
}

// ScanHelo sets the HELO/EHLO string presented by the sending client.
func ScanHelo(helo string) ScanOption {
	return func(c *scanConfig) {
		c.add("Helo", helo)
	}
}

// ScanHostname sets the resolved hostname of the sending client.
func ScanHostname(hostname string) ScanOption {
	return func(c *scanConfig) {
		c.add("Hostname", hostname)
	}
}

// ScanFile asks the daemon to read the message from the given path on
// its own disk. The message argument is ignored and no body is
// transmitted.
func ScanFile(path string) ScanOption {
	return func(c *scanConfig) {
		c.add("File", path)
	}
}

// ScanHeader attaches an arbitrary request header.
func ScanHeader(name, value string) ScanOption {
	return func(c *scanConfig) {
		c.add(name, value)
	}
}
