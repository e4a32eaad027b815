// Package mailsieve provides a Go client SDK for the mailsieve
// content-scanning daemon.
//
// The SDK submits messages for scanning and Bayes training over the
// daemon's HTTP protocol, optionally sealed in an encrypted envelope
// (X25519 key agreement with an XChaCha20-Poly1305 payload) when a
// server public key is configured.
//
// Basic usage:
//
//	client, err := mailsieve.New(
//	    mailsieve.WithBaseURL("http://localhost:11333"),
//	    mailsieve.WithPassword("secret"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Scan(ctx, message,
//	    mailsieve.ScanFrom("sender@example.com"),
//	    mailsieve.ScanIP("198.51.100.7"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Action:", result.Action)
package mailsieve
