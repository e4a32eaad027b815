package mailsieve

// ScanResult is the daemon's verdict for a scanned message.
type ScanResult struct {
	// IsSkipped reports whether the daemon skipped scanning entirely.
	IsSkipped bool `json:"is_skipped"`
	// Score is the accumulated spam score.
	Score float64 `json:"score"`
	// RequiredScore is the threshold for the reject action.
	RequiredScore float64 `json:"required_score"`
	// Action is the suggested action ("no action", "greylist",
	// "add header", "rewrite subject", "soft reject", "reject").
	Action string `json:"action"`
	// Thresholds maps action names to their score thresholds.
	Thresholds map[string]float64 `json:"thresholds"`
	// Symbols maps symbol names to the matched rules.
	Symbols map[string]Symbol `json:"symbols"`
	// Messages holds informational messages keyed by category.
	Messages map[string]string `json:"messages"`
	// URLs lists URLs extracted from the message.
	URLs []string `json:"urls"`
	// Emails lists email addresses extracted from the message.
	Emails []string `json:"emails"`
	// MessageID is the scanned message's Message-ID.
	MessageID string `json:"message-id"`
	// TimeReal is the wall-clock scan duration in seconds.
	TimeReal float64 `json:"time_real"`
	// Milter describes header changes for milter-mode callers.
	Milter *Milter `json:"milter,omitempty"`
	// Filename is the scanned file path for File-based scans.
	Filename string `json:"filename"`
	// ScanTime is the daemon-side scan duration in seconds.
	ScanTime float64 `json:"scan_time"`

	// RewrittenBody is the rewritten message returned after the JSON
	// reply when the daemon modified the message. Nil when the daemon
	// returned no rewritten body.
	RewrittenBody []byte `json:"-"`
}

// Symbol is a single matched rule.
type Symbol struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	MetricScore float64  `json:"metric_score"`
	Description string   `json:"description,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Milter describes header additions and removals requested by the
// daemon.
type Milter struct {
	AddHeaders    map[string]MailHeader `json:"add_headers"`
	RemoveHeaders map[string]int        `json:"remove_headers"`
}

// MailHeader is a header value with its insertion order.
type MailHeader struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// LearnResult is the daemon's reply to a Bayes training request.
type LearnResult struct {
	// Success reports whether the message was learned.
	Success bool `json:"success"`
	// Error holds the daemon's reason when learning was refused, such
	// as the message having been learned already.
	Error string `json:"error,omitempty"`
}
