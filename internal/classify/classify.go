// Package classify inspects streamed terminal output from a running project
// command and extracts dev-server signals: readiness, errors, and the TCP
// port a dev server bound to. Classification is pure string matching; chunks
// split mid-pattern are accepted as false negatives.
package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Signal is the result of classifying one output chunk. Port is 0 when no
// port was detected. Ready and Error are independent: a chunk may carry both.
type Signal struct {
	Ready bool
	Error bool
	Port  int
}

// HasPort reports whether a port was detected.
func (s Signal) HasPort() bool { return s.Port != 0 }

// Port patterns in significance order: framework-specific phrasing wins over
// generic localhost URLs, which win over bare known-port literals.
// The trailing \b keeps a longer number from matching by its first four
// digits: ":30001" is no port, not port 3000.
var portPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)local:\s+https?://(?:localhost|127\.0\.0\.1):(\d{4})\b`),
	regexp.MustCompile(`(?i)server (?:running|listening|started) (?:at|on)[^0-9]*(\d{4})\b`),
	regexp.MustCompile(`(?i)listening on (?:port )?[^0-9]*(\d{4})\b`),
	regexp.MustCompile(`(?i)(?:localhost|127\.0\.0\.1):(\d{4})\b`),
	regexp.MustCompile(`(?i)\bport\s+(\d{4})\b`),
	regexp.MustCompile(`\b(3000|3001|4200|4321|5000|5173|8000|8080|9000)\b`),
}

var readyPhrases = []string{
	"ready in",
	"compiled successfully",
	"server running",
	"server started",
	"server is running",
	"listening on",
	"dev server running",
	"development server",
	"watching for file changes",
	"accepting connections",
}

var errorPhrases = []string{
	"error:",
	"err!",
	"errno",
	"failed",
	"failure",
	"exception",
	"fatal",
	"command not found",
	"cannot find module",
	"module not found",
	"unhandled",
	"eaddrinuse",
	"enoent",
	"syntaxerror",
	"typeerror",
	"referenceerror",
}

// Classify maps one chunk of terminal output to its signals. It never fails:
// empty or unrecognized input yields the zero Signal.
func Classify(chunk string) Signal {
	return Signal{
		Ready: IsReady(chunk),
		Error: IsError(chunk),
		Port:  DetectPort(chunk),
	}
}

// DetectPort returns the first dev-server port found in chunk, trying
// patterns in significance order. Only ports in [3000, 9999] are accepted;
// 0 means no port was found.
func DetectPort(chunk string) int {
	for _, re := range portPatterns {
		for _, m := range re.FindAllStringSubmatch(chunk, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n >= 3000 && n <= 9999 {
				return n
			}
		}
	}
	return 0
}

// IsReady reports whether chunk contains a server-readiness phrase.
func IsReady(chunk string) bool {
	return containsAny(chunk, readyPhrases)
}

// IsError reports whether chunk contains an error phrase.
func IsError(chunk string) bool {
	return containsAny(chunk, errorPhrases)
}

func containsAny(chunk string, phrases []string) bool {
	lower := strings.ToLower(chunk)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
