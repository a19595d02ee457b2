// Copyright © Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package common

import (
	"net/url"
	"regexp"
	"strings"
)

type LogSanitizer interface {
	SanitizeLogMessage(raw string) string
}

const SigAzure = "sig"

// azCopyLogSanitizer performs string-replacement based log redaction.
// The smoke tests pass SAS URLs on every azcopy and test-suite command line, and echo those
// command lines (and the child's stderr) into the harness log, so every message goes through here.
type azCopyLogSanitizer struct {
}

func NewAzCopyLogSanitizer() LogSanitizer {
	return &azCopyLogSanitizer{}
}

var sensitiveQueryStringKeys = []string{
	"sig",
	"signature",
	"token",
	"credential",
	"accountkey",
	"account_key",
}

// SanitizeLogMessage removes credentials and credential-like strings from msg.
// The implementation uses a 'to lower' of the raw string, since case-insensitive regexes
// are much slower and most messages contain none of the keys.
func (s *azCopyLogSanitizer) SanitizeLogMessage(msg string) string {
	lowerMsg := strings.ToLower(msg)

	for _, key := range sensitiveQueryStringKeys {
		// quick look first, only get fancy if something is there
		if strings.Contains(lowerMsg, key) {
			msg = s.redact(msg, key) // must redact from the real (original case) msg, not lowerMsg
		}
	}

	return msg
}

func (s *azCopyLogSanitizer) redact(msg, key string) string {
	const redacted = "-REDACTED-"

	return sensitiveRegexMap[key].ReplaceAllString(msg, "$1"+redacted)
}

var sensitiveRegexMap = make(map[string]*regexp.Regexp)

func init() {
	mapContainsAzureSig := false
	for _, key := range sensitiveQueryStringKeys {
		// Group one is the key and its delimiter, group two the value up to the next terminator.
		// Values are assumed never to contain '&'. Optional quotes cover JSON token blobs.
		sensitiveRegexMap[key] = regexp.MustCompile("(?i)(?P<key>" + key + "\"?[ \t]*[:=][ \t]*\"?)(?P<value>[^& ,;\t\n\r\"]+)")

		if key == strings.ToLower(SigAzure) {
			mapContainsAzureSig = true
		}
	}

	if !mapContainsAzureSig {
		panic("sensitiveQueryStrings is misconfigured and does not contain Azure sign")
	}
}

// RedactSecretQueryParam strips the signature of a SAS URL so the URL can be shown in a report.
// Strings that do not parse as URLs are returned unchanged.
func RedactSecretQueryParam(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return rawURL
	}

	values := u.Query()
	changed := false
	for k := range values {
		if strings.EqualFold(k, SigAzure) {
			values[k] = []string{"REDACTED"}
			changed = true
		}
	}
	if !changed {
		return rawURL
	}

	u.RawQuery = values.Encode()
	return u.String()
}
