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
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// The validator is not under test, so it retries generously rather than reporting flaky service errors as test failures.
const (
	ValidatorMaxTries      = 20
	ValidatorTryTimeout    = time.Minute * 15
	ValidatorRetryDelay    = time.Second * 1
	ValidatorMaxRetryDelay = time.Second * 60
)

var (
	sharedHTTPClient     *http.Client
	sharedHTTPClientOnce sync.Once
)

// GetHTTPClient returns the process-wide HTTP client used by every storage SDK client.
func GetHTTPClient() *http.Client {
	sharedHTTPClientOnce.Do(func() {
		sharedHTTPClient = &http.Client{
			Transport: &http.Transport{
				Proxy:                 GetProxyFunc(),
				MaxIdleConnsPerHost:   16,
				IdleConnTimeout:       180 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				DisableKeepAlives:     false,
				// zero value of ResponseHeaderTimeout means no timeout; the retry policy's TryTimeout bounds each try
			},
		}
	})
	return sharedHTTPClient
}

// NewClientOptions builds the azcore options shared by the blob, file and datalake clients.
func NewClientOptions() azcore.ClientOptions {
	return azcore.ClientOptions{
		Retry: policy.RetryOptions{
			MaxRetries:    ValidatorMaxTries,
			TryTimeout:    ValidatorTryTimeout,
			RetryDelay:    ValidatorRetryDelay,
			MaxRetryDelay: ValidatorMaxRetryDelay,
		},
		Telemetry: policy.TelemetryOptions{
			ApplicationID: UserAgent,
		},
		Transport: GetHTTPClient(),
	}
}
