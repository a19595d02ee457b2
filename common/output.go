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
	"bufio"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/JeffreyRichter/enum/enum"
	"github.com/pkg/errors"
)

var EOutputMessageType = OutputMessageType(0)

// OutputMessageType mirrors the MessageType field azcopy prints with --output-type=json.
type OutputMessageType uint8

func (OutputMessageType) Init() OutputMessageType     { return OutputMessageType(0) }
func (OutputMessageType) Info() OutputMessageType     { return OutputMessageType(1) }
func (OutputMessageType) Progress() OutputMessageType { return OutputMessageType(2) }
func (OutputMessageType) EndOfJob() OutputMessageType { return OutputMessageType(3) }
func (OutputMessageType) Error() OutputMessageType    { return OutputMessageType(4) }
func (OutputMessageType) Prompt() OutputMessageType   { return OutputMessageType(5) }
func (OutputMessageType) Response() OutputMessageType { return OutputMessageType(6) }
func (OutputMessageType) ListObject() OutputMessageType {
	return OutputMessageType(7)
}
func (OutputMessageType) ListSummary() OutputMessageType {
	return OutputMessageType(8)
}

func (o OutputMessageType) String() string {
	return enum.StringInt(o, reflect.TypeOf(o))
}

func (o *OutputMessageType) Parse(s string) error {
	val, err := enum.ParseInt(reflect.TypeOf(o), s, true, true)
	if err == nil {
		*o = val.(OutputMessageType)
	}
	return err
}

// JsonOutputTemplate is one line of azcopy's JSON output.
type JsonOutputTemplate struct {
	TimeStamp      time.Time
	MessageType    string
	MessageContent string // a simple string for INFO and ERROR, a serialized JSON for INIT, PROGRESS, EXIT
}

// Type returns the parsed message type; unknown types parse as Info so callers can ignore them.
func (t JsonOutputTemplate) Type() OutputMessageType {
	var mt OutputMessageType
	if err := mt.Parse(t.MessageType); err != nil {
		return EOutputMessageType.Info()
	}
	return mt
}

// JobStatus is kept as the raw string azcopy reports, e.g. Completed or CompletedWithErrors.
type JobStatus string

const (
	JobStatusCompleted                     JobStatus = "Completed"
	JobStatusCompletedWithErrors           JobStatus = "CompletedWithErrors"
	JobStatusCompletedWithSkipped          JobStatus = "CompletedWithSkipped"
	JobStatusCompletedWithErrorsAndSkipped JobStatus = "CompletedWithErrorsAndSkipped"
	JobStatusFailed                        JobStatus = "Failed"
	JobStatusCancelled                     JobStatus = "Cancelled"
)

func (js JobStatus) IsSuccess() bool { return js == JobStatusCompleted }

// JobSummary is the subset of azcopy's end-of-job summary the smoke tests look at.
type JobSummary struct {
	ErrorMsg  string
	JobID     string
	JobStatus JobStatus

	TotalTransfers     uint32 `json:",string"`
	TransfersCompleted uint32 `json:",string"`
	TransfersFailed    uint32 `json:",string"`
	TransfersSkipped   uint32 `json:",string"`

	TotalBytesTransferred uint64 `json:",string"`
	TotalBytesExpected    uint64 `json:",string"`
}

// JsonOutput is everything a single azcopy invocation printed.
type JsonOutput struct {
	Messages []JsonOutputTemplate
	// Lines that were not JSON, e.g. output printed before the output format took effect.
	RawLines []string
}

// ParseJsonOutput splits azcopy's stdout into messages. Non-JSON lines are kept aside rather than rejected.
func ParseJsonOutput(raw string) JsonOutput {
	out := JsonOutput{}
	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var msg JsonOutputTemplate
		if err := json.Unmarshal([]byte(line), &msg); err != nil || msg.MessageType == "" {
			out.RawLines = append(out.RawLines, line)
			continue
		}
		out.Messages = append(out.Messages, msg)
	}
	return out
}

// MessagesOfType filters the messages by type, in output order.
func (o JsonOutput) MessagesOfType(t OutputMessageType) []JsonOutputTemplate {
	var result []JsonOutputTemplate
	for _, m := range o.Messages {
		if m.Type() == t {
			result = append(result, m)
		}
	}
	return result
}

// EndOfJobSummary decodes the last EndOfJob message.
func (o JsonOutput) EndOfJobSummary() (JobSummary, error) {
	ends := o.MessagesOfType(EOutputMessageType.EndOfJob())
	if len(ends) == 0 {
		return JobSummary{}, errors.New("azcopy output has no end of job summary")
	}

	summary := JobSummary{}
	if err := json.Unmarshal([]byte(ends[len(ends)-1].MessageContent), &summary); err != nil {
		return JobSummary{}, errors.Wrap(err, "failed to parse the end of job summary")
	}
	return summary, nil
}

// ErrorMessages returns the content of every Error message.
func (o JsonOutput) ErrorMessages() []string {
	var result []string
	for _, m := range o.MessagesOfType(EOutputMessageType.Error()) {
		result = append(result, m.MessageContent)
	}
	return result
}

// InfoText concatenates Info, ListObject and ListSummary content; this is what `azcopy list` prints.
func (o JsonOutput) InfoText() string {
	var sb strings.Builder
	for _, m := range o.Messages {
		switch m.Type() {
		case EOutputMessageType.Info(), EOutputMessageType.ListObject(), EOutputMessageType.ListSummary():
			sb.WriteString(m.MessageContent)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
