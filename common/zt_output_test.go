package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJsonOutput(t *testing.T) {
	a := assert.New(t)
	raw := `INFO: Scanning...
{"TimeStamp":"2024-01-01T00:00:00Z","MessageType":"Init","MessageContent":"{\"JobID\":\"abc\"}"}

{"TimeStamp":"2024-01-01T00:00:01Z","MessageType":"Info","MessageContent":"INFO: file.txt;  Content Length: 1.00 KiB"}
{"TimeStamp":"2024-01-01T00:00:02Z","MessageType":"Error","MessageContent":"cannot find source"}
{"TimeStamp":"2024-01-01T00:00:03Z","MessageType":"EndOfJob","MessageContent":"{\"JobID\":\"abc\",\"JobStatus\":\"CompletedWithErrors\",\"TotalTransfers\":\"4\",\"TransfersCompleted\":\"3\",\"TransfersFailed\":\"1\",\"TransfersSkipped\":\"0\",\"TotalBytesTransferred\":\"3072\"}"}
`
	out := ParseJsonOutput(raw)

	a.Len(out.Messages, 4)
	a.Equal([]string{"INFO: Scanning..."}, out.RawLines)
	a.Equal([]string{"cannot find source"}, out.ErrorMessages())
	a.Equal("INFO: file.txt;  Content Length: 1.00 KiB\n", out.InfoText())
	a.Equal(EOutputMessageType.Init(), out.Messages[0].Type())

	summary, err := out.EndOfJobSummary()
	require.NoError(t, err)
	a.Equal("abc", summary.JobID)
	a.Equal(JobStatusCompletedWithErrors, summary.JobStatus)
	a.False(summary.JobStatus.IsSuccess())
	a.EqualValues(4, summary.TotalTransfers)
	a.EqualValues(3, summary.TransfersCompleted)
	a.EqualValues(1, summary.TransfersFailed)
	a.EqualValues(3072, summary.TotalBytesTransferred)
}

func TestEndOfJobSummaryMissing(t *testing.T) {
	_, err := ParseJsonOutput(`{"MessageType":"Info","MessageContent":"hi"}`).EndOfJobSummary()
	assert.Error(t, err)
}

func TestOutputMessageTypeParse(t *testing.T) {
	var mt OutputMessageType
	assert.NoError(t, mt.Parse("EndOfJob"))
	assert.Equal(t, EOutputMessageType.EndOfJob(), mt)
	assert.Equal(t, "ListSummary", EOutputMessageType.ListSummary().String())

	unknown := JsonOutputTemplate{MessageType: "Dryrun"}
	assert.Equal(t, EOutputMessageType.Info(), unknown.Type())
}
