package smoketest

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

func jsonLine(t *testing.T, messageType string, content interface{}) string {
	t.Helper()
	var text string
	if s, ok := content.(string); ok {
		text = s
	} else {
		b, err := json.Marshal(content)
		require.NoError(t, err)
		text = string(b)
	}
	b, err := json.Marshal(common.JsonOutputTemplate{TimeStamp: time.Now().UTC(), MessageType: messageType, MessageContent: text})
	require.NoError(t, err)
	return string(b)
}

func endOfJob(status string, completed, failed int) map[string]string {
	return map[string]string{
		"JobID":              "6b3b5a1e-0000-0000-0000-000000000000",
		"JobStatus":          status,
		"TotalTransfers":     strconv.Itoa(completed + failed),
		"TransfersCompleted": strconv.Itoa(completed),
		"TransfersFailed":    strconv.Itoa(failed),
		"TransfersSkipped":   "0",
	}
}

func TestAzCopyCommandArgs(t *testing.T) {
	cmd := NewAzCopyCommand("copy", "/tmp/src", "https://acct.blob.core.windows.net/c?sig=x").
		SetFlag("recursive", true).
		SetFlag("block-size-mb", 4).
		SetFlag("put-md5", true)

	assert.Equal(t, []string{
		"copy", "/tmp/src", "https://acct.blob.core.windows.net/c?sig=x",
		"--block-size-mb=4", "--put-md5=true", "--recursive=true", "--output-type=json",
	}, cmd.Args())

	assert.Equal(t, []string{"jobs", "list", "--output-type=json"}, NewAzCopyCommand("jobs list").Args())
}

func TestAzCopyResultExpectations(t *testing.T) {
	a := assert.New(t)
	out := strings.Join([]string{
		"INFO: not json",
		jsonLine(t, "Init", map[string]string{"JobID": "x"}),
		jsonLine(t, "Progress", endOfJob("InProgress", 0, 0)),
		jsonLine(t, "EndOfJob", endOfJob("Completed", 3, 0)),
	}, "\n")

	result := &AzCopyResult{Command: "azcopy copy", Output: common.ParseJsonOutput(out)}
	a.NoError(result.ExpectSuccess())
	a.NoError(result.ExpectJobCompleted(3))
	a.NoError(result.ExpectJobCompleted(-1))
	a.Error(result.ExpectJobCompleted(4))
	a.Error(result.ExpectFailure())

	failed := &AzCopyResult{
		Command:  "azcopy copy",
		ExitCode: 1,
		Output: common.ParseJsonOutput(jsonLine(t, "Error", "failed to perform copy command") + "\n" +
			jsonLine(t, "EndOfJob", endOfJob("CompletedWithErrors", 1, 1))),
	}
	a.NoError(failed.ExpectFailure())
	err := failed.ExpectJobCompleted(-1)
	a.Error(err)
	a.Contains(err.Error(), "exit code 1")
	a.Contains(err.Error(), "failed to perform copy command")

	withErrors := &AzCopyResult{Output: common.ParseJsonOutput(jsonLine(t, "EndOfJob", endOfJob("CompletedWithErrors", 1, 1)))}
	a.NoError(withErrors.ExpectFailure())
	a.Error(withErrors.ExpectJobCompleted(-1))

	noSummary := &AzCopyResult{}
	a.Error(noSummary.ExpectJobCompleted(-1))
}

func TestAzCopyRunnerExecutesBinary(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	line := jsonLine(t, "EndOfJob", endOfJob("Completed", 1, 0))
	script := writeScript(t, dir, "azcopy", `echo "$1" 1>&2
echo "account=$ACCOUNT_NAME" 1>&2
printf '%s\n' '`+line+`'`)

	runner := &AzCopyRunner{Path: script, Dir: dir, Env: []string{"ACCOUNT_NAME=smokeacct"}}
	result, err := runner.Run(context.Background(), NewAzCopyCommand("copy", "a", "b"))
	require.NoError(t, err)

	a.Equal(0, result.ExitCode)
	a.Contains(result.Stderr, "copy")
	a.Contains(result.Stderr, "account=smokeacct")
	a.NoError(result.ExpectJobCompleted(1))
}

func TestAzCopyRunnerReportsExitCode(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "azcopy", "exit 3")

	result, err := (&AzCopyRunner{Path: script, Dir: dir}).Run(context.Background(), NewAzCopyCommand("copy"))
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.NoError(t, result.ExpectFailure())
}

func TestAzCopyRunnerMissingBinary(t *testing.T) {
	_, err := (&AzCopyRunner{Path: "/definitely/not/azcopy"}).Run(context.Background(), NewAzCopyCommand("copy"))
	assert.Error(t, err)
}
