package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_Short(t *testing.T) {
	assert.Equal(t, "Ask a question about your documents", askCmd.Short)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_HasTopKFlag(t *testing.T) {
	flag := askCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag, "top-k flag should exist")
	assert.Equal(t, "k", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestAskCmd_HasMaxContextFlag(t *testing.T) {
	flag := askCmd.Flags().Lookup("max-context")
	require.NotNil(t, flag, "max-context flag should exist")
}

func TestAskCmd_HasDocFlag(t *testing.T) {
	flag := askCmd.Flags().Lookup("doc")
	require.NotNil(t, flag, "doc flag should exist")
}

func TestAskCmd_PrintsAnswerAndCitations(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what is this about?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "mock answer to: what is this about?")
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "report.pdf")
	assert.Contains(t, buf.String(), "p. 2")
	assert.Contains(t, buf.String(), "pp. 3-4")
	assert.Contains(t, buf.String(), "0.912")
}

func TestAskCmd_PassesRetrievalOptions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockAnswerService{}
	answerService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "-k", "3", "--max-context", "2000", "--doc", "doc-1", "a question"})
	defer func() {
		rootCmd.SetArgs(nil)
		askTopK = 0
		askMaxContext = 0
		askDocuments = nil
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 3, mock.lastOpts.K)
	assert.Equal(t, 2000, mock.lastOpts.MaxContextChars)
	assert.Equal(t, []string{"doc-1"}, mock.lastOpts.DocumentIDs)
}

func TestAskCmd_SynthesisFailureStillPrintsCitations(t *testing.T) {
	cleanup := failingAnswer()
	defer cleanup()

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs([]string{"ask", "a question"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnswerProvider)
	assert.Contains(t, errOut.String(), "Answer synthesis failed")
	assert.Contains(t, out.String(), "Sources:")
	assert.Contains(t, out.String(), "report.pdf")
}

func TestAskCmd_ServiceNotConfigured(t *testing.T) {
	oldService := answerService
	answerService = nil
	defer func() {
		answerService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "a question"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
