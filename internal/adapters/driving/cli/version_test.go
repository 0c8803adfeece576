package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "docq version dev")
}

func TestSetVersion(t *testing.T) {
	old := version
	defer func() {
		version = old
	}()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	// Empty strings keep the previous value.
	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	verboseFlag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	ownerFlag := rootCmd.PersistentFlags().Lookup("owner")
	assert.NotNil(t, ownerFlag)
	assert.Equal(t, DefaultOwner, ownerFlag.DefValue)
}
