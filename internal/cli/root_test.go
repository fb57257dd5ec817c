package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ingot", cmd.Use)
	assert.Contains(t, cmd.Long, "L5X")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"load", "catalog", "roundtrip"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestLoadCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	loadCmd, _, err := cmd.Find([]string{"load"})
	require.NoError(t, err)

	for _, name := range []string{"catalog", "descriptors", "threshold", "db"} {
		flag := loadCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s should exist", name)
	}
}

func TestCatalogCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	catalogCmd, _, err := cmd.Find([]string{"catalog"})
	require.NoError(t, err)

	dbFlag := catalogCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestRoundtripCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	rtCmd, _, err := cmd.Find([]string{"roundtrip"})
	require.NoError(t, err)

	outputFlag := rtCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "catalog", "."})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
