package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values. Keys use dot notation, for
example:

  virta config set llm.api_key sk-...
  virta config set llm.model gpt-4o-mini
  virta config set answer.match_limit 5
  virta config get llm.model`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	if args[0] == "llm.api_key" {
		cmd.Println(maskSecret(fmt.Sprint(val)))
		return nil
	}
	cmd.Println(val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	// Store numbers and booleans typed so TOML round-trips them.
	var value any = raw
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = n
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println(configStore.Path())
	return nil
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
