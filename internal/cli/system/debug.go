package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show storage path."`
	Keys   DebugKeysCmd   `cmd:"" help:"List stored keys."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump the raw value of a key."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path":       ctx.Store.GetConfigPath(),
		"config_dir": ctx.ConfigDir,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.Println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Key to dump (e.g. cortisol_entries)."`
	Raw bool   `help:"Print the value exactly as stored."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	value, err := ctx.Store.Get(cmd.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no value stored under %s", cmd.Key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}

	if cmd.Raw || !json.Valid([]byte(value)) {
		ctx.Println(value)
		return nil
	}

	var pretty any
	if err := json.Unmarshal([]byte(value), &pretty); err != nil {
		return fmt.Errorf("failed to parse %s: %w", cmd.Key, err)
	}
	jsonBytes, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
