package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestParseCLIFlagsGlobalOptions(t *testing.T) {
	opts, err := parseCLIFlags([]string{
		"-config", "/etc/sdkget.toml",
		"-sdkm-config", "/opt/sdkm/sdkm_config.json",
		"-product-category", "JetPack",
		"-target-os", "Linux",
		"-release", "JetPack 6.0",
		"-debug",
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if opts.configPath != "/etc/sdkget.toml" {
		t.Fatalf("unexpected config path: %s", opts.configPath)
	}
	if opts.sdkmConfigPath != "/opt/sdkm/sdkm_config.json" {
		t.Fatalf("unexpected sdkm config path: %s", opts.sdkmConfigPath)
	}
	if opts.productCategory != "JetPack" || opts.targetOS != "Linux" || opts.release != "JetPack 6.0" {
		t.Fatalf("selector flags lost: %+v", opts)
	}
	if !opts.debug || !opts.levelFromCLI {
		t.Fatalf("debug flag should mark level as CLI-driven: %+v", opts)
	}
	if opts.command != "" {
		t.Fatalf("no subcommand given, got %q", opts.command)
	}
}

func TestParseCLIFlagsConfigEnvFallback(t *testing.T) {
	t.Setenv("SDKGET_CONFIG", "/env/config.toml")

	opts, err := parseCLIFlags(nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if opts.configPath != "/env/config.toml" {
		t.Fatalf("env fallback ignored: %s", opts.configPath)
	}

	opts, err = parseCLIFlags([]string{"-config", "/flag/config.toml"})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if opts.configPath != "/flag/config.toml" {
		t.Fatalf("flag should beat env: %s", opts.configPath)
	}
}

func TestParseCLIFlagsLevelUntouchedWithoutFlags(t *testing.T) {
	opts, err := parseCLIFlags([]string{"-release", "x"})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if opts.levelFromCLI {
		t.Fatalf("log level should stay config-driven without -quiet/-debug/-verbose")
	}
}

func TestParseCLIFlagsSubcommandSelectors(t *testing.T) {
	opts, err := parseCLIFlags([]string{
		"fetch",
		"-section", "sec-target",
		"-group", "grp-cuda",
		"-component", "comp-a",
		"-component", "comp-b",
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if opts.command != "fetch" {
		t.Fatalf("unexpected command: %s", opts.command)
	}
	if !reflect.DeepEqual(opts.selection.Sections, []string{"sec-target"}) {
		t.Fatalf("unexpected sections: %v", opts.selection.Sections)
	}
	if !reflect.DeepEqual(opts.selection.Groups, []string{"grp-cuda"}) {
		t.Fatalf("unexpected groups: %v", opts.selection.Groups)
	}
	if !reflect.DeepEqual(opts.selection.Components, []string{"comp-a", "comp-b"}) {
		t.Fatalf("repeatable -component lost values: %v", opts.selection.Components)
	}
}

func TestParseCLIFlagsRejectsUnknownCommand(t *testing.T) {
	if _, err := parseCLIFlags([]string{"install"}); err == nil {
		t.Fatalf("unknown subcommand must be rejected")
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	origOut := stdOut
	stdOut = &out
	defer func() { stdOut = origOut }()

	if code := run(cliOptions{showVersion: true}); code != 0 {
		t.Fatalf("unexpected exit code: %d", code)
	}
	if !strings.HasPrefix(out.String(), "sdkget ") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestRunMissingCommand(t *testing.T) {
	var errOut bytes.Buffer
	origErr := stdErr
	stdErr = &errOut
	defer func() { stdErr = origErr }()

	opts := cliOptions{quiet: true, levelFromCLI: true}
	if code := run(opts); code != 2 {
		t.Fatalf("missing subcommand should exit 2, got %d", code)
	}
	if !strings.Contains(errOut.String(), "子命令") {
		t.Fatalf("expected usage hint, got %q", errOut.String())
	}
}

func TestRunCheckConfig(t *testing.T) {
	opts := cliOptions{checkOnly: true, quiet: true, levelFromCLI: true}
	if code := run(opts); code != 0 {
		t.Fatalf("check-config with defaults should succeed, got %d", code)
	}
}
