package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// fakePip answers `pip list` from $FAKE_PIP_SITE/list.json and `pip show NAME...` from
// $FAKE_PIP_SITE/NAME.txt, warning on stderr for names without a file like pip does.
const fakePip = `#!/bin/sh
site="$FAKE_PIP_SITE"
cmd="$1"
shift
case "$cmd" in
list)
	cat "$site/list.json"
	;;
show)
	first=1
	for name in "$@"; do
		case "$name" in
		-*) continue ;;
		esac
		if [ ! -f "$site/$name.txt" ]; then
			echo "WARNING: Package(s) not found: $name" >&2
			continue
		fi
		[ "$first" = 1 ] || echo "---"
		first=0
		cat "$site/$name.txt"
	done
	;;
*)
	echo "unsupported pip command: $cmd" >&2
	exit 2
	;;
esac
`

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"pipdeps": main,
	})
}

func TestScripts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake pip relies on a POSIX shell")
	}

	testscript.Run(t, testscript.Params{
		Dir:   filepath.Join("testdata", "script"),
		Setup: setupScript,
	})
}

func setupScript(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Join(env.WorkDir, ".bin")
	if err := os.MkdirAll(binDir, 0o750); err != nil {
		return err
	}
	pip := filepath.Join(binDir, "pip")
	//nolint:gosec // the fake pip must be executable
	if err := os.WriteFile(pip, []byte(fakePip), 0o755); err != nil {
		return err
	}

	env.Setenv("PIPDEPS_PIP", pip)
	env.Setenv("FAKE_PIP_SITE", filepath.Join(env.WorkDir, "site"))
	return nil
}
