package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"syscall"
)

// execOrRun replaces the current process with argv, or runs it as a child wired
// to the terminal when replace is false.
func execOrRun(argv []string, replace bool) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	if replace {
		path, err := exec.LookPath(argv[0])
		if err != nil {
			return fmt.Errorf("command not found: %s", argv[0])
		}
		return syscall.Exec(path, argv, os.Environ())
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

var shellUnsafe = regexp.MustCompile(`[^\w@%+=:,./-]`)

// shellQuoteCmd renders argv as a line that can be pasted into sh.
func shellQuoteCmd(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, a := range argv {
		if a == "" {
			quoted = append(quoted, "''")
			continue
		}
		if shellUnsafe.MatchString(a) {
			quoted = append(quoted, "'"+strings.ReplaceAll(a, "'", `'"'"'`)+"'")
		} else {
			quoted = append(quoted, a)
		}
	}
	return strings.Join(quoted, " ")
}

func exitCodeFromErr(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if status, ok := ee.Sys().(syscall.WaitStatus); ok {
			return status.ExitStatus()
		}
	}
	return 1
}
