package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Environment variables passed to extensions.
const (
	EnvSource   = "DASH_SOURCE"
	EnvCurrency = "DASH_CURRENCY"
	EnvVerbose  = "DASH_VERBOSE"
)

// RunExtension attempts to find and execute an external dash-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "dash-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv(os.Environ())

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns env with the global flags set, so that extensions read
// the same configuration as dash.
func extensionEnv(env []string) []string {
	if *sourceFlag != "" {
		env = append(env, EnvSource+"="+*sourceFlag)
	}
	if *currencyFlag != "" {
		env = append(env, EnvCurrency+"="+*currencyFlag)
	}
	return append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
}
