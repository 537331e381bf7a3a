package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

var errInterrupted = errors.New("interrupted")

// runInterruptible runs the scan and gives up as soon as SIGINT or SIGTERM
// arrives; partial results are never written
func runInterruptible(cmd *cobra.Command, settings *runSettings) error {
	dupescan.InitLogging(cmd.ErrOrStderr(), settings.verbose, settings.debug)

	shutdown, stop := setupSignalHandler()
	defer stop()

	result := make(chan error, 1)
	go func() {
		result <- runScan(cmd, settings)
	}()

	select {
	case err := <-result:
		return err
	case <-shutdown:
		return errInterrupted
	}
}

// runScan picks the hash value type for the configured algorithm
func runScan(cmd *cobra.Command, settings *runSettings) error {
	switch settings.algorithm {
	case dupescan.AlgorithmXXH3:
		return scanAndWrite(cmd, settings, dupescan.XXH3)
	case dupescan.AlgorithmXXH128:
		return scanAndWrite(cmd, settings, dupescan.XXH128)
	case dupescan.AlgorithmFNV1a:
		return scanAndWrite(cmd, settings, dupescan.FNV1a)
	case dupescan.AlgorithmBLAKE3:
		return scanAndWrite(cmd, settings, dupescan.BLAKE3)
	case dupescan.AlgorithmSHA256:
		return scanAndWrite(cmd, settings, dupescan.SHA256)
	default:
		return fmt.Errorf("%w: %s", dupescan.ErrUnknownAlgorithm, settings.algorithm)
	}
}

func scanAndWrite[H dupescan.HashValue[H]](cmd *cobra.Command, settings *runSettings, alg dupescan.Algorithm[H]) (err error) {
	start := time.Now()
	dupescan.VerboseLog(2, "using %s hashing", alg.Name)

	bag, err := dupescan.Scan(settings.scan, alg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.output != "" {
		file, createErr := dupescan.CreateOutput(settings.output)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output file %s: %w", settings.output, closeErr)
			}
		}()
		out = file
	}

	if err := dupescan.WriteReplicates(out, settings.format, bag.Replicates(settings.factor)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if settings.report {
		if err := printReport(cmd.ErrOrStderr(), dupescan.NewReport(bag)); err != nil {
			return err
		}
	}

	dupescan.VerboseLog(2, "%s elapsed", time.Since(start))
	return nil
}

func printReport(w io.Writer, report dupescan.Report) error {
	if file, ok := w.(*os.File); ok {
		return report.Print(file)
	}
	_, err := fmt.Fprintln(w, report.Render(false))
	return err
}
