package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	// Log levels
	INFO = iota
	ERROR
	DEBUG
)

var (
	logMut      sync.Mutex
	logFilePath = filepath.Join(
		APP_PATH,
		"logs",
		fmt.Sprintf(
			"inkline-cli_v%s_%s.log",
			VERSION,
			time.Now().Format("2006-01-02"),
		),
	)
)

// Thread-safe logging function that appends to the daily log file in the logs directory
func LogError(err error, errorMsg string, exit bool, lvl int) {
	if err == nil && errorMsg == "" {
		return
	}

	logMut.Lock()
	defer logMut.Unlock()

	os.MkdirAll(filepath.Dir(logFilePath), 0755)
	f, fileErr := os.OpenFile(
		logFilePath,
		os.O_WRONLY|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if fileErr != nil {
		fileErr = fmt.Errorf(
			"error opening log file: %v\nlog file path: %s",
			fileErr,
			logFilePath,
		)
		log.Println(color.RedString(fileErr.Error()))
		return
	}
	defer f.Close()

	var lvlPrefix string
	switch lvl {
	case INFO:
		lvlPrefix = "INFO"
	case DEBUG:
		lvlPrefix = "DEBUG"
	default:
		lvlPrefix = "ERROR"
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	if err != nil {
		fmt.Fprintf(f, "%s [%s]: %v\n", now, lvlPrefix, err)
		if errorMsg != "" {
			fmt.Fprintf(f, "Additional info: %v\n", errorMsg)
		}
	} else {
		fmt.Fprintf(f, "%s [%s]: %v\n", now, lvlPrefix, errorMsg)
	}
	fmt.Fprintln(f)

	if exit {
		if err != nil {
			color.Red(err.Error())
		} else {
			color.Red(errorMsg)
		}
		os.Exit(1)
	}
}

// Uses the thread-safe LogError() function to log a channel of errors or a slice of errors
//
// Also returns whether any of the errors were context.Canceled, which is caused by Ctrl + C.
func LogErrors(exit bool, errChan chan error, lvl int, errs ...error) bool {
	if errChan != nil && len(errs) > 0 {
		panic(
			fmt.Sprintf(
				"error %d: cannot pass both an error channel and a slice of errors to LogErrors()",
				DEV_ERROR,
			),
		)
	}

	hasCanceled := false
	if errChan != nil {
		for err := range errChan {
			if errors.Is(err, context.Canceled) {
				hasCanceled = true
				continue
			}
			LogError(err, "", exit, lvl)
		}
		return hasCanceled
	}

	for _, err := range errs {
		if errors.Is(err, context.Canceled) {
			hasCanceled = true
			continue
		}
		LogError(err, "", exit, lvl)
	}
	return hasCanceled
}
