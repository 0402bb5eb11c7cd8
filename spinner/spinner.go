package spinner

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/inklinehq/Inkline-CLI/utils"
)

var colourMap = map[string]color.Attribute{
	"black":       color.FgBlack,
	"red":         color.FgRed,
	"green":       color.FgGreen,
	"yellow":      color.FgYellow,
	"blue":        color.FgBlue,
	"magenta":     color.FgMagenta,
	"cyan":        color.FgCyan,
	"white":       color.FgWhite,
	"fgHiBlack":   color.FgHiBlack,
	"fgHiRed":     color.FgHiRed,
	"fgHiGreen":   color.FgHiGreen,
	"fgHiYellow":  color.FgHiYellow,
	"fgHiBlue":    color.FgHiBlue,
	"fgHiMagenta": color.FgHiMagenta,
	"fgHiCyan":    color.FgHiCyan,
	"fgHiWhite":   color.FgHiWhite,
}

func GetSpinner(spinnerType string) SpinnerInfo {
	if spinner, ok := spinnerTypes[spinnerType]; ok {
		return spinner
	}
	panic(
		fmt.Errorf(
			"error %d: spinner type %s not found",
			utils.DEV_ERROR,
			spinnerType,
		),
	)
}

type Spinner struct {
	Spinner SpinnerInfo

	Colour     *color.Color
	Msg        string
	SuccessMsg string
	ErrMsg     string

	count    int
	maxCount int
	active   bool
	mu       *sync.Mutex
	stop     chan struct{}
}

func New(spinnerType, colour, message, successMsg, errMsg string, maxCount int) *Spinner {
	colourAttribute, ok := colourMap[colour]
	if !ok {
		panic(
			fmt.Errorf(
				"error %d: colour %s not found",
				utils.DEV_ERROR,
				colour,
			),
		)
	}

	return &Spinner{
		Spinner:    GetSpinner(spinnerType),
		Colour:     color.New(colourAttribute),
		Msg:        message,
		SuccessMsg: successMsg,
		ErrMsg:     errMsg,

		count:    0,
		maxCount: maxCount,
		active:   false,
		mu:       &sync.Mutex{},
	}
}

// Starts the spinner
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}

	s.active = true
	s.stop = make(chan struct{}, 1)

	go func() {
		interval := time.Duration(s.Spinner.Interval) * time.Millisecond
		for {
			for _, frame := range s.Spinner.Frames {
				select {
				case <-s.stop:
					return
				default:
					s.mu.Lock()
					msg := s.Msg
					s.mu.Unlock()
					s.Colour.Printf("\r%s %s", frame, msg)
					time.Sleep(interval)
				}
			}
		}
	}()
}

// UpdateMsg changes the message shown beside the spinner frames.
func (s *Spinner) UpdateMsg(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Msg = msg
}

// MsgIncrement increments the spinner's progress counter and
// updates the message with the new count.
//
// The baseMsg should have a %d placeholder for the count,
// e.g. "Downloading files [%d/10]..."
func (s *Spinner) MsgIncrement(baseMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count >= s.maxCount {
		return
	}

	s.count++
	s.Msg = fmt.Sprintf(
		baseMsg,
		s.count,
	)
}

// Stop stops the spinner and prints the outcome message
func (s *Spinner) Stop(hasErr bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	s.active = false
	s.stop <- struct{}{}
	close(s.stop)

	// clear the spinner line before printing the outcome
	fmt.Print("\r\033[K")
	if hasErr {
		if s.ErrMsg != "" {
			color.Red("✗ %s", s.ErrMsg)
		}
	} else {
		if s.SuccessMsg != "" {
			color.Green("✓ %s", s.SuccessMsg)
		}
	}
}

// KillProgram stops the spinner, prints the given message, and exits.
//
// Used after the user has interrupted the program with Ctrl+C.
func (s *Spinner) KillProgram(msg string) {
	s.Stop(true)
	color.Red(msg)
	os.Exit(2)
}
