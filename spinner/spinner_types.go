// Spinner frames from https://github.com/sindresorhus/cli-spinners/blob/main/spinners.json
package spinner

const (
	REQ_SPINNER = "dots"
	DL_SPINNER  = "aesthetic"
)

type SpinnerInfo struct {
	Interval int64
	Frames   []string
}

var spinnerTypes = map[string]SpinnerInfo{
	"dots": {
		Interval: 80,
		Frames: []string{
			"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏",
		},
	},
	"line": {
		Interval: 130,
		Frames: []string{
			"-", "\\", "|", "/",
		},
	},
	"aesthetic": {
		Interval: 80,
		Frames: []string{
			"▰▱▱▱▱▱▱",
			"▰▰▱▱▱▱▱",
			"▰▰▰▱▱▱▱",
			"▰▰▰▰▱▱▱",
			"▰▰▰▰▰▱▱",
			"▰▰▰▰▰▰▱",
			"▰▰▰▰▰▰▰",
			"▰▱▱▱▱▱▱",
		},
	},
	"material": {
		Interval: 17,
		Frames: []string{
			"█▁▁▁▁▁▁▁▁▁",
			"███▁▁▁▁▁▁▁",
			"█████▁▁▁▁▁",
			"███████▁▁▁",
			"█████████▁",
			"▁█████████",
			"▁▁▁███████",
			"▁▁▁▁▁█████",
			"▁▁▁▁▁▁▁███",
			"▁▁▁▁▁▁▁▁▁█",
		},
	},
}
