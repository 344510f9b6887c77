package preferences

import (
	"fmt"
	"strconv"
	"strings"
)

// Choice lists offered by the settings pickers.
var (
	IntervalChoices        = []int{15, 30, 45, 60, 90, 120}
	SnoozeChoices          = []int{5, 10, 15}
	StretchDurationChoices = []int{15, 20, 30, 45, 60}
	RestIntervalChoices    = []int{3, 5, 10}
	PerSessionChoices      = []int{3, 5, 7, 10}
)

// Option is one entry of a picker.
type Option struct {
	Value int
	Label string
}

// Options labels choices with unit. A current value missing from choices is
// kept so loading a hand-edited file does not silently change it.
func Options(choices []int, current int, unit string) []Option {
	values := append([]int(nil), choices...)
	if !contains(values, current) && current > 0 {
		values = insertSorted(values, current)
	}
	options := make([]Option, 0, len(values))
	for _, value := range values {
		options = append(options, Option{Value: value, Label: formatValue(value, unit)})
	}
	return options
}

// Labels returns the option labels in order.
func Labels(options []Option) []string {
	labels := make([]string, 0, len(options))
	for _, option := range options {
		labels = append(labels, option.Label)
	}
	return labels
}

// LabelFor returns the label for value.
func LabelFor(options []Option, value int) string {
	for _, option := range options {
		if option.Value == value {
			return option.Label
		}
	}
	return ""
}

// ValueFor parses a label produced by Options.
func ValueFor(options []Option, label string) (int, bool) {
	for _, option := range options {
		if option.Label == label {
			return option.Value, true
		}
	}
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, false
	}
	value, err := strconv.Atoi(fields[0])
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func formatValue(value int, unit string) string {
	if unit == "" {
		return strconv.Itoa(value)
	}
	return fmt.Sprintf("%d %s", value, unit)
}

func contains(values []int, target int) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func insertSorted(values []int, value int) []int {
	for index, existing := range values {
		if value < existing {
			values = append(values[:index], append([]int{value}, values[index:]...)...)
			return values
		}
	}
	return append(values, value)
}
