package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fanforge/fanforge/internal/configuration"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

// Chip is a hwmon device exposing at least one temperature input
type Chip struct {
	Name     string
	Platform string
	Path     string

	Inputs []TempInput
}

// TempInput is a single tempX_input of a chip
type TempInput struct {
	Index int
	Label string
	// Path of the tempX_input file
	Path  string
	Value float64
	Max   float64
	Min   float64
}

// GetChips lists all lm-sensors chips with temperature inputs
func GetChips() []*Chip {
	gosensors.Init()
	defer gosensors.Cleanup()
	detected := gosensors.GetDetectedChips()

	var list []*Chip
	for i := 0; i < len(detected); i++ {
		chip := detected[i]

		identifier := computeIdentifier(chip)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		inputs := GetTempInputs(chip)
		if len(inputs) <= 0 {
			continue
		}

		list = append(list, &Chip{
			Name:     identifier,
			Platform: platform,
			Path:     chip.Path,
			Inputs:   inputs,
		})
	}

	return list
}

func GetTempInputs(chip gosensors.Chip) []TempInput {
	var inputs []TempInput

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subfeatures := feature.GetSubFeatures()
		inputSubFeature, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}

		input := TempInput{
			Index: len(inputs) + 1,
			Label: getLabel(chip.Path, inputSubFeature.Name),
			Path:  filepath.Join(chip.Path, inputSubFeature.Name),
			Value: inputSubFeature.GetValue(),
			Max:   -1,
			Min:   -1,
		}
		if maxSubFeature, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempMax); ok {
			input.Max = maxSubFeature.GetValue()
		}
		if minSubFeature, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempMin); ok {
			input.Min = minSubFeature.GetValue()
		}

		inputs = append(inputs, input)
	}

	return inputs
}

// SensorConfig returns a sensor configuration block reading the given input
func SensorConfig(chip *Chip, input TempInput) configuration.SensorConfig {
	return configuration.SensorConfig{
		ID: sensorId(chip.Name, input.Label),
		HwMon: &configuration.HwMonSensorConfig{
			Path: input.Path,
		},
	}
}

var nonIdChars = regexp.MustCompile(`[^a-z0-9]+`)

func sensorId(chipName string, label string) string {
	id := strings.ToLower(chipName + "_" + label)
	return strings.Trim(nonIdChars.ReplaceAllString(id, "_"), "_")
}

func findSubFeature(subfeatures []gosensors.SubFeature, subFeatureType gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subfeatures {
		if a.Type == subFeatureType {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

// getLabel read the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(filepath.Join(devicePath, input), "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = strings.TrimSuffix(input, "_input")
	}
	return label
}

func getDeviceName(devicePath string) string {
	content, _ := os.ReadFile(filepath.Join(devicePath, "name"))
	return strings.TrimSpace(string(content))
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = getDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}

func findPlatform(devicePath string) string {
	platformRegex := regexp.MustCompile(`/platform/([^/]+)/`)
	match := platformRegex.FindStringSubmatch(devicePath)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
