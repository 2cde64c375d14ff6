package fans

import (
	"fmt"
	"math"

	"github.com/fanforge/fanforge/internal/util"
)

// DefaultFileMax matches the range of hwmon pwmX files
const DefaultFileMax = 255

// FileOutput writes round(level * Max) to a file
type FileOutput struct {
	Path string
	Max  int
}

func (output FileOutput) GetId() string {
	return "file:" + output.Path
}

func (output FileOutput) SetLevel(level float64) error {
	filePath, err := util.ExpandHome(output.Path)
	if err != nil {
		return err
	}
	value := int(math.Round(clampLevel(level) * float64(output.Max)))
	if err := util.WriteIntToFile(value, filePath); err != nil {
		return fmt.Errorf("output %s: %w", output.GetId(), err)
	}
	return nil
}

func (output FileOutput) Close() error {
	return nil
}
