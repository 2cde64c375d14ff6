package fans

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fanforge/fanforge/internal/util"
)

const cmdTimeout = 2 * time.Second

// CmdOutput invokes an executable with the level appended as last argument
type CmdOutput struct {
	Exec string
	Args []string
}

func (output CmdOutput) GetId() string {
	return "cmd:" + output.Exec
}

func (output CmdOutput) SetLevel(level float64) error {
	args := append(append([]string{}, output.Args...), strconv.FormatFloat(clampLevel(level), 'f', 4, 64))
	if _, err := util.SafeCmdExecution(output.Exec, args, cmdTimeout); err != nil {
		return fmt.Errorf("output %s: %w", output.GetId(), err)
	}
	return nil
}

func (output CmdOutput) Close() error {
	return nil
}
