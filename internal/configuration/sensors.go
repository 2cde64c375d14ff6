package configuration

type SensorConfig struct {
	ID      string               `json:"id"`
	HwMon   *HwMonSensorConfig   `json:"hwMon,omitempty"`
	File    *FileSensorConfig    `json:"file,omitempty"`
	Cmd     *CmdSensorConfig     `json:"cmd,omitempty"`
	Virtual *VirtualSensorConfig `json:"virtual,omitempty"`
}

// HwMonSensorConfig points to a hwmon tempX_input file (milli-degrees)
type HwMonSensorConfig struct {
	Path string `json:"path"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type VirtualSensorConfig struct {
	Value float64 `json:"value"`
}
