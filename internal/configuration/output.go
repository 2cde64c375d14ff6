package configuration

type OutputConfig struct {
	// Inverted flips the output polarity, defaults to true
	Inverted DefaultTrueBool `json:"inverted"`

	File    *FileOutputConfig    `json:"file,omitempty"`
	Sysfs   *SysfsOutputConfig   `json:"sysfs,omitempty"`
	Gpio    *GpioOutputConfig    `json:"gpio,omitempty"`
	Cmd     *CmdOutputConfig     `json:"cmd,omitempty"`
	Virtual *VirtualOutputConfig `json:"virtual,omitempty"`
}

// FileOutputConfig writes round(level * Max) to a file, f.ex. a hwmon pwmX file
type FileOutputConfig struct {
	Path string `json:"path"`
	// Max is the raw value written for a level of 1, defaults to 255
	Max int `json:"max"`
}

// SysfsOutputConfig drives a /sys/class/pwm channel
type SysfsOutputConfig struct {
	Chip      string `json:"chip"`
	Channel   int    `json:"channel"`
	Frequency int    `json:"frequency"`
}

// GpioOutputConfig switches a GPIO line on the character device
type GpioOutputConfig struct {
	Chip string `json:"chip"`
	Line int    `json:"line"`
}

// CmdOutputConfig invokes an executable with the level as last argument
type CmdOutputConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

// VirtualOutputConfig keeps the level in memory only. Name is required since
// empty sections are dropped when reading the config file.
type VirtualOutputConfig struct {
	Name string `json:"name"`
}
