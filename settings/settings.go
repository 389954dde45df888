package settings

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LineNumberMode is the policy applied to program line labels
type LineNumberMode int

const (
	Optional  LineNumberMode = iota // any label 0..limit, absent is 0, no ordering
	Implied                         // absent is previous+1, strictly ascending
	Mandatory                       // every line needs a label, strictly ascending
)

// DefaultLineLimit is the largest label accepted unless told otherwise
const DefaultLineLimit = 32767

var modeNames = []string{"optional", "implied", "mandatory"}

func (m LineNumberMode) String() string {
	if m < Optional || m > Mandatory {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode accepts any leading part of a mode name, "imp" is implied
func ParseMode(s string) (LineNumberMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > 0 {
		for i, nm := range modeNames {
			if strings.HasPrefix(nm, s) {
				return LineNumberMode(i), nil
			}
		}
	}
	return Optional, fmt.Errorf("unknown line number mode %q", s)
}

// ParseComments turns enabled/disabled, again by prefix, into a bool
func ParseComments(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > 0 {
		if strings.HasPrefix("enabled", s) {
			return true, nil
		}
		if strings.HasPrefix("disabled", s) {
			return false, nil
		}
	}
	return true, fmt.Errorf("unknown comments setting %q", s)
}

// Options steer the parser's label and comment handling
type Options struct {
	LineNumbers LineNumberMode
	LineLimit   int
	Comments    bool
}

// Default returns the out of the box options
func Default() Options {
	return Options{
		LineNumbers: Optional,
		LineLimit:   DefaultLineLimit,
		Comments:    true,
	}
}

// what the options file looks like
type fileOptions struct {
	LineNumbers string `yaml:"line_numbers"`
	LineLimit   *int   `yaml:"line_limit"`
	Comments    string `yaml:"comments"`
}

// Decode applies the yaml text in data over opts, keys left out keep their value
func Decode(data []byte, opts *Options) error {
	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return err
	}

	if len(fo.LineNumbers) > 0 {
		m, err := ParseMode(fo.LineNumbers)
		if err != nil {
			return err
		}
		opts.LineNumbers = m
	}

	if fo.LineLimit != nil {
		if err := CheckLimit(*fo.LineLimit); err != nil {
			return err
		}
		opts.LineLimit = *fo.LineLimit
	}

	if len(fo.Comments) > 0 {
		c, err := ParseComments(fo.Comments)
		if err != nil {
			return err
		}
		opts.Comments = c
	}

	return nil
}

// Load reads an options file, starting from the defaults
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}

	err = Decode(data, &opts)
	return opts, err
}

// CheckLimit makes sure a line limit is usable
func CheckLimit(limit int) error {
	if limit < 1 || limit > DefaultLineLimit {
		return fmt.Errorf("line limit %d outside 1..%d", limit, DefaultLineLimit)
	}
	return nil
}
