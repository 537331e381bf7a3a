package main

import (
	"strconv"

	"github.com/spf13/pflag"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

// sizeValue is a byte size flag such as "4K" or "1GiB"
type sizeValue struct {
	size int64
	set  bool
}

var _ pflag.Value = (*sizeValue)(nil)

func (s *sizeValue) String() string {
	if !s.set {
		return ""
	}
	return strconv.FormatInt(s.size, 10)
}

func (s *sizeValue) Set(value string) error {
	size, err := dupescan.ParseHumanSize(value)
	if err != nil {
		return err
	}
	s.size = size
	s.set = true
	return nil
}

func (s *sizeValue) Type() string {
	return "size"
}

// Ptr returns nil when the flag was never set
func (s *sizeValue) Ptr() *int64 {
	if !s.set {
		return nil
	}
	size := s.size
	return &size
}

// factorValue is a replication factor flag: under:n, equal:n or over:n
type factorValue struct {
	factor dupescan.Factor
}

var _ pflag.Value = (*factorValue)(nil)

func newFactorValue() *factorValue {
	return &factorValue{factor: dupescan.DefaultFactor}
}

func (f *factorValue) String() string {
	return f.factor.String()
}

func (f *factorValue) Set(value string) error {
	factor, err := dupescan.ParseFactor(value)
	if err != nil {
		return err
	}
	f.factor = factor
	return nil
}

func (f *factorValue) Type() string {
	return "factor"
}

// formatValue is an output format flag
type formatValue struct {
	format dupescan.Format
}

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string {
	return f.format.String()
}

func (f *formatValue) Set(value string) error {
	format, err := dupescan.ParseFormat(value)
	if err != nil {
		return err
	}
	f.format = format
	return nil
}

func (f *formatValue) Type() string {
	return "format"
}
