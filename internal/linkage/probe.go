package linkage

import (
	"bytes"
	"debug/macho"
	"fmt"
	"os"
)

// Probe inspects the executable at path and returns its Linkage report.
// Every format-specific parser is wrapped in a panic boundary: a failing
// probe never aborts the caller, it becomes an entry in Result.Errors.
func Probe(path string) *Result {
	format, err := sniffFormat(path)
	if err != nil {
		return &Result{Errors: []string{fmt.Sprintf("sniff format for %s: %v", path, err)}}
	}

	switch format {
	case formatMachO:
		return probeMachO(path)
	case formatPE:
		return probePE(path)
	case formatELF:
		return probeELF(path)
	default:
		return &Result{Errors: []string{fmt.Sprintf("%s: unrecognized executable format", path)}}
	}
}

type binaryFormat int

const (
	formatUnknown binaryFormat = iota
	formatMachO
	formatPE
	formatELF
)

func sniffFormat(path string) (binaryFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return formatUnknown, err
	}
	defer f.Close()

	var magic [4]byte
	if _, err := f.Read(magic[:]); err != nil {
		return formatUnknown, err
	}

	switch {
	case bytes.Equal(magic[:], []byte{0x7f, 'E', 'L', 'F'}):
		return formatELF, nil
	case magic[0] == 'M' && magic[1] == 'Z':
		return formatPE, nil
	case isMachOMagic(magic):
		return formatMachO, nil
	default:
		return formatUnknown, nil
	}
}

func isMachOMagic(magic [4]byte) bool {
	v := uint32(magic[0]) | uint32(magic[1])<<8 | uint32(magic[2])<<16 | uint32(magic[3])<<24
	switch v {
	case macho.Magic32, macho.Magic64, macho.MagicFat:
		return true
	default:
		// big-endian byte order variants
		be := uint32(magic[3]) | uint32(magic[2])<<8 | uint32(magic[1])<<16 | uint32(magic[0])<<24
		switch be {
		case macho.Magic32, macho.Magic64, macho.MagicFat:
			return true
		default:
			return false
		}
	}
}

// recoverInto converts a panic inside a format parser into a Result
// error, per the probe's defensive-isolation design note.
func recoverInto(res *Result, context string) {
	if r := recover(); r != nil {
		res.addError("%s: %v", context, r)
	}
}
