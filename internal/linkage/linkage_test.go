package linkage

import (
	"debug/macho"
	"os"
	"path/filepath"
	"testing"
)

func TestSniffFormatELF(t *testing.T) {
	path := writeTempFile(t, append([]byte{0x7f, 'E', 'L', 'F'}, make([]byte, 12)...))
	format, err := sniffFormat(path)
	if err != nil {
		t.Fatalf("sniffFormat: %v", err)
	}
	if format != formatELF {
		t.Fatalf("expected formatELF, got %v", format)
	}
}

func TestSniffFormatPE(t *testing.T) {
	path := writeTempFile(t, append([]byte{'M', 'Z'}, make([]byte, 14)...))
	format, err := sniffFormat(path)
	if err != nil {
		t.Fatalf("sniffFormat: %v", err)
	}
	if format != formatPE {
		t.Fatalf("expected formatPE, got %v", format)
	}
}

func TestSniffFormatMachO(t *testing.T) {
	magic := []byte{0, 0, 0, 0}
	magic[0] = byte(macho.Magic64 & 0xff)
	magic[1] = byte((macho.Magic64 >> 8) & 0xff)
	magic[2] = byte((macho.Magic64 >> 16) & 0xff)
	magic[3] = byte(macho.Magic64 >> 24)
	path := writeTempFile(t, append(magic, make([]byte, 12)...))
	format, err := sniffFormat(path)
	if err != nil {
		t.Fatalf("sniffFormat: %v", err)
	}
	if format != formatMachO {
		t.Fatalf("expected formatMachO, got %v", format)
	}
}

func TestSniffFormatUnknown(t *testing.T) {
	path := writeTempFile(t, []byte{0x01, 0x02, 0x03, 0x04})
	format, err := sniffFormat(path)
	if err != nil {
		t.Fatalf("sniffFormat: %v", err)
	}
	if format != formatUnknown {
		t.Fatalf("expected formatUnknown, got %v", format)
	}
}

func TestProbeUnrecognizedFormatRecordsError(t *testing.T) {
	path := writeTempFile(t, []byte{0x01, 0x02, 0x03, 0x04})
	res := Probe(path)
	if len(res.Errors) == 0 {
		t.Fatalf("expected an error for unrecognized format, got none")
	}
}

func TestProbeMissingFileRecordsError(t *testing.T) {
	res := Probe(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(res.Errors) == 0 {
		t.Fatalf("expected an error for missing file, got none")
	}
}

func TestRecoverIntoCapturesPanic(t *testing.T) {
	res := &Result{}
	func() {
		defer recoverInto(res, "test panic")
		panic("boom")
	}()
	if len(res.Errors) != 1 {
		t.Fatalf("expected one recorded error, got %d", len(res.Errors))
	}
}

func TestClassifyMachODylib(t *testing.T) {
	res := &Result{}
	classifyMachODylib(res, "/usr/lib/libSystem.B.dylib", "")
	classifyMachODylib(res, "/System/Library/Frameworks/CoreFoundation.framework/Versions/A/CoreFoundation", "")
	classifyMachODylib(res, "/opt/local/lib/libfoo.dylib", "")

	if len(res.System) != 1 {
		t.Fatalf("expected 1 system entry, got %d", len(res.System))
	}
	if len(res.PublicFramework) != 1 {
		t.Fatalf("expected 1 public framework entry, got %d", len(res.PublicFramework))
	}
	if len(res.Other) != 1 {
		t.Fatalf("expected 1 other entry, got %d", len(res.Other))
	}
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bin")
	if err := os.WriteFile(path, data, 0o755); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
