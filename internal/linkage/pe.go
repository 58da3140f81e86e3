package linkage

import "debug/pe"

// probePE parses a Windows PE import table and lists the imported DLL
// names. No package attribution is attempted — the spec only asks for a
// flat DLL listing on Windows.
func probePE(path string) (res *Result) {
	res = &Result{}
	defer recoverInto(res, "pe probe panicked")

	f, err := pe.Open(path)
	if err != nil {
		res.addError("open pe %s: %v", path, err)
		return res
	}
	defer f.Close()

	names, err := f.ImportedLibraries()
	if err != nil {
		res.addError("read pe import table for %s: %v", path, err)
		return res
	}

	res.Other = append(res.Other, names...)
	return res
}
