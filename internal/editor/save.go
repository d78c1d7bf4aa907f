package editor

import (
	"github.com/kobzarvs/vedit/internal/fileio"
	"github.com/kobzarvs/vedit/internal/logger"
)

// save writes the buffer to the current file, asking for a name first when
// there is none. It reports whether the buffer reached the disk.
func (e *Editor) save() bool {
	if e.filename == "" {
		name, ok := e.prompt("Enter a filename: %s")
		if !ok || name == "" {
			e.setStatus("Failed to save. Invalid file name.")
			return false
		}
		e.filename = name
	}
	e.filetype = fileio.DetectFiletype(e.filename, e.languages)

	data := e.buf.Serialize()
	n, err := e.writeFile(e.filename, data)
	if err != nil {
		e.setStatus("Failed to save: %s", err)
		logger.Error("save failed", "path", e.filename, "error", err)
		return false
	}
	e.buf.ResetDirty()
	e.setStatus("%d bytes written to %s", n, e.filename)
	logger.Info("saved", "path", e.filename, "bytes", n)
	return true
}
