package transcriber

import (
	"fmt"
	"os"
)

// ensureReady verifies the whisper binary and model once per process.
// A failed check is cached: later calls fail fast instead of re-probing.
func (t *implTranscriber) ensureReady() error {
	t.initOnce.Do(func() {
		if _, err := t.executor.LookPath(t.cfg.Whisper.BinaryPath); err != nil {
			t.initErr = fmt.Errorf("whisper binary %s not found: %w", t.cfg.Whisper.BinaryPath, err)
			return
		}

		info, err := os.Stat(t.cfg.Whisper.ModelPath)
		if err != nil {
			t.initErr = fmt.Errorf("whisper model %s: %w", t.cfg.Whisper.ModelPath, err)
			return
		}
		if info.Size() == 0 {
			t.initErr = fmt.Errorf("whisper model %s is empty", t.cfg.Whisper.ModelPath)
		}
	})
	return t.initErr
}
