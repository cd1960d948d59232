package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// inTempDir runs the test from an empty directory and restores the standard logger afterwards
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	flags, out := log.Flags(), log.Writer()
	t.Cleanup(func() {
		log.SetFlags(flags)
		log.SetOutput(out)
	})
	return dir
}

func readLog(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return data
}

func TestLoggingSilentWithoutDebug(t *testing.T) {
	inTempDir(t)
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("no log file expected without -debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want discard", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("logs directory must not be created without -debug")
	}
}

func TestLoggingWritesStartLineAndAppends(t *testing.T) {
	inTempDir(t)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logDir, logFileName), []byte("previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("log file expected with -debug")
	}
	defer f.Close()
	log.Printf("[MATCH] frame=%d Running -> Paused", 12)

	data := readLog(t)
	if !bytes.HasPrefix(data, []byte("previous run\n")) {
		t.Error("existing small log must be appended to, not replaced")
	}
	for _, want := range []string{"[MAIN] logging started", "[MATCH] frame=12 Running -> Paused"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("log missing %q:\n%s", want, data)
		}
	}
	// Date, time and microseconds prefix each line
	if !regexp.MustCompile(`(?m)^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\.\d{6} \[MAIN\]`).Match(data) {
		t.Errorf("start line lacks timestamp prefix:\n%s", data)
	}
}

func TestLoggingRotatesOversizedFile(t *testing.T) {
	inTempDir(t)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	old := bytes.Repeat([]byte("x"), maxLogSize+1)
	if err := os.WriteFile(filepath.Join(logDir, logFileName), old, 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("log file expected with -debug")
	}
	defer f.Close()

	rotated, err := filepath.Glob(filepath.Join(logDir, "pf-sandbox-*.log"))
	if err != nil || len(rotated) != 1 {
		t.Fatalf("rotated files = %v (%v), want one", rotated, err)
	}
	if !regexp.MustCompile(`pf-sandbox-\d{8}-\d{6}\.log$`).MatchString(rotated[0]) {
		t.Errorf("rotated name = %s, want pf-sandbox-YYYYMMDD-HHMMSS.log", rotated[0])
	}
	if info, err := os.Stat(rotated[0]); err != nil || info.Size() != int64(len(old)) {
		t.Errorf("rotated file should keep the old contents, stat=%v err=%v", info, err)
	}

	data := readLog(t)
	if len(data) > 1024 || !bytes.Contains(data, []byte("[MAIN] logging started")) {
		t.Errorf("fresh log should hold only the start line, got %d bytes", len(data))
	}
}

func TestLoggingFallsBackWhenDirUnusable(t *testing.T) {
	inTempDir(t)
	// A regular file where the directory should be
	if err := os.WriteFile(logDir, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if f := setupLogging(true); f != nil {
		f.Close()
		t.Fatal("no log file expected when logs/ cannot be created")
	}
	if log.Writer() != io.Discard {
		t.Error("logger must stay off the terminal when the file cannot be opened")
	}
}
