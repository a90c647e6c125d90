package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetDataDir(t *testing.T) {
	conf := NewDefaultConfig()

	conf.SetDataDir("/tmp/journal")

	if conf.ChainFile() != filepath.Join("/tmp/journal", DefaultChainFile) {
		t.Fatalf("unexpected ChainFile %s", conf.ChainFile())
	}
	if conf.DatabaseDir != filepath.Join("/tmp/journal", DefaultBadgerFile) {
		t.Fatalf("default DatabaseDir should follow DataDir, got %s", conf.DatabaseDir)
	}

	conf.DatabaseDir = "/var/db"
	conf.SetDataDir("/tmp/other")
	if conf.DatabaseDir != "/var/db" {
		t.Fatalf("explicit DatabaseDir should not change, got %s", conf.DatabaseDir)
	}
}

func TestLogLevel(t *testing.T) {
	testCases := map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"bogus": logrus.DebugLevel,
	}
	for s, l := range testCases {
		if LogLevel(s) != l {
			t.Fatalf("LogLevel(%s) should be %v, not %v", s, l, LogLevel(s))
		}
	}
}

func TestLogFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "blockjournal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	conf := NewDefaultConfig()
	conf.LogLevel = "debug"
	conf.LogFile = filepath.Join(dir, "node")

	logger := conf.Logger()
	logger.Logger.Out = ioutil.Discard

	logger.Info("hello info")
	logger.Debug("hello debug")

	info, err := ioutil.ReadFile(conf.LogFile + ".info.log")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(info), "hello info") {
		t.Fatalf("info log should contain the info message: %s", info)
	}

	debug, err := ioutil.ReadFile(conf.LogFile + ".debug.log")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(debug), "hello debug") {
		t.Fatalf("debug log should contain the debug message: %s", debug)
	}
	if strings.Contains(string(debug), "hello info") {
		t.Fatalf("debug log should not contain the info message")
	}
}
