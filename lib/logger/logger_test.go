// Copyright (C) 2014 Jakob Borg. All rights reserved. Use of this source code
// is governed by an MIT-style license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestAPI(t *testing.T) {
	l := newLogger(io.Discard)
	l.SetFlags(0)
	l.SetPrefix("testing")

	debug := 0
	l.AddHandler(LevelDebug, checkFunc(t, LevelDebug, &debug))
	info := 0
	l.AddHandler(LevelInfo, checkFunc(t, LevelInfo, &info))
	warn := 0
	l.AddHandler(LevelWarn, checkFunc(t, LevelWarn, &warn))

	l.Debugf("test %d", 0)
	l.Debugln("test", 0)
	l.Infof("test %d", 1)
	l.Infoln("test", 1)
	l.Warnf("test %d", 3)
	l.Warnln("test", 3)

	if debug != 6 {
		t.Errorf("Debug handler called %d != 6 times", debug)
	}
	if info != 4 {
		t.Errorf("Info handler called %d != 4 times", info)
	}
	if warn != 2 {
		t.Errorf("Warn handler called %d != 2 times", warn)
	}
}

func checkFunc(t *testing.T, expectl LogLevel, counter *int) func(LogLevel, string) {
	return func(l LogLevel, msg string) {
		*counter++
		if l < expectl {
			t.Errorf("Incorrect message level %d < %d", l, expectl)
		}
	}
}

func TestFacilityDebugging(t *testing.T) {
	t.Setenv(TraceEnv, "beacon, discover")

	var buf bytes.Buffer
	l := newLogger(&buf)

	traced := l.NewFacility("discover", "Discovery")
	quiet := l.NewFacility("ssdp", "Messages")

	traced.Debugln("visible")
	quiet.Debugln("hidden")

	out := buf.String()
	if !strings.Contains(out, "DEBUG: visible") {
		t.Errorf("traced facility output missing: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("untraced facility should not log debug: %q", out)
	}

	if got := l.FacilityDebugging(); len(got) != 1 || got[0] != "discover" {
		t.Errorf("unexpected debugging facilities %v", got)
	}
	if len(l.Facilities()) != 2 {
		t.Errorf("expected two facilities, got %v", l.Facilities())
	}

	quiet.SetDebug("ssdp", true)
	quiet.Debugf("now %s", "shown")
	if !strings.Contains(buf.String(), "DEBUG: now shown") {
		t.Error("debug not enabled by SetDebug")
	}
}

func TestTraceAll(t *testing.T) {
	t.Setenv(TraceEnv, "all")
	l := newLogger(io.Discard)
	l.NewFacility("anything", "Anything")
	if !l.ShouldDebug("anything") {
		t.Error("all should enable every facility")
	}
}

func TestControlStripper(t *testing.T) {
	var buf bytes.Buffer
	w := controlStripper{&buf}
	w.Write([]byte("a\x1b[31mb\r\nc\x00"))
	if got := buf.String(); got != "a [31mb\r\nc " {
		t.Errorf("unexpected output %q", got)
	}
}
