// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// CONAN_CLEANUP_LOG env variable. Warnings are on by default because skipped
// manifests and failed removals are reported through them.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("CONAN_CLEANUP_LOG"))
	if level == "" {
		level = "WARN"
	}
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.WarnLevel)
		log.Warnf("unknown log level %q, using WARN", level)
		return
	}
	log.SetLevel(lvl)
}

// CustomHandler formats log messages and writes them to Writer, or stderr
// when Writer is nil.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintf(w, "%s %.1s %s%s\n", timestamp, level, e.Message, fields.String())
	return err
}
