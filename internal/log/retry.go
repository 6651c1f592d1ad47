// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"github.com/apex/log"
)

// RetryLogger adapts Apex to the leveled logger interface used by
// go-retryablehttp. Key/value pairs become entry fields.
type RetryLogger struct{}

func (RetryLogger) Error(msg string, keysAndValues ...interface{}) {
	entry(keysAndValues).Error(msg)
}

func (RetryLogger) Info(msg string, keysAndValues ...interface{}) {
	entry(keysAndValues).Info(msg)
}

// Debug maps to Debug, the chatty per-attempt messages land here.
func (RetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	entry(keysAndValues).Debug(msg)
}

func (RetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	entry(keysAndValues).Warn(msg)
}

func entry(kv []interface{}) *log.Entry {
	fields := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = kv[i+1]
	}
	return log.WithFields(fields)
}
