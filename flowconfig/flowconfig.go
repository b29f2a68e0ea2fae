/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package flowconfig defines the YAML-backed configuration shape for a
// flow-based pipeline: listener bind addresses, per-connector sizing
// defaults, and mux/SSH options, validated with go-playground/validator
// the way the rest of the corpus validates its config structs.
package flowconfig

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	liberr "github.com/nabbar/flow/errors"
)

// ListenerConfig describes one TCP accept-loop.
type ListenerConfig struct {
	Network string `yaml:"network" validate:"required,oneof=tcp tcp4 tcp6"`
	Address string `yaml:"address" validate:"required"`
}

// ShuntConfig carries the sizing knobs every shunt flavor exposes.
type ShuntConfig struct {
	IOBufferSize int `yaml:"io_buffer_size" validate:"omitempty,min=1"`
	QueueLimit   int `yaml:"queue_limit" validate:"omitempty,min=1"`
}

// MuxConfig selects the wire header codec a Serializer/Deserializer pair uses.
type MuxConfig struct {
	HeaderMode string `yaml:"header_mode" validate:"omitempty,oneof=raw cbor"`
}

// SshConfig names the default remote user and dial timeout for SSH
// connect operations that don't specify their own.
type SshConfig struct {
	DefaultUser    string `yaml:"default_user"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"omitempty,min=1"`
}

// Config is the top-level options document for a flow-based process.
type Config struct {
	Listeners []ListenerConfig `yaml:"listeners" validate:"dive"`
	Shunt     ShuntConfig      `yaml:"shunt"`
	Mux       MuxConfig        `yaml:"mux"`
	Ssh       SshConfig        `yaml:"ssh"`
}

// Default returns a Config with the package defaults a zero-value YAML
// document would otherwise leave unset.
func Default() Config {
	return Config{
		Shunt: ShuntConfig{IOBufferSize: 64 * 1024, QueueLimit: 1 << 20},
		Mux:   MuxConfig{HeaderMode: "raw"},
		Ssh:   SshConfig{TimeoutSeconds: 30},
	}
}

// Load reads and validates a Config from path, starting from Default()
// so unset fields keep their defaults.
func Load(path string) (Config, liberr.Error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errConfigReadFailed.Error(err)
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errConfigParseFailed.Error(err)
	}
	if err = validator.New().Struct(&cfg); err != nil {
		return cfg, errConfigInvalid.Error(err)
	}
	return cfg, nil
}
