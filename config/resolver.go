// Copyright © Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package config

import (
	"os"

	"github.com/go-ini/ini"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// Resolver turns the environment and, when needed, the test suite config file into a Config.
type Resolver struct {
	// ConfigFile is only opened when at least one parameter is missing from the environment.
	ConfigFile string
	// Platform selects the per-OS section; defaults to PlatformKey().
	Platform string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	Logger    common.ILogger
}

func NewResolver(configFile string, logger common.ILogger) *Resolver {
	return &Resolver{
		ConfigFile: configFile,
		Platform:   PlatformKey(),
		LookupEnv:  os.LookupEnv,
		Logger:     logger,
	}
}

func (r *Resolver) lookupEnv(key string) (string, bool) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(key)
	if !ok || v == common.AbsentEnvironmentValue {
		return "", false
	}
	return v, true
}

func (r *Resolver) logger() common.ILogger {
	if r.Logger == nil {
		return common.NullLogger()
	}
	return r.Logger
}

// Resolve reads every parameter from the environment first. Parameters that are missing there are
// read from the config file: paths from the section named after the platform, credentials from
// the CREDENTIALS section. A value present in the environment always wins over the file.
//
// On error the returned Config is the zero value; a partially resolved configuration is never handed out.
func (r *Resolver) Resolve() (Config, error) {
	var cfg Config
	var missing []Parameter

	for _, p := range Parameters() {
		if v, ok := r.lookupEnv(p.EnvName); ok {
			cfg.set(p, v)
			continue
		}

		common.Logf(r.logger(), common.LogInfo, "Environment variable: %s not set.", p.EnvName)
		missing = append(missing, p)
	}

	if len(missing) == 0 {
		return cfg, nil
	}

	file, err := r.loadConfigFile()
	if err != nil {
		return Config{}, err
	}

	platform := r.Platform
	if platform == "" {
		platform = PlatformKey()
	}

	platformSection, err := file.GetSection(platform)
	if err != nil {
		return Config{}, &PlatformNotFoundError{Platform: platform, Sections: file.SectionStrings()}
	}
	// A missing CREDENTIALS section surfaces below as missing keys, one per parameter.
	credentialsSection, _ := file.GetSection(CredentialsSection)

	missingErr := newMissingParametersError()
	for _, p := range missing {
		section, sectionName := credentialsSection, CredentialsSection
		if p.IsPlatformSpecific() {
			section, sectionName = platformSection, platform
		}

		if section == nil {
			missingErr.add(p.EnvName, "not set in the environment and section ["+sectionName+"] is absent from "+r.ConfigFile)
			continue
		}

		key, err := section.GetKey(p.EnvName)
		if err != nil {
			missingErr.add(p.EnvName, "not set in the environment nor in section ["+sectionName+"] of "+r.ConfigFile)
			continue
		}

		cfg.set(p, key.Value())
		common.Logf(r.logger(), common.LogDebug, "%s read from section [%s] of %s", p.EnvName, sectionName, r.ConfigFile)
	}

	if err := missingErr.finalize(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (r *Resolver) loadConfigFile() (*ini.File, error) {
	path := r.ConfigFile
	if path == "" {
		path = DefaultConfigFile
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		// key names are case-insensitive, section names are not
		InsensitiveKeys: true,
		// SAS tokens may legitimately contain '#' or ';'
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, &ConfigFileError{Path: path, Err: err}
	}

	return file, nil
}
