package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
	"github.com/signalfx/defaults"
	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

// LoadConfig reads the agent config file at configPath, renders any envvar
// references and returns the fully initialized config.
func LoadConfig(configPath string) (*Config, error) {
	content, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file %s", configPath)
	}
	return LoadYAML(content)
}

// LoadYAML parses agent config from raw YAML
func LoadYAML(fileContent []byte) (*Config, error) {
	config := &Config{}

	preprocessedContent := preprocessConfig(fileContent)

	if err := yaml.UnmarshalStrict(preprocessedContent, config); err != nil {
		return nil, utils.YAMLErrorWithContext(preprocessedContent, err)
	}

	if err := defaults.Set(config); err != nil {
		return nil, errors.Wrap(err, "config defaults are wrong types")
	}

	return config.initialize()
}

// Only plain names are matched, so datasource expressions such as
// ${dev/manageIp} pass through untouched.
var envVarRE = regexp.MustCompile(`\${\s*([\w-]+?)\s*}`)

// Replaces envvar syntax with the actual envvars
func preprocessConfig(content []byte) []byte {
	return envVarRE.ReplaceAllFunc(content, func(bs []byte) []byte {
		parts := envVarRE.FindSubmatch(bs)
		envvar := string(parts[1])

		log.WithFields(log.Fields{
			"envvar": envvar,
		}).Debug("Rendering envvar in config")

		return []byte(os.Getenv(envvar))
	})
}

// The agent binary lives in <bundle>/bin.
func bundleDirFromExecutable(exe string) string {
	return filepath.Dir(filepath.Dir(exe))
}
